package seller

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/refund"

	"sakado_back_end/internal/database"
	"sakado_back_end/internal/models"
	"sakado_back_end/internal/stock"
)

func loadReturn(returnID string) (models.Return, error) {
	var r models.Return

	rid, err := gocql.ParseUUID(returnID)
	if err != nil {
		return r, err
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		return r, err
	}

	err = session.Query(`SELECT return_id, order_number, product_id, seller_email, customer_email,
		quantity, price, reason, description, status, returned_at, created_at, updated_at
		FROM returns WHERE return_id = ?`, rid).Scan(
		&r.ID, &r.OrderNumber, &r.ProductID, &r.SellerEmail, &r.CustomerEmail,
		&r.Quantity, &r.Price, &r.Reason, &r.Description, &r.Status, &r.ReturnedAt,
		&r.CreatedAt, &r.UpdatedAt)
	return r, err
}

func ownedReturn(c *gin.Context, returnID string) (models.Return, bool) {
	r, err := loadReturn(returnID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Retour introuvable"})
		return r, false
	}
	if r.SellerEmail != c.GetString("email") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Ce retour ne vous concerne pas"})
		return r, false
	}
	return r, true
}

// GET /api/seller/returns
func ListMyReturns(c *gin.Context) {
	sellerEmail := c.GetString("email")

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	returns := []models.Return{}
	var r models.Return
	iter := session.Query(`SELECT return_id, order_number, product_id, seller_email, customer_email,
		quantity, price, reason, description, status, returned_at, created_at, updated_at
		FROM returns WHERE seller_email = ? ALLOW FILTERING`, sellerEmail).Iter()
	for iter.Scan(&r.ID, &r.OrderNumber, &r.ProductID, &r.SellerEmail, &r.CustomerEmail,
		&r.Quantity, &r.Price, &r.Reason, &r.Description, &r.Status, &r.ReturnedAt,
		&r.CreatedAt, &r.UpdatedAt) {
		returns = append(returns, r)
		r = models.Return{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération retours"})
		return
	}

	if status := c.Query("status"); status != "" {
		filtered := returns[:0]
		for _, ret := range returns {
			if ret.Status == status {
				filtered = append(filtered, ret)
			}
		}
		returns = filtered
	}

	c.JSON(http.StatusOK, gin.H{"returns": returns, "count": len(returns)})
}

// PUT /api/seller/returns/:id/decision — approve ou reject un retour en attente.
// L'écriture conditionnelle bloque la double décision.
func DecideReturn(c *gin.Context) {
	var input struct {
		Action string `json:"action" binding:"required"` // approve, reject
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	var decision stock.ReturnStatus
	switch input.Action {
	case "approve":
		decision = stock.ReturnApproved
	case "reject":
		decision = stock.ReturnRejected
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Action invalide (approve ou reject)"})
		return
	}

	ret, ok := ownedReturn(c, c.Param("id"))
	if !ok {
		return
	}

	reconciler := stock.NewReconciler(stock.NewScyllaStore())
	updated, err := reconciler.SetReturnStatus(context.Background(), ret, decision)
	if err != nil {
		switch err {
		case stock.ErrInvalidTransition:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Ce retour a déjà été traité", "status": ret.Status})
		case stock.ErrConflict:
			c.JSON(http.StatusConflict, gin.H{"error": "Le retour a été traité entre-temps"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur traitement retour"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Retour " + input.Action,
		"return":  updated,
	})
}

// POST /api/seller/returns/:id/complete — "marquer comme restitué".
// Le stock du produit remonte exactement une fois, puis le client est
// remboursé au prix figé de la ligne.
func CompleteReturn(c *gin.Context) {
	ret, ok := ownedReturn(c, c.Param("id"))
	if !ok {
		return
	}

	reconciler := stock.NewReconciler(stock.NewScyllaStore())
	updated, err := reconciler.CompleteReturn(context.Background(), ret)
	if err != nil {
		switch err {
		case stock.ErrInvalidTransition:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Seul un retour approuvé peut être restitué", "status": ret.Status})
		case stock.ErrConflict:
			c.JSON(http.StatusConflict, gin.H{"error": "Le retour a été traité entre-temps"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur restitution"})
		}
		return
	}

	// Remboursement Stripe du montant de la ligne retournée
	refundAmount := updated.Price * float64(updated.Quantity)
	go refundReturnedLine(updated, refundAmount)

	c.JSON(http.StatusOK, gin.H{
		"message":       "Retour restitué, stock mis à jour",
		"return":        updated,
		"refund_amount": refundAmount,
	})
}

func refundReturnedLine(ret models.Return, amount float64) {
	session, err := database.GetOrdersSession()
	if err != nil {
		log.Printf("⚠️ Remboursement retour %s: session indisponible: %v", ret.ID, err)
		return
	}

	var paymentIntentID string
	err = session.Query("SELECT payment_intent_id FROM orders WHERE order_number = ? ALLOW FILTERING",
		ret.OrderNumber).Scan(&paymentIntentID)
	if err != nil || paymentIntentID == "" {
		log.Printf("⚠️ Remboursement retour %s: PaymentIntent introuvable pour %s", ret.ID, ret.OrderNumber)
		return
	}

	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntentID),
		Amount:        stripe.Int64(int64(amount * 100)),
	}
	stripeRefund, err := refund.New(params)
	if err != nil {
		log.Printf("❌ Erreur remboursement Stripe pour retour %s: %v", ret.ID, err)
		return
	}

	log.Printf("💳 Remboursement créé: %s (%.2f€) pour retour %s", stripeRefund.ID, amount, ret.ID)
}
