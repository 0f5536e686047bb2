package admin

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"sakado_back_end/internal/database"
	"sakado_back_end/internal/models"
	"sakado_back_end/internal/stock"
)

func notifySeller(sellerEmail string) {
	// Réveille les websockets du vendeur : ils rechargent le registre complet
	database.Redis.Publish(context.Background(), "payments:"+sellerEmail, "updated")
}

// POST /api/admin/payments — enregistre un versement à un vendeur
func CreatePayment(c *gin.Context) {
	var input struct {
		SellerID      string  `json:"seller_id" binding:"required"`
		Amount        float64 `json:"amount" binding:"required,gt=0"`
		PaymentMethod string  `json:"payment_method" binding:"required"` // virement, paypal, cheque
		TransactionID string  `json:"transaction_id"`
		Notes         string  `json:"notes"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	seller, err := loadSeller(input.SellerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vendeur introuvable"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	now := time.Now()
	payment := models.Payment{
		ID:            gocql.TimeUUID(),
		SellerID:      seller.ID,
		SellerEmail:   seller.Email,
		SellerName:    seller.ShopName,
		Amount:        input.Amount,
		PaymentMethod: input.PaymentMethod,
		TransactionID: input.TransactionID,
		Notes:         input.Notes,
		Status:        "completed",
		PaidBy:        c.GetString("email"),
		PaidAt:        now,
		CreatedAt:     now,
	}

	err = session.Query(`INSERT INTO payments (payment_id, seller_id, seller_email, seller_name, amount,
		payment_method, transaction_id, notes, status, paid_by, paid_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		payment.ID, payment.SellerID, payment.SellerEmail, payment.SellerName, payment.Amount,
		payment.PaymentMethod, payment.TransactionID, payment.Notes, payment.Status,
		payment.PaidBy, payment.PaidAt, payment.CreatedAt).Exec()
	if err != nil {
		log.Printf("❌ Erreur création paiement: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement paiement"})
		return
	}

	notifySeller(seller.Email)
	log.Printf("💳 Versement enregistré: %.2f€ à %s (%s)", payment.Amount, seller.ShopName, payment.PaymentMethod)

	c.JSON(http.StatusCreated, payment)
}

// PUT /api/admin/payments/:id/status — correction d'un versement (completed, failed, pending)
func UpdatePaymentStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	switch input.Status {
	case "pending", "completed", "failed":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut invalide (pending, completed ou failed)"})
		return
	}

	pid, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID paiement invalide"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var sellerEmail string
	if err := session.Query("SELECT seller_email FROM payments WHERE payment_id = ?", pid).Scan(&sellerEmail); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Paiement introuvable"})
		return
	}

	err = session.Query("UPDATE payments SET status = ?, updated_at = ? WHERE payment_id = ?",
		input.Status, time.Now(), pid).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour paiement"})
		return
	}

	notifySeller(sellerEmail)

	c.JSON(http.StatusOK, gin.H{
		"message": "Paiement mis à jour",
		"status":  input.Status,
	})
}

// GET /api/admin/payments — tous les versements, filtrables par vendeur
func ListPayments(c *gin.Context) {
	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	query := `SELECT payment_id, seller_id, seller_email, seller_name, amount, payment_method,
		transaction_id, notes, status, paid_by, paid_at, created_at, updated_at FROM payments`
	var iter *gocql.Iter
	if sellerEmail := c.Query("seller"); sellerEmail != "" {
		iter = session.Query(query+" WHERE seller_email = ? ALLOW FILTERING", sellerEmail).Iter()
	} else {
		iter = session.Query(query).Iter()
	}

	payments := []models.Payment{}
	var p models.Payment
	for iter.Scan(&p.ID, &p.SellerID, &p.SellerEmail, &p.SellerName, &p.Amount, &p.PaymentMethod,
		&p.TransactionID, &p.Notes, &p.Status, &p.PaidBy, &p.PaidAt, &p.CreatedAt, &p.UpdatedAt) {
		payments = append(payments, p)
		p = models.Payment{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture paiements"})
		return
	}

	stock.SortPaymentsByPaidAt(payments)

	c.JSON(http.StatusOK, gin.H{
		"payments":       payments,
		"count":          len(payments),
		"total_paid_out": stock.TotalReceived(payments),
	})
}
