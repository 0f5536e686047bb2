package storefront

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"sakado_back_end/internal/database"
	"sakado_back_end/internal/models"
	"sakado_back_end/internal/stock"
)

// POST /api/returns — demande de retour sur une ligne d'une commande livrée
func CreateReturn(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var req struct {
		OrderID     string `json:"order_id" binding:"required"`
		ProductID   string `json:"product_id" binding:"required"`
		Quantity    int    `json:"quantity" binding:"required,min=1"`
		Reason      string `json:"reason" binding:"required"`
		Description string `json:"description"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	order, err := fetchOrder(req.OrderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	if order.CustomerEmail != email {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cette commande ne vous appartient pas"})
		return
	}

	if stock.OrderStatus(order.Status) != stock.OrderDelivered {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Seules les commandes livrées peuvent faire l'objet d'un retour"})
		return
	}

	// La ligne doit exister et la quantité retournée ne peut dépasser l'achetée
	var line *models.OrderItem
	for i := range order.Items {
		if order.Items[i].ProductID == req.ProductID {
			line = &order.Items[i]
			break
		}
	}
	if line == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Produit absent de cette commande"})
		return
	}
	if req.Quantity > line.Quantity {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Quantité retournée supérieure à la quantité achetée",
			"purchased": line.Quantity,
		})
		return
	}

	pid, err := gocql.ParseUUID(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	returnID := gocql.TimeUUID()
	now := time.Now()

	err = session.Query(`INSERT INTO returns (return_id, order_number, product_id, seller_email, customer_email,
		quantity, price, reason, description, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		returnID, order.OrderNumber, pid, line.SellerEmail, email,
		req.Quantity, line.Price, req.Reason, req.Description, string(stock.ReturnPending), now).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création demande de retour"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Demande de retour créée",
		"return": models.Return{
			ID:            returnID,
			OrderNumber:   order.OrderNumber,
			ProductID:     pid,
			SellerEmail:   line.SellerEmail,
			CustomerEmail: email,
			Quantity:      req.Quantity,
			Price:         line.Price,
			Reason:        req.Reason,
			Description:   req.Description,
			Status:        string(stock.ReturnPending),
			CreatedAt:     now,
		},
	})
}

// GET /api/returns — retours du client connecté
func GetMyReturns(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	returns := []models.Return{}
	var r models.Return
	iter := session.Query(`SELECT return_id, order_number, product_id, seller_email, customer_email,
		quantity, price, reason, description, status, returned_at, created_at, updated_at
		FROM returns WHERE customer_email = ? ALLOW FILTERING`, email).Iter()
	for iter.Scan(&r.ID, &r.OrderNumber, &r.ProductID, &r.SellerEmail, &r.CustomerEmail,
		&r.Quantity, &r.Price, &r.Reason, &r.Description, &r.Status, &r.ReturnedAt, &r.CreatedAt, &r.UpdatedAt) {
		returns = append(returns, r)
		r = models.Return{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération retours"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"returns": returns})
}
