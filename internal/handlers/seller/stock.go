package seller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"sakado_back_end/internal/cache"
	"sakado_back_end/internal/database"
	"sakado_back_end/internal/models"
	"sakado_back_end/internal/stock"
)

// POST /api/seller/products/:id/stock
// mode "add" ajoute un delta (réapprovisionnement), mode "set" force la valeur.
// L'écriture est conditionnelle côté base : deux ajustements concurrents ne
// peuvent pas s'écraser.
func AdjustProductStock(c *gin.Context) {
	product, ok := ownedProduct(c, c.Param("id"))
	if !ok {
		return
	}

	var input struct {
		Mode  string `json:"mode" binding:"required"`
		Value int    `json:"value"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	newStock, err := stock.AdjustStock(context.Background(), stock.NewScyllaStore(),
		product.ID.String(), stock.AdjustMode(input.Mode), input.Value, c.GetString("email"))
	if err != nil {
		switch err {
		case stock.ErrInvalidAdjustMode:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Mode invalide (add ou set)"})
		case stock.ErrNegativeStock:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Le stock ne peut pas devenir négatif"})
		case stock.ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		case stock.ErrConflict:
			c.JSON(http.StatusConflict, gin.H{"error": "Écriture concurrente, réessayez"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur ajustement stock"})
		}
		return
	}

	cache.InvalidateProductCache(product.ID.String())

	response := gin.H{
		"message": "Stock mis à jour",
		"product": product.ID.String(),
		"stock":   newStock,
	}
	if product.LowStockThreshold > 0 && newStock <= product.LowStockThreshold {
		response["low_stock"] = true
	}

	c.JSON(http.StatusOK, response)
}

// GET /api/seller/products/:id/movements — historique d'audit du stock
func ListStockMovements(c *gin.Context) {
	product, ok := ownedProduct(c, c.Param("id"))
	if !ok {
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	movements := []models.StockMovement{}
	var m models.StockMovement
	iter := session.Query(`SELECT id, product_id, type, quantity, prev_stock, new_stock, reason, order_id, actor, created_at
		FROM stock_movements WHERE product_id = ?`, product.ID).Iter()
	for iter.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.PrevStock, &m.NewStock,
		&m.Reason, &m.OrderID, &m.Actor, &m.CreatedAt) {
		movements = append(movements, m)
		m = models.StockMovement{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture mouvements"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"movements": movements, "count": len(movements)})
}

// GET /api/seller/stock/alerts — produits sous leur seuil d'alerte
func LowStockAlerts(c *gin.Context) {
	sellerID, err := gocql.ParseUUID(c.GetString("seller_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Identité vendeur invalide"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	type alert struct {
		ProductID string `json:"product_id"`
		Name      string `json:"name"`
		Stock     int    `json:"stock"`
		Threshold int    `json:"threshold"`
	}

	alerts := []alert{}
	var (
		pid             gocql.UUID
		name            string
		stockQty, seuil int
		isActive        bool
	)
	iter := session.Query(`SELECT product_id, name, stock, low_stock_threshold, is_active
		FROM products WHERE seller_id = ? ALLOW FILTERING`, sellerID).Iter()
	for iter.Scan(&pid, &name, &stockQty, &seuil, &isActive) {
		if isActive && seuil > 0 && stockQty <= seuil {
			alerts = append(alerts, alert{ProductID: pid.String(), Name: name, Stock: stockQty, Threshold: seuil})
		}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"alerts": alerts, "count": len(alerts)})
}
