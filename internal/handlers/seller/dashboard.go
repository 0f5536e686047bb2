package seller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"sakado_back_end/internal/database"
	"sakado_back_end/internal/models"
	"sakado_back_end/internal/stock"
)

// GET /api/seller/dashboard — indicateurs du portail vendeur
func GetDashboardStats(c *gin.Context) {
	sellerID, err := gocql.ParseUUID(c.GetString("seller_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Identité vendeur invalide"})
		return
	}
	sellerEmail := c.GetString("email")

	stats := models.SellerStats{OrdersByStatus: map[string]int{}}

	// Produits : compteurs et valeur de stock
	productsSession, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var (
		price           float64
		stockQty, seuil int
		isActive        bool
	)
	iter := productsSession.Query(`SELECT price, stock, low_stock_threshold, is_active
		FROM products WHERE seller_id = ? ALLOW FILTERING`, sellerID).Iter()
	for iter.Scan(&price, &stockQty, &seuil, &isActive) {
		if !isActive {
			continue
		}
		stats.TotalProducts++
		stats.StockValue += price * float64(stockQty)
		if stockQty == 0 {
			stats.OutOfStockProducts++
		} else if seuil > 0 && stockQty <= seuil {
			stats.LowStockProducts++
		}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits"})
		return
	}

	// Commandes : répartition par statut et chiffre d'affaires livré
	orders, err := loadAllOrders()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	for _, view := range filterSellerOrders(orders, sellerID.String(), sellerEmail) {
		stats.OrdersByStatus[view.Status]++
		if stock.OrderStatus(view.Status) == stock.OrderDelivered {
			stats.Revenue += view.SellerTotal
		}
	}

	// Versements effectivement reçus
	payments, err := loadSellerPayments(sellerEmail)
	if err == nil {
		stats.TotalReceived = stock.TotalReceived(payments)
	}

	c.JSON(http.StatusOK, stats)
}
