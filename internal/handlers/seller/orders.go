package seller

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"sakado_back_end/internal/database"
	"sakado_back_end/internal/models"
	"sakado_back_end/internal/stock"
)

// sellerView ne laisse voir au vendeur que ses propres lignes ; le total
// affiché est recalculé sur ces lignes uniquement.
type sellerView struct {
	models.Order
	SellerTotal float64 `json:"seller_total"`
}

func filterSellerOrders(orders []models.Order, sellerID, sellerEmail string) []sellerView {
	views := []sellerView{}
	for _, o := range orders {
		mine := []models.OrderItem{}
		total := 0.0
		for _, item := range o.Items {
			if item.SellerID == sellerID || item.SellerEmail == sellerEmail {
				mine = append(mine, item)
				total += item.Price * float64(item.Quantity)
			}
		}
		if len(mine) == 0 {
			continue
		}
		o.Items = mine
		views = append(views, sellerView{Order: o, SellerTotal: total})
	}
	sort.SliceStable(views, func(i, j int) bool { return views[i].CreatedAt.After(views[j].CreatedAt) })
	return views
}

func loadAllOrders() ([]models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	orders := []models.Order{}
	var o models.Order
	var itemsJSON string
	iter := session.Query(`SELECT order_id, order_number, customer_name, customer_email, customer_phone,
		shipping_address, status, items, total_amount, payment_intent_id, created_at, updated_at
		FROM orders`).Iter()
	for iter.Scan(&o.ID, &o.OrderNumber, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
		&o.ShippingAddress, &o.Status, &itemsJSON, &o.TotalAmount, &o.PaymentIntentID,
		&o.CreatedAt, &o.UpdatedAt) {
		if itemsJSON != "" {
			_ = json.Unmarshal([]byte(itemsJSON), &o.Items)
		}
		orders = append(orders, o)
		o = models.Order{}
		itemsJSON = ""
	}
	return orders, iter.Close()
}

func loadOrder(orderID string) (models.Order, error) {
	var order models.Order

	session, err := database.GetOrdersSession()
	if err != nil {
		return order, err
	}

	oid, err := gocql.ParseUUID(orderID)
	if err != nil {
		return order, err
	}

	var itemsJSON string
	err = session.Query(`SELECT order_id, order_number, customer_name, customer_email, customer_phone,
		shipping_address, status, items, total_amount, payment_intent_id, created_at, updated_at
		FROM orders WHERE order_id = ?`, oid).Scan(
		&order.ID, &order.OrderNumber, &order.CustomerName, &order.CustomerEmail, &order.CustomerPhone,
		&order.ShippingAddress, &order.Status, &itemsJSON, &order.TotalAmount, &order.PaymentIntentID,
		&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return order, err
	}

	if itemsJSON != "" {
		_ = json.Unmarshal([]byte(itemsJSON), &order.Items)
	}
	return order, nil
}

// GET /api/seller/orders
func ListMyOrders(c *gin.Context) {
	sellerID := c.GetString("seller_id")
	sellerEmail := c.GetString("email")

	orders, err := loadAllOrders()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	views := filterSellerOrders(orders, sellerID, sellerEmail)

	// Filtre optionnel par statut
	if status := c.Query("status"); status != "" {
		filtered := views[:0]
		for _, v := range views {
			if v.Status == status {
				filtered = append(filtered, v)
			}
		}
		views = filtered
	}

	c.JSON(http.StatusOK, gin.H{"orders": views, "count": len(views)})
}

// PUT /api/seller/orders/:id/status
// La transition est appliquée par écriture conditionnelle ; sur annulation,
// seules les lignes de ce vendeur retournent en stock.
func UpdateOrderStatus(c *gin.Context) {
	sellerID := c.GetString("seller_id")
	sellerEmail := c.GetString("email")

	var input struct {
		Status string `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if !stock.ValidOrderStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut inconnu: " + input.Status})
		return
	}

	order, err := loadOrder(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	// Le vendeur doit avoir au moins une ligne dans la commande
	concerned := false
	for _, item := range order.Items {
		if item.SellerID == sellerID || item.SellerEmail == sellerEmail {
			concerned = true
			break
		}
	}
	if !concerned {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cette commande ne vous concerne pas"})
		return
	}

	reconciler := stock.NewReconciler(stock.NewScyllaStore())
	updated, err := reconciler.ChangeOrderStatus(context.Background(), order, stock.OrderStatus(input.Status), sellerEmail)
	if err != nil {
		switch err {
		case stock.ErrInvalidTransition:
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Transition non autorisée",
				"from":  order.Status,
				"to":    input.Status,
			})
		case stock.ErrConflict:
			c.JSON(http.StatusConflict, gin.H{"error": "La commande a été modifiée entre-temps, rechargez-la"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur changement de statut"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Statut mis à jour",
		"order":   updated,
	})
}
