package admin

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

func loadOrder(orderID string) (models.Order, error) {
	var order models.Order

	oid, err := gocql.ParseUUID(orderID)
	if err != nil {
		return order, err
	}

	session, err := database.GetOrdersSession()
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

// GET /api/admin/orders — toutes les commandes de la place de marché
func ListOrders(c *gin.Context) {
	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
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
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commandes"})
		return
	}

	if status := c.Query("status"); status != "" {
		filtered := orders[:0]
		for _, ord := range orders {
			if ord.Status == status {
				filtered = append(filtered, ord)
			}
		}
		orders = filtered
	}

	sort.SliceStable(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })

	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

// GET /api/admin/orders/:id
func GetOrder(c *gin.Context) {
	order, err := loadOrder(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// PUT /api/admin/orders/:id/status
// Acteur vide : sur annulation, toutes les lignes retournent en stock.
func UpdateOrderStatus(c *gin.Context) {
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

	reconciler := stock.NewReconciler(stock.NewScyllaStore())
	updated, err := reconciler.ChangeOrderStatus(context.Background(), order, stock.OrderStatus(input.Status), "")
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

// DELETE /api/admin/orders/:id
// Réservé aux commandes terminales : on n'efface pas une commande vivante.
func DeleteOrder(c *gin.Context) {
	order, err := loadOrder(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	if !stock.IsTerminalOrder(stock.OrderStatus(order.Status)) && stock.OrderStatus(order.Status) != stock.OrderDelivered {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Seule une commande terminée peut être supprimée"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query("DELETE FROM orders WHERE order_id = ?", order.ID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression commande"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Commande supprimée"})
}
