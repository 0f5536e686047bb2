package storefront

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"sakado_back_end/internal/database"
	"sakado_back_end/internal/models"
	"sakado_back_end/internal/stock"
)

// fetchOrder recharge une commande complète, lignes incluses
func fetchOrder(orderID string) (models.Order, error) {
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

func scanOrders(iter *gocql.Iter) []models.Order {
	orders := []models.Order{}
	var o models.Order
	var itemsJSON string
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
	return orders
}

// GET /api/orders — commandes du client connecté
func GetMyOrders(c *gin.Context) {
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

	iter := session.Query(`SELECT order_id, order_number, customer_name, customer_email, customer_phone,
		shipping_address, status, items, total_amount, payment_intent_id, created_at, updated_at
		FROM orders WHERE customer_email = ? ALLOW FILTERING`, email).Iter()
	orders := scanOrders(iter)
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GET /api/orders/:id
func GetOrderByID(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	order, err := fetchOrder(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	// Sécurité : la commande doit appartenir au client
	if order.CustomerEmail != email {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cette commande ne vous appartient pas"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// POST /api/orders/:id/cancel — annulation client, uniquement avant expédition
func CancelMyOrder(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	order, err := fetchOrder(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	if order.CustomerEmail != email {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cette commande ne vous appartient pas"})
		return
	}

	from := stock.OrderStatus(order.Status)
	if from != stock.OrderPending && from != stock.OrderProcessing && from != stock.OrderConfirmed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cette commande ne peut plus être annulée"})
		return
	}

	reconciler := stock.NewReconciler(stock.NewScyllaStore())
	updated, err := reconciler.ChangeOrderStatus(context.Background(), order, stock.OrderCancelled, "")
	if err != nil {
		switch err {
		case stock.ErrConflict:
			c.JSON(http.StatusConflict, gin.H{"error": "La commande a été modifiée entre-temps, réessayez"})
		case stock.ErrInvalidTransition:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cette commande ne peut plus être annulée"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur annulation commande"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Commande annulée",
		"order":   updated,
	})
}
