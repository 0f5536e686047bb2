package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
	"github.com/stripe/stripe-go/v83/webhook"

	"sakado_back_end/internal/database"
	"sakado_back_end/internal/models"
	"sakado_back_end/internal/stock"
	"sakado_back_end/internal/utils"
)

// NextOrderNumber génère un numéro lisible de type SKD-2026-000042.
// La séquence est un compteur Redis par année.
func NextOrderNumber(ctx context.Context, now time.Time) (string, error) {
	year := now.Year()
	seq, err := database.Redis.Incr(ctx, fmt.Sprintf("order_seq:%d", year)).Result()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("SKD-%d-%06d", year, seq), nil
}

// Checkout crée une commande : le stock est réservé atomiquement ligne par
// ligne avant la création du PaymentIntent. Si une ligne échoue, les
// réservations déjà prises sont rendues.
func Checkout(c *gin.Context) {
	var req struct {
		CustomerName    string `json:"customer_name" binding:"required"`
		CustomerPhone   string `json:"customer_phone"`
		ShippingAddress string `json:"shipping_address" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	userID := c.GetString("user_id")
	email := c.GetString("email")
	if userID == "" || email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	ctx := context.Background()

	// 1. Récupérer le panier depuis Redis
	cartItems := loadCart(ctx, userID)
	if len(cartItems) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide ou introuvable"})
		return
	}

	// 2. Revalider chaque produit (prix et quantité minimum courants)
	productsSession, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	for i, item := range cartItems {
		pid, err := gocql.ParseUUID(item.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide: " + item.ProductID})
			return
		}

		var (
			name, sellerEmail string
			sellerID          gocql.UUID
			price             float64
			minQty            int
			isActive          bool
		)
		err = productsSession.Query(`SELECT name, seller_id, seller_email, price, min_order_qty, is_active
			FROM products WHERE product_id = ?`, pid).Scan(&name, &sellerID, &sellerEmail, &price, &minQty, &isActive)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable: " + item.ProductID})
			return
		}
		if !isActive {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Produit indisponible", "product": name})
			return
		}
		if minQty > 0 && item.Quantity < minQty {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":        "Quantité minimum non atteinte",
				"product":      name,
				"min_quantity": minQty,
			})
			return
		}

		cartItems[i].Name = name
		cartItems[i].Price = price
		cartItems[i].SellerID = sellerID.String()
		cartItems[i].SellerEmail = sellerEmail
	}

	now := time.Now()
	orderID := gocql.TimeUUID()
	orderNumber, err := NextOrderNumber(ctx, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération numéro de commande"})
		return
	}

	// 3. Réserver le stock, atomiquement par produit
	store := stock.NewScyllaStore()
	reserved := []models.CartItem{}
	for _, item := range cartItems {
		mv := stock.Movement{
			Type:    "sale",
			Reason:  "réservation checkout",
			Actor:   email,
			OrderID: orderID.String(),
		}
		if _, err := store.StockDelta(ctx, item.ProductID, -item.Quantity, mv); err != nil {
			// Rendre les réservations déjà prises
			for _, r := range reserved {
				rb := stock.Movement{
					Type:    "cancel_restore",
					Reason:  "réservation checkout annulée",
					Actor:   email,
					OrderID: orderID.String(),
				}
				if _, rbErr := store.StockDelta(ctx, r.ProductID, r.Quantity, rb); rbErr != nil {
					log.Printf("⚠️ Rollback réservation échoué pour produit %s: %v", r.ProductID, rbErr)
				}
			}
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Stock insuffisant",
				"product": item.Name,
			})
			return
		}
		reserved = append(reserved, item)
	}

	// 4. Construire les lignes de commande (prix figés)
	orderItems := make([]models.OrderItem, 0, len(cartItems))
	total := 0.0
	for _, item := range cartItems {
		orderItems = append(orderItems, models.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.Name,
			SellerID:    item.SellerID,
			SellerEmail: item.SellerEmail,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
		total += item.Price * float64(item.Quantity)
	}

	// 5. Créer le PaymentIntent Stripe
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(total * 100)),
		Currency: stripe.String("eur"),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: map[string]string{
			"order_id":     orderID.String(),
			"order_number": orderNumber,
			"user_id":      userID,
			"email":        email,
		},
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		log.Printf("❌ Erreur Stripe: %v", err)
		// Rendre les réservations : pas de commande sans paiement initialisable
		for _, r := range reserved {
			rb := stock.Movement{Type: "cancel_restore", Reason: "échec création paiement", Actor: email, OrderID: orderID.String()}
			if _, rbErr := store.StockDelta(ctx, r.ProductID, r.Quantity, rb); rbErr != nil {
				log.Printf("⚠️ Rollback réservation échoué pour produit %s: %v", r.ProductID, rbErr)
			}
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création paiement", "details": err.Error()})
		return
	}

	// 6. Persister la commande (statut pending jusqu'au webhook Stripe)
	ordersSession, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	itemsJSON, _ := json.Marshal(orderItems)
	err = ordersSession.Query(`INSERT INTO orders (order_id, order_number, customer_name, customer_email, customer_phone,
		shipping_address, status, items, total_amount, payment_intent_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		orderID, orderNumber, req.CustomerName, email, req.CustomerPhone,
		req.ShippingAddress, string(stock.OrderPending), string(itemsJSON), total, intent.ID, now, now).Exec()
	if err != nil {
		log.Printf("❌ Erreur création commande %s: %v", orderNumber, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création commande"})
		return
	}

	// 7. Vider le panier
	database.Redis.Del(ctx, cartKey(userID))
	database.Redis.Publish(ctx, cartKey(userID), "cleared")

	log.Printf("💳 Checkout créé: %s (%s, %.2f€) pour %s", orderNumber, intent.ID, total, email)

	c.JSON(http.StatusOK, gin.H{
		"client_secret": intent.ClientSecret,
		"payment_id":    intent.ID,
		"order_id":      orderID.String(),
		"order_number":  orderNumber,
		"amount":        total,
		"currency":      "eur",
		"items_count":   len(orderItems),
	})
}

// StripeWebhook reçoit les événements Stripe et fait avancer la commande.
// Succès de paiement → confirmed ; échec ou annulation → cancelled (le stock
// réservé au checkout est rendu par le réconciliateur).
func StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Lecture payload impossible"})
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), os.Getenv("STRIPE_WEBHOOK_SECRET"))
	if err != nil {
		log.Printf("🚨 Signature webhook Stripe invalide: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature invalide"})
		return
	}

	switch event.Type {
	case "payment_intent.succeeded", "payment_intent.payment_failed", "payment_intent.canceled":
	default:
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payload invalide"})
		return
	}

	orderID := intent.Metadata["order_id"]
	if orderID == "" {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	order, err := fetchOrder(orderID)
	if err != nil {
		log.Printf("❌ Webhook: commande %s introuvable: %v", orderID, err)
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	reconciler := stock.NewReconciler(stock.NewScyllaStore())
	ctx := context.Background()

	switch event.Type {
	case "payment_intent.succeeded":
		if _, err := reconciler.ChangeOrderStatus(ctx, order, stock.OrderConfirmed, ""); err != nil {
			log.Printf("⚠️ Webhook: confirmation commande %s: %v", order.OrderNumber, err)
		} else {
			log.Printf("✅ Commande confirmée par paiement: %s", order.OrderNumber)
			go sendOrderConfirmation(order)
		}
	case "payment_intent.payment_failed", "payment_intent.canceled":
		if _, err := reconciler.ChangeOrderStatus(ctx, order, stock.OrderCancelled, ""); err != nil {
			log.Printf("⚠️ Webhook: annulation commande %s: %v", order.OrderNumber, err)
		} else {
			log.Printf("❌ Commande annulée (paiement): %s", order.OrderNumber)
		}
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func sendOrderConfirmation(order models.Order) {
	html := utils.GenerateOrderConfirmationHTML(order)
	if err := utils.SendEmail(order.CustomerEmail, "Confirmation de votre commande "+order.OrderNumber, html, nil); err != nil {
		log.Printf("⚠️ Envoi email confirmation %s échoué: %v", order.OrderNumber, err)
	}
}
