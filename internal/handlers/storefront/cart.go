package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"sakado_back_end/internal/database"
	"sakado_back_end/internal/models"
)

const cartTTL = 30 * 24 * time.Hour

func cartKey(userID string) string {
	return "cart:" + userID
}

func loadCart(ctx context.Context, userID string) []models.CartItem {
	data, _ := database.Redis.Get(ctx, cartKey(userID)).Result()
	var cart []models.CartItem
	if data != "" {
		_ = json.Unmarshal([]byte(data), &cart)
	}
	return cart
}

func saveCart(ctx context.Context, userID string, cart []models.CartItem) {
	jsonData, _ := json.Marshal(cart)
	database.Redis.Set(ctx, cartKey(userID), jsonData, cartTTL)
	// Notifie les onglets connectés en websocket
	database.Redis.Publish(ctx, cartKey(userID), "updated")
}

// GET /api/cart
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	cart := loadCart(context.Background(), userID)
	if cart == nil {
		cart = []models.CartItem{}
	}
	c.JSON(http.StatusOK, gin.H{"items": cart})
}

// POST /api/cart/add
func AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	productID, err := uuid.Parse(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var (
		name, sellerEmail string
		sellerID          gocql.UUID
		price             float64
		stock, minQty     int
		isActive          bool
		imageURLs         []string
	)
	err = session.Query(`SELECT name, seller_id, seller_email, price, stock, min_order_qty, is_active, image_urls
		FROM products WHERE product_id = ?`, gocql.UUID(productID)).Scan(
		&name, &sellerID, &sellerEmail, &price, &stock, &minQty, &isActive, &imageURLs)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	if !isActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Produit indisponible"})
		return
	}

	ctx := context.Background()
	cart := loadCart(ctx, userID)

	// Quantité cible si le produit est déjà dans le panier
	targetQty := input.Quantity
	for i := range cart {
		if cart[i].ProductID == input.ProductID {
			targetQty += cart[i].Quantity
		}
	}

	if minQty > 0 && targetQty < minQty {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":        "Quantité minimum non atteinte",
			"min_quantity": minQty,
		})
		return
	}

	if stock < targetQty {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Stock insuffisant",
			"product":   name,
			"available": stock,
			"requested": targetQty,
		})
		return
	}

	// Première image pour l'aperçu panier
	imageURL := ""
	if len(imageURLs) > 0 {
		imageURL = imageURLs[0]
	}

	found := false
	for i := range cart {
		if cart[i].ProductID == input.ProductID {
			cart[i].Quantity = targetQty
			cart[i].Price = price
			found = true
			break
		}
	}
	if !found {
		cart = append(cart, models.CartItem{
			ProductID:   input.ProductID,
			Name:        name,
			SellerID:    sellerID.String(),
			SellerEmail: sellerEmail,
			Price:       price,
			Quantity:    input.Quantity,
			ImageURL:    imageURL,
		})
	}

	saveCart(ctx, userID, cart)

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit ajouté au panier",
		"items":   cart,
	})
}

// DELETE /api/cart/:productId
func RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	productID := c.Param("productId")
	ctx := context.Background()

	cart := loadCart(ctx, userID)
	if len(cart) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Panier vide"})
		return
	}

	newCart := []models.CartItem{}
	for _, item := range cart {
		if item.ProductID != productID {
			newCart = append(newCart, item)
		}
	}

	saveCart(ctx, userID, newCart)

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit supprimé du panier",
		"items":   newCart,
	})
}

// DELETE /api/cart/clear
func ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	ctx := context.Background()
	if err := database.Redis.Del(ctx, cartKey(userID)).Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du vidage du panier"})
		return
	}
	database.Redis.Publish(ctx, cartKey(userID), "cleared")

	c.JSON(http.StatusOK, gin.H{
		"message": "Panier vidé avec succès",
	})
}
