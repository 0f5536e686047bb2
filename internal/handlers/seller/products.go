package seller

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"sakado_back_end/internal/cache"
	"sakado_back_end/internal/database"
	"sakado_back_end/internal/models"
	"sakado_back_end/internal/services"
)

// ownedProduct recharge un produit et vérifie qu'il appartient au vendeur
func ownedProduct(c *gin.Context, productID string) (*models.Product, bool) {
	sellerID := c.GetString("seller_id")

	pid, err := gocql.ParseUUID(productID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return nil, false
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return nil, false
	}

	var p models.Product
	err = session.Query(`SELECT product_id, seller_id, seller_email, name, description, price, stock,
		min_order_qty, low_stock_threshold, category_id, image_urls, tags, is_active, created_at, updated_at
		FROM products WHERE product_id = ?`, pid).Scan(
		&p.ID, &p.SellerID, &p.SellerEmail, &p.Name, &p.Description, &p.Price, &p.Stock,
		&p.MinOrderQuantity, &p.LowStockThreshold, &p.CategoryID, &p.ImageURLs, &p.Tags,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return nil, false
	}

	if p.SellerID.String() != sellerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Ce produit ne vous appartient pas"})
		return nil, false
	}

	return &p, true
}

// GET /api/seller/products
func ListMyProducts(c *gin.Context) {
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

	products := []models.Product{}
	var p models.Product
	iter := session.Query(`SELECT product_id, seller_id, seller_email, name, description, price, stock,
		min_order_qty, low_stock_threshold, category_id, image_urls, tags, is_active, created_at, updated_at
		FROM products WHERE seller_id = ? ALLOW FILTERING`, sellerID).Iter()
	for iter.Scan(&p.ID, &p.SellerID, &p.SellerEmail, &p.Name, &p.Description, &p.Price, &p.Stock,
		&p.MinOrderQuantity, &p.LowStockThreshold, &p.CategoryID, &p.ImageURLs, &p.Tags,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt) {
		products = append(products, p)
		p = models.Product{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

// POST /api/seller/products
func CreateProduct(c *gin.Context) {
	var input struct {
		Name              string   `json:"name" binding:"required"`
		Description       string   `json:"description"`
		Price             float64  `json:"price" binding:"required,gt=0"`
		Stock             int      `json:"stock" binding:"min=0"`
		MinOrderQuantity  int      `json:"min_order_quantity"`
		LowStockThreshold int      `json:"low_stock_threshold"`
		CategoryID        string   `json:"category_id" binding:"required"`
		Tags              []string `json:"tags"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	sellerID, err := gocql.ParseUUID(c.GetString("seller_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Identité vendeur invalide"})
		return
	}
	sellerEmail := c.GetString("email")

	categoryID, err := gocql.ParseUUID(input.CategoryID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID catégorie invalide"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	now := time.Now()
	product := models.Product{
		ID:                gocql.TimeUUID(),
		SellerID:          sellerID,
		SellerEmail:       sellerEmail,
		Name:              input.Name,
		Description:       input.Description,
		Price:             input.Price,
		Stock:             input.Stock,
		MinOrderQuantity:  input.MinOrderQuantity,
		LowStockThreshold: input.LowStockThreshold,
		CategoryID:        categoryID,
		ImageURLs:         []string{},
		Tags:              input.Tags,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = session.Query(`INSERT INTO products (product_id, seller_id, seller_email, name, description, price, stock,
		min_order_qty, low_stock_threshold, category_id, image_urls, tags, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		product.ID, product.SellerID, product.SellerEmail, product.Name, product.Description,
		product.Price, product.Stock, product.MinOrderQuantity, product.LowStockThreshold,
		product.CategoryID, product.ImageURLs, product.Tags, product.IsActive,
		product.CreatedAt, product.UpdatedAt).Exec()
	if err != nil {
		log.Printf("❌ Erreur création produit: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit"})
		return
	}

	// Indexation asynchrone côté recherche
	go services.IndexProduct(product)

	c.JSON(http.StatusCreated, product)
}

// PUT /api/seller/products/:id
func UpdateProduct(c *gin.Context) {
	product, ok := ownedProduct(c, c.Param("id"))
	if !ok {
		return
	}

	var input struct {
		Name              *string  `json:"name"`
		Description       *string  `json:"description"`
		Price             *float64 `json:"price"`
		MinOrderQuantity  *int     `json:"min_order_quantity"`
		LowStockThreshold *int     `json:"low_stock_threshold"`
		CategoryID        *string  `json:"category_id"`
		Tags              []string `json:"tags"`
		IsActive          *bool    `json:"is_active"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Prix invalide"})
			return
		}
		product.Price = *input.Price
	}
	if input.MinOrderQuantity != nil {
		product.MinOrderQuantity = *input.MinOrderQuantity
	}
	if input.LowStockThreshold != nil {
		product.LowStockThreshold = *input.LowStockThreshold
	}
	if input.CategoryID != nil {
		categoryID, err := gocql.ParseUUID(*input.CategoryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ID catégorie invalide"})
			return
		}
		product.CategoryID = categoryID
	}
	if input.Tags != nil {
		product.Tags = input.Tags
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	product.UpdatedAt = time.Now()

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// Le stock n'est jamais touché ici : il passe par les ajustements dédiés
	err = session.Query(`UPDATE products SET name = ?, description = ?, price = ?, min_order_qty = ?,
		low_stock_threshold = ?, category_id = ?, tags = ?, is_active = ?, updated_at = ?
		WHERE product_id = ?`,
		product.Name, product.Description, product.Price, product.MinOrderQuantity,
		product.LowStockThreshold, product.CategoryID, product.Tags, product.IsActive,
		product.UpdatedAt, product.ID).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	cache.InvalidateProductCache(product.ID.String())
	go services.IndexProduct(*product)

	c.JSON(http.StatusOK, product)
}

// POST /api/seller/products/:id/images
func UploadProductImage(c *gin.Context) {
	product, ok := ownedProduct(c, c.Param("id"))
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier image requis"})
		return
	}

	url, err := services.UploadProductImage(product.ID, file)
	if err != nil {
		log.Printf("❌ Erreur upload MinIO: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload image"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	product.ImageURLs = append(product.ImageURLs, url)
	err = session.Query("UPDATE products SET image_urls = ?, updated_at = ? WHERE product_id = ?",
		product.ImageURLs, time.Now(), product.ID).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	cache.InvalidateProductCache(product.ID.String())

	c.JSON(http.StatusOK, gin.H{
		"message":    "Image ajoutée",
		"image_url":  url,
		"image_urls": product.ImageURLs,
	})
}

// DELETE /api/seller/products/:id
// Suppression douce : le produit est désactivé, les commandes passées gardent
// leurs lignes intactes.
func DeleteProduct(c *gin.Context) {
	product, ok := ownedProduct(c, c.Param("id"))
	if !ok {
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	err = session.Query("UPDATE products SET is_active = ?, updated_at = ? WHERE product_id = ?",
		false, time.Now(), product.ID).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression produit"})
		return
	}

	cache.InvalidateProductCache(product.ID.String())
	go services.DeleteProductIndex(product.ID.String())

	c.JSON(http.StatusOK, gin.H{"message": "Produit désactivé"})
}
