package admin

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"sakado_back_end/internal/database"
	"sakado_back_end/internal/models"
)

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	replacer := strings.NewReplacer("é", "e", "è", "e", "ê", "e", "à", "a", "ç", "c", "ù", "u", "ô", "o", " ", "-", "'", "-")
	slug = replacer.Replace(slug)
	return slug
}

// GET /api/admin/categories — y compris les catégories désactivées
func ListCategories(c *gin.Context) {
	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	categories := []models.Category{}
	var cat models.Category
	iter := session.Query("SELECT category_id, name, slug, position, is_active, created_at FROM categories").Iter()
	for iter.Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.Position, &cat.IsActive, &cat.CreatedAt) {
		categories = append(categories, cat)
		cat = models.Category{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catégories"})
		return
	}

	sort.SliceStable(categories, func(i, j int) bool { return categories[i].Position < categories[j].Position })
	c.JSON(http.StatusOK, gin.H{"categories": categories, "count": len(categories)})
}

// POST /api/admin/categories
func CreateCategory(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Position int    `json:"position"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	category := models.Category{
		ID:        gocql.TimeUUID(),
		Name:      input.Name,
		Slug:      slugify(input.Name),
		Position:  input.Position,
		IsActive:  true,
		CreatedAt: time.Now(),
	}

	err = session.Query(`INSERT INTO categories (category_id, name, slug, position, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		category.ID, category.Name, category.Slug, category.Position, category.IsActive, category.CreatedAt).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création catégorie"})
		return
	}

	c.JSON(http.StatusCreated, category)
}

// PUT /api/admin/categories/:id
func UpdateCategory(c *gin.Context) {
	cid, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID catégorie invalide"})
		return
	}

	var input struct {
		Name     *string `json:"name"`
		Position *int    `json:"position"`
		IsActive *bool   `json:"is_active"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var cat models.Category
	err = session.Query("SELECT category_id, name, slug, position, is_active, created_at FROM categories WHERE category_id = ?",
		cid).Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.Position, &cat.IsActive, &cat.CreatedAt)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie introuvable"})
		return
	}

	if input.Name != nil {
		cat.Name = *input.Name
		cat.Slug = slugify(*input.Name)
	}
	if input.Position != nil {
		cat.Position = *input.Position
	}
	if input.IsActive != nil {
		cat.IsActive = *input.IsActive
	}

	err = session.Query("UPDATE categories SET name = ?, slug = ?, position = ?, is_active = ? WHERE category_id = ?",
		cat.Name, cat.Slug, cat.Position, cat.IsActive, cid).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour catégorie"})
		return
	}

	c.JSON(http.StatusOK, cat)
}

// DELETE /api/admin/categories/:id — refusé tant que des produits y sont rattachés
func DeleteCategory(c *gin.Context) {
	cid, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID catégorie invalide"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var count int
	if err := session.Query("SELECT COUNT(*) FROM products WHERE category_id = ? ALLOW FILTERING", cid).Scan(&count); err == nil && count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    "Des produits sont rattachés à cette catégorie",
			"products": count,
		})
		return
	}

	if err := session.Query("DELETE FROM categories WHERE category_id = ?", cid).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression catégorie"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Catégorie supprimée"})
}
