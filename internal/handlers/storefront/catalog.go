package storefront

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"sakado_back_end/internal/database"
	"sakado_back_end/internal/models"
	"sakado_back_end/internal/services"
)

const defaultPageSize = 24

// CatalogFilter regroupe les critères de la liste produits côté boutique
type CatalogFilter struct {
	CategoryID string
	SellerID   string
	PriceMin   float64
	PriceMax   float64
	InStock    bool
}

// FilterProducts ne garde que les produits actifs correspondant aux critères
func FilterProducts(products []models.Product, f CatalogFilter) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if !p.IsActive {
			continue
		}
		if f.CategoryID != "" && p.CategoryID.String() != f.CategoryID {
			continue
		}
		if f.SellerID != "" && p.SellerID.String() != f.SellerID {
			continue
		}
		if f.PriceMin > 0 && p.Price < f.PriceMin {
			continue
		}
		if f.PriceMax > 0 && p.Price > f.PriceMax {
			continue
		}
		if f.InStock && p.Stock <= 0 {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SortProducts trie selon la clé demandée (price_asc, price_desc, newest, name)
func SortProducts(products []models.Product, sortKey string) {
	switch sortKey {
	case "price_asc":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case "price_desc":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	case "name":
		sort.SliceStable(products, func(i, j int) bool {
			return strings.ToLower(products[i].Name) < strings.ToLower(products[j].Name)
		})
	default: // newest
		sort.SliceStable(products, func(i, j int) bool { return products[i].CreatedAt.After(products[j].CreatedAt) })
	}
}

// PaginateProducts découpe la liste, page commence à 1
func PaginateProducts(products []models.Product, page, pageSize int) []models.Product {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(products) {
		return []models.Product{}
	}
	end := start + pageSize
	if end > len(products) {
		end = len(products)
	}
	return products[start:end]
}

func scanProducts(iter *gocql.Iter) []models.Product {
	products := []models.Product{}
	var p models.Product
	for iter.Scan(&p.ID, &p.SellerID, &p.SellerEmail, &p.Name, &p.Description, &p.Price, &p.Stock,
		&p.MinOrderQuantity, &p.LowStockThreshold, &p.CategoryID, &p.ImageURLs, &p.Tags,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt) {
		products = append(products, p)
		p = models.Product{}
	}
	return products
}

// GET /api/products
func ListProducts(c *gin.Context) {
	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT product_id, seller_id, seller_email, name, description, price, stock,
		min_order_qty, low_stock_threshold, category_id, image_urls, tags, is_active, created_at, updated_at
		FROM products`).Iter()
	products := scanProducts(iter)
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits"})
		return
	}

	priceMin, _ := strconv.ParseFloat(c.Query("price_min"), 64)
	priceMax, _ := strconv.ParseFloat(c.Query("price_max"), 64)
	filter := CatalogFilter{
		CategoryID: c.Query("category"),
		SellerID:   c.Query("seller"),
		PriceMin:   priceMin,
		PriceMax:   priceMax,
		InStock:    c.Query("in_stock") == "true",
	}

	products = FilterProducts(products, filter)
	SortProducts(products, c.DefaultQuery("sort", "newest"))

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	total := len(products)
	products = PaginateProducts(products, page, pageSize)

	c.JSON(http.StatusOK, gin.H{
		"products":  products,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GET /api/products/search?q=...
func SearchCatalog(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre q requis"})
		return
	}

	results, err := services.SearchProducts(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur recherche", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}

// GET /api/products/:id
func GetProductByID(c *gin.Context) {
	pid, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var p models.Product
	err = session.Query(`SELECT product_id, seller_id, seller_email, name, description, price, stock,
		min_order_qty, low_stock_threshold, category_id, image_urls, tags, is_active, created_at, updated_at
		FROM products WHERE product_id = ?`, gocql.UUID(pid)).Scan(
		&p.ID, &p.SellerID, &p.SellerEmail, &p.Name, &p.Description, &p.Price, &p.Stock,
		&p.MinOrderQuantity, &p.LowStockThreshold, &p.CategoryID, &p.ImageURLs, &p.Tags,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil || !p.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// GET /api/categories
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
		if cat.IsActive {
			categories = append(categories, cat)
		}
		cat = models.Category{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catégories"})
		return
	}

	sort.SliceStable(categories, func(i, j int) bool { return categories[i].Position < categories[j].Position })
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GET /api/homepage
func GetHomepage(c *gin.Context) {
	session, err := database.GetSellersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	sections := []models.HomepageSection{}
	var s models.HomepageSection
	var updatedAt time.Time
	iter := session.Query("SELECT section_id, kind, title, payload, position, is_active, updated_at FROM homepage_sections").Iter()
	for iter.Scan(&s.ID, &s.Kind, &s.Title, &s.Payload, &s.Position, &s.IsActive, &updatedAt) {
		if s.IsActive {
			s.UpdatedAt = updatedAt
			sections = append(sections, s)
		}
		s = models.HomepageSection{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture page d'accueil"})
		return
	}

	sort.SliceStable(sections, func(i, j int) bool { return sections[i].Position < sections[j].Position })
	c.JSON(http.StatusOK, gin.H{"sections": sections})
}
