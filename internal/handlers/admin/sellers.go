package admin

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"sakado_back_end/internal/cache"
	"sakado_back_end/internal/database"
	"sakado_back_end/internal/models"
	"sakado_back_end/internal/utils"
)

func scanSellers(iter *gocql.Iter) []models.Seller {
	sellers := []models.Seller{}
	var s models.Seller
	for iter.Scan(&s.ID, &s.Email, &s.Name, &s.ShopName, &s.Phone, &s.BusinessNumber, &s.IBAN,
		&s.IsActive, &s.IsVerified, &s.DeactivationReason, &s.DeactivatedAt, &s.CreatedAt, &s.UpdatedAt) {
		sellers = append(sellers, s)
		s = models.Seller{}
	}
	return sellers
}

// GET /api/admin/sellers
func ListSellers(c *gin.Context) {
	session, err := database.GetSellersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT seller_id, email, name, shop_name, phone, business_number, iban,
		is_active, is_verified, deactivation_reason, deactivated_at, created_at, updated_at
		FROM sellers`).Iter()
	sellers := scanSellers(iter)
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture vendeurs"})
		return
	}

	// Filtres: ?pending=true liste les comptes à valider
	if c.Query("pending") == "true" {
		pending := sellers[:0]
		for _, s := range sellers {
			if !s.IsVerified {
				pending = append(pending, s)
			}
		}
		sellers = pending
	}

	c.JSON(http.StatusOK, gin.H{"sellers": sellers, "count": len(sellers)})
}

func loadSeller(sellerID string) (models.Seller, error) {
	var s models.Seller

	sid, err := gocql.ParseUUID(sellerID)
	if err != nil {
		return s, err
	}

	err = database.GetPreparedGetSellerByID().Bind(sid).Scan(
		&s.Email, &s.Password, &s.Name, &s.ShopName, &s.Phone, &s.BusinessNumber, &s.IBAN,
		&s.IsActive, &s.IsVerified, &s.DeactivationReason, &s.DeactivatedAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return s, err
	}
	s.ID = sid
	return s, nil
}

// POST /api/admin/sellers/:id/approve
func ApproveSeller(c *gin.Context) {
	seller, err := loadSeller(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vendeur introuvable"})
		return
	}

	if seller.IsActive && seller.IsVerified {
		c.JSON(http.StatusOK, gin.H{"message": "Vendeur déjà actif"})
		return
	}

	err = database.GetPreparedUpdateSellerStatus().Bind(true, true, "", nil, time.Now(), seller.ID).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur activation vendeur"})
		return
	}

	cache.InvalidateSellerCache(seller.ID.String())

	go func() {
		html := utils.GenerateSellerApprovalHTML(seller)
		if err := utils.SendEmail(seller.Email, "Votre boutique Sakado est activée", html, nil); err != nil {
			log.Printf("⚠️ Email d'approbation non envoyé à %s: %v", seller.Email, err)
		}
	}()

	log.Printf("✅ Vendeur approuvé: %s (%s)", seller.ShopName, seller.Email)

	c.JSON(http.StatusOK, gin.H{"message": "Vendeur approuvé", "seller_id": seller.ID.String()})
}

// POST /api/admin/sellers/:id/deactivate
func DeactivateSeller(c *gin.Context) {
	var input struct {
		Reason string `json:"reason" binding:"required,min=5"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Raison de désactivation requise"})
		return
	}

	seller, err := loadSeller(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vendeur introuvable"})
		return
	}

	now := time.Now()
	err = database.GetPreparedUpdateSellerStatus().Bind(false, seller.IsVerified, input.Reason, &now, now, seller.ID).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur désactivation vendeur"})
		return
	}

	// Les produits du vendeur disparaissent de la boutique
	productsSession, err := database.GetProductsSession()
	if err == nil {
		var pid gocql.UUID
		iter := productsSession.Query("SELECT product_id FROM products WHERE seller_id = ? ALLOW FILTERING", seller.ID).Iter()
		for iter.Scan(&pid) {
			if err := productsSession.Query("UPDATE products SET is_active = ?, updated_at = ? WHERE product_id = ?",
				false, now, pid).Exec(); err != nil {
				log.Printf("⚠️ Désactivation produit %s échouée: %v", pid, err)
			}
			cache.InvalidateProductCache(pid.String())
		}
		iter.Close()
	}

	cache.InvalidateSellerCache(seller.ID.String())

	go func() {
		html := utils.GenerateSellerDeactivationHTML(seller, input.Reason)
		if err := utils.SendEmail(seller.Email, "Votre compte vendeur Sakado a été désactivé", html, nil); err != nil {
			log.Printf("⚠️ Email de désactivation non envoyé à %s: %v", seller.Email, err)
		}
	}()

	log.Printf("🚨 Vendeur désactivé: %s (%s) — %s", seller.ShopName, seller.Email, input.Reason)

	c.JSON(http.StatusOK, gin.H{
		"message":   "Vendeur désactivé",
		"seller_id": seller.ID.String(),
		"reason":    input.Reason,
	})
}

// POST /api/admin/sellers/:id/reactivate
func ReactivateSeller(c *gin.Context) {
	seller, err := loadSeller(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vendeur introuvable"})
		return
	}

	if !seller.IsVerified {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ce compte n'a jamais été validé, utilisez l'approbation"})
		return
	}

	err = database.GetPreparedUpdateSellerStatus().Bind(true, true, "", nil, time.Now(), seller.ID).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur réactivation vendeur"})
		return
	}

	cache.InvalidateSellerCache(seller.ID.String())
	log.Printf("✅ Vendeur réactivé: %s (%s)", seller.ShopName, seller.Email)

	c.JSON(http.StatusOK, gin.H{"message": "Vendeur réactivé", "seller_id": seller.ID.String()})
}

// DELETE /api/admin/sellers/:id — suppression définitive du compte
func DeleteSeller(c *gin.Context) {
	seller, err := loadSeller(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vendeur introuvable"})
		return
	}

	session, err := database.GetSellersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query("DELETE FROM sellers WHERE seller_id = ?", seller.ID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression vendeur"})
		return
	}
	if err := session.Query("DELETE FROM sellers_by_email WHERE email = ?", seller.Email).Exec(); err != nil {
		log.Printf("⚠️ Index sellers_by_email non nettoyé pour %s: %v", seller.Email, err)
	}

	cache.InvalidateSellerCache(seller.ID.String())
	log.Printf("🗑️ Vendeur supprimé: %s (%s)", seller.ShopName, seller.Email)

	c.JSON(http.StatusOK, gin.H{"message": "Vendeur supprimé"})
}
