package seller

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"sakado_back_end/internal/database"
	"sakado_back_end/internal/middleware"
	"sakado_back_end/internal/utils"
)

// POST /api/seller/auth/register
// Le compte est créé inactif et non vérifié : un admin doit l'approuver
// avant que le vendeur puisse se connecter.
func Register(c *gin.Context) {
	var input struct {
		Email          string `json:"email" binding:"required,email"`
		Password       string `json:"password" binding:"required,min=8"`
		Name           string `json:"name" binding:"required"`
		ShopName       string `json:"shop_name" binding:"required"`
		Phone          string `json:"phone"`
		BusinessNumber string `json:"business_number"`
		IBAN           string `json:"iban"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	// Vérifier si l'email existe déjà
	var existingID gocql.UUID
	if err := database.GetPreparedGetSellerByEmail().Bind(input.Email).Scan(&existingID); err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Un compte vendeur avec cet email existe déjà",
			"email": input.Email,
		})
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur hash mot de passe"})
		return
	}

	sellerID := gocql.TimeUUID()
	now := time.Now()

	err = database.GetPreparedInsertSeller().Bind(
		sellerID, input.Email, hashedPassword, input.Name, input.ShopName,
		input.Phone, input.BusinessNumber, input.IBAN, false, false, now, now,
	).Exec()
	if err != nil {
		log.Printf("❌ Erreur création vendeur: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création compte vendeur"})
		return
	}

	if err := database.GetPreparedInsertSellerByEmail().Bind(input.Email, sellerID).Exec(); err != nil {
		log.Printf("⚠️ Index sellers_by_email non écrit pour %s: %v", input.Email, err)
	}

	log.Printf("✅ Vendeur inscrit (en attente de validation): %s (%s)", input.ShopName, input.Email)

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Compte créé. Il sera activé après validation par notre équipe.",
		"seller_id": sellerID.String(),
		"email":     input.Email,
	})
}

// POST /api/seller/auth/login
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	var sellerID gocql.UUID
	if err := database.GetPreparedGetSellerByEmail().Bind(input.Email).Scan(&sellerID); err != nil {
		middleware.RecordFailedLogin(input.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	var (
		email, password, name, shopName, phone, businessNumber, iban string
		isActive, isVerified                                         bool
		deactivationReason                                           string
		deactivatedAt                                                *time.Time
		createdAt, updatedAt                                         time.Time
	)
	err := database.GetPreparedGetSellerByID().Bind(sellerID).Scan(
		&email, &password, &name, &shopName, &phone, &businessNumber, &iban,
		&isActive, &isVerified, &deactivationReason, &deactivatedAt, &createdAt, &updatedAt)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	ok, err := utils.VerifyPassword(input.Password, password)
	if err != nil || !ok {
		middleware.RecordFailedLogin(input.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	// Un compte désactivé ou jamais validé ne passe pas, même avec le bon mot de passe
	if !isVerified {
		c.JSON(http.StatusForbidden, gin.H{"error": "Compte en attente de validation par notre équipe"})
		return
	}
	if !isActive {
		c.JSON(http.StatusForbidden, gin.H{
			"error":  "Compte désactivé",
			"reason": deactivationReason,
		})
		return
	}

	middleware.ResetLoginAttempts(input.Email)

	token, err := utils.GenerateSellerJWT(sellerID.String(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"seller": gin.H{
			"id":        sellerID.String(),
			"email":     email,
			"name":      name,
			"shop_name": shopName,
		},
	})
}
