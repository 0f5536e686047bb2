package admin

import (
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"sakado_back_end/internal/middleware"
	"sakado_back_end/internal/utils"
)

// POST /api/admin/auth/login
// Le back office a un seul compte, configuré par variables d'environnement.
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if adminEmail == "" || adminHash == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Back office non configuré"})
		return
	}

	emailOK := subtle.ConstantTimeCompare([]byte(input.Email), []byte(adminEmail)) == 1
	passOK, err := utils.VerifyPassword(input.Password, adminHash)
	if err != nil || !emailOK || !passOK {
		middleware.RecordFailedLogin(input.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	middleware.ResetLoginAttempts(input.Email)

	token, err := utils.GenerateAdminJWT("admin", adminEmail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"admin": gin.H{"email": adminEmail},
	})
}
