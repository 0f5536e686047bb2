package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireSeller vérifie que l'utilisateur est un vendeur authentifié
func RequireSeller(c *gin.Context) {
	role, exists := c.Get("role")
	if !exists || role != "seller" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux vendeurs"})
		c.Abort()
		return
	}
	if c.GetString("seller_id") == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Identité vendeur manquante"})
		c.Abort()
		return
	}
	c.Next()
}
