package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/markbates/goth/gothic"

	"sakado_back_end/internal/database"
	"sakado_back_end/internal/utils"
)

// BeginAuth démarre le flux OAuth (Google, Facebook)
func BeginAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	q := c.Request.URL.Query()
	q.Set("provider", provider)
	c.Request.URL.RawQuery = q.Encode()

	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// CallbackAuth termine le flux OAuth : le compte client est créé au premier
// passage, puis un JWT boutique est émis.
func CallbackAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	q := c.Request.URL.Query()
	q.Set("provider", provider)
	c.Request.URL.RawQuery = q.Encode()

	user, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := database.GetSellersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// Upsert du client : on garde l'ID existant si le compte est déjà connu
	var customerID string
	err = session.Query("SELECT customer_id FROM customers WHERE email = ?", user.Email).Scan(&customerID)
	if err != nil {
		customerID = gocql.TimeUUID().String()
		err = session.Query(`INSERT INTO customers (email, customer_id, name, password, provider, phone, address, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			user.Email, customerID, user.Name, "", user.Provider, "", "", time.Now()).Exec()
		if err != nil {
			log.Printf("❌ Erreur création client OAuth (%s): %v", user.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création compte"})
			return
		}
		log.Printf("✅ Client créé via %s: %s", user.Provider, user.Email)
	}

	token, err := utils.GenerateCustomerJWT(customerID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       customerID,
			"email":    user.Email,
			"name":     user.Name,
			"provider": user.Provider,
			"role":     "customer",
		},
	})
}
