package utils

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super_secret"
	}
	return []byte(secret)
}

// GenerateCustomerJWT génère un token pour un client de la boutique
func GenerateCustomerJWT(userID, email string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    "customer",
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// GenerateSellerJWT génère un token pour un vendeur du portail
func GenerateSellerJWT(sellerID, email string) (string, error) {
	claims := jwt.MapClaims{
		"user_id":   sellerID,
		"seller_id": sellerID,
		"email":     email,
		"role":      "seller",
		"exp":       time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// GenerateAdminJWT génère un token pour le back office
func GenerateAdminJWT(adminID, email string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": adminID,
		"email":   email,
		"role":    "admin",
		"exp":     time.Now().Add(12 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}
