package seller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sakado_back_end/internal/database"
	"sakado_back_end/internal/models"
	"sakado_back_end/internal/stock"
)

func loadSellerPayments(sellerEmail string) ([]models.Payment, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	payments := []models.Payment{}
	var p models.Payment
	iter := session.Query(`SELECT payment_id, seller_id, seller_email, seller_name, amount, payment_method,
		transaction_id, notes, status, paid_by, paid_at, created_at, updated_at
		FROM payments WHERE seller_email = ? ALLOW FILTERING`, sellerEmail).Iter()
	for iter.Scan(&p.ID, &p.SellerID, &p.SellerEmail, &p.SellerName, &p.Amount, &p.PaymentMethod,
		&p.TransactionID, &p.Notes, &p.Status, &p.PaidBy, &p.PaidAt, &p.CreatedAt, &p.UpdatedAt) {
		payments = append(payments, p)
		p = models.Payment{}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	stock.SortPaymentsByPaidAt(payments)
	return payments, nil
}

// GET /api/seller/payments — registre des versements, du plus récent au plus
// ancien. Le total ne compte que les versements aboutis.
func GetPaymentHistory(c *gin.Context) {
	sellerEmail := c.GetString("email")

	payments, err := loadSellerPayments(sellerEmail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération paiements"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payments":       payments,
		"count":          len(payments),
		"total_received": stock.TotalReceived(payments),
	})
}
