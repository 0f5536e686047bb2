package seller

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"sakado_back_end/internal/utils"
)

// GET /api/seller/orders/:id/invoice — facture PDF avec QR SEPA
func DownloadInvoice(c *gin.Context) {
	sellerID := c.GetString("seller_id")
	sellerEmail := c.GetString("email")

	order, err := loadOrder(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	concerned := false
	for _, item := range order.Items {
		if item.SellerID == sellerID || item.SellerEmail == sellerEmail {
			concerned = true
			break
		}
	}
	if !concerned {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cette commande ne vous concerne pas"})
		return
	}

	pdf, err := utils.GenerateInvoicePDF(order)
	if err != nil {
		log.Printf("❌ Erreur génération facture %s: %v", order.OrderNumber, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération facture"})
		return
	}

	filename := fmt.Sprintf("facture_%s.pdf", order.OrderNumber)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
