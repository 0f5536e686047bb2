package seller

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"sakado_back_end/internal/database"
	"sakado_back_end/internal/stock"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// PaymentsWebSocket pousse le registre des versements en temps réel.
// Chaque versement créé ou modifié par un admin est publié sur le canal Redis
// du vendeur ; on renvoie alors la liste re-triée et le total recalculé, pas
// un patch incrémental.
func PaymentsWebSocket(c *gin.Context) {
	sellerEmail := c.GetString("email")
	if sellerEmail == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()

	pubsub := database.Redis.Subscribe(ctx, "payments:"+sellerEmail)
	defer pubsub.Close()

	ch := pubsub.Channel()

	conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "Flux paiements activé",
	})

	pushSnapshot := func() bool {
		payments, err := loadSellerPayments(sellerEmail)
		if err != nil {
			log.Printf("⚠️ Lecture paiements pour flux websocket: %v", err)
			return true
		}
		response := map[string]interface{}{
			"type":           "payments_updated",
			"payments":       payments,
			"count":          len(payments),
			"total_received": stock.TotalReceived(payments),
		}
		if err := conn.WriteJSON(response); err != nil {
			log.Printf("❌ Erreur envoi WebSocket: %v", err)
			return false
		}
		return true
	}

	// État initial à la connexion
	if !pushSnapshot() {
		return
	}

	for {
		select {
		case <-ch:
			if !pushSnapshot() {
				return
			}
		case <-time.After(30 * time.Second):
			// Ping pour garder la connexion active
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
