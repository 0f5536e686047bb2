package database

import (
	"log"
	"sync"

	"github.com/gocql/gocql"
)

var (
	// Prepared statements pour les requêtes fréquentes du portail vendeur
	stmtGetSellerByEmail    *gocql.Query
	stmtGetSellerByID       *gocql.Query
	stmtInsertSeller        *gocql.Query
	stmtInsertSellerByEmail *gocql.Query
	stmtUpdateSellerStatus  *gocql.Query

	preparedOnce sync.Once
)

// InitPreparedStatements initialise les prepared statements
func InitPreparedStatements() {
	preparedOnce.Do(func() {
		session, err := GetSellersSession()
		if err != nil {
			log.Printf("⚠️ Impossible d'initialiser les prepared statements: %v", err)
			return
		}

		// Requête pour récupérer seller_id par email
		stmtGetSellerByEmail = session.Query("SELECT seller_id FROM sellers_by_email WHERE email = ?")

		// Requête pour récupérer un vendeur par ID
		stmtGetSellerByID = session.Query(`SELECT email, password, name, shop_name, phone, business_number, iban, is_active, is_verified, deactivation_reason, deactivated_at, created_at, updated_at
			FROM sellers WHERE seller_id = ?`)

		// Requête pour insérer un vendeur
		stmtInsertSeller = session.Query(`INSERT INTO sellers (seller_id, email, password, name, shop_name, phone, business_number, iban, is_active, is_verified, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

		// Requête pour insérer dans sellers_by_email
		stmtInsertSellerByEmail = session.Query("INSERT INTO sellers_by_email (email, seller_id) VALUES (?, ?)")

		// Requête pour l'approbation / désactivation admin
		stmtUpdateSellerStatus = session.Query("UPDATE sellers SET is_active = ?, is_verified = ?, deactivation_reason = ?, deactivated_at = ?, updated_at = ? WHERE seller_id = ?")

		log.Println("✅ Prepared statements initialisés")
	})
}

func GetPreparedGetSellerByEmail() *gocql.Query {
	return stmtGetSellerByEmail
}

func GetPreparedGetSellerByID() *gocql.Query {
	return stmtGetSellerByID
}

func GetPreparedInsertSeller() *gocql.Query {
	return stmtInsertSeller
}

func GetPreparedInsertSellerByEmail() *gocql.Query {
	return stmtInsertSellerByEmail
}

func GetPreparedUpdateSellerStatus() *gocql.Query {
	return stmtUpdateSellerStatus
}
