package main

import (
	"log"
	"os"
	"time"

	"hotelops/internal/database"
)

// retention is how long expired or revoked issuances are kept for audit
// before the purge removes them.
const retention = 30 * 24 * time.Hour

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	cutoff := time.Now().Add(-retention)

	res := db.Exec(`DELETE FROM token_issuances WHERE expires_at < ? OR (revoked_at IS NOT NULL AND revoked_at < ?)`, cutoff, cutoff)
	if res.Error != nil {
		log.Fatalf("cleanup token_issuances failed: %v", res.Error)
	}

	log.Printf("token cleanup completed: token_issuances=%d", res.RowsAffected)
}
