package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/openpaths/reentry-api/config"
	"github.com/openpaths/reentry-api/pkg/helpers"
)

// Seeds a local database with an admin account and a starter set of
// support services.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "admin@openpaths.local"
	password := "changeme123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO profiles (email, password_hash, full_name, role)
		VALUES ($1, $2, $3, 'admin')
		ON CONFLICT (email) DO UPDATE SET full_name = EXCLUDED.full_name
		RETURNING id
	`, email, hash, "Site Admin").Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s password=%s\n", id, email, password)

	services := []struct {
		name, description, category string
	}{
		{"Fresh Start Housing", "Transitional housing placement and landlord mediation", "housing"},
		{"Second Chance GED", "Evening GED preparation classes", "education"},
		{"Community Health Access", "Low-cost clinic referrals and enrollment help", "health"},
		{"Record Relief Clinic", "Expungement and record sealing assistance", "legal"},
		{"Resume Help", "One-on-one resume and interview coaching", "other"},
	}
	for _, s := range services {
		if _, err := db.Exec(`
			INSERT INTO services (name, description, category)
			VALUES ($1, $2, $3)
			ON CONFLICT DO NOTHING
		`, s.name, s.description, s.category); err != nil {
			log.Fatalf("failed to seed service %q: %v", s.name, err)
		}
	}
	fmt.Printf("seeded %d services\n", len(services))
}
