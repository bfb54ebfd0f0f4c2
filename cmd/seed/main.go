package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/taskhub-api/config"
	"github.com/oksasatya/taskhub-api/pkg/helpers"
)

// Seeds the bootstrap admin account. Creating further users goes
// through the API, which requires an admin actor.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	username := "admin"
	email := "admin@taskhub.local"
	fullName := "TaskHub Admin"
	password := "Admin1234"

	hasher := helpers.NewBcryptHasher()
	hash, err := hasher.Hash(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id int64
	err = db.QueryRow(`
		INSERT INTO users (username, email, full_name, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4, 'admin', TRUE)
		ON CONFLICT (username) DO UPDATE SET email = EXCLUDED.email, updated_at = now()
		RETURNING id
	`, username, email, fullName, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%d username=%s email=%s password=%s\n", id, username, email, password)
}
