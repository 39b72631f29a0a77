package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/devconnect-api/config"
	"github.com/oksasatya/devconnect-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@devconnect.dev"
	password := "password123"
	name := "Demo Developer"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, name, avatar_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET name=EXCLUDED.name
		RETURNING id
	`, email, hash, name, helpers.GravatarURL(email)).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, email, password)

	if _, err := db.Exec(`
		INSERT INTO profiles (user_id, status, skills, location, bio)
		VALUES ($1, 'Developer', '{Go,PostgreSQL,React}', 'Jakarta, ID', 'Here to connect.')
		ON CONFLICT (user_id) DO NOTHING
	`, id); err != nil {
		log.Fatalf("failed to seed profile: %v", err)
	}

	if _, err := db.Exec(`
		INSERT INTO posts (user_id, text, name, avatar_url)
		SELECT $1, 'Hello, DevConnect!', $2, $3
		WHERE NOT EXISTS (SELECT 1 FROM posts WHERE user_id = $1)
	`, id, name, helpers.GravatarURL(email)); err != nil {
		log.Fatalf("failed to seed post: %v", err)
	}

	fmt.Println("seeded demo profile and post")
}
