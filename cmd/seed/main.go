package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/conduitapp/conduit-api/config"
	"github.com/conduitapp/conduit-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@conduit.local"
	username := "demoUser"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (email, username, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET username = EXCLUDED.username
		RETURNING id
	`, email, username, hash).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s username=%s password=%s\n", userID, email, username, password)

	var articleID string
	err = db.QueryRow(`
		INSERT INTO articles (slug, title, description, body, author_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (slug) DO UPDATE SET updated_at = now()
		RETURNING id
	`, "welcome-to-conduit", "Welcome to Conduit", "A place to share your knowledge.",
		"This is the first article. Write your own!", userID).Scan(&articleID)
	if err != nil {
		log.Fatalf("failed to seed article: %v", err)
	}
	fmt.Printf("seeded article: id=%s slug=welcome-to-conduit\n", articleID)

	for _, tag := range []string{"welcome", "introduction"} {
		var tagID string
		if err := db.QueryRow(`
			INSERT INTO tags (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, tag).Scan(&tagID); err != nil {
			log.Fatalf("failed to seed tag %s: %v", tag, err)
		}
		if _, err := db.Exec(`
			INSERT INTO articles_to_tags (article_id, tag_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, articleID, tagID); err != nil {
			log.Fatalf("failed to link tag %s: %v", tag, err)
		}
	}
	fmt.Println("seeded tags: welcome, introduction")
}
