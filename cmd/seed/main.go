package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/oksasatya/go-classifieds-api/config"
	"github.com/oksasatya/go-classifieds-api/internal/domain/entity"
	"github.com/oksasatya/go-classifieds-api/pkg/helpers"
)

// Seeds a default administrator account and a demo ad for local development.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping database: %v", err)
	}

	hash, err := helpers.HashPassword("admin12345")
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var adminID int
	err = db.QueryRowContext(ctx, `
		INSERT INTO users (email, first_name, last_name, phone, role, password, enabled)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		ON CONFLICT (email) DO UPDATE SET role = EXCLUDED.role
		RETURNING id`,
		"admin@example.com", "Admin", "Root", "+10000000000", entity.RoleAdmin, hash,
	).Scan(&adminID)
	if err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}
	log.Printf("admin user ready (id=%d, email=admin@example.com)", adminID)

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ads WHERE author = $1`, adminID).Scan(&count); err != nil {
		log.Fatalf("failed to count ads: %v", err)
	}
	if count > 0 {
		log.Printf("demo ads already present (%d), nothing to do", count)
		return
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO ads (title, price, description, image, author)
		VALUES ($1, $2, $3, $4, $5)`,
		"Vintage bicycle", 150, "Well kept city bike, new tires.", "", adminID,
	)
	if err != nil {
		log.Fatalf("failed to seed demo ad: %v", err)
	}
	log.Println("demo ad created")
}
