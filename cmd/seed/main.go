package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/snackcounter/api/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// demoStock are the stock codes created with -demo.
var demoStock = []struct {
	code, name, unit, price string
}{
	{"BREAD", "Toast bread", "loaf", "25.00"},
	{"CHEESE", "Kasar cheese", "kg", "320.00"},
	{"SUCUK", "Sucuk", "kg", "540.00"},
	{"TEA", "Black tea", "kg", "180.00"},
	{"YOGURT", "Yogurt", "kg", "60.00"},
}

func main() {
	_ = godotenv.Load()

	// CLI flags
	email := flag.String("email", "", "Owner email address")
	password := flag.String("password", "", "Owner password")
	name := flag.String("name", "", "Owner full name")
	demo := flag.Bool("demo", false, "Also create demo stock items")
	flag.Parse()

	// Fall back to environment variables
	if *email == "" {
		*email = os.Getenv("SEED_EMAIL")
	}
	if *password == "" {
		*password = os.Getenv("SEED_PASSWORD")
	}
	if *name == "" {
		*name = os.Getenv("SEED_NAME")
	}

	// Fall back to defaults
	if *email == "" {
		*email = "owner@snackcounter.local"
	}
	if *password == "" {
		*password = "password123"
		log.Println("WARNING: Using default password 'password123'. Change immediately in production!")
	}
	if *name == "" {
		*name = "Shop Owner"
	}

	cfg := config.Load()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Unable to ping database: %v", err)
	}
	log.Println("Connected to database")

	// Seed in a transaction: owner and demo stock land together or not at all
	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	userID, err := seedOwner(ctx, tx, strings.ToLower(strings.TrimSpace(*email)), *password, *name)
	if err != nil {
		log.Fatalf("Failed to seed owner: %v", err)
	}

	if *demo {
		if err := seedStock(ctx, tx); err != nil {
			log.Fatalf("Failed to seed stock items: %v", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit: %v", err)
	}

	log.Println("Seed completed successfully")
	log.Printf("Owner ID: %s", userID)
}

// seedOwner creates the owner user if it doesn't exist.
func seedOwner(ctx context.Context, tx pgx.Tx, email, password, fullName string) (uuid.UUID, error) {
	var existingID uuid.UUID
	err := tx.QueryRow(ctx, `SELECT id FROM users WHERE email = $1 LIMIT 1`, email).Scan(&existingID)
	if err == nil {
		log.Printf("User '%s' already exists (ID: %s), skipping", email, existingID)
		return existingID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, fmt.Errorf("check user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, fmt.Errorf("hash password: %w", err)
	}

	insertSQL := `
		INSERT INTO users (email, hashed_password, full_name, role, is_active)
		VALUES ($1, $2, $3, 'OWNER', true)
		RETURNING id
	`
	var newID uuid.UUID
	if err := tx.QueryRow(ctx, insertSQL, email, string(hashed), fullName).Scan(&newID); err != nil {
		return uuid.Nil, fmt.Errorf("insert user: %w", err)
	}

	log.Printf("Created owner user '%s' (ID: %s)", email, newID)
	return newID, nil
}

// seedStock creates the demo stock codes, leaving existing codes untouched.
func seedStock(ctx context.Context, tx pgx.Tx) error {
	insertSQL := `
		INSERT INTO stock_items (code, name, unit, average_price)
		VALUES ($1, $2, $3, $4::numeric)
		ON CONFLICT (code) DO NOTHING
	`
	created := 0
	for _, s := range demoStock {
		tag, err := tx.Exec(ctx, insertSQL, s.code, s.name, s.unit, s.price)
		if err != nil {
			return fmt.Errorf("insert stock item %s: %w", s.code, err)
		}
		created += int(tag.RowsAffected())
	}
	log.Printf("Created %d of %d demo stock items", created, len(demoStock))
	return nil
}
