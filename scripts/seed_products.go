package main

import (
	"context"
	"log"
	"time"

	"poppes-store/internal/config"
	"poppes-store/internal/database"
	"poppes-store/internal/model"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// seedProducts fills an empty catalogue with the starter products.
// Existing rows are left untouched, so the script is safe to re-run.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	logger := zerolog.Nop()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	now := time.Now()
	products := []model.Product{
		{
			ID:          "ghee-500",
			Name:        "Pure Desi Ghee",
			Description: "Slow-churned clarified butter from grass-fed cows.",
			Price:       449,
			Quantity:    15,
			Unit:        "500 grams",
			InStock:     true,
			Category:    "dairy",
			CreatedAt:   now,
		},
		{
			ID:          "honey-250",
			Name:        "Wild Forest Honey",
			Description: "Raw unfiltered honey collected from forest hives.",
			Price:       250,
			Quantity:    20,
			Unit:        "250 grams",
			InStock:     true,
			Category:    "pantry",
			CreatedAt:   now.Add(time.Second),
		},
		{
			ID:          "turmeric-100",
			Name:        "Turmeric Powder",
			Description: "Stone-ground turmeric with high curcumin content.",
			Price:       120,
			Quantity:    0,
			Unit:        "100 grams",
			InStock:     false,
			Category:    "spices",
			CreatedAt:   now.Add(2 * time.Second),
		},
		{
			ID:          "coconut-oil-500",
			Name:        "Cold-Pressed Coconut Oil",
			Description: "Single-origin coconut oil pressed within hours of harvest.",
			Price:       320,
			Quantity:    8,
			Unit:        "500 ml",
			InStock:     true,
			Category:    "pantry",
			CreatedAt:   now.Add(3 * time.Second),
		},
	}

	seeded := 0
	for _, p := range products {
		tag, err := pool.Exec(ctx,
			`INSERT INTO products (id, name, description, price, image, quantity, unit, in_stock, category, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			 ON CONFLICT (id) DO NOTHING`,
			p.ID, p.Name, p.Description, p.Price, p.Image, p.Quantity, p.Unit, p.InStock, p.Category, p.CreatedAt,
		)
		if err != nil {
			log.Fatalf("Failed to seed product %s: %v", p.ID, err)
		}
		seeded += int(tag.RowsAffected())
	}

	log.Printf("Seeded %d of %d products", seeded, len(products))
}
