package model

import "time"

// Product represents an item in the store catalogue.
type Product struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	Image       string    `json:"image" db:"image"`
	Quantity    int       `json:"quantity" db:"quantity"`
	Unit        string    `json:"unit" db:"unit"`
	InStock     bool      `json:"inStock" db:"in_stock"`
	Category    string    `json:"category,omitempty" db:"category"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// ProductRequest represents the request payload for creating or updating
// a product through the admin API.
type ProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Quantity    int     `json:"quantity"`
	Unit        string  `json:"unit"`
	InStock     bool    `json:"inStock"`
	Category    string  `json:"category,omitempty"`
}
