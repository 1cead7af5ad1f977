package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle stage of an order. Statuses progress
// forward only: pending -> packed -> shipped -> delivered.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPacked    OrderStatus = "packed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
)

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPacked, StatusShipped, StatusDelivered:
		return true
	}
	return false
}

// GuestUserID is the owning-user sentinel for orders placed without an
// authenticated identity.
const GuestUserID = "guest"

// CustomerInfo holds the contact and delivery details captured at
// checkout. All fields are required.
type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Validate checks that every contact field is present.
func (c CustomerInfo) Validate() error {
	switch {
	case c.Name == "":
		return missingField("name")
	case c.Email == "":
		return missingField("email")
	case c.Phone == "":
		return missingField("phone")
	case c.Address == "":
		return missingField("address")
	}
	return nil
}

// Order represents a customer order. Items are an immutable copy of the
// cart at submission time; orders are never deleted and only the status
// field changes afterwards.
type Order struct {
	ID           uuid.UUID    `json:"id" db:"id"`
	UserID       string       `json:"userId" db:"user_id"`
	Items        []CartItem   `json:"items" db:"items"`
	Total        float64      `json:"total" db:"total"`
	Status       OrderStatus  `json:"status" db:"status"`
	CustomerInfo CustomerInfo `json:"customerInfo"`
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time    `json:"updatedAt" db:"updated_at"`
}

// CheckoutRequest is the request payload for placing an order.
type CheckoutRequest struct {
	CustomerInfo CustomerInfo `json:"customerInfo"`
}

// StatusUpdateRequest is the admin request payload for moving an order to
// a new lifecycle stage.
type StatusUpdateRequest struct {
	Status OrderStatus `json:"status"`
}
