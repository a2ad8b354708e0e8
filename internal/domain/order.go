package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderReceived   OrderStatus = "received"
	OrderProcessing OrderStatus = "processing"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// ValidStatus reports whether s is one of the accepted order statuses.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case OrderReceived, OrderProcessing, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// OrderItem is a single cart line as the storefront submitted it. The id
// references a product either by UUID or by SKU.
type OrderItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
	Category string  `json:"category,omitempty"`
	Image    string  `json:"image,omitempty"`
}

// OrderSubmission is the untrusted client payload. Prices and totals in here
// are verified against the catalog before anything is persisted.
type OrderSubmission struct {
	CustomerName        string      `json:"customer_name"`
	CustomerEmail       string      `json:"customer_email,omitempty"`
	Mobile              string      `json:"mobile"`
	Address             string      `json:"address"`
	SpecialInstructions string      `json:"special_instructions,omitempty"`
	Items               []OrderItem `json:"items"`
	Subtotal            float64     `json:"subtotal"`
	GSTAmount           float64     `json:"gst_amount"`
	TotalAmount         float64     `json:"total_amount"`
	TotalItems          int         `json:"total_items"`
	Status              OrderStatus `json:"status,omitempty"`
}

// Order is a persisted, validated order. Created once; status transitions
// belong to the admin side and never happen here.
type Order struct {
	ID                  uuid.UUID   `json:"id"`
	CustomerName        string      `json:"customer_name"`
	CustomerEmail       string      `json:"customer_email,omitempty"`
	Mobile              string      `json:"mobile"`
	Address             string      `json:"address"`
	SpecialInstructions string      `json:"special_instructions,omitempty"`
	Items               []OrderItem `json:"items"`
	Subtotal            float64     `json:"subtotal"`
	GSTAmount           float64     `json:"gst_amount"`
	TotalAmount         float64     `json:"total_amount"`
	TotalItems          int         `json:"total_items"`
	Status              OrderStatus `json:"status"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}
