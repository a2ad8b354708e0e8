package repo

import (
	"context"
	"database/sql"
	"encoding/json"

	"feast-checkout/internal/domain"

	"github.com/google/uuid"
)

// OrderRepo is append-only from this core's perspective: validated orders go
// in, status changes belong to the admin side.
type OrderRepo interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
}

type orderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepo {
	return &orderRepo{db: db}
}

// Create inserts the order and fills in the generated id and timestamps.
func (r *orderRepo) Create(ctx context.Context, order *domain.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO orders (
			customer_name, customer_email, mobile, address, special_instructions,
			items, subtotal, gst_amount, total_amount, total_items, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		order.CustomerName,
		order.CustomerEmail,
		order.Mobile,
		order.Address,
		order.SpecialInstructions,
		items,
		order.Subtotal,
		order.GSTAmount,
		order.TotalAmount,
		order.TotalItems,
		order.Status,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `
		SELECT id, customer_name, customer_email, mobile, address, special_instructions,
		       items, subtotal, gst_amount, total_amount, total_items, status,
		       created_at, updated_at
		FROM orders WHERE id = $1
	`
	var (
		order domain.Order
		items []byte
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.CustomerName,
		&order.CustomerEmail,
		&order.Mobile,
		&order.Address,
		&order.SpecialInstructions,
		&items,
		&order.Subtotal,
		&order.GSTAmount,
		&order.TotalAmount,
		&order.TotalItems,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil // not found
	}
	if err != nil {
		return nil, err // system error
	}
	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, err
	}
	return &order, nil
}
