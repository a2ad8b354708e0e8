package repo

import (
	"context"
	"database/sql"

	"feast-checkout/internal/domain"
)

// ProductRepo reads the catalog. The catalog is queried fresh per validation
// so there is no staleness window inside this core; caching is an external
// concern.
type ProductRepo interface {
	// FindByKeys returns the union of products matched by id (UUID set) and
	// by sku (everything else). Either slice may be empty.
	FindByKeys(ctx context.Context, ids []string, skus []string) ([]domain.Product, error)
}

type productRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepo {
	return &productRepo{db: db}
}

func (r *productRepo) FindByKeys(ctx context.Context, ids []string, skus []string) ([]domain.Product, error) {
	query := `
		SELECT id, COALESCE(sku, ''), name, price, gst_percentage
		FROM products
		WHERE id = ANY($1::uuid[]) OR sku = ANY($2::text[])
	`
	rows, err := r.db.QueryContext(ctx, query, ids, skus)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Price, &p.GSTPercentage); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
