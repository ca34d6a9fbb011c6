package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/xenking/atlas-parfum/internal/catalog"
)

const (
	productColumns = `id, name_ar, name_fr, name_en,
		description_ar, description_fr, description_en, price, category, image`

	listProductsSQL = `SELECT ` + productColumns + ` FROM products ORDER BY id`

	getProductByIDSQL = `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	listProductsByCategorySQL = `SELECT ` + productColumns + ` FROM products WHERE category = $1 ORDER BY id`

	upsertProductSQL = `INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name_ar = EXCLUDED.name_ar,
			name_fr = EXCLUDED.name_fr,
			name_en = EXCLUDED.name_en,
			description_ar = EXCLUDED.description_ar,
			description_fr = EXCLUDED.description_fr,
			description_en = EXCLUDED.description_en,
			price = EXCLUDED.price,
			category = EXCLUDED.category,
			image = EXCLUDED.image`
)

var _ catalog.Repository = (*ProductRepository)(nil)

// ProductRepository implements catalog.Repository backed by PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a ProductRepository that uses the given pool.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// List returns all products from the catalog ordered by ID.
func (r *ProductRepository) List(ctx context.Context) ([]catalog.Product, error) {
	rows, err := r.pool.Query(ctx, listProductsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return pgx.CollectRows(rows, scanProduct)
}

// GetByID returns a single product by its identifier.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	rows, err := r.pool.Query(ctx, getProductByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting product %q: %w", id, err)
	}

	p, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("getting product %q: %w", id, err)
	}
	return &p, nil
}

// ListByCategory returns products in the given fragrance family.
func (r *ProductRepository) ListByCategory(ctx context.Context, cat catalog.Category) ([]catalog.Product, error) {
	rows, err := r.pool.Query(ctx, listProductsByCategorySQL, string(cat))
	if err != nil {
		return nil, fmt.Errorf("listing products by category %q: %w", cat, err)
	}
	return pgx.CollectRows(rows, scanProduct)
}

// Upsert inserts or updates a product. Used by cmd/seed-db.
func (r *ProductRepository) Upsert(ctx context.Context, p catalog.Product) error {
	_, err := r.pool.Exec(ctx, upsertProductSQL,
		p.ID,
		p.Name.AR, p.Name.FR, p.Name.EN,
		p.Description.AR, p.Description.FR, p.Description.EN,
		p.Price, string(p.Category), p.Image,
	)
	if err != nil {
		return fmt.Errorf("upserting product %q: %w", p.ID, err)
	}
	return nil
}

func scanProduct(row pgx.CollectableRow) (catalog.Product, error) {
	var (
		p        catalog.Product
		price    decimal.Decimal
		category string
	)
	err := row.Scan(
		&p.ID,
		&p.Name.AR, &p.Name.FR, &p.Name.EN,
		&p.Description.AR, &p.Description.FR, &p.Description.EN,
		&price, &category, &p.Image,
	)
	p.Price = price
	p.Category = catalog.Category(category)
	return p, err
}
