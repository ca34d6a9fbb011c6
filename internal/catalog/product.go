// Package catalog defines the product catalog: an immutable set of
// perfumes with localized copy, decimal prices and a fixed category set.
package catalog

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/atlas-parfum/internal/i18n"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Category is a fragrance family. The set is fixed.
type Category string

const (
	Oriental Category = "oriental"
	Floral   Category = "floral"
	Woody    Category = "woody"
	Citrus   Category = "citrus"
)

// Valid reports whether c is one of the known fragrance families.
func (c Category) Valid() bool {
	switch c {
	case Oriental, Floral, Woody, Citrus:
		return true
	}
	return false
}

// Product is a catalog item. Products are defined at catalog-load time and
// never mutated; carts snapshot the full product so later catalog edits do
// not reprice items already added.
type Product struct {
	ID          string          `json:"id"`
	Name        i18n.Text       `json:"name"`
	Description i18n.Text       `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    Category        `json:"category"`
	Image       string          `json:"image"`
}

// Repository defines read operations for the product catalog.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	ListByCategory(ctx context.Context, cat Category) ([]Product, error)
}
