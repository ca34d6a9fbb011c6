//go:build integration

package repository

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/xenking/atlas-parfum/internal/catalog"
)

var testRepo *ProductRepository

// TestMain starts a throwaway PostgreSQL container, applies the schema and
// seeds the embedded catalog so every test runs against real data.
func TestMain(m *testing.M) {
	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("parfum"),
		tcpostgres.WithUsername("parfum"),
		tcpostgres.WithPassword("parfum"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		log.Fatalf("start postgres container: %v", err)
	}

	url, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("connection string: %v", err)
	}

	pool, err := NewPool(ctx, url)
	if err != nil {
		log.Fatalf("create pool: %v", err)
	}

	if err := RunMigrations(ctx, pool); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	testRepo = NewProductRepository(pool)
	seed, err := catalog.Static().List(ctx)
	if err != nil {
		log.Fatalf("load embedded catalog: %v", err)
	}
	for _, p := range seed {
		if err := testRepo.Upsert(ctx, p); err != nil {
			log.Fatalf("seed product %s: %v", p.ID, err)
		}
	}

	code := m.Run()

	pool.Close()
	if err := ctr.Terminate(ctx); err != nil {
		log.Printf("terminate container: %v", err)
	}
	os.Exit(code)
}

func TestProductRepository_List(t *testing.T) {
	products, err := testRepo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 8)

	assert.Equal(t, "1", products[0].ID)
	assert.Equal(t, "Royal Oud", products[0].Name.EN)
	assert.Equal(t, "عود ملكي", products[0].Name.AR)
	assert.Equal(t, catalog.Oriental, products[0].Category)

	// NUMERIC round-trips through shopspring/decimal without drift.
	assert.True(t, products[0].Price.Equal(decimal.NewFromInt(899)),
		"got %s", products[0].Price)
}

func TestProductRepository_GetByID(t *testing.T) {
	p, err := testRepo.GetByID(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, "3", p.ID)
	assert.NotEmpty(t, p.Name.FR)
	assert.NotEmpty(t, p.Description.AR)
}

func TestProductRepository_GetByID_NotFound(t *testing.T) {
	_, err := testRepo.GetByID(context.Background(), "999")
	require.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestProductRepository_ListByCategory(t *testing.T) {
	products, err := testRepo.ListByCategory(context.Background(), catalog.Floral)
	require.NoError(t, err)
	require.NotEmpty(t, products)
	for _, p := range products {
		assert.Equal(t, catalog.Floral, p.Category)
	}

	none, err := testRepo.ListByCategory(context.Background(), catalog.Category("aquatic"))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProductRepository_UpsertUpdatesExistingRow(t *testing.T) {
	ctx := context.Background()

	p, err := testRepo.GetByID(ctx, "2")
	require.NoError(t, err)

	updated := *p
	updated.Price = decimal.NewFromFloat(1049.50)
	updated.Name.EN = "Jasmine Nights Intense"
	require.NoError(t, testRepo.Upsert(ctx, updated))

	got, err := testRepo.GetByID(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "Jasmine Nights Intense", got.Name.EN)
	assert.True(t, got.Price.Equal(decimal.NewFromFloat(1049.50)), "got %s", got.Price)

	// Restore the seeded row for the other tests.
	require.NoError(t, testRepo.Upsert(ctx, *p))
}
