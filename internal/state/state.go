package state

import (
	"context"
	"time"

	"github.com/calebds/tracker/internal/domain"
)

type IdempotencyRecord struct {
	StatusCode int
	BodyJSON   []byte
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

// Store is the persistence contract the tracking core depends on. Both
// FirstOrCreateProduct and EnsureStock must be atomic with respect to
// concurrent identical requests: repeated or racing calls never produce
// duplicate rows.
type Store interface {
	// Retailers (created out-of-band; this core only reads them)
	ListRetailers(ctx context.Context) ([]domain.Retailer, error)
	GetRetailerByName(ctx context.Context, name string) (domain.Retailer, bool, error)
	SeedRetailers(ctx context.Context, names []string) error

	// Products: create-or-find by exact (name, sku). The returned bool reports
	// whether a row was created. Existing rows are never overwritten.
	FirstOrCreateProduct(ctx context.Context, p domain.Product) (domain.Product, bool, error)

	// Stock: at most one association per (retailer, product). The retailer-local
	// sku is written on creation only; an existing row is never mutated.
	EnsureStock(ctx context.Context, retailerID, productID uint64, localSKU string) (bool, error)
	ListStockForRetailer(ctx context.Context, retailerID uint64) ([]domain.Stock, error)

	CountProducts(ctx context.Context) (int, error)
	CountStock(ctx context.Context) (int, error)

	// Idempotency cache for the HTTP surface
	GetIdempotency(ctx context.Context, endpoint string, idemKeyHash string) (IdempotencyRecord, bool, error)
	PutIdempotency(ctx context.Context, endpoint string, idemKeyHash string, rec IdempotencyRecord) error
}
