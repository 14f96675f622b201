package order

import (
	"context"
	"time"

	"github.com/xenking/oolio-storefront/internal/domain/cart"
	"github.com/xenking/oolio-storefront/internal/domain/pricing"
	"github.com/xenking/oolio-storefront/internal/storage"
)

// Receipt is the immutable record of a completed checkout.
type Receipt struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Address string         `json:"address"`
	Items   cart.Cart      `json:"items"`
	Totals  pricing.Totals `json:"totals"`
	When    time.Time      `json:"when"`
	Ship    time.Time      `json:"ship"`
}

// Repository stores the most recent receipt. There is a single slot: Save
// replaces whatever was there.
type Repository interface {
	Save(ctx context.Context, r *Receipt) error
	Last(ctx context.Context) (*Receipt, bool)
}

var _ Repository = (*StoreRepository)(nil)

// StoreRepository keeps the receipt under storage.KeyReceipt.
type StoreRepository struct {
	store storage.Store
}

// NewStoreRepository returns a StoreRepository that uses store.
func NewStoreRepository(store storage.Store) *StoreRepository {
	return &StoreRepository{store: store}
}

// Save writes r in a single store write.
func (r *StoreRepository) Save(ctx context.Context, rec *Receipt) error {
	return storage.Save(ctx, r.store, storage.KeyReceipt, rec)
}

// Last returns the stored receipt. A missing or unreadable record reports
// false.
func (r *StoreRepository) Last(ctx context.Context) (*Receipt, bool) {
	rec := storage.Load[*Receipt](ctx, r.store, storage.KeyReceipt, nil)
	if rec == nil || rec.ID == "" {
		return nil, false
	}
	return rec, true
}
