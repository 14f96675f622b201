// Package cart implements the cart ledger: the persisted list of cart lines
// and the operations that mutate it.
package cart

import (
	"context"
	"strings"

	"github.com/go-faster/errors"

	"github.com/xenking/oolio-storefront/internal/storage"
)

// Ledger owns the cart record in a storage.Store. Every mutation reads the
// current cart, applies the change and writes the whole cart back.
type Ledger struct {
	store storage.Store
}

// NewLedger creates a Ledger backed by store.
func NewLedger(store storage.Store) *Ledger {
	return &Ledger{store: store}
}

// Get returns the current cart. A missing or unreadable record is an empty
// cart.
func (l *Ledger) Get(ctx context.Context) Cart {
	c := storage.Load(ctx, l.store, storage.KeyCart, Cart{})
	return sanitize(c)
}

// Add puts one unit of p into the cart: the quantity of an existing line with
// the same id is incremented, otherwise a new line with qty 1 is appended.
// The updated line is returned.
func (l *Ledger) Add(ctx context.Context, p Product) (Item, error) {
	p.ID = strings.TrimSpace(p.ID)
	if p.ID == "" || p.Price.IsNegative() {
		return Item{}, ErrInvalidProduct
	}

	c := l.Get(ctx)
	idx := c.Find(p.ID)
	if idx >= 0 {
		c[idx].Qty = addQuantity(c[idx].Qty, 1)
	} else {
		c = append(c, Item{ID: p.ID, Name: p.Name, Price: p.Price, Qty: 1})
		idx = len(c) - 1
	}

	if err := l.save(ctx, c); err != nil {
		return Item{}, err
	}
	return c[idx], nil
}

// SetQuantity sets the quantity of the line with the given id, clamped to at
// least 1. An unknown id leaves the cart untouched.
func (l *Ledger) SetQuantity(ctx context.Context, id string, qty int) error {
	c := l.Get(ctx)
	idx := c.Find(id)
	if idx < 0 {
		return nil
	}
	c[idx].Qty = ClampQuantity(qty)
	return l.save(ctx, c)
}

// Remove drops the line with the given id. Removing an unknown id is a no-op.
func (l *Ledger) Remove(ctx context.Context, id string) error {
	c := l.Get(ctx)
	if c.Find(id) < 0 {
		return nil
	}

	keep := c[:0]
	for _, it := range c {
		if it.ID != id {
			keep = append(keep, it)
		}
	}
	return l.save(ctx, keep)
}

// Clear erases the cart record.
func (l *Ledger) Clear(ctx context.Context) error {
	if err := storage.Delete(ctx, l.store, storage.KeyCart); err != nil {
		return errors.Wrap(err, "clear cart")
	}
	return nil
}

func (l *Ledger) save(ctx context.Context, c Cart) error {
	if err := storage.Save(ctx, l.store, storage.KeyCart, c); err != nil {
		return errors.Wrap(err, "save cart")
	}
	return nil
}

// sanitize restores the ledger invariants on a record read from storage,
// which may have been written by something other than this package: lines
// without an id are dropped, duplicate ids are merged into the first line and
// quantities are clamped.
func sanitize(c Cart) Cart {
	out := make(Cart, 0, len(c))
	for _, it := range c {
		if it.ID == "" {
			continue
		}
		it.Qty = ClampQuantity(it.Qty)
		if idx := out.Find(it.ID); idx >= 0 {
			out[idx].Qty = addQuantity(out[idx].Qty, it.Qty)
			continue
		}
		out = append(out, it)
	}
	return out
}
