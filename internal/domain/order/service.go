// Package order turns a validated checkout form and the current cart into a
// persisted receipt.
package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xenking/oolio-storefront/internal/domain/auth"
	"github.com/xenking/oolio-storefront/internal/domain/cart"
	"github.com/xenking/oolio-storefront/internal/domain/checkout"
	"github.com/xenking/oolio-storefront/internal/domain/pricing"
	"github.com/xenking/oolio-storefront/internal/domain/shipping"
)

// ErrCartNotCleared is returned when the receipt was committed but the cart
// could not be erased afterwards. The order itself succeeded.
var ErrCartNotCleared = errors.New("receipt saved but cart not cleared")

// cartNotClearedError matches ErrCartNotCleared and unwraps to the storage
// error that caused it.
type cartNotClearedError struct {
	err error
}

func (e *cartNotClearedError) Error() string {
	return ErrCartNotCleared.Error() + ": " + e.err.Error()
}

func (e *cartNotClearedError) Is(target error) bool { return target == ErrCartNotCleared }

func (e *cartNotClearedError) Unwrap() error { return e.err }

// Cart is the part of the cart ledger the finalizer needs.
type Cart interface {
	Get(ctx context.Context) cart.Cart
	Clear(ctx context.Context) error
}

// Finalizer runs the checkout transaction.
type Finalizer struct {
	sessions auth.Sessions
	cart     Cart
	receipts Repository
	policy   pricing.Policy

	now   func() time.Time
	newID func() string
}

// NewFinalizer creates a Finalizer with the required domain dependencies.
func NewFinalizer(sessions auth.Sessions, c Cart, receipts Repository) *Finalizer {
	return &Finalizer{
		sessions: sessions,
		cart:     c,
		receipts: receipts,
		policy:   pricing.DefaultPolicy,
		now:      time.Now,
		newID:    newReceiptID,
	}
}

func newReceiptID() string {
	return "R" + uuid.New().String()
}

// Checkout validates the form against the session and cart, prices the cart,
// saves the receipt and clears the cart. It returns the receipt id.
//
// Validation failures (checkout.ErrNotAuthenticated or a
// *checkout.ValidationError) are returned unchanged and nothing is written.
// Saving the receipt is the commit point; if clearing the cart fails after
// that, the receipt id is returned together with ErrCartNotCleared.
func (f *Finalizer) Checkout(ctx context.Context, fields checkout.Fields) (string, error) {
	_, authenticated := f.sessions.Current(ctx)
	items := f.cart.Get(ctx)

	fields = fields.Normalize()
	if err := checkout.Validate(checkout.Input{
		Fields:        fields,
		Authenticated: authenticated,
		CartLines:     len(items),
	}); err != nil {
		return "", err
	}

	now := f.now()
	rec := &Receipt{
		ID:      f.newID(),
		Name:    fields.Shipping.Name,
		Address: fields.Shipping.Address,
		Items:   items.Clone(),
		Totals:  f.policy.Compute(items),
		When:    now,
		Ship:    shipping.EstimateDelivery(now),
	}
	if err := f.receipts.Save(ctx, rec); err != nil {
		return "", errors.Wrap(err, "save receipt")
	}

	lg := zctx.From(ctx)
	if err := f.cart.Clear(ctx); err != nil {
		lg.Error("Cart not cleared after checkout",
			zap.String("receipt_id", rec.ID),
			zap.Error(err),
		)
		return rec.ID, &cartNotClearedError{err: err}
	}

	lg.Info("Order placed",
		zap.String("receipt_id", rec.ID),
		zap.Int("lines", len(rec.Items)),
		zap.String("total", rec.Totals.Total.StringFixed(2)),
		zap.Time("ship", rec.Ship),
	)
	return rec.ID, nil
}
