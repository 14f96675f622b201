package postgres

import (
	"context"
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/xenking/oolio-storefront/internal/domain/order"
)

const (
	insertReceiptSQL = `INSERT INTO receipts
		(id, name, address, items, subtotal, discount, tax, total, placed_at, ship_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	lastReceiptSQL = `SELECT id, name, address, items, subtotal, discount, tax, total, placed_at, ship_at
		FROM receipts ORDER BY seq DESC LIMIT 1`
)

var _ order.Repository = (*ReceiptRepository)(nil)

// ReceiptRepository keeps every receipt in the receipts table with its totals
// as NUMERIC columns. Last returns the newest one.
type ReceiptRepository struct {
	pool *pgxpool.Pool
}

// NewReceiptRepository returns a ReceiptRepository that uses the given pool.
func NewReceiptRepository(pool *pgxpool.Pool) *ReceiptRepository {
	return &ReceiptRepository{pool: pool}
}

// Receipts returns a ReceiptRepository sharing the store's pool.
func (s *Store) Receipts() *ReceiptRepository {
	return NewReceiptRepository(s.pool)
}

func (r *ReceiptRepository) Save(ctx context.Context, rec *order.Receipt) error {
	items, err := json.Marshal(rec.Items)
	if err != nil {
		return errors.Wrap(err, "marshal receipt items")
	}
	t := rec.Totals
	if _, err := r.pool.Exec(ctx, insertReceiptSQL,
		rec.ID, rec.Name, rec.Address, items,
		t.Subtotal, t.Discount, t.Tax, t.Total,
		rec.When, rec.Ship,
	); err != nil {
		return errors.Wrapf(err, "insert receipt %s", rec.ID)
	}
	return nil
}

// Last returns the newest receipt. A missing or unreadable row reports false.
func (r *ReceiptRepository) Last(ctx context.Context) (*order.Receipt, bool) {
	var (
		rec   order.Receipt
		items []byte
	)
	t := &rec.Totals
	err := r.pool.QueryRow(ctx, lastReceiptSQL).Scan(
		&rec.ID, &rec.Name, &rec.Address, &items,
		&t.Subtotal, &t.Discount, &t.Tax, &t.Total,
		&rec.When, &rec.Ship,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false
	}
	if err == nil {
		err = json.Unmarshal(items, &rec.Items)
	}
	if err != nil {
		zctx.From(ctx).Warn("Read last receipt", zap.Error(err))
		return nil, false
	}
	return &rec, true
}
