// Package receipt renders the last persisted receipt as read-only output.
package receipt

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/oolio-storefront/internal/domain/order"
	"github.com/xenking/oolio-storefront/internal/domain/pricing"
)

// ErrNotFound means no receipt has been saved yet.
var ErrNotFound = errors.New("no receipt found")

// TimeLayout is how order and delivery timestamps are shown.
const TimeLayout = "Jan 2, 2006, 3:04:05 PM"

// Line is one formatted receipt row.
type Line struct {
	Name      string `json:"name"`
	Price     string `json:"price"`
	Qty       int    `json:"qty"`
	LineTotal string `json:"lineTotal"`
}

// Totals are the formatted money lines. Discount carries a leading "-".
type Totals struct {
	Subtotal string `json:"subtotal"`
	Discount string `json:"discount"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

// View is a receipt ready for display.
type View struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Placed  string `json:"placed"`
	Ships   string `json:"ships"`
	Lines   []Line `json:"lines"`
	Totals  Totals `json:"totals"`
}

// Presenter reads receipts from an order.Repository. It never writes.
type Presenter struct {
	receipts order.Repository
	loc      *time.Location
}

// NewPresenter creates a Presenter that formats times in the host's local
// time zone.
func NewPresenter(receipts order.Repository) *Presenter {
	return &Presenter{receipts: receipts, loc: time.Local}
}

// Load returns the stored receipt or ErrNotFound.
func (p *Presenter) Load(ctx context.Context) (*order.Receipt, error) {
	rec, ok := p.receipts.Last(ctx)
	if !ok {
		return nil, ErrNotFound
	}
	return rec, nil
}

// View loads the stored receipt and formats it.
func (p *Presenter) View(ctx context.Context) (*View, error) {
	rec, err := p.Load(ctx)
	if err != nil {
		return nil, err
	}
	return p.Render(rec), nil
}

// Render formats rec.
func (p *Presenter) Render(rec *order.Receipt) *View {
	lines := make([]Line, len(rec.Items))
	for i, it := range rec.Items {
		lines[i] = Line{
			Name:      it.Name,
			Price:     Money(it.Price),
			Qty:       it.Qty,
			LineTotal: Money(it.LineTotal()),
		}
	}

	return &View{
		ID:      rec.ID,
		Title:   "Receipt # " + rec.ID,
		Name:    rec.Name,
		Address: rec.Address,
		Placed:  p.formatTime(rec.When),
		Ships:   p.formatTime(rec.Ship),
		Lines:   lines,
		Totals:  FormatTotals(rec.Totals),
	}
}

// FormatTotals renders t as money strings.
func FormatTotals(t pricing.Totals) Totals {
	return Totals{
		Subtotal: Money(t.Subtotal),
		Discount: "-" + Money(t.Discount),
		Tax:      Money(t.Tax),
		Total:    Money(t.Total),
	}
}

func (p *Presenter) formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(p.loc).Format(TimeLayout)
}

// Money formats d as dollars with two decimals, e.g. "$12.50".
func Money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
