package cart

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrInvalidProduct is returned when an added product has no id or a
// negative price.
var ErrInvalidProduct = errors.New("invalid product")

// Product is what a caller puts into the cart.
type Product struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Item is a single cart line. Qty is always at least 1.
type Item struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Qty   int             `json:"qty"`
}

// LineTotal returns price × qty.
func (i Item) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Qty)))
}

// Cart is the ordered list of lines; insertion order is display order.
type Cart []Item

// Find returns the index of the line with the given id, or -1.
func (c Cart) Find(id string) int {
	for i := range c {
		if c[i].ID == id {
			return i
		}
	}
	return -1
}

// Count returns the total number of units in the cart.
func (c Cart) Count() int {
	n := 0
	for _, it := range c {
		n += it.Qty
	}
	return n
}

// Clone returns a copy that does not share the backing array.
func (c Cart) Clone() Cart {
	if c == nil {
		return Cart{}
	}
	return append(Cart(nil), c...)
}

// ClampQuantity raises anything below 1 to 1.
func ClampQuantity(qty int) int {
	if qty < 1 {
		return 1
	}
	return qty
}

// addQuantity returns a+b for positive quantities, saturating at
// math.MaxInt instead of wrapping.
func addQuantity(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// ParseQuantity reads a quantity typed by a user. It takes the leading
// integer of raw ("2.7" is 2, "3 boxes" is 3); input without one defaults to
// 1. The result is clamped to at least 1.
func ParseQuantity(raw string) int {
	s := strings.TrimSpace(raw)

	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 1
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// Out of int range.
		if s[0] == '-' {
			return 1
		}
		return math.MaxInt
	}
	return ClampQuantity(n)
}
