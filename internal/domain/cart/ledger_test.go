package cart

import (
	"context"
	"math"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/oolio-storefront/internal/storage"
	"github.com/xenking/oolio-storefront/internal/storage/memory"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func newTestLedger(t *testing.T) (*Ledger, *memory.Store) {
	t.Helper()
	s := memory.New()
	return NewLedger(s), s
}

func TestLedger_AddSameIDAccumulates(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)

	p := Product{ID: "mug", Name: "Mug", Price: d("12.50")}
	_, err := l.Add(ctx, p)
	require.NoError(t, err)
	item, err := l.Add(ctx, p)
	require.NoError(t, err)

	assert.Equal(t, 2, item.Qty)

	c := l.Get(ctx)
	require.Len(t, c, 1)
	assert.Equal(t, "mug", c[0].ID)
	assert.Equal(t, 2, c[0].Qty)
}

func TestLedger_AddPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)

	for _, id := range []string{"c", "a", "b", "a"} {
		_, err := l.Add(ctx, Product{ID: id, Name: id, Price: d("1")})
		require.NoError(t, err)
	}

	c := l.Get(ctx)
	require.Len(t, c, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{c[0].ID, c[1].ID, c[2].ID})
	assert.Equal(t, 2, c[1].Qty)
}

func TestLedger_AddRejectsInvalidProduct(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)

	_, err := l.Add(ctx, Product{ID: " ", Name: "blank", Price: d("1")})
	require.ErrorIs(t, err, ErrInvalidProduct)

	_, err = l.Add(ctx, Product{ID: "neg", Name: "neg", Price: d("-0.01")})
	require.ErrorIs(t, err, ErrInvalidProduct)

	assert.Empty(t, l.Get(ctx))
}

func TestLedger_SetQuantity(t *testing.T) {
	tests := []struct {
		name string
		qty  int
		want int
	}{
		{name: "positive", qty: 5, want: 5},
		{name: "zero clamps to one", qty: 0, want: 1},
		{name: "negative clamps to one", qty: -3, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			l, _ := newTestLedger(t)
			_, err := l.Add(ctx, Product{ID: "p1", Name: "Widget", Price: d("3")})
			require.NoError(t, err)

			require.NoError(t, l.SetQuantity(ctx, "p1", tt.qty))

			c := l.Get(ctx)
			require.Len(t, c, 1)
			assert.Equal(t, tt.want, c[0].Qty)
		})
	}
}

func TestLedger_SetQuantityUnknownID(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)
	_, err := l.Add(ctx, Product{ID: "p1", Name: "Widget", Price: d("3")})
	require.NoError(t, err)

	require.NoError(t, l.SetQuantity(ctx, "nope", 9))

	c := l.Get(ctx)
	require.Len(t, c, 1)
	assert.Equal(t, 1, c[0].Qty)
}

func TestLedger_Remove(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)
	for _, id := range []string{"a", "b", "c"} {
		_, err := l.Add(ctx, Product{ID: id, Name: id, Price: d("1")})
		require.NoError(t, err)
	}

	require.NoError(t, l.Remove(ctx, "b"))
	require.NoError(t, l.Remove(ctx, "missing"))

	c := l.Get(ctx)
	require.Len(t, c, 2)
	assert.Equal(t, "a", c[0].ID)
	assert.Equal(t, "c", c[1].ID)
}

func TestLedger_ClearErasesRecord(t *testing.T) {
	ctx := context.Background()
	l, s := newTestLedger(t)
	_, err := l.Add(ctx, Product{ID: "a", Name: "a", Price: d("1")})
	require.NoError(t, err)

	require.NoError(t, l.Clear(ctx))

	_, err = s.Get(ctx, storage.KeyCart)
	require.ErrorIs(t, err, storage.ErrNotFound)
	assert.Empty(t, l.Get(ctx))
}

func TestLedger_GetSanitizesStoredCart(t *testing.T) {
	ctx := context.Background()
	l, s := newTestLedger(t)

	raw := `[{"id":"a","name":"A","price":"2","qty":0},
		{"id":"","name":"ghost","price":"1","qty":1},
		{"id":"a","name":"A","price":"2","qty":2},
		{"id":"b","name":"B","price":1.5,"qty":-7}]`
	require.NoError(t, s.Set(ctx, storage.KeyCart, []byte(raw)))

	c := l.Get(ctx)
	require.Len(t, c, 2)
	assert.Equal(t, "a", c[0].ID)
	assert.Equal(t, 3, c[0].Qty)
	assert.Equal(t, "b", c[1].ID)
	assert.Equal(t, 1, c[1].Qty)
	assert.True(t, d("1.5").Equal(c[1].Price))
}

func TestLedger_QuantitySaturates(t *testing.T) {
	ctx := context.Background()
	l, s := newTestLedger(t)

	p := Product{ID: "mug", Name: "Mug", Price: d("1")}
	_, err := l.Add(ctx, p)
	require.NoError(t, err)
	require.NoError(t, l.SetQuantity(ctx, "mug", ParseQuantity("99999999999999999999")))

	item, err := l.Add(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, item.Qty)
	assert.Equal(t, math.MaxInt, l.Get(ctx)[0].Qty)

	maxQty := strconv.Itoa(math.MaxInt)
	raw := `[{"id":"a","name":"A","price":"1","qty":` + maxQty + `},
		{"id":"a","name":"A","price":"1","qty":` + maxQty + `}]`
	require.NoError(t, s.Set(ctx, storage.KeyCart, []byte(raw)))

	c := l.Get(ctx)
	require.Len(t, c, 1)
	assert.Equal(t, math.MaxInt, c[0].Qty)
}

func TestLedger_MalformedCartIsEmpty(t *testing.T) {
	ctx := context.Background()
	l, s := newTestLedger(t)
	require.NoError(t, s.Set(ctx, storage.KeyCart, []byte(`{"oops":`)))

	assert.Empty(t, l.Get(ctx))

	// The ledger recovers on the next mutation.
	_, err := l.Add(ctx, Product{ID: "a", Name: "A", Price: d("1")})
	require.NoError(t, err)
	assert.Len(t, l.Get(ctx), 1)
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{raw: "3", want: 3},
		{raw: " 4 ", want: 4},
		{raw: "2.7", want: 2},
		{raw: "5 boxes", want: 5},
		{raw: "+6", want: 6},
		{raw: "0", want: 1},
		{raw: "-4", want: 1},
		{raw: "", want: 1},
		{raw: "abc", want: 1},
		{raw: "-", want: 1},
		{raw: "-99999999999999999999999", want: 1},
		{raw: "99999999999999999999", want: math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseQuantity(tt.raw))
		})
	}
}

func TestCart_Helpers(t *testing.T) {
	c := Cart{
		{ID: "a", Price: d("2.50"), Qty: 2},
		{ID: "b", Price: d("1"), Qty: 3},
	}

	assert.Equal(t, 5, c.Count())
	assert.Equal(t, 1, c.Find("b"))
	assert.Equal(t, -1, c.Find("z"))
	assert.True(t, d("5").Equal(c[0].LineTotal()))

	clone := c.Clone()
	clone[0].Qty = 99
	assert.Equal(t, 2, c[0].Qty)
	assert.NotNil(t, Cart(nil).Clone())
}
