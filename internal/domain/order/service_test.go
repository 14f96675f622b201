package order

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/oolio-storefront/internal/domain/auth"
	"github.com/xenking/oolio-storefront/internal/domain/cart"
	"github.com/xenking/oolio-storefront/internal/domain/checkout"
	"github.com/xenking/oolio-storefront/internal/storage"
	"github.com/xenking/oolio-storefront/internal/storage/memory"
)

// --- Mock implementations ---

type mockSessions struct {
	session *auth.Session
}

func (m *mockSessions) Current(context.Context) (auth.Session, bool) {
	if m.session == nil {
		return auth.Session{}, false
	}
	return *m.session, true
}

var errDiskFull = errors.New("disk full")

type mockCart struct {
	items    cart.Cart
	clearErr error
	cleared  bool
}

func (m *mockCart) Get(context.Context) cart.Cart { return m.items.Clone() }

func (m *mockCart) Clear(context.Context) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.cleared = true
	m.items = nil
	return nil
}

type mockRepo struct {
	saved   *Receipt
	saveErr error
}

func (m *mockRepo) Save(_ context.Context, r *Receipt) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = r
	return nil
}

func (m *mockRepo) Last(context.Context) (*Receipt, bool) {
	return m.saved, m.saved != nil
}

// --- Helpers ---

// fixedNow is a Friday.
var fixedNow = time.Date(2025, time.June, 13, 15, 4, 5, 0, time.UTC)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func validFields() checkout.Fields {
	return checkout.Fields{
		Shipping: checkout.Shipping{Name: " Ann Lee ", Address: "1 Main St"},
		Payment: checkout.Payment{
			CardName:   "Ann Lee",
			CardNumber: "4111 1111 1111 1111",
			Expiry:     "09/27",
			CVV:        "123",
		},
	}
}

func newTestFinalizer(sessions auth.Sessions, c Cart, repo Repository) *Finalizer {
	f := NewFinalizer(sessions, c, repo)
	f.now = func() time.Time { return fixedNow }
	f.newID = func() string { return "R-test" }
	return f
}

func signedIn() *mockSessions {
	return &mockSessions{session: &auth.Session{Username: "ann", FullName: "Ann Lee"}}
}

// --- Tests ---

func TestCheckout_Success(t *testing.T) {
	c := &mockCart{items: cart.Cart{
		{ID: "p1", Name: "Widget", Price: d("60"), Qty: 1},
		{ID: "p2", Name: "Gadget", Price: d("20"), Qty: 2},
	}}
	repo := &mockRepo{}
	f := newTestFinalizer(signedIn(), c, repo)

	id, err := f.Checkout(context.Background(), validFields())
	require.NoError(t, err)
	assert.Equal(t, "R-test", id)

	require.NotNil(t, repo.saved)
	rec := repo.saved
	assert.Equal(t, "R-test", rec.ID)
	assert.Equal(t, "Ann Lee", rec.Name)
	assert.Equal(t, "1 Main St", rec.Address)
	require.Len(t, rec.Items, 2)
	assert.Equal(t, 2, rec.Items[1].Qty)
	assert.True(t, d("100").Equal(rec.Totals.Subtotal))
	assert.True(t, d("10").Equal(rec.Totals.Discount))
	assert.True(t, d("13.5").Equal(rec.Totals.Tax))
	assert.True(t, d("103.5").Equal(rec.Totals.Total))
	assert.True(t, fixedNow.Equal(rec.When))
	assert.True(t, time.Date(2025, time.June, 17, 15, 4, 5, 0, time.UTC).Equal(rec.Ship))

	assert.True(t, c.cleared)
}

func TestCheckout_NotAuthenticated(t *testing.T) {
	c := &mockCart{items: cart.Cart{{ID: "p1", Name: "Widget", Price: d("1"), Qty: 1}}}
	repo := &mockRepo{}
	f := newTestFinalizer(&mockSessions{}, c, repo)

	_, err := f.Checkout(context.Background(), validFields())
	require.ErrorIs(t, err, checkout.ErrNotAuthenticated)
	assert.Nil(t, repo.saved)
	assert.False(t, c.cleared)
}

func TestCheckout_ValidationFailureWritesNothing(t *testing.T) {
	c := &mockCart{items: cart.Cart{{ID: "p1", Name: "Widget", Price: d("1"), Qty: 1}}}
	repo := &mockRepo{}
	f := newTestFinalizer(signedIn(), c, repo)

	fields := validFields()
	fields.Payment.CardNumber = "123"

	_, err := f.Checkout(context.Background(), fields)

	var vErr *checkout.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, checkout.InvalidCardNumber, vErr.Kind)
	assert.Nil(t, repo.saved)
	assert.False(t, c.cleared)
}

func TestCheckout_EmptyCart(t *testing.T) {
	repo := &mockRepo{}
	f := newTestFinalizer(signedIn(), &mockCart{}, repo)

	_, err := f.Checkout(context.Background(), validFields())

	var vErr *checkout.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, checkout.EmptyCart, vErr.Kind)
	assert.Nil(t, repo.saved)
}

func TestCheckout_SaveErrorKeepsCart(t *testing.T) {
	c := &mockCart{items: cart.Cart{{ID: "p1", Name: "Widget", Price: d("1"), Qty: 1}}}
	f := newTestFinalizer(signedIn(), c, &mockRepo{saveErr: errors.New("disk full")})

	_, err := f.Checkout(context.Background(), validFields())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save receipt")
	assert.False(t, c.cleared)
}

func TestCheckout_ClearErrorAfterCommit(t *testing.T) {
	c := &mockCart{
		items:    cart.Cart{{ID: "p1", Name: "Widget", Price: d("1"), Qty: 1}},
		clearErr: errDiskFull,
	}
	repo := &mockRepo{}
	f := newTestFinalizer(signedIn(), c, repo)

	id, err := f.Checkout(context.Background(), validFields())
	require.ErrorIs(t, err, ErrCartNotCleared)
	require.ErrorIs(t, err, errDiskFull)
	assert.EqualError(t, err, "receipt saved but cart not cleared: disk full")
	assert.Equal(t, "R-test", id)
	require.NotNil(t, repo.saved)
}

func TestCheckout_DefaultReceiptID(t *testing.T) {
	c := &mockCart{items: cart.Cart{{ID: "p1", Name: "Widget", Price: d("1"), Qty: 1}}}
	f := NewFinalizer(signedIn(), c, &mockRepo{})

	id, err := f.Checkout(context.Background(), validFields())
	require.NoError(t, err)
	assert.Regexp(t, `^R[0-9a-f-]{36}$`, id)
}

func TestStoreRepository(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	repo := NewStoreRepository(s)

	_, ok := repo.Last(ctx)
	assert.False(t, ok)

	first := &Receipt{ID: "R1", Name: "Ann", Items: cart.Cart{{ID: "p1", Name: "W", Price: d("2.5"), Qty: 2}}, When: fixedNow, Ship: fixedNow}
	second := &Receipt{ID: "R2", Name: "Bob", When: fixedNow, Ship: fixedNow}
	require.NoError(t, repo.Save(ctx, first))

	got, ok := repo.Last(ctx)
	require.True(t, ok)
	assert.Equal(t, "R1", got.ID)
	require.Len(t, got.Items, 1)
	assert.True(t, d("2.5").Equal(got.Items[0].Price))
	assert.True(t, fixedNow.Equal(got.When))

	// Single slot: the next save replaces the previous receipt.
	require.NoError(t, repo.Save(ctx, second))
	got, ok = repo.Last(ctx)
	require.True(t, ok)
	assert.Equal(t, "R2", got.ID)

	require.NoError(t, s.Set(ctx, storage.KeyReceipt, []byte("{broken")))
	_, ok = repo.Last(ctx)
	assert.False(t, ok)
}
