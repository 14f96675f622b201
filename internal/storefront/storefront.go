// Package storefront is the single entry point for every caller-facing
// operation. It wires the domain components to one store and runs each
// operation to completion before the next one starts.
package storefront

import (
	"context"
	"sync"

	"github.com/xenking/oolio-storefront/internal/domain/auth"
	"github.com/xenking/oolio-storefront/internal/domain/cart"
	"github.com/xenking/oolio-storefront/internal/domain/catalog"
	"github.com/xenking/oolio-storefront/internal/domain/checkout"
	"github.com/xenking/oolio-storefront/internal/domain/order"
	"github.com/xenking/oolio-storefront/internal/domain/pricing"
	"github.com/xenking/oolio-storefront/internal/domain/receipt"
	"github.com/xenking/oolio-storefront/internal/storage"
)

// CartView is the cart together with its freshly computed totals.
type CartView struct {
	Items  cart.Cart
	Totals pricing.Totals
}

// Service serialises all operations with a single mutex: the domain
// components assume one actor at a time.
type Service struct {
	mu sync.Mutex

	catalog   *catalog.Catalog
	users     *auth.Service
	ledger    *cart.Ledger
	finalizer *order.Finalizer
	receipts  *receipt.Presenter
}

// Option configures a Service.
type Option func(*options)

type options struct {
	receipts order.Repository
}

// WithReceipts stores receipts in repo instead of the single store slot.
func WithReceipts(repo order.Repository) Option {
	return func(o *options) {
		o.receipts = repo
	}
}

// New wires a Service on top of store.
func New(store storage.Store, cat *catalog.Catalog, opts ...Option) *Service {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	users := auth.NewService(store)
	ledger := cart.NewLedger(store)
	receipts := o.receipts
	if receipts == nil {
		receipts = order.NewStoreRepository(store)
	}

	return &Service{
		catalog:   cat,
		users:     users,
		ledger:    ledger,
		finalizer: order.NewFinalizer(users, ledger, receipts),
		receipts:  receipt.NewPresenter(receipts),
	}
}

// Products lists the catalog.
func (s *Service) Products() []catalog.Product {
	return s.catalog.List()
}

// Product looks up a catalog entry.
func (s *Service) Product(id string) (catalog.Product, error) {
	return s.catalog.Get(id)
}

func (s *Service) Register(ctx context.Context, r auth.Registration) (auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users.Register(ctx, r)
}

func (s *Service) Login(ctx context.Context, username, password string) (auth.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users.Login(ctx, username, password)
}

func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users.Logout(ctx)
}

// Session returns the active session, if any.
func (s *Service) Session(ctx context.Context) (auth.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users.Current(ctx)
}

// AddToCart adds one unit of p and returns the updated line.
func (s *Service) AddToCart(ctx context.Context, p cart.Product) (cart.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Add(ctx, p)
}

func (s *Service) SetQuantity(ctx context.Context, id string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.SetQuantity(ctx, id, qty)
}

func (s *Service) RemoveItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Remove(ctx, id)
}

func (s *Service) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Clear(ctx)
}

// Cart returns the cart and its totals from one snapshot.
func (s *Service) Cart(ctx context.Context) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.ledger.Get(ctx)
	return CartView{Items: items, Totals: pricing.Compute(items)}
}

// Totals recomputes the totals of the current cart.
func (s *Service) Totals(ctx context.Context) pricing.Totals {
	return s.Cart(ctx).Totals
}

// Checkout places the order and returns the receipt id. See
// order.Finalizer.Checkout for the error contract.
func (s *Service) Checkout(ctx context.Context, fields checkout.Fields) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.finalizer.Checkout(ctx, fields)
}

// Receipt returns the last receipt or receipt.ErrNotFound.
func (s *Service) Receipt(ctx context.Context) (*order.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.receipts.Load(ctx)
}

// ReceiptView returns the last receipt formatted for display.
func (s *Service) ReceiptView(ctx context.Context) (*receipt.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.receipts.View(ctx)
}
