// Package catalog holds the products offered by the storefront.
package catalog

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"

	"github.com/xenking/oolio-storefront/internal/domain/cart"
)

// ErrNotFound is returned when a product id is not in the catalog.
var ErrNotFound = errors.New("product not found")

// Product is a catalog entry.
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
}

// CartProduct returns the part of p that goes into the cart.
func (p Product) CartProduct() cart.Product {
	return cart.Product{ID: p.ID, Name: p.Name, Price: p.Price}
}

// Catalog is an immutable, ordered product list.
type Catalog struct {
	products []Product
	byID     map[string]int
}

// New builds a Catalog. Products must have unique, non-empty ids and
// non-negative prices.
func New(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for _, p := range products {
		if p.ID == "" {
			return nil, errors.Errorf("product %q has no id", p.Name)
		}
		if p.Price.IsNegative() {
			return nil, errors.Errorf("product %s has negative price", p.ID)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, errors.Errorf("duplicate product id %s", p.ID)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(defaultProducts)
	if err != nil {
		panic(err)
	}
	return c
}

// Load reads a JSON array of products from path. Files ending in ".gz" are
// gzip-decompressed first.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "create gzip reader for %s", path)
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}

	return Decode(r)
}

// Decode reads a JSON array of products from r.
func Decode(r io.Reader) (*Catalog, error) {
	var products []Product
	if err := json.NewDecoder(r).Decode(&products); err != nil {
		return nil, errors.Wrap(err, "parse catalog JSON")
	}
	return New(products)
}

// List returns the products in catalog order.
func (c *Catalog) List() []Product {
	return append([]Product(nil), c.products...)
}

// Get returns the product with the given id.
func (c *Catalog) Get(id string) (Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return c.products[i], nil
}

var defaultProducts = []Product{
	{ID: "tee-classic", Name: "Classic Tee", Price: decimal.RequireFromString("19.99"), Category: "apparel"},
	{ID: "hoodie-zip", Name: "Zip Hoodie", Price: decimal.RequireFromString("49.50"), Category: "apparel"},
	{ID: "cap-logo", Name: "Logo Cap", Price: decimal.RequireFromString("15.00"), Category: "accessories"},
	{ID: "mug-ceramic", Name: "Ceramic Mug", Price: decimal.RequireFromString("12.00"), Category: "home"},
	{ID: "tote-canvas", Name: "Canvas Tote", Price: decimal.RequireFromString("22.75"), Category: "accessories"},
	{ID: "sneaker-run", Name: "Running Sneakers", Price: decimal.RequireFromString("89.00"), Category: "footwear"},
}
