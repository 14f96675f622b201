package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/xenking/oolio-storefront/internal/domain/cart"
	"github.com/xenking/oolio-storefront/internal/domain/pricing"
	"github.com/xenking/oolio-storefront/internal/domain/receipt"
)

type cartLine struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Qty       int    `json:"qty"`
	LineTotal string `json:"lineTotal"`
}

type cartResponse struct {
	Items  []cartLine     `json:"items"`
	Count  int            `json:"count"`
	Totals receipt.Totals `json:"totals"`
}

// addItemRequest is the add-to-cart payload. Name and price may be omitted
// for products listed in the catalog.
type addItemRequest struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Price *decimal.Decimal `json:"price"`
}

type addItemResponse struct {
	Notice string   `json:"notice"`
	Item   cartLine `json:"item"`
}

// setQuantityRequest accepts qty as a JSON number or a string typed by the
// user.
type setQuantityRequest struct {
	Qty json.RawMessage `json:"qty"`
}

func toCartLine(it cart.Item) cartLine {
	return cartLine{
		ID:        it.ID,
		Name:      it.Name,
		Price:     receipt.Money(it.Price),
		Qty:       it.Qty,
		LineTotal: receipt.Money(it.LineTotal()),
	}
}

// GetCart returns the cart lines with freshly computed totals.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	view := h.svc.Cart(r.Context())

	lines := make([]cartLine, len(view.Items))
	for i, it := range view.Items {
		lines[i] = toCartLine(it)
	}
	writeJSON(w, r, http.StatusOK, cartResponse{
		Items:  lines,
		Count:  view.Items.Count(),
		Totals: receipt.FormatTotals(view.Totals),
	})
}

// GetTotals returns only the totals, both exact and formatted.
func (h *Handler) GetTotals(w http.ResponseWriter, r *http.Request) {
	t := h.svc.Totals(r.Context())
	writeJSON(w, r, http.StatusOK, struct {
		Exact     pricing.Totals `json:"exact"`
		Formatted receipt.Totals `json:"formatted"`
	}{t, receipt.FormatTotals(t)})
}

// AddItem adds one unit of a product to the cart.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	p := cart.Product{ID: strings.TrimSpace(req.ID), Name: req.Name}
	if req.Price != nil {
		p.Price = *req.Price
	} else {
		listed, err := h.svc.Product(p.ID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		p = listed.CartProduct()
	}

	item, err := h.svc.AddToCart(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, addItemResponse{
		Notice: "Added to cart: " + item.Name,
		Item:   toCartLine(item),
	})
}

// SetQuantity updates a line's quantity. Unparseable input becomes 1.
func (h *Handler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	var req setQuantityRequest
	if !decodeBody(w, r, &req) {
		return
	}

	raw := strings.Trim(strings.TrimSpace(string(req.Qty)), `"`)
	if err := h.svc.SetQuantity(r.Context(), r.PathValue("id"), cart.ParseQuantity(raw)); err != nil {
		writeError(w, r, err)
		return
	}
	h.GetCart(w, r)
}

// RemoveItem drops a line from the cart.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveItem(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	h.GetCart(w, r)
}

// ClearCart empties the cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearCart(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
