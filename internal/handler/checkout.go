package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/xenking/oolio-storefront/internal/domain/checkout"
	"github.com/xenking/oolio-storefront/internal/domain/order"
)

type checkoutResponse struct {
	ReceiptID string `json:"receiptId"`
	Warning   string `json:"warning,omitempty"`
}

// Checkout places the order.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req checkout.Fields
	if !decodeBody(w, r, &req) {
		return
	}

	id, err := h.svc.Checkout(ctx, req)
	h.checkouts.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", checkoutOutcome(err))))

	switch {
	case err == nil:
		writeJSON(w, r, http.StatusCreated, checkoutResponse{ReceiptID: id})
	case errors.Is(err, order.ErrCartNotCleared):
		zctx.From(ctx).Warn("Checkout committed with stale cart", zap.String("receipt_id", id), zap.Error(err))
		writeJSON(w, r, http.StatusCreated, checkoutResponse{
			ReceiptID: id,
			Warning:   "Your order was placed but the cart could not be cleared.",
		})
	default:
		writeError(w, r, err)
	}
}

// GetReceipt returns the last receipt, formatted.
func (h *Handler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.ReceiptView(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, v)
}

// ListProducts returns the catalog.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.svc.Products())
}

func checkoutOutcome(err error) string {
	var vErr *checkout.ValidationError
	switch {
	case err == nil, errors.Is(err, order.ErrCartNotCleared):
		return "ok"
	case errors.Is(err, checkout.ErrNotAuthenticated):
		return "unauthenticated"
	case errors.As(err, &vErr):
		return "invalid"
	default:
		return "error"
	}
}
