package handler

import (
	"net/http"

	"github.com/go-faster/errors"

	"github.com/xenking/oolio-storefront/internal/domain/auth"
	"github.com/xenking/oolio-storefront/internal/domain/cart"
	"github.com/xenking/oolio-storefront/internal/domain/catalog"
	"github.com/xenking/oolio-storefront/internal/domain/checkout"
	"github.com/xenking/oolio-storefront/internal/domain/receipt"
)

// mapError converts domain errors to API error responses.
func mapError(err error) errorResponse {
	var vErr *checkout.ValidationError
	if errors.As(err, &vErr) {
		return errorResponse{
			Code:    http.StatusUnprocessableEntity,
			Message: vErr.Message,
			Kind:    string(vErr.Kind),
			Field:   vErr.Field,
		}
	}

	switch {
	case errors.Is(err, checkout.ErrNotAuthenticated):
		return errorResponse{Code: http.StatusUnauthorized, Message: "Please log in to check out.", Kind: "NotAuthenticated"}
	case errors.Is(err, receipt.ErrNotFound):
		return errorResponse{Code: http.StatusNotFound, Message: "No receipt found.", Kind: "NotFound"}
	case errors.Is(err, catalog.ErrNotFound):
		return errorResponse{Code: http.StatusNotFound, Message: err.Error()}
	case errors.Is(err, cart.ErrInvalidProduct):
		return errorResponse{Code: http.StatusBadRequest, Message: err.Error()}
	case errors.Is(err, auth.ErrUsernameTaken):
		return errorResponse{Code: http.StatusConflict, Message: err.Error()}
	case errors.Is(err, auth.ErrInvalidCredentials):
		return errorResponse{Code: http.StatusUnauthorized, Message: err.Error()}
	case errors.Is(err, auth.ErrMissingFields),
		errors.Is(err, auth.ErrInvalidEmail),
		errors.Is(err, auth.ErrPasswordTooShort),
		errors.Is(err, auth.ErrMissingCredentials):
		return errorResponse{Code: http.StatusBadRequest, Message: err.Error()}
	}

	return errorResponse{Code: http.StatusInternalServerError, Message: "internal error"}
}
