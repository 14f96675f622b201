package checkout

import (
	"fmt"

	"github.com/go-faster/errors"
)

// ErrNotAuthenticated means there is no active session; the caller must send
// the user to log in.
var ErrNotAuthenticated = errors.New("not authenticated")

// Kind identifies which validation rule failed.
type Kind string

const (
	MissingShippingInfo   Kind = "MissingShippingInfo"
	MissingCardholderName Kind = "MissingCardholderName"
	InvalidCardNumber     Kind = "InvalidCardNumber"
	InvalidExpiry         Kind = "InvalidExpiry"
	InvalidCvv            Kind = "InvalidCvv"
	EmptyCart             Kind = "EmptyCart"
)

// ValidationError is a failed checkout rule. Message is meant for the user.
type ValidationError struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
