// Package checkout validates the shipping and payment fields submitted at
// checkout. Card data is checked for format only.
package checkout

import (
	"regexp"
	"strings"
)

var (
	cardNumberRe = regexp.MustCompile(`^[0-9]{12,19}$`)
	expiryRe     = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
	cvvRe        = regexp.MustCompile(`^[0-9]{3,4}$`)
)

// Shipping holds the delivery fields of the checkout form.
type Shipping struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Payment holds the card fields of the checkout form.
type Payment struct {
	CardName   string `json:"cardName"`
	CardNumber string `json:"cardNumber"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

// Fields is the full checkout form.
type Fields struct {
	Shipping Shipping `json:"shipping"`
	Payment  Payment  `json:"payment"`
}

// Normalize returns a copy with every field trimmed and internal whitespace
// removed from the card number.
func (f Fields) Normalize() Fields {
	return Fields{
		Shipping: Shipping{
			Name:    strings.TrimSpace(f.Shipping.Name),
			Address: strings.TrimSpace(f.Shipping.Address),
		},
		Payment: Payment{
			CardName:   strings.TrimSpace(f.Payment.CardName),
			CardNumber: strings.Join(strings.Fields(f.Payment.CardNumber), ""),
			Expiry:     strings.TrimSpace(f.Payment.Expiry),
			CVV:        strings.TrimSpace(f.Payment.CVV),
		},
	}
}

// Input is everything a validation run looks at.
type Input struct {
	Fields        Fields
	Authenticated bool
	CartLines     int
}

// Check is a single named validation rule. It returns nil when the input
// passes.
type Check struct {
	Name string
	Test func(in Input) error
}

// checks is the ordered rule list used by Validate.
var checks = []Check{
	{Name: "session", Test: checkSession},
	{Name: "shipping", Test: checkShipping},
	{Name: "cardholder", Test: checkCardholder},
	{Name: "card_number", Test: checkCardNumber},
	{Name: "expiry", Test: checkExpiry},
	{Name: "cvv", Test: checkCVV},
	{Name: "cart", Test: checkCart},
}

// Validate normalizes the fields and runs the rules in order, returning the
// first failure: ErrNotAuthenticated or a *ValidationError.
func Validate(in Input) error {
	in.Fields = in.Fields.Normalize()
	for _, c := range checks {
		if err := c.Test(in); err != nil {
			return err
		}
	}
	return nil
}

func checkSession(in Input) error {
	if !in.Authenticated {
		return ErrNotAuthenticated
	}
	return nil
}

func checkShipping(in Input) error {
	if in.Fields.Shipping.Name == "" || in.Fields.Shipping.Address == "" {
		return &ValidationError{
			Kind:    MissingShippingInfo,
			Field:   "shipping",
			Message: "Please enter your name and address.",
		}
	}
	return nil
}

func checkCardholder(in Input) error {
	if in.Fields.Payment.CardName == "" {
		return &ValidationError{
			Kind:    MissingCardholderName,
			Field:   "cardName",
			Message: "Please enter the cardholder name.",
		}
	}
	return nil
}

func checkCardNumber(in Input) error {
	if !cardNumberRe.MatchString(in.Fields.Payment.CardNumber) {
		return &ValidationError{
			Kind:    InvalidCardNumber,
			Field:   "cardNumber",
			Message: "Enter a valid card number (digits only).",
		}
	}
	return nil
}

func checkExpiry(in Input) error {
	if !expiryRe.MatchString(in.Fields.Payment.Expiry) {
		return &ValidationError{
			Kind:    InvalidExpiry,
			Field:   "expiry",
			Message: "Expiry must be MM/YY.",
		}
	}
	return nil
}

func checkCVV(in Input) error {
	if !cvvRe.MatchString(in.Fields.Payment.CVV) {
		return &ValidationError{
			Kind:    InvalidCvv,
			Field:   "cvv",
			Message: "Enter a valid CVV (3-4 digits).",
		}
	}
	return nil
}

func checkCart(in Input) error {
	if in.CartLines == 0 {
		return &ValidationError{
			Kind:    EmptyCart,
			Field:   "cart",
			Message: "Your cart is empty.",
		}
	}
	return nil
}
