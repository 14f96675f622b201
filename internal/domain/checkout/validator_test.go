package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() Input {
	return Input{
		Fields: Fields{
			Shipping: Shipping{Name: "Ann Lee", Address: "1 Main St"},
			Payment: Payment{
				CardName:   "Ann Lee",
				CardNumber: "4111 1111 1111 1111",
				Expiry:     "09/27",
				CVV:        "123",
			},
		},
		Authenticated: true,
		CartLines:     1,
	}
}

func TestValidate_Valid(t *testing.T) {
	require.NoError(t, Validate(validInput()))
}

func TestValidate_NotAuthenticated(t *testing.T) {
	in := validInput()
	in.Authenticated = false
	in.CartLines = 0

	require.ErrorIs(t, Validate(in), ErrNotAuthenticated)
}

func TestValidate_Rules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *Input)
		want   Kind
	}{
		{name: "blank shipping name", mutate: func(in *Input) { in.Fields.Shipping.Name = "   " }, want: MissingShippingInfo},
		{name: "missing address", mutate: func(in *Input) { in.Fields.Shipping.Address = "" }, want: MissingShippingInfo},
		{name: "missing cardholder", mutate: func(in *Input) { in.Fields.Payment.CardName = "\t" }, want: MissingCardholderName},
		{name: "short card number", mutate: func(in *Input) { in.Fields.Payment.CardNumber = "123" }, want: InvalidCardNumber},
		{name: "eleven digits", mutate: func(in *Input) { in.Fields.Payment.CardNumber = "12345678901" }, want: InvalidCardNumber},
		{name: "twenty digits", mutate: func(in *Input) { in.Fields.Payment.CardNumber = "12345678901234567890" }, want: InvalidCardNumber},
		{name: "card with dashes", mutate: func(in *Input) { in.Fields.Payment.CardNumber = "4111-1111-1111-1111" }, want: InvalidCardNumber},
		{name: "empty card number", mutate: func(in *Input) { in.Fields.Payment.CardNumber = "" }, want: InvalidCardNumber},
		{name: "month 13", mutate: func(in *Input) { in.Fields.Payment.Expiry = "13/27" }, want: InvalidExpiry},
		{name: "month 00", mutate: func(in *Input) { in.Fields.Payment.Expiry = "00/27" }, want: InvalidExpiry},
		{name: "single digit month", mutate: func(in *Input) { in.Fields.Payment.Expiry = "9/27" }, want: InvalidExpiry},
		{name: "four digit year", mutate: func(in *Input) { in.Fields.Payment.Expiry = "09/2027" }, want: InvalidExpiry},
		{name: "no slash", mutate: func(in *Input) { in.Fields.Payment.Expiry = "0927" }, want: InvalidExpiry},
		{name: "two digit cvv", mutate: func(in *Input) { in.Fields.Payment.CVV = "12" }, want: InvalidCvv},
		{name: "five digit cvv", mutate: func(in *Input) { in.Fields.Payment.CVV = "12345" }, want: InvalidCvv},
		{name: "letters in cvv", mutate: func(in *Input) { in.Fields.Payment.CVV = "12a" }, want: InvalidCvv},
		{name: "empty cart", mutate: func(in *Input) { in.CartLines = 0 }, want: EmptyCart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			var vErr *ValidationError
			require.ErrorAs(t, Validate(in), &vErr)
			assert.Equal(t, tt.want, vErr.Kind)
			assert.NotEmpty(t, vErr.Message)
			assert.NotEmpty(t, vErr.Field)
		})
	}
}

func TestValidate_Accepts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *Input)
	}{
		{name: "twelve digit card", mutate: func(in *Input) { in.Fields.Payment.CardNumber = "123456789012" }},
		{name: "nineteen digit card", mutate: func(in *Input) { in.Fields.Payment.CardNumber = "1234567890123456789" }},
		{name: "card with mixed whitespace", mutate: func(in *Input) { in.Fields.Payment.CardNumber = " 4111\t1111  1111 1111 " }},
		{name: "past expiry is format-valid", mutate: func(in *Input) { in.Fields.Payment.Expiry = "01/00" }},
		{name: "december", mutate: func(in *Input) { in.Fields.Payment.Expiry = " 12/99 " }},
		{name: "four digit cvv", mutate: func(in *Input) { in.Fields.Payment.CVV = "1234" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			require.NoError(t, Validate(in))
		})
	}
}

func TestValidate_FirstFailureWins(t *testing.T) {
	// Everything is wrong; shipping comes first after the session.
	in := Input{Authenticated: true}

	var vErr *ValidationError
	require.ErrorAs(t, Validate(in), &vErr)
	assert.Equal(t, MissingShippingInfo, vErr.Kind)
	assert.Equal(t, "Please enter your name and address.", vErr.Message)
}

func TestValidate_RuleOrder(t *testing.T) {
	names := make([]string, len(checks))
	for i, c := range checks {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"session", "shipping", "cardholder", "card_number", "expiry", "cvv", "cart"}, names)
}

func TestFields_Normalize(t *testing.T) {
	f := Fields{
		Shipping: Shipping{Name: "  Ann ", Address: "\n1 Main St "},
		Payment:  Payment{CardName: " Ann ", CardNumber: " 4111 1111\t1111 1111", Expiry: " 09/27", CVV: "123 "},
	}.Normalize()

	assert.Equal(t, "Ann", f.Shipping.Name)
	assert.Equal(t, "1 Main St", f.Shipping.Address)
	assert.Equal(t, "4111111111111111", f.Payment.CardNumber)
	assert.Equal(t, "09/27", f.Payment.Expiry)
	assert.Equal(t, "123", f.Payment.CVV)
}
