// Package payment creates card payment intents with the payment provider.
package payment

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
)

// MinimumPrice is the smallest accepted charge in major units.
var MinimumPrice = decimal.RequireFromString("0.50")

var ErrBelowMinimum = errors.New("price must be at least 0.50")

var hundred = decimal.NewFromInt(100)

// IntentCreator creates a payment intent for amount minor units and returns
// the provider's client secret.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amount int64) (string, error)
}

// ToMinorUnits converts a major-unit price to integer minor units, rounding
// half away from zero (12.345 becomes 1235).
func ToMinorUnits(price decimal.Decimal) (int64, error) {
	if price.LessThan(MinimumPrice) {
		return 0, ErrBelowMinimum
	}
	return price.Mul(hundred).Round(0).IntPart(), nil
}

type StripeGateway struct {
	client   paymentintent.Client
	currency string
}

func NewStripeGateway(secretKey, currency string) *StripeGateway {
	return &StripeGateway{
		client: paymentintent.Client{
			B:   stripe.GetBackend(stripe.APIBackend),
			Key: secretKey,
		},
		currency: strings.ToLower(currency),
	}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amount int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(g.currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	intent, err := g.client.New(params)
	if err != nil {
		return "", err
	}
	return intent.ClientSecret, nil
}
