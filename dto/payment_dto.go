package dto

import "github.com/shopspring/decimal"

// CreatePaymentIntentDTO carries the charge in major currency units. The
// price is decoded as a decimal so that minor-unit rounding is exact.
type CreatePaymentIntentDTO struct {
	Price *decimal.Decimal `json:"price"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}
