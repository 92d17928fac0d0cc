package model

import "github.com/shopspring/decimal"

// PaymentIntentStatus mirrors the payment provider's intent lifecycle.
type PaymentIntentStatus string

const (
	PaymentIntentStatusPending   PaymentIntentStatus = "pending"
	PaymentIntentStatusSucceeded PaymentIntentStatus = "succeeded"
	PaymentIntentStatusFailed    PaymentIntentStatus = "failed"
)

// PaymentIntent describes a charge created for purchased entries.
type PaymentIntent struct {
	Reference string
	Status    PaymentIntentStatus
	Amount    decimal.Decimal
	Currency  string
}
