package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdvancePayment represents a direct payment between members to pre-settle dues.
type AdvancePayment struct {
	// ID is the unique identifier for the advance (UUID format).
	ID string

	// From is the member who paid.
	From string

	// To is the member who received the payment.
	To string

	// Amount is the payment amount. Always positive.
	Amount decimal.Decimal

	// Note is an optional description.
	Note string

	// Timestamp is when the payment was made.
	Timestamp time.Time

	// CreatedAt is the Unix timestamp when the record was stored.
	CreatedAt int64
}
