package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettledRecord marks one split entry as paid.
// (Payer, Payee, Timestamp) is unique; storing the same key twice is a no-op.
type SettledRecord struct {
	// ID is the unique identifier for the record (UUID format).
	ID string

	// Payer is the member who paid the original expense.
	Payer string

	// Payee is the member who owed a share of it.
	Payee string

	// Owed is the share that was settled.
	Owed decimal.Decimal

	// Description is copied from the expense.
	Description string

	// Timestamp is the original expense timestamp.
	Timestamp time.Time

	// SettledBy is the member who marked the dues settled.
	SettledBy string

	// CreatedAt is the Unix timestamp when the record was stored.
	CreatedAt int64
}
