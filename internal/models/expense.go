package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents an amount one member paid on behalf of the group.
// It is split equally among all members.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Amount is the total paid. Never negative.
	Amount decimal.Decimal

	// Payer is the member who paid.
	Payer string

	// Category and SubCategory classify the expense (e.g., "Travel" / "Taxi").
	Category    string
	SubCategory string

	// Description is free text entered with the expense.
	Description string

	// Timestamp is when the expense happened, second precision.
	// Together with payer and payee it identifies settled split entries.
	Timestamp time.Time

	// CreatedAt is the Unix timestamp when the record was stored.
	CreatedAt int64
}

// ExpenseFilter narrows expense listings. Zero values match everything.
type ExpenseFilter struct {
	// Categories restricts results to these categories.
	Categories []string

	// From and To bound Timestamp, both inclusive.
	From time.Time
	To   time.Time
}
