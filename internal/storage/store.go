// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/splitconsole/internal/models"
)

// ErrNotFound is returned when a record lookup by ID finds nothing.
var ErrNotFound = errors.New("record not found")

// Snapshot is a consistent read of the three ledger record sets.
type Snapshot struct {
	Expenses []*models.Expense
	Advances []*models.AdvancePayment
	Settled  []*models.SettledRecord
}

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer.
//
// Records are append-only. Implementations serialize writes.
type Store interface {
	// CreateExpense persists a new expense.
	// The ID and CreatedAt fields are populated by the store when empty.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by its ID.
	// Returns ErrNotFound if the expense does not exist.
	GetExpense(ctx context.Context, id string) (*models.Expense, error)

	// ListExpenses returns expenses matching filter in ledger order.
	ListExpenses(ctx context.Context, filter models.ExpenseFilter) ([]*models.Expense, error)

	// CreateAdvance persists a new advance payment.
	CreateAdvance(ctx context.Context, advance *models.AdvancePayment) error

	// ListAdvances returns all advance payments in ledger order.
	ListAdvances(ctx context.Context) ([]*models.AdvancePayment, error)

	// CreateSettledRecords appends settled records, ignoring keys already present.
	// Returns the number of records actually added.
	CreateSettledRecords(ctx context.Context, records []*models.SettledRecord) (int, error)

	// ListSettledRecords returns all settled records in ledger order.
	ListSettledRecords(ctx context.Context) ([]*models.SettledRecord, error)

	// Snapshot reads expenses, advances and settled records in one transaction.
	Snapshot(ctx context.Context) (*Snapshot, error)

	// CreateMember stores credentials for a member.
	CreateMember(ctx context.Context, member *models.Member) error

	// GetMember retrieves credentials by member name.
	// Returns nil and no error if the member has not registered.
	GetMember(ctx context.Context, name string) (*models.Member, error)

	// Close releases any resources held by the store.
	Close() error
}
