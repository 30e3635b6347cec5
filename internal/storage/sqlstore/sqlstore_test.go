package sqlstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitconsole/internal/models"
	"github.com/mmynk/splitconsole/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

var day = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func TestSQLiteStore_Expenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateExpense generates ID and CreatedAt", func(t *testing.T) {
		expense := &models.Expense{
			Amount:    decimal.RequireFromString("120.50"),
			Payer:     "Alice",
			Category:  "Travel",
			Timestamp: day,
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if expense.ID == "" {
			t.Error("Expected expense ID to be generated")
		}
		if expense.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetExpense retrieves complete expense", func(t *testing.T) {
		original := &models.Expense{
			Amount:      decimal.RequireFromString("42.10"),
			Payer:       "Bob",
			Category:    "Office",
			SubCategory: "Stationery",
			Description: "Printer paper",
			Timestamp:   day.Add(2 * time.Hour),
		}
		if err := store.CreateExpense(ctx, original); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		got, err := store.GetExpense(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if !got.Amount.Equal(original.Amount) {
			t.Errorf("Amount mismatch: got %s, want %s", got.Amount, original.Amount)
		}
		if got.Payer != original.Payer || got.Category != original.Category ||
			got.SubCategory != original.SubCategory || got.Description != original.Description {
			t.Errorf("Fields mismatch: got %+v, want %+v", got, original)
		}
		if !got.Timestamp.Equal(original.Timestamp) {
			t.Errorf("Timestamp mismatch: got %v, want %v", got.Timestamp, original.Timestamp)
		}
	})

	t.Run("GetExpense returns ErrNotFound for nonexistent expense", func(t *testing.T) {
		_, err := store.GetExpense(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListExpenses keeps ledger order and filters", func(t *testing.T) {
		// An older timestamp stored later must still come last.
		late := &models.Expense{Amount: decimal.NewFromInt(5), Payer: "Charlie", Category: "Food", Timestamp: day.Add(-48 * time.Hour)}
		if err := store.CreateExpense(ctx, late); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		all, err := store.ListExpenses(ctx, models.ExpenseFilter{})
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("Expected 3 expenses, got %d", len(all))
		}
		if all[2].ID != late.ID {
			t.Errorf("Expected insertion order, last = %s", all[2].Payer)
		}

		byCategory, err := store.ListExpenses(ctx, models.ExpenseFilter{Categories: []string{"Travel", "Food"}})
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		if len(byCategory) != 2 {
			t.Errorf("Expected 2 expenses for Travel+Food, got %d", len(byCategory))
		}

		byDate, err := store.ListExpenses(ctx, models.ExpenseFilter{From: day, To: day.Add(time.Hour)})
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		if len(byDate) != 1 || byDate[0].Category != "Travel" {
			t.Errorf("Expected only the Travel expense in range, got %d", len(byDate))
		}
	})
}

func TestSQLiteStore_AdvancesAndSettled(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	advance := &models.AdvancePayment{From: "Bob", To: "Alice", Amount: decimal.NewFromInt(50), Note: "cash", Timestamp: day}
	if err := store.CreateAdvance(ctx, advance); err != nil {
		t.Fatalf("CreateAdvance failed: %v", err)
	}
	if err := store.CreateAdvance(ctx, &models.AdvancePayment{From: "Charlie", To: "Alice", Amount: decimal.NewFromInt(10), Timestamp: day}); err != nil {
		t.Fatalf("CreateAdvance failed: %v", err)
	}

	advances, err := store.ListAdvances(ctx)
	if err != nil {
		t.Fatalf("ListAdvances failed: %v", err)
	}
	if len(advances) != 2 {
		t.Fatalf("Expected 2 advances, got %d", len(advances))
	}
	if advances[0].Note != "cash" || advances[1].Note != "" {
		t.Errorf("Notes not round-tripped: %q, %q", advances[0].Note, advances[1].Note)
	}

	records := []*models.SettledRecord{
		{Payer: "Alice", Payee: "Bob", Owed: decimal.NewFromInt(100), Timestamp: day, SettledBy: "Bob"},
		{Payer: "Alice", Payee: "Charlie", Owed: decimal.NewFromInt(100), Timestamp: day, SettledBy: "Charlie"},
	}
	added, err := store.CreateSettledRecords(ctx, records)
	if err != nil {
		t.Fatalf("CreateSettledRecords failed: %v", err)
	}
	if added != 2 {
		t.Errorf("Expected 2 records added, got %d", added)
	}

	// Same keys again are ignored.
	added, err = store.CreateSettledRecords(ctx, []*models.SettledRecord{
		{Payer: "Alice", Payee: "Bob", Owed: decimal.NewFromInt(100), Timestamp: day, SettledBy: "Bob"},
	})
	if err != nil {
		t.Fatalf("CreateSettledRecords failed: %v", err)
	}
	if added != 0 {
		t.Errorf("Expected duplicate key to be ignored, added %d", added)
	}

	snap, err := store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(snap.Advances) != 2 || len(snap.Settled) != 2 || len(snap.Expenses) != 0 {
		t.Errorf("Unexpected snapshot sizes: %d expenses, %d advances, %d settled",
			len(snap.Expenses), len(snap.Advances), len(snap.Settled))
	}
	if !snap.Settled[0].Timestamp.Equal(day) || !snap.Settled[0].Owed.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Settled record not round-tripped: %+v", snap.Settled[0])
	}
}

func TestSQLiteStore_Members(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	got, err := store.GetMember(ctx, "Alice")
	if err != nil {
		t.Fatalf("GetMember failed: %v", err)
	}
	if got != nil {
		t.Fatalf("Expected no member before registration, got %+v", got)
	}

	member := models.NewMember("Alice", "hash")
	if err := store.CreateMember(ctx, member); err != nil {
		t.Fatalf("CreateMember failed: %v", err)
	}
	if err := store.CreateMember(ctx, models.NewMember("Alice", "other")); err == nil {
		t.Error("Expected duplicate member name to fail")
	}

	got, err = store.GetMember(ctx, "Alice")
	if err != nil {
		t.Fatalf("GetMember failed: %v", err)
	}
	if got == nil || got.ID != member.ID || got.PasswordHash != "hash" {
		t.Errorf("Unexpected member: %+v", got)
	}
}

func TestRebind(t *testing.T) {
	pg := &Store{dialect: postgresDialect}
	if got := pg.rebind("a = ? AND b IN (?, ?)"); got != "a = $1 AND b IN ($2, $3)" {
		t.Errorf("postgres rebind = %q", got)
	}
	lite := &Store{dialect: sqliteDialect}
	if got := lite.rebind("a = ?"); got != "a = ?" {
		t.Errorf("sqlite rebind = %q", got)
	}
}

func TestRepeatPlaceholder(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, ""},
		{-1, ""},
		{1, ", ?"},
		{3, ", ?, ?, ?"},
	}
	for _, tt := range tests {
		if got := repeatPlaceholder(tt.n); got != tt.want {
			t.Errorf("repeatPlaceholder(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
