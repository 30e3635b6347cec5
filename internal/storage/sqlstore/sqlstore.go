// Package sqlstore provides a SQL-backed implementation of the storage.Store interface.
// SQLite (pure Go, no CGO) is the default backend; Postgres is supported through lib/pq.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"  // Postgres driver
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/splitconsole/internal/models"
	"github.com/mmynk/splitconsole/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

type dialect int

const (
	sqliteDialect dialect = iota
	postgresDialect
)

// Store implements storage.Store on database/sql.
type Store struct {
	db      *sql.DB
	dialect dialect

	// writeMu serializes writers so every read sees whole appends.
	writeMu sync.Mutex
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// NewSQLite creates a Store backed by the SQLite file at dbPath.
// It creates the parent directories and runs migrations automatically.
func NewSQLite(dbPath string) (*Store, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows one writer at a time.
	db.SetMaxOpenConns(1)

	return open(db, sqliteDialect, sqliteSchema)
}

// NewPostgres creates a Store backed by the Postgres database at dsn.
func NewPostgres(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return open(db, postgresDialect, postgresSchema)
}

func open(db *sql.DB, d dialect, schema string) (*Store, error) {
	if err := runMigrations(context.Background(), db, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return &Store{db: db, dialect: d}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// rebind rewrites ? placeholders to $n for Postgres.
func (s *Store) rebind(query string) string {
	if s.dialect != postgresDialect {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CreateExpense persists a new expense to the database.
func (s *Store) CreateExpense(ctx context.Context, expense *models.Expense) error {
	// Generate ID if not set
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	_, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO expenses (id, amount, payer, category, subcategory, description, occurred_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		expense.ID, expense.Amount, expense.Payer, expense.Category, expense.SubCategory,
		expense.Description, expense.Timestamp.Unix(), expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	return nil
}

const expenseColumns = `id, amount, payer, category, subcategory, description, occurred_at, created_at`

func scanExpense(row interface{ Scan(...any) error }) (*models.Expense, error) {
	expense := &models.Expense{}
	var occurredAt int64
	if err := row.Scan(&expense.ID, &expense.Amount, &expense.Payer, &expense.Category,
		&expense.SubCategory, &expense.Description, &occurredAt, &expense.CreatedAt); err != nil {
		return nil, err
	}
	expense.Timestamp = time.Unix(occurredAt, 0).UTC()
	return expense, nil
}

// GetExpense retrieves an expense by ID.
func (s *Store) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT `+expenseColumns+` FROM expenses WHERE id = ?`), id)

	expense, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return expense, nil
}

// ListExpenses retrieves expenses matching filter, oldest entry first.
func (s *Store) ListExpenses(ctx context.Context, filter models.ExpenseFilter) ([]*models.Expense, error) {
	return s.listExpenses(ctx, s.db, filter)
}

func (s *Store) listExpenses(ctx context.Context, q querier, filter models.ExpenseFilter) ([]*models.Expense, error) {
	var where []string
	var args []any

	if len(filter.Categories) > 0 {
		where = append(where, "category IN (?"+repeatPlaceholder(len(filter.Categories)-1)+")")
		for _, c := range filter.Categories {
			args = append(args, c)
		}
	}
	if !filter.From.IsZero() {
		where = append(where, "occurred_at >= ?")
		args = append(args, filter.From.Unix())
	}
	if !filter.To.IsZero() {
		where = append(where, "occurred_at <= ?")
		args = append(args, filter.To.Unix())
	}

	query := `SELECT ` + expenseColumns + ` FROM expenses`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY seq"

	rows, err := q.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, nil
}

// Snapshot reads the whole ledger inside one read transaction.
func (s *Store) Snapshot(ctx context.Context) (*storage.Snapshot, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: s.dialect == postgresDialect})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	snap := &storage.Snapshot{}
	if snap.Expenses, err = s.listExpenses(ctx, tx, models.ExpenseFilter{}); err != nil {
		return nil, err
	}
	if snap.Advances, err = s.listAdvances(ctx, tx); err != nil {
		return nil, err
	}
	if snap.Settled, err = s.listSettledRecords(ctx, tx); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return snap, nil
}

// repeatPlaceholder returns a string of ", ?" repeated n times.
// Used for building IN clauses with multiple placeholders.
func repeatPlaceholder(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(", ?", n)
}
