package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mmynk/splitconsole/internal/models"
)

// CreateAdvance persists a new advance payment to the database.
func (s *Store) CreateAdvance(ctx context.Context, advance *models.AdvancePayment) error {
	if advance.ID == "" {
		advance.ID = uuid.New().String()
	}
	if advance.CreatedAt == 0 {
		advance.CreatedAt = time.Now().Unix()
	}

	var note interface{} = nil
	if advance.Note != "" {
		note = advance.Note
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	_, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO advances (id, from_member, to_member, amount, note, occurred_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`),
		advance.ID, advance.From, advance.To, advance.Amount, note,
		advance.Timestamp.Unix(), advance.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert advance: %w", err)
	}

	return nil
}

// ListAdvances retrieves all advance payments in ledger order.
func (s *Store) ListAdvances(ctx context.Context) ([]*models.AdvancePayment, error) {
	return s.listAdvances(ctx, s.db)
}

func (s *Store) listAdvances(ctx context.Context, q querier) ([]*models.AdvancePayment, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, from_member, to_member, amount, note, occurred_at, created_at
		 FROM advances ORDER BY seq`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list advances: %w", err)
	}
	defer rows.Close()

	var advances []*models.AdvancePayment
	for rows.Next() {
		advance := &models.AdvancePayment{}
		var note sql.NullString
		var occurredAt int64

		if err := rows.Scan(&advance.ID, &advance.From, &advance.To, &advance.Amount,
			&note, &occurredAt, &advance.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan advance: %w", err)
		}

		if note.Valid {
			advance.Note = note.String
		}
		advance.Timestamp = time.Unix(occurredAt, 0).UTC()

		advances = append(advances, advance)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate advances: %w", err)
	}

	return advances, nil
}
