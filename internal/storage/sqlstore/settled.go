package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mmynk/splitconsole/internal/models"
)

// CreateSettledRecords appends settled split entries in one transaction.
// Records whose (payer, payee, timestamp) is already stored are skipped.
func (s *Store) CreateSettledRecords(ctx context.Context, records []*models.SettledRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := s.rebind(
		`INSERT INTO settled_records (id, payer, payee, owed, description, occurred_at, settled_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (payer, payee, occurred_at) DO NOTHING`)

	now := time.Now().Unix()
	added := 0
	for _, rec := range records {
		if rec.ID == "" {
			rec.ID = uuid.New().String()
		}
		if rec.CreatedAt == 0 {
			rec.CreatedAt = now
		}

		res, err := tx.ExecContext(ctx, query,
			rec.ID, rec.Payer, rec.Payee, rec.Owed, rec.Description,
			rec.Timestamp.Unix(), rec.SettledBy, rec.CreatedAt,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert settled record: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to read affected rows: %w", err)
		}
		added += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return added, nil
}

// ListSettledRecords retrieves all settled records in ledger order.
func (s *Store) ListSettledRecords(ctx context.Context) ([]*models.SettledRecord, error) {
	return s.listSettledRecords(ctx, s.db)
}

func (s *Store) listSettledRecords(ctx context.Context, q querier) ([]*models.SettledRecord, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, payer, payee, owed, description, occurred_at, settled_by, created_at
		 FROM settled_records ORDER BY seq`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settled records: %w", err)
	}
	defer rows.Close()

	var records []*models.SettledRecord
	for rows.Next() {
		rec := &models.SettledRecord{}
		var occurredAt int64

		if err := rows.Scan(&rec.ID, &rec.Payer, &rec.Payee, &rec.Owed, &rec.Description,
			&occurredAt, &rec.SettledBy, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan settled record: %w", err)
		}
		rec.Timestamp = time.Unix(occurredAt, 0).UTC()

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settled records: %w", err)
	}

	return records, nil
}
