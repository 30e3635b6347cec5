package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/splitconsole/internal/models"
)

// CreateMember inserts member credentials into the database.
func (s *Store) CreateMember(ctx context.Context, member *models.Member) error {
	query := s.rebind(`
		INSERT INTO members (id, name, password_hash, created_at)
		VALUES (?, ?, ?, ?)
	`)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	_, err := s.db.ExecContext(ctx, query,
		member.ID,
		member.Name,
		member.PasswordHash,
		member.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}

	return nil
}

// GetMember retrieves member credentials by name.
func (s *Store) GetMember(ctx context.Context, name string) (*models.Member, error) {
	query := s.rebind(`
		SELECT id, name, password_hash, created_at
		FROM members
		WHERE name = ?
	`)

	member := &models.Member{}
	err := s.db.QueryRowContext(ctx, query, name).Scan(
		&member.ID,
		&member.Name,
		&member.PasswordHash,
		&member.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil // Member has not registered
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return member, nil
}
