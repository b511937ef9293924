// Package postgres implements the session.Store contract on PostgreSQL via
// pgx. Revocation is a soft UPDATE; rows are never deleted, preserving the
// audit trail of revoked sessions.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kade-Lor/goSession/session"
)

const (
	migrateQuery = `
CREATE TABLE IF NOT EXISTS refresh_sessions (
  id         UUID PRIMARY KEY,
  user_id    TEXT NOT NULL,
  revoked    BOOLEAN NOT NULL DEFAULT FALSE,
  ip         TEXT NOT NULL DEFAULT '',
  user_agent TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS refresh_sessions_user_active_idx
  ON refresh_sessions (user_id, created_at)
  WHERE NOT revoked
`

	createQuery = `
INSERT INTO refresh_sessions (id, user_id, ip, user_agent, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, user_id, revoked, ip, user_agent, created_at
`

	findQuery = `
SELECT id, user_id, revoked, ip, user_agent, created_at
FROM refresh_sessions
WHERE id = $1
`

	listActiveQuery = `
SELECT id, user_id, revoked, ip, user_agent, created_at
FROM refresh_sessions
WHERE user_id = $1 AND NOT revoked
ORDER BY created_at, id
`

	revokeQuery = `
UPDATE refresh_sessions
SET revoked = TRUE
WHERE id = $1
RETURNING id, user_id, revoked, ip, user_agent, created_at
`
)

// Store is a PostgreSQL-backed [session.Store].
type Store struct {
	pool *pgxpool.Pool
}

// NewStore binds a store to an existing pgx pool. The pool's lifecycle stays
// with the caller.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Migrate creates the refresh_sessions table and its partial index if they
// do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, migrateQuery); err != nil {
		return fmt.Errorf("migrate refresh_sessions: %w", err)
	}
	return nil
}

// Create describes the create operation and its observable behavior.
//
// Create may return an error when input validation, dependency calls, or security checks fail.
func (s *Store) Create(ctx context.Context, userID string, meta session.Metadata) (*session.Record, error) {
	row := s.pool.QueryRow(ctx, createQuery,
		uuid.NewString(), userID, meta.IP, meta.UserAgent, time.Now().UTC())
	rec, err := scanRecord(row)
	if err != nil {
		return nil, fmt.Errorf("create session record: %w", err)
	}
	return rec, nil
}

// FindByID describes the findbyid operation and its observable behavior.
//
// FindByID may return an error when input validation, dependency calls, or security checks fail.
func (s *Store) FindByID(ctx context.Context, id string) (*session.Record, error) {
	rec, err := scanRecord(s.pool.QueryRow(ctx, findQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, session.ErrNotFound
		}
		return nil, fmt.Errorf("find session record: %w", err)
	}
	return rec, nil
}

// ListActiveByUser describes the listactivebyuser operation and its observable behavior.
//
// ListActiveByUser may return an error when input validation, dependency calls, or security checks fail.
func (s *Store) ListActiveByUser(ctx context.Context, userID string) ([]session.Record, error) {
	rows, err := s.pool.Query(ctx, listActiveQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("list session records: %w", err)
	}
	defer rows.Close()

	out := make([]session.Record, 0, 4)
	for rows.Next() {
		var rec session.Record
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Revoked, &rec.IP, &rec.UserAgent, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan session record: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list session records: %w", err)
	}

	return out, nil
}

// Revoke describes the revoke operation and its observable behavior.
//
// Revoke may return an error when input validation, dependency calls, or security checks fail.
func (s *Store) Revoke(ctx context.Context, id string) (*session.Record, error) {
	rec, err := scanRecord(s.pool.QueryRow(ctx, revokeQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, session.ErrNotFound
		}
		return nil, fmt.Errorf("revoke session record: %w", err)
	}
	return rec, nil
}

func scanRecord(row pgx.Row) (*session.Record, error) {
	var rec session.Record
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.Revoked, &rec.IP, &rec.UserAgent, &rec.CreatedAt); err != nil {
		return nil, err
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	return &rec, nil
}
