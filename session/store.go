package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned by [Store.FindByID] and [Store.Revoke] when no
// record exists for the given identifier.
var ErrNotFound = errors.New("session record not found")

// Store is the persistence contract for refresh-session records. An
// identifier returned by Create must be immediately usable by FindByID; the
// engine assumes no eventual-consistency gap.
//
// Implementations must keep the Revoked flag monotonic: once true it never
// flips back, and Revoke on an already-revoked record is a no-op success.
type Store interface {
	// Create allocates a new active record for userID, assigns its
	// identifier, and returns it.
	Create(ctx context.Context, userID string, meta Metadata) (*Record, error)

	// FindByID returns the record with the given identifier or ErrNotFound.
	FindByID(ctx context.Context, id string) (*Record, error)

	// ListActiveByUser returns the non-revoked records owned by userID,
	// oldest first.
	ListActiveByUser(ctx context.Context, userID string) ([]Record, error)

	// Revoke marks the record revoked and returns the updated state.
	// Idempotent; returns ErrNotFound only when the record does not exist.
	Revoke(ctx context.Context, id string) (*Record, error)
}
