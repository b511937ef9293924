package flows

import (
	"context"
	"errors"

	"github.com/Kade-Lor/goSession/session"
)

// RevokeFailureKind classifies revoke flow failures for root-level mapping.
type RevokeFailureKind int

const (
	RevokeFailureNone RevokeFailureKind = iota
	RevokeFailureNotFound
	RevokeFailureNotOwner
	RevokeFailureStore
)

// RevokeResult carries either the revoked record or failure metadata.
type RevokeResult struct {
	Failure   RevokeFailureKind
	Err       error
	SessionID string
	Record    *session.Record
}

// RevokeDeps captures revoke flow dependencies.
type RevokeDeps struct {
	FindRecord func(ctx context.Context, id string) (*session.Record, error)
	Revoke     func(ctx context.Context, id string) (*session.Record, error)
}

// RunRevoke revokes sessionID on behalf of requestingUserID. Unlike resolve,
// the caller here is already authenticated, so not-found and not-owner are
// reported distinctly. The ownership check precedes the write; a mismatch
// leaves the record's flag untouched.
func RunRevoke(ctx context.Context, sessionID, requestingUserID string, deps RevokeDeps) RevokeResult {
	rec, err := deps.FindRecord(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return RevokeResult{
				Failure:   RevokeFailureNotFound,
				Err:       err,
				SessionID: sessionID,
			}
		}
		return RevokeResult{
			Failure:   RevokeFailureStore,
			Err:       err,
			SessionID: sessionID,
		}
	}

	if rec.UserID != requestingUserID {
		return RevokeResult{
			Failure:   RevokeFailureNotOwner,
			Err:       errors.New("session owned by another subject"),
			SessionID: sessionID,
			Record:    rec,
		}
	}

	updated, err := deps.Revoke(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return RevokeResult{
				Failure:   RevokeFailureNotFound,
				Err:       err,
				SessionID: sessionID,
			}
		}
		return RevokeResult{
			Failure:   RevokeFailureStore,
			Err:       err,
			SessionID: sessionID,
		}
	}

	return RevokeResult{
		Failure:   RevokeFailureNone,
		SessionID: sessionID,
		Record:    updated,
	}
}
