package flows

import (
	"context"
	"errors"

	"github.com/Kade-Lor/goSession/session"
)

// ResolveFailureKind classifies resolve flow failures for root-level mapping.
type ResolveFailureKind int

const (
	ResolveFailureNone ResolveFailureKind = iota
	ResolveFailureDecodeExpired
	ResolveFailureDecodeMalformed
	ResolveFailureSessionNotFound
	ResolveFailureOwnerMismatch
	ResolveFailureRevoked
	ResolveFailureUserNotFound
	ResolveFailureStore
	ResolveFailureDirectory
)

// ResolveResult carries either the resolved record or failure metadata.
type ResolveResult struct {
	Failure   ResolveFailureKind
	Err       error
	SessionID string
	UserID    string
	Record    *session.Record
}

// ResolveDeps captures resolve flow dependencies.
type ResolveDeps struct {
	ParseRefresh func(token string) (sid string, uid string, err error)
	TokenExpired error
	FindRecord   func(ctx context.Context, id string) (*session.Record, error)
	LookupUser   func(ctx context.Context, uid string) (found bool, err error)
}

// RunResolve executes the refresh-credential resolution sequence. The order
// of checks is load-bearing: decode, then record existence, then ownership,
// then revocation, then user existence. A record is never consulted before
// the signature verifies, and the record is read-only throughout, so
// concurrent resolves of the same credential are independent.
func RunResolve(ctx context.Context, refreshToken string, deps ResolveDeps) ResolveResult {
	sid, uid, err := deps.ParseRefresh(refreshToken)
	if err != nil {
		failure := ResolveFailureDecodeMalformed
		if deps.TokenExpired != nil && errors.Is(err, deps.TokenExpired) {
			failure = ResolveFailureDecodeExpired
		}
		return ResolveResult{
			Failure: failure,
			Err:     err,
		}
	}

	rec, err := deps.FindRecord(ctx, sid)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			// An unknown or stale session id is indistinguishable from a
			// garbage claim at the boundary.
			return ResolveResult{
				Failure:   ResolveFailureSessionNotFound,
				Err:       err,
				SessionID: sid,
				UserID:    uid,
			}
		}
		return ResolveResult{
			Failure:   ResolveFailureStore,
			Err:       err,
			SessionID: sid,
			UserID:    uid,
		}
	}

	if rec.UserID != uid {
		return ResolveResult{
			Failure:   ResolveFailureOwnerMismatch,
			Err:       errors.New("subject claim does not own session"),
			SessionID: sid,
			UserID:    uid,
			Record:    rec,
		}
	}

	if rec.Revoked {
		return ResolveResult{
			Failure:   ResolveFailureRevoked,
			Err:       errors.New("session revoked"),
			SessionID: sid,
			UserID:    uid,
			Record:    rec,
		}
	}

	found, err := deps.LookupUser(ctx, uid)
	if err != nil {
		return ResolveResult{
			Failure:   ResolveFailureDirectory,
			Err:       err,
			SessionID: sid,
			UserID:    uid,
			Record:    rec,
		}
	}
	if !found {
		return ResolveResult{
			Failure:   ResolveFailureUserNotFound,
			Err:       errors.New("subject not in directory"),
			SessionID: sid,
			UserID:    uid,
			Record:    rec,
		}
	}

	return ResolveResult{
		Failure:   ResolveFailureNone,
		SessionID: sid,
		UserID:    uid,
		Record:    rec,
	}
}
