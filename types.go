package goSession

import "context"

// Principal is the minimal authenticated user view consumed and produced by
// the engine. It is an immutable snapshot; mutating a returned Principal has
// no effect on the directory it came from.
type Principal struct {
	ID    string
	Email string
}

// UserDirectory resolves subject identifiers to user records. It is the
// primary interface callers must implement to integrate goSession with their
// user database.
//
// FindByID must be safe to call with any identifier, including ones with no
// matching record: an absent user is (nil, nil), never an error. Errors are
// reserved for infrastructure failures and surface as [ErrBackendUnavailable].
type UserDirectory interface {
	FindByID(ctx context.Context, id string) (*Principal, error)
}

// TokenPair is returned by [Engine.IssuePair]. SessionID identifies the
// server-side record backing RefreshToken; AccessToken is stateless and never
// persisted.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	SessionID    string
}
