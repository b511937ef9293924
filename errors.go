package goSession

import "errors"

var (
	// ErrSessionInvalid is the uniform rejection returned by [Engine.Resolve]
	// and [Engine.RefreshAccess]. It deliberately covers expired signatures,
	// forged or malformed tokens, unknown sessions, ownership mismatches,
	// revoked sessions, and deleted users so that callers cannot probe which
	// check failed.
	ErrSessionInvalid = errors.New("invalid or expired session")
	// ErrSessionNotFound is returned by [Engine.RevokeSession] when the target
	// session id has no record.
	ErrSessionNotFound = errors.New("session not found")
	// ErrNotSessionOwner is returned by [Engine.RevokeSession] when the target
	// session belongs to a different subject.
	ErrNotSessionOwner = errors.New("session owned by another subject")
	// ErrBackendUnavailable is returned when the session store, the user
	// directory, or the signer fails for infrastructure reasons. The engine
	// never retries; callers decide on retry/backoff.
	ErrBackendUnavailable = errors.New("session backend unavailable")
	// ErrEngineNotReady is an exported constant or variable used by the session engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)
