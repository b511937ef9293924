package goSession

import (
	"context"
	"time"

	"github.com/Kade-Lor/goSession/internal/flows"
	"github.com/Kade-Lor/goSession/jwt"
	"github.com/Kade-Lor/goSession/session"
)

// Resolve decodes a presented refresh credential and cross-checks it against
// the persisted session record: signature, expiry, claim completeness,
// record existence, ownership, revocation, and subject existence, in that
// order. On success it returns the owning principal and the backing record.
//
// Every rejection returns [ErrSessionInvalid]. The internal cause is counted
// in metrics and written to the audit stream, never exposed to the caller.
// Infrastructure failures of the store or directory return
// [ErrBackendUnavailable] instead.
func (e *Engine) Resolve(ctx context.Context, refreshToken string) (*Principal, *session.Record, error) {
	if e == nil || e.store == nil || e.directory == nil || e.jwtManager == nil {
		return nil, nil, ErrEngineNotReady
	}

	start := time.Now()
	var principal *Principal

	result := flows.RunResolve(ctx, refreshToken, flows.ResolveDeps{
		ParseRefresh: func(token string) (string, string, error) {
			claims, err := e.jwtManager.ParseRefresh(token)
			if err != nil {
				return "", "", err
			}
			return claims.SID, claims.UID, nil
		},
		TokenExpired: jwt.ErrTokenExpired,
		FindRecord:   e.store.FindByID,
		LookupUser: func(ctx context.Context, uid string) (bool, error) {
			p, err := e.directory.FindByID(ctx, uid)
			if err != nil {
				return false, err
			}
			if p == nil {
				return false, nil
			}
			principal = p
			return true, nil
		},
	})

	e.metricObserve(MetricResolveLatency, time.Since(start))

	if result.Failure != flows.ResolveFailureNone {
		metric, cause, mapped := classifyResolveFailure(result.Failure)
		e.metricInc(metric)
		e.emitAudit(ctx, auditEventResolve, false, result.UserID, result.SessionID, cause, result.Err, nil)
		return nil, nil, mapped
	}

	e.metricInc(MetricResolveSuccess)
	e.emitAudit(ctx, auditEventResolve, true, result.UserID, result.SessionID, "", nil, nil)

	return principal, result.Record, nil
}

// RefreshAccess resolves the presented refresh credential and mints a fresh
// access credential for its owner. The refresh credential is not rotated and
// not revoked; it stays valid until expiry or explicit revocation.
//
// RefreshAccess may return an error when input validation, dependency calls, or security checks fail.
func (e *Engine) RefreshAccess(ctx context.Context, refreshToken string) (string, error) {
	principal, _, err := e.Resolve(ctx, refreshToken)
	if err != nil {
		e.metricInc(MetricRefreshFailure)
		return "", err
	}

	accessToken, err := e.jwtManager.CreateAccess(principal.ID, principal.Email)
	if err != nil {
		e.metricInc(MetricRefreshFailure)
		e.emitAudit(ctx, auditEventRefreshAccess, false, principal.ID, "", causeSigner, err, nil)
		return "", ErrBackendUnavailable
	}

	e.metricInc(MetricRefreshSuccess)
	e.emitAudit(ctx, auditEventRefreshAccess, true, principal.ID, "", "", nil, nil)

	return accessToken, nil
}

// ListSessions returns userID's active (non-revoked) session records, oldest
// first. Thin pass-through for session-management surfaces; authorization of
// the caller is the outer layer's concern.
//
// ListSessions may return an error when input validation, dependency calls, or security checks fail.
func (e *Engine) ListSessions(ctx context.Context, userID string) ([]session.Record, error) {
	if e == nil || e.store == nil {
		return nil, ErrEngineNotReady
	}

	records, err := e.store.ListActiveByUser(ctx, userID)
	if err != nil {
		e.metricInc(MetricBackendFailure)
		e.emitAudit(ctx, auditEventListSessions, false, userID, "", causeBackend, err, nil)
		return nil, ErrBackendUnavailable
	}

	e.metricInc(MetricSessionsListed)
	return records, nil
}

// RevokeSession marks sessionID revoked on behalf of requestingUserID and
// returns the updated record. The transition is one-way and idempotent:
// revoking an already-revoked session succeeds. Unlike Resolve, failures
// here are differentiated — the caller is already authenticated, so
// [ErrSessionNotFound] and [ErrNotSessionOwner] leak nothing sensitive.
func (e *Engine) RevokeSession(ctx context.Context, sessionID, requestingUserID string) (*session.Record, error) {
	if e == nil || e.store == nil {
		return nil, ErrEngineNotReady
	}

	result := flows.RunRevoke(ctx, sessionID, requestingUserID, flows.RevokeDeps{
		FindRecord: e.store.FindByID,
		Revoke:     e.store.Revoke,
	})

	switch result.Failure {
	case flows.RevokeFailureNone:
		e.metricInc(MetricRevokeSuccess)
		e.emitAudit(ctx, auditEventRevokeSession, true, requestingUserID, sessionID, "", nil, nil)
		return result.Record, nil
	case flows.RevokeFailureNotFound:
		e.metricInc(MetricRevokeNotFound)
		e.emitAudit(ctx, auditEventRevokeSession, false, requestingUserID, sessionID, causeSessionNotFound, result.Err, nil)
		return nil, ErrSessionNotFound
	case flows.RevokeFailureNotOwner:
		e.metricInc(MetricRevokeNotOwner)
		e.emitAudit(ctx, auditEventRevokeSession, false, requestingUserID, sessionID, causeNotOwner, result.Err, nil)
		return nil, ErrNotSessionOwner
	default:
		e.metricInc(MetricBackendFailure)
		e.emitAudit(ctx, auditEventRevokeSession, false, requestingUserID, sessionID, causeBackend, result.Err, nil)
		return nil, ErrBackendUnavailable
	}
}

func classifyResolveFailure(kind flows.ResolveFailureKind) (MetricID, string, error) {
	switch kind {
	case flows.ResolveFailureDecodeExpired:
		return MetricResolveExpired, causeExpired, ErrSessionInvalid
	case flows.ResolveFailureDecodeMalformed:
		return MetricResolveMalformed, causeMalformed, ErrSessionInvalid
	case flows.ResolveFailureSessionNotFound:
		return MetricResolveSessionNotFound, causeSessionNotFound, ErrSessionInvalid
	case flows.ResolveFailureOwnerMismatch:
		return MetricResolveOwnerMismatch, causeOwnerMismatch, ErrSessionInvalid
	case flows.ResolveFailureRevoked:
		return MetricResolveRevoked, causeRevoked, ErrSessionInvalid
	case flows.ResolveFailureUserNotFound:
		return MetricResolveUserNotFound, causeUserNotFound, ErrSessionInvalid
	default:
		return MetricBackendFailure, causeBackend, ErrBackendUnavailable
	}
}
