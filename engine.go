package goSession

import (
	"context"
	"time"

	internalaudit "github.com/Kade-Lor/goSession/internal/audit"
	"github.com/Kade-Lor/goSession/jwt"
	"github.com/Kade-Lor/goSession/session"
)

// AccessClaims re-exports the verified access-credential payload for callers
// that do not import the jwt subpackage directly.
type AccessClaims = jwt.AccessClaims

// Engine defines a public type used by goSession APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config     Config
	store      session.Store
	directory  UserDirectory
	jwtManager *jwt.Manager
	audit      *internalaudit.Dispatcher
	metrics    *Metrics
}

// Close drains and stops the audit dispatcher. Safe on a nil engine.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped reports audit events lost to dispatcher backpressure.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot returns a point-in-time copy of all engine counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

func (e *Engine) metricObserve(id MetricID, d time.Duration) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Observe(id, d)
}

// ParseAccess verifies a presented access credential and returns its claims.
// Stateless: no store round-trip, so a revoked session's access credentials
// stay valid until their natural expiry.
//
// ParseAccess may return an error when input validation, dependency calls, or security checks fail.
func (e *Engine) ParseAccess(token string) (*AccessClaims, error) {
	if e == nil || e.jwtManager == nil {
		return nil, ErrEngineNotReady
	}
	return e.jwtManager.ParseAccess(token)
}

// IssuePair persists a new active session record for principal and signs the
// credential pair bound to it. Prior records for the same subject are not
// touched: sessions are independent, not rotated chains.
//
// IssuePair may return an error when input validation, dependency calls, or security checks fail.
func (e *Engine) IssuePair(ctx context.Context, principal Principal, meta session.Metadata) (TokenPair, error) {
	if e == nil || e.store == nil || e.jwtManager == nil {
		return TokenPair{}, ErrEngineNotReady
	}

	if meta.IP == "" {
		meta.IP = clientIPFromContext(ctx)
	}
	if meta.UserAgent == "" {
		meta.UserAgent = userAgentFromContext(ctx)
	}

	rec, err := e.store.Create(ctx, principal.ID, meta)
	if err != nil {
		e.metricInc(MetricIssueFailure)
		e.metricInc(MetricBackendFailure)
		e.emitAudit(ctx, auditEventIssuePair, false, principal.ID, "", causeBackend, err, nil)
		return TokenPair{}, ErrBackendUnavailable
	}

	refreshToken, err := e.jwtManager.CreateRefresh(rec.ID, principal.ID)
	if err != nil {
		e.metricInc(MetricIssueFailure)
		e.emitAudit(ctx, auditEventIssuePair, false, principal.ID, rec.ID, causeSigner, err, nil)
		return TokenPair{}, ErrBackendUnavailable
	}

	accessToken, err := e.jwtManager.CreateAccess(principal.ID, principal.Email)
	if err != nil {
		e.metricInc(MetricIssueFailure)
		e.emitAudit(ctx, auditEventIssuePair, false, principal.ID, rec.ID, causeSigner, err, nil)
		return TokenPair{}, ErrBackendUnavailable
	}

	e.metricInc(MetricIssueSuccess)
	e.emitAudit(ctx, auditEventIssuePair, true, principal.ID, rec.ID, "", nil, func() map[string]string {
		if meta.UserAgent == "" {
			return nil
		}
		return map[string]string{"user_agent": meta.UserAgent}
	})

	return TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    rec.ID,
	}, nil
}
