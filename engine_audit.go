package goSession

import (
	"context"
	"time"
)

const (
	auditEventIssuePair     = "issue_pair"
	auditEventResolve       = "resolve"
	auditEventRefreshAccess = "refresh_access"
	auditEventRevokeSession = "revoke_session"
	auditEventListSessions  = "list_sessions"
)

// Audit cause codes. These name the internal reason for a rejection; the
// error returned to the caller stays uniform for resolve-path failures.
const (
	causeExpired         = "token_expired"
	causeMalformed       = "token_malformed"
	causeSessionNotFound = "session_not_found"
	causeOwnerMismatch   = "owner_mismatch"
	causeRevoked         = "session_revoked"
	causeUserNotFound    = "user_not_found"
	causeNotOwner        = "not_owner"
	causeBackend         = "backend_unavailable"
	causeSigner          = "signer_failure"
)

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	userID string,
	sessionID string,
	cause string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		UserID:    userID,
		SessionID: sessionID,
		IP:        clientIPFromContext(ctx),
		Success:   success,
		Cause:     cause,
		Metadata:  metadata,
	}
	if err != nil {
		event.Error = err.Error()
	}

	e.audit.Emit(ctx, event)
}
