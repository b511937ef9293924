// Package internaldefs holds the shared metric definitions consumed by every
// exporter so counter names and histogram bounds cannot drift between
// export formats.
package internaldefs

import (
	goSession "github.com/Kade-Lor/goSession"
)

// CounterDef maps a [goSession.MetricID] to its exported name and help text.
type CounterDef struct {
	ID   goSession.MetricID
	Name string
	Help string
}

// HistogramDef maps a [goSession.MetricID] to its exported histogram name.
type HistogramDef struct {
	ID   goSession.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the session engine.
var CounterDefs = []CounterDef{
	{ID: goSession.MetricIssueSuccess, Name: "gosession_issue_success_total", Help: "Successful credential pair issuances."},
	{ID: goSession.MetricIssueFailure, Name: "gosession_issue_failure_total", Help: "Failed credential pair issuances."},
	{ID: goSession.MetricResolveSuccess, Name: "gosession_resolve_success_total", Help: "Successful refresh credential resolutions."},
	{ID: goSession.MetricResolveExpired, Name: "gosession_resolve_expired_total", Help: "Resolutions rejected for expired credentials."},
	{ID: goSession.MetricResolveMalformed, Name: "gosession_resolve_malformed_total", Help: "Resolutions rejected for malformed or forged credentials."},
	{ID: goSession.MetricResolveSessionNotFound, Name: "gosession_resolve_session_not_found_total", Help: "Resolutions referencing unknown session records."},
	{ID: goSession.MetricResolveOwnerMismatch, Name: "gosession_resolve_owner_mismatch_total", Help: "Resolutions whose subject claim did not own the session."},
	{ID: goSession.MetricResolveRevoked, Name: "gosession_resolve_revoked_total", Help: "Resolutions referencing revoked session records."},
	{ID: goSession.MetricResolveUserNotFound, Name: "gosession_resolve_user_not_found_total", Help: "Resolutions whose subject no longer exists in the directory."},
	{ID: goSession.MetricRefreshSuccess, Name: "gosession_refresh_success_total", Help: "Successful access credential refreshes."},
	{ID: goSession.MetricRefreshFailure, Name: "gosession_refresh_failure_total", Help: "Failed access credential refreshes."},
	{ID: goSession.MetricRevokeSuccess, Name: "gosession_revoke_success_total", Help: "Successful session revocations."},
	{ID: goSession.MetricRevokeNotFound, Name: "gosession_revoke_not_found_total", Help: "Revocations targeting unknown sessions."},
	{ID: goSession.MetricRevokeNotOwner, Name: "gosession_revoke_not_owner_total", Help: "Revocations rejected for ownership mismatch."},
	{ID: goSession.MetricSessionsListed, Name: "gosession_sessions_listed_total", Help: "Active session list operations."},
	{ID: goSession.MetricBackendFailure, Name: "gosession_backend_failure_total", Help: "Store, directory, or signer infrastructure failures."},
}

// HistogramDefs is an exported constant or variable used by the session engine.
var HistogramDefs = []HistogramDef{
	{ID: goSession.MetricResolveLatency, Name: "gosession_resolve_latency_seconds", Help: "Resolve latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the session engine.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the session engine.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets pads or truncates a raw snapshot slice to the fixed
// bucket count.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts to the cumulative form both
// exporters emit.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
