// Package goSession provides a session credential engine built around paired
// JWTs: short-lived access tokens and longer-lived refresh tokens bound to
// revocable server-side session records.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// goSession is the public surface. It exposes [Engine], [Builder], [Config],
// and value types (TokenPair, Principal, MetricsSnapshot). Flow orchestration
// and audit dispatch live under internal/ and are never exported. Storage
// backends implement the [session.Store] contract; this package never assumes
// a concrete persistence engine.
//
// # What this package must NOT do
//
//   - Expose storage clients or wire encodings in its public API.
//   - Perform I/O outside of Engine methods (construction via Builder is
//     allocation-only until Build).
//   - Distinguish, at the API boundary, why a presented refresh credential
//     was rejected. Every Resolve rejection is ErrSessionInvalid; the precise
//     cause is available only through audit events and metrics.
//
// # Refresh semantics
//
// RefreshAccess does not rotate or invalidate the presented refresh
// credential. A refresh credential stays valid until its embedded expiry
// passes or its session record is revoked through RevokeSession. Callers who
// need single-use refresh tokens must layer that on top.
package goSession
