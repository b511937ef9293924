// Package session defines the persisted refresh-session model and the
// storage contract the engine consumes, plus an in-memory implementation
// suitable for tests and single-process deployments.
//
// A Record moves through exactly two states: Active (Revoked=false) and
// Revoked (Revoked=true). The transition is one-way; no Store implementation
// may reset the flag, and records are never deleted (soft revocation only).
// Credential expiry is not a store concern: it is enforced by the token's own
// embedded expiry claim at decode time.
package session
