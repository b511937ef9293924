// Package jwt wraps github.com/golang-jwt/jwt/v5 behind a small codec for
// the two credential shapes goSession issues: stateless access tokens and
// session-bound refresh tokens.
//
// Parsing is hardened against algorithm substitution (strict valid-methods
// allowlist) and splits failures into exactly two sentinels: ErrTokenExpired
// for expiry and ErrTokenMalformed for everything else. Callers that need a
// uniform rejection surface collapse both; callers that log keep the split.
package jwt
