package goSession

import "context"

type clientIPContextKey struct{}
type userAgentContextKey struct{}
type accessClaimsContextKey struct{}

// WithClientIP attaches the caller's IP address to ctx. The engine records
// it in session metadata on IssuePair and in audit events.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPContextKey{}, ip)
}

// WithUserAgent attaches the HTTP User-Agent string to ctx. Stored as
// session metadata so session-management surfaces can describe each device.
func WithUserAgent(ctx context.Context, userAgent string) context.Context {
	return context.WithValue(ctx, userAgentContextKey{}, userAgent)
}

func clientIPFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	ip, _ := ctx.Value(clientIPContextKey{}).(string)
	return ip
}

func userAgentFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	userAgent, _ := ctx.Value(userAgentContextKey{}).(string)
	return userAgent
}

// WithAccessClaims attaches verified access-credential claims to ctx. Used
// by the middleware package after ParseAccess succeeds.
func WithAccessClaims(ctx context.Context, claims *AccessClaims) context.Context {
	return context.WithValue(ctx, accessClaimsContextKey{}, claims)
}

// AccessClaimsFromContext returns the verified claims previously attached by
// [WithAccessClaims], or nil.
func AccessClaimsFromContext(ctx context.Context) *AccessClaims {
	if ctx == nil {
		return nil
	}

	claims, _ := ctx.Value(accessClaimsContextKey{}).(*AccessClaims)
	return claims
}
