package auth

import "context"

// claimsKey is the key type for storing verified claims in context.Context.
type claimsKey struct{}

// WithClaims returns a new context with the verified claims attached.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext retrieves the verified claims, or nil if the request was
// not authenticated.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, ok := ctx.Value(claimsKey{}).(*Claims)
	if !ok {
		return nil
	}
	return claims
}
