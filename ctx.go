package roster

import "context"

type contextKey string

const claimsContextKey contextKey = "roster:claims"

// WithClaimsContext stores validated claims in a standard context.
func WithClaimsContext(ctx context.Context, claims AuthClaims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// GetClaimsContext retrieves claims stored with WithClaimsContext.
func GetClaimsContext(ctx context.Context) (AuthClaims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(AuthClaims)
	return claims, ok
}
