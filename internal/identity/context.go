package identity

import "context"

type contextKey struct{}

// WithIdentity stores the verified caller on the context
func WithIdentity(ctx context.Context, ident *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, ident)
}

// FromContext returns the verified caller, if the request passed auth
func FromContext(ctx context.Context) (*Identity, bool) {
	ident, ok := ctx.Value(contextKey{}).(*Identity)
	return ident, ok
}
