package auth

import "context"

type contextKey string

const identityKey = contextKey("identity")

// Identity describes the signed-in account for the lifetime of one request.
type Identity struct {
	UserID uint
	Name   string
	Email  string
	Admin  bool
}

// WithIdentity stores the identity in ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// FromContext returns the identity carried by ctx. Anonymous requests report false.
func FromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	id, ok := ctx.Value(identityKey).(Identity)
	if !ok || id.UserID == 0 {
		return Identity{}, false
	}
	return id, true
}
