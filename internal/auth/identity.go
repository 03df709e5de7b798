// Package auth is the consume-only boundary to the external identity
// provider. It verifies the session cookie the provider minted and exposes
// the caller as an Identity; it never issues sessions or touches passwords.
package auth

import "context"

type Role string

const (
	RoleHacker Role = "hacker"
	RoleMentor Role = "mentor"
	RoleAdmin  Role = "admin"
)

// Identity is the authenticated caller. The core trusts it verbatim.
type Identity struct {
	UID  string
	Role Role
}

func (id Identity) IsMentor() bool {
	return id.Role == RoleMentor
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
