package outbound

import (
	"context"
	"time"
)

// AuthSession is an authenticated session issued by the identity provider.
type AuthSession struct {
	UID       string
	Token     string
	ExpiresAt time.Time
}

// IdentityProvider abstracts account credentials and session tokens. The
// application never sees passwords beyond this boundary. Provider failures
// carry the fixed error codes from pkg/errors (invalid credential, email in
// use, weak password, too many requests, user not found).
type IdentityProvider interface {
	CreateAccount(ctx context.Context, email, password string) (uid string, err error)
	SignIn(ctx context.Context, email, password string) (*AuthSession, error)
	SignOut(ctx context.Context, token string) error
	SendPasswordReset(ctx context.Context, email string) error

	// ResolveToken maps a bearer token to the uid it was issued for.
	ResolveToken(ctx context.Context, token string) (uid string, err error)
}
