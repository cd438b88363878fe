package auth

import "context"

// Service maps the authentication operations to the backend. Login is the
// only call that yields a bearer token; registration always creates a
// member-role identity and the user logs in afterwards.
type Service interface {
	Login(ctx context.Context, req LoginReq) (*Identity, error)
	Register(ctx context.Context, req RegisterReq) error
}
