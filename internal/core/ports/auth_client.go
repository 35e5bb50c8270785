package ports

import (
	"context"

	"github.com/fieldstation/admin-console/internal/core/domain"
)

// LoginResult carries the server's success message alongside the principal.
type LoginResult struct {
	Message   string
	Principal *domain.Principal
}

// AuthClient performs the network operations against the user-administration
// server. Each call is a single round trip; failures are normalized to the
// domain error taxonomy with the server's message preserved verbatim. The
// client does not touch the TokenStore — callers pass the current token in.
type AuthClient interface {
	FetchToken(ctx context.Context) (string, error)
	Login(ctx context.Context, creds domain.Credentials, token string) (*LoginResult, error)
	Register(ctx context.Context, reg domain.Registration, token string) (string, error)
	Logout(ctx context.Context, token string) error
	ListUsers(ctx context.Context, token string) ([]domain.UserRecord, error)
	DeleteUser(ctx context.Context, id int64, token string) error
}
