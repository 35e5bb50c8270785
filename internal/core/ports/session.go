package ports

import (
	"context"
	"time"

	"github.com/fieldstation/admin-console/internal/core/domain"
)

// Navigation tells the view where to go once an operation has completed.
type Navigation struct {
	Route domain.Route
	// After delays the navigation; zero means navigate immediately.
	After time.Duration
}

// Outcome is what a view renders after an operation completes. The zero
// value means success with nothing to show and nowhere to go.
type Outcome struct {
	Message string
	Failed  bool
	Nav     *Navigation
}

// OK reports whether the operation succeeded.
func (o Outcome) OK() bool { return !o.Failed }

// SessionService drives the authentication flow: token acquisition on view
// mount, credential submission, role-based routing and session teardown.
type SessionService interface {
	// Mount acquires the anti-forgery token for an unauthenticated view.
	// Failure is non-fatal: the view renders anyway and later submits fail
	// server-side. No retry.
	Mount(ctx context.Context) error
	Login(ctx context.Context, creds domain.Credentials) Outcome
	Register(ctx context.Context, reg domain.Registration) Outcome
	Logout(ctx context.Context) Outcome
	Principal() (*domain.Principal, bool)
}

// DirectoryService serves the admin view's user listing. The listing is a
// read-only cache scoped to the session it was fetched in: mutations and
// session teardown invalidate it, and rows are never spliced locally.
type DirectoryService interface {
	Users(ctx context.Context) ([]domain.UserRecord, Outcome)
	DeleteUser(ctx context.Context, id int64) Outcome
	// Invalidate drops the cached listing so the next Users call hits the
	// server.
	Invalidate()
}
