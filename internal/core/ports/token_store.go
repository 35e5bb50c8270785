package ports

import "github.com/fieldstation/admin-console/internal/core/domain"

// TokenStore owns the anti-forgery token and the authenticated principal for
// the lifetime of the process. Only the session layer writes to it. It never
// performs network I/O; SetPrincipal additionally persists the principal so
// a restarted console resumes its session.
type TokenStore interface {
	Token() (string, bool)
	SetToken(token string)
	Principal() (*domain.Principal, bool)
	SetPrincipal(p *domain.Principal) error
	// Clear erases both token and principal. Idempotent.
	Clear()
}
