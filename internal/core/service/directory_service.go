package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/fieldstation/admin-console/internal/core/domain"
	"github.com/fieldstation/admin-console/internal/core/ports"
)

// DirectoryService backs the admin view's user table. It keeps a read-only
// cache of the server's listing; mutations and session teardown invalidate
// the cache so the next render is a fresh fetch, never a local splice. The
// server stays the single source of truth for who exists, and no listing
// fetched under one principal is ever served to the next.
type DirectoryService struct {
	client  ports.AuthClient
	store   ports.TokenStore
	session *SessionService
	logger  zerolog.Logger

	mu    sync.Mutex
	users []domain.UserRecord
	fresh bool
}

func NewDirectoryService(client ports.AuthClient, store ports.TokenStore, session *SessionService, logger zerolog.Logger) *DirectoryService {
	d := &DirectoryService{
		client:  client,
		store:   store,
		session: session,
		logger:  logger,
	}
	session.OnTeardown(d.Invalidate)
	return d
}

// Invalidate drops the cached listing. Runs after a delete, on session
// teardown, and when the operator asks for a refresh.
func (d *DirectoryService) Invalidate() {
	d.mu.Lock()
	d.users = nil
	d.fresh = false
	d.mu.Unlock()
}

// Users returns the cached listing, refetching from the server when the
// cache has been invalidated. An unauthorized response expires the session.
func (d *DirectoryService) Users(ctx context.Context) ([]domain.UserRecord, ports.Outcome) {
	d.mu.Lock()
	if d.fresh {
		users := d.users
		d.mu.Unlock()
		return users, ports.Outcome{}
	}
	d.mu.Unlock()

	token, _ := d.store.Token()
	users, err := d.client.ListUsers(ctx, token)
	if err != nil {
		if domain.SessionExpired(err) {
			return nil, d.session.Expire()
		}
		msg := domain.ServerMessage(err)
		if msg == "" {
			msg = "Failed to fetch users"
		}
		d.logger.Error().Err(err).Msg("user listing failed")
		return nil, ports.Outcome{Message: msg, Failed: true}
	}

	d.mu.Lock()
	d.users = users
	d.fresh = true
	d.mu.Unlock()

	return users, ports.Outcome{}
}

// DeleteUser removes a user by id. Confirmation is the view's concern; this
// is only called after the operator confirmed. On success the cache is
// invalidated so the next Users call hits the server again.
func (d *DirectoryService) DeleteUser(ctx context.Context, id int64) ports.Outcome {
	token, _ := d.store.Token()
	if err := d.client.DeleteUser(ctx, id, token); err != nil {
		if domain.SessionExpired(err) {
			return d.session.Expire()
		}
		msg := domain.ServerMessage(err)
		if msg == "" {
			msg = "Delete failed"
		}
		d.logger.Error().Err(err).Int64("user_id", id).Msg("delete failed")
		return ports.Outcome{Message: msg, Failed: true}
	}

	d.Invalidate()

	d.logger.Info().Int64("user_id", id).Msg("user deleted")
	return ports.Outcome{Message: "User deleted"}
}

var _ ports.DirectoryService = (*DirectoryService)(nil)
