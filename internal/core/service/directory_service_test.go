package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/fieldstation/admin-console/internal/core/domain"
)

func newDirectory(client *stubClient, store *stubStore) *DirectoryService {
	session := NewSessionService(client, store, zerolog.Nop())
	return NewDirectoryService(client, store, session, zerolog.Nop())
}

func TestDirectoryService_Users_FetchesOnceThenCaches(t *testing.T) {
	client := &stubClient{users: []domain.UserRecord{
		{ID: 1, Username: "alice", Role: domain.RoleAdmin},
		{ID: 2, Username: "bob", Role: domain.RoleGuest},
	}}
	store := &stubStore{token: "tok"}
	dir := newDirectory(client, store)

	users, out := dir.Users(context.Background())
	if !out.OK() {
		t.Fatalf("first fetch failed: %s", out.Message)
	}
	if len(users) != 2 || users[0].Username != "alice" {
		t.Fatalf("unexpected listing: %+v", users)
	}

	if _, out = dir.Users(context.Background()); !out.OK() {
		t.Fatalf("cached read failed: %s", out.Message)
	}
	if client.listCalls != 1 {
		t.Fatalf("expected a single server fetch, got %d", client.listCalls)
	}
}

func TestDirectoryService_DeleteInvalidatesCache(t *testing.T) {
	client := &stubClient{users: []domain.UserRecord{{ID: 1, Username: "alice"}}}
	store := &stubStore{token: "tok"}
	dir := newDirectory(client, store)

	if _, out := dir.Users(context.Background()); !out.OK() {
		t.Fatalf("seed fetch failed: %s", out.Message)
	}

	if out := dir.DeleteUser(context.Background(), 1); !out.OK() {
		t.Fatalf("delete failed: %s", out.Message)
	}

	// Next read must be a fresh fetch, not a local splice.
	client.users = nil
	users, out := dir.Users(context.Background())
	if !out.OK() {
		t.Fatalf("refetch failed: %s", out.Message)
	}
	if client.listCalls != 2 {
		t.Fatalf("expected refetch after delete, got %d fetches", client.listCalls)
	}
	if len(users) != 0 {
		t.Fatalf("expected server-provided listing, got %+v", users)
	}
}

func TestDirectoryService_LogoutDropsCache(t *testing.T) {
	client := &stubClient{users: []domain.UserRecord{{ID: 1, Username: "alice", Role: domain.RoleAdmin}}}
	store := &stubStore{token: "tok", principal: &domain.Principal{ID: 9, Username: "admin", Role: domain.RoleAdmin}}
	session := NewSessionService(client, store, zerolog.Nop())
	dir := NewDirectoryService(client, store, session, zerolog.Nop())

	if _, out := dir.Users(context.Background()); !out.OK() {
		t.Fatalf("seed fetch failed: %s", out.Message)
	}

	if out := session.Logout(context.Background()); out.Nav == nil || out.Nav.Route != domain.RouteLogin {
		t.Fatalf("expected navigation to login, got %+v", out.Nav)
	}

	// The next session must see the server's current listing, never the
	// previous session's cache.
	client.users = []domain.UserRecord{{ID: 2, Username: "bob", Role: domain.RoleGuest}}
	users, out := dir.Users(context.Background())
	if !out.OK() {
		t.Fatalf("post-logout fetch failed: %s", out.Message)
	}
	if client.listCalls != 2 {
		t.Fatalf("expected a fresh fetch after logout, got %d total fetches", client.listCalls)
	}
	if len(users) != 1 || users[0].Username != "bob" {
		t.Fatalf("previous session's cached listing served: %+v", users)
	}
}

func TestDirectoryService_ExpireDropsCache(t *testing.T) {
	client := &stubClient{users: []domain.UserRecord{{ID: 1, Username: "alice", Role: domain.RoleAdmin}}}
	store := &stubStore{token: "tok", principal: &domain.Principal{ID: 9, Username: "admin", Role: domain.RoleAdmin}}
	session := NewSessionService(client, store, zerolog.Nop())
	dir := NewDirectoryService(client, store, session, zerolog.Nop())

	if _, out := dir.Users(context.Background()); !out.OK() {
		t.Fatalf("seed fetch failed: %s", out.Message)
	}

	session.Expire()

	if _, out := dir.Users(context.Background()); !out.OK() {
		t.Fatalf("post-expiry fetch failed: %s", out.Message)
	}
	if client.listCalls != 2 {
		t.Fatalf("expected a fresh fetch after session expiry, got %d total fetches", client.listCalls)
	}
}

func TestDirectoryService_InvalidateForcesRefetch(t *testing.T) {
	client := &stubClient{users: []domain.UserRecord{{ID: 1, Username: "alice", Role: domain.RoleAdmin}}}
	store := &stubStore{token: "tok"}
	dir := newDirectory(client, store)

	if _, out := dir.Users(context.Background()); !out.OK() {
		t.Fatalf("seed fetch failed: %s", out.Message)
	}

	dir.Invalidate()

	if _, out := dir.Users(context.Background()); !out.OK() {
		t.Fatalf("refetch failed: %s", out.Message)
	}
	if client.listCalls != 2 {
		t.Fatalf("expected refetch after invalidation, got %d fetches", client.listCalls)
	}
}

func TestDirectoryService_DeleteUnauthorizedExpiresSession(t *testing.T) {
	client := &stubClient{deleteErr: &domain.AuthError{Kind: domain.ErrUnauthorized}}
	store := &stubStore{token: "tok", principal: &domain.Principal{ID: 9, Username: "admin", Role: domain.RoleAdmin}}
	dir := newDirectory(client, store)

	out := dir.DeleteUser(context.Background(), 42)
	if out.OK() {
		t.Fatalf("expected failure")
	}
	if out.Nav == nil || out.Nav.Route != domain.RouteLogin {
		t.Fatalf("expected navigation to login, got %+v", out.Nav)
	}
	if _, ok := store.Principal(); ok {
		t.Fatalf("principal must be cleared on unauthorized delete")
	}
}

func TestDirectoryService_ListUnauthorizedExpiresSession(t *testing.T) {
	client := &stubClient{listErr: &domain.AuthError{Kind: domain.ErrUnauthorized, Message: "Unauthorized"}}
	store := &stubStore{token: "tok", principal: &domain.Principal{ID: 9, Username: "admin"}}
	dir := newDirectory(client, store)

	_, out := dir.Users(context.Background())
	if out.Nav == nil || out.Nav.Route != domain.RouteLogin {
		t.Fatalf("expected navigation to login, got %+v", out.Nav)
	}
	if _, ok := store.Principal(); ok {
		t.Fatalf("principal must be cleared on unauthorized listing")
	}
}

func TestDirectoryService_DeleteNotFound(t *testing.T) {
	client := &stubClient{deleteErr: &domain.AuthError{Kind: domain.ErrUserNotFound, Message: "user not found"}}
	store := &stubStore{token: "tok"}
	dir := newDirectory(client, store)

	out := dir.DeleteUser(context.Background(), 404)
	if out.OK() {
		t.Fatalf("expected failure")
	}
	if out.Message != "user not found" {
		t.Fatalf("expected server message, got %q", out.Message)
	}
	if out.Nav != nil {
		t.Fatalf("not-found must not navigate, got %+v", out.Nav)
	}
}
