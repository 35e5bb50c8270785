package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldstation/admin-console/internal/core/domain"
)

func tempStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	return New(path, zerolog.Nop()), path
}

func TestStore_TokenIsVolatile(t *testing.T) {
	s, path := tempStore(t)

	_, ok := s.Token()
	assert.False(t, ok)

	s.SetToken("tok-1")
	got, ok := s.Token()
	require.True(t, ok)
	assert.Equal(t, "tok-1", got)

	// A new store over the same file must not see the token.
	fresh := New(path, zerolog.Nop())
	_, ok = fresh.Token()
	assert.False(t, ok, "anti-forgery token must never be persisted")
}

func TestStore_PrincipalSurvivesRestart(t *testing.T) {
	s, path := tempStore(t)

	p := &domain.Principal{ID: 3, Username: "alice", FirstName: "Alice", LastName: "Finch", Role: domain.RoleBiologist}
	require.NoError(t, s.SetPrincipal(p))

	fresh := New(path, zerolog.Nop())
	got, ok := fresh.Principal()
	require.True(t, ok)
	assert.Equal(t, p, got)
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	s, path := tempStore(t)
	require.NoError(t, s.SetPrincipal(&domain.Principal{ID: 1, Username: "alice"}))
	s.SetToken("tok")

	s.Clear()
	s.Clear() // safe when already empty

	_, ok := s.Principal()
	assert.False(t, ok)
	_, ok = s.Token()
	assert.False(t, ok)

	fresh := New(path, zerolog.Nop())
	_, ok = fresh.Principal()
	assert.False(t, ok, "cleared principal must not come back after restart")
}

func TestStore_CorruptStateFileStartsAnonymous(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := New(path, zerolog.Nop())
	_, ok := s.Principal()
	assert.False(t, ok)
}
