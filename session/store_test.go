package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phowdecayed/hacktiv8-laravel-final-fe/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSessionRoundTrip(t *testing.T) {
	s := openTestStore(t)

	user := &models.User{ID: 7, Name: "Budi", Email: "budi@example.com", Role: models.RoleCustomer}
	require.NoError(t, s.Save("tok-123", user))

	token, got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, models.RoleCustomer, got.Role)
}

func TestSessionEmptyLoad(t *testing.T) {
	s := openTestStore(t)

	token, user, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, user)
}

func TestSessionClear(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Save("tok", &models.User{ID: 1}))
	require.NoError(t, s.Clear())

	token, user, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, user)
}

func TestSessionCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "session.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Save("tok", nil))
	token, user, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.Nil(t, user)
}
