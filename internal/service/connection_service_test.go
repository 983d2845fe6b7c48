package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConnectionService() (*ConnectionService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewConnectionService(repo, nil), repo
}

func TestConnectLinksBothDirections(t *testing.T) {
	svc, repo := newTestConnectionService()
	a := repo.seed("Asha", "asha@example.edu")
	b := repo.seed("Ben", "ben@example.edu")

	require.NoError(t, svc.Connect(a.ID, b.ID))

	connected, err := svc.IsConnected(a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, connected)

	connected, err = svc.IsConnected(b.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, connected)
}

func TestConnectRejectsSelfAndUnknown(t *testing.T) {
	svc, repo := newTestConnectionService()
	a := repo.seed("Asha", "asha@example.edu")

	assert.ErrorIs(t, svc.Connect(a.ID, a.ID), ErrSelfConnection)
	assert.ErrorIs(t, svc.Connect(a.ID, 99), ErrUserNotFound)
}

func TestDisconnect(t *testing.T) {
	svc, repo := newTestConnectionService()
	a := repo.seed("Asha", "asha@example.edu")
	b := repo.seed("Ben", "ben@example.edu")

	require.NoError(t, svc.Connect(a.ID, b.ID))
	require.NoError(t, svc.Disconnect(a.ID, b.ID))

	connected, err := svc.IsConnected(b.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, connected, "removal applies to both sides")

	assert.ErrorIs(t, svc.Disconnect(a.ID, b.ID), ErrNotConnected)
}

func TestSuggestionsExcludeSelfAndConnections(t *testing.T) {
	svc, repo := newTestConnectionService()
	a := repo.seed("Asha", "asha@example.edu")
	b := repo.seed("Ben", "ben@example.edu")
	c := repo.seed("Carol", "carol@example.edu")

	require.NoError(t, svc.Connect(a.ID, b.ID))

	suggestions, err := svc.Suggestions(a.ID, 10)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, c.ID, suggestions[0].ID)
}
