package world

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager() *Manager {
	return NewManager([]*Room{
		{
			ID:   "hall",
			Name: "Hall",
			Exits: []Exit{
				{Direction: North, TargetRoom: "vault", Locked: true, RequiredFlag: "vault_key", LockMessage: "The vault door is sealed."},
				{Direction: East, TargetRoom: "garden"},
				{Direction: West, TargetRoom: "nowhere"},
			},
		},
		{ID: "vault", Name: "Vault"},
		{ID: "garden", Name: "Garden"},
	})
}

func TestManager_GetRoom(t *testing.T) {
	m := testManager()
	r, ok := m.GetRoom("garden")
	require.True(t, ok)
	assert.Equal(t, "Garden", r.Name)
	_, ok = m.GetRoom("moon")
	assert.False(t, ok)
}

func TestManager_Navigate(t *testing.T) {
	m := testManager()

	exit, err := m.Navigate("hall", East, flagSet{})
	require.NoError(t, err)
	assert.Equal(t, "garden", exit.TargetRoom)

	_, err = m.Navigate("hall", South, flagSet{})
	assert.ErrorIs(t, err, ErrNoExit)

	_, err = m.Navigate("moon", North, flagSet{})
	assert.ErrorIs(t, err, ErrRoomNotFound)

	_, err = m.Navigate("hall", North, flagSet{})
	var blocked *BlockedError
	require.True(t, errors.As(err, &blocked))
	assert.Equal(t, "The vault door is sealed.", err.Error())

	exit, err = m.Navigate("hall", North, flagSet{"vault_key": true})
	require.NoError(t, err)
	assert.Equal(t, "vault", exit.TargetRoom)

	exit, err = m.Navigate("hall", West, flagSet{})
	require.NoError(t, err, "a dangling target is the caller's concern")
	assert.Equal(t, "nowhere", exit.TargetRoom)
}

func TestManager_DuplicateLastWins(t *testing.T) {
	m := NewManager([]*Room{{ID: "a", Name: "First"}, {ID: "a", Name: "Second"}})
	r, _ := m.GetRoom("a")
	assert.Equal(t, "Second", r.Name)
	assert.Equal(t, 1, m.RoomCount())
	assert.Len(t, m.AllRooms(), 1)
}
