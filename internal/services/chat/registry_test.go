package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryNickname(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, "", r.Nickname("c1"))

	r.SetNickname("c1", "alice")
	assert.Equal(t, "alice", r.Nickname("c1"))

	// Last write wins.
	r.SetNickname("c1", "alicia")
	assert.Equal(t, "alicia", r.Nickname("c1"))
}

func TestRegistryRooms(t *testing.T) {
	r := NewRegistry()

	assert.False(t, r.Member("c1", "general"))
	assert.Nil(t, r.Rooms("c1"))

	r.AddRoom("c1", "general")
	r.AddRoom("c1", "random")
	assert.True(t, r.Member("c1", "general"))
	assert.ElementsMatch(t, []string{"general", "random"}, r.Rooms("c1"))

	r.RemoveRoom("c1", "general")
	assert.False(t, r.Member("c1", "general"))
	assert.Equal(t, []string{"random"}, r.Rooms("c1"))
}

func TestRegistryRemoveRoomUnknownIDAllocatesNothing(t *testing.T) {
	r := NewRegistry()

	r.RemoveRoom("ghost", "general")
	assert.Empty(t, r.conns, "deleting for an unknown id must not grow the registry")
}

func TestRegistryRemove(t *testing.T) {
	r := NewRegistry()

	r.SetNickname("c1", "alice")
	r.AddRoom("c1", "general")

	r.Remove("c1")
	assert.Equal(t, "", r.Nickname("c1"))
	assert.False(t, r.Member("c1", "general"))

	// Removing an unknown id is fine.
	r.Remove("c2")
}
