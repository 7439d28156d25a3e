package ws

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisBusPublish(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	bus := NewRedisBus(rdb, NewHub())

	payload, err := json.Marshal(map[string]any{
		"event": "system",
		"body":  "alice 님이 입장했습니다.",
	})
	require.NoError(t, err)

	mock.ExpectPublish("room:general:events", payload).SetVal(1)

	require.NoError(t, bus.Publish(context.Background(), "general", "system", "alice 님이 입장했습니다."))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisBusPublishNoBody(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	bus := NewRedisBus(rdb, NewHub())

	mock.ExpectPublish("room:general:events", []byte(`{"event":"pong"}`)).SetVal(0)

	require.NoError(t, bus.Publish(context.Background(), "general", "pong", nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// plainSession satisfies chat.Session but is not a writable connection.
type plainSession struct{ id string }

func (s *plainSession) ID() string             { return s.id }
func (s *plainSession) Send(string, any) error { return nil }

func TestRedisBusJoinLeaveSymmetryForUnroutableSession(t *testing.T) {
	rdb, _ := redismock.NewClientMock()
	bus := NewRedisBus(rdb, NewHub())

	// Join of an unroutable session must not create a subscription...
	bus.Join("general", &plainSession{id: "c1"})
	assert.Empty(t, bus.subs)

	// ...and its Leave must not eat someone else's refcount.
	bus.subs["general"] = &subEntry{refCnt: 1, cancel: func() {}}
	bus.Leave("general", &plainSession{id: "c1"})
	require.Contains(t, bus.subs, "general")
	assert.Equal(t, 1, bus.subs["general"].refCnt)
}

func TestRoomChannelNaming(t *testing.T) {
	assert.Equal(t, "room:general:events", roomChannel("general"))
	assert.Equal(t, "room::events", roomChannel(""))
}
