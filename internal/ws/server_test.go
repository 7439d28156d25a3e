package ws

import (
	"chatrelaygo/internal/services/chat"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialTestServer(t *testing.T, maxMessageLen int) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rdb, _ := redismock.NewClientMock()
	bus := NewRedisBus(rdb, NewHub())
	gateway := chat.NewGateway(bus, maxMessageLen)
	srv := NewWsServer(gateway, []string{"*"}, maxMessageLen)

	engine := gin.New()
	engine.GET("/ws", srv.Handle)
	ts := httptest.NewServer(engine)
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestReadLimitFor(t *testing.T) {
	assert.Equal(t, int64(6512), readLimitFor(1000))
	assert.Equal(t, int64(3512), readLimitFor(500))
}

func TestPingPongOverTransport(t *testing.T) {
	conn := dialTestServer(t, 1000)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"ping"}`)))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var env Envelope
	require.NoError(t, conn.ReadJSON(&env))
	assert.Equal(t, "pong", env.Event)
}

// A cap-length chat whose JSON arrives fully \u-escaped (6 bytes per rune, the
// way e.g. Python's json.dumps emits non-ASCII) must be read and dispatched,
// not torn down by the frame size limit.
func TestEscapedCapLengthFrameSurvivesReadLimit(t *testing.T) {
	conn := dialTestServer(t, 1000)

	frame := `{"event":"chat","body":{"room":"general","text":"` +
		strings.Repeat(`\uac00`, 1000) + `"}}`
	require.Greater(t, len(frame), 4096)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(frame)))

	// The frame was accepted and dispatched: the server answers on the same
	// socket (an error envelope here, because the mocked redis has no
	// expectation for the publish) instead of closing with 1009.
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var env Envelope
	require.NoError(t, conn.ReadJSON(&env))
	assert.Equal(t, "error", env.Event)
}

func TestOversizedFrameClosesConnection(t *testing.T) {
	conn := dialTestServer(t, 1000)

	frame := `{"event":"chat","body":{"room":"general","text":"` +
		strings.Repeat(`\uac00`, 1200) + `"}}`
	require.Greater(t, int64(len(frame)), readLimitFor(1000))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(frame)))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
}
