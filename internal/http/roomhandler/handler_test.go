package roomhandler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDirectory map[string]int

func (d stubDirectory) RoomCounts() map[string]int { return d }

func newTestEngine(dir stubDirectory) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	New(dir).Register(engine)
	return engine
}

func get(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	engine.ServeHTTP(w, req)
	return w
}

func TestRoot(t *testing.T) {
	w := get(newTestEngine(stubDirectory{}), "/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hello World!", w.Body.String())
}

func TestHealth(t *testing.T) {
	w := get(newTestEngine(stubDirectory{}), "/health")
	require.Equal(t, http.StatusOK, w.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "chat-relay", body.Service)
	assert.NotEmpty(t, body.Timestamp)
}

func TestSocketHealth(t *testing.T) {
	w := get(newTestEngine(stubDirectory{}), "/socket.io/health")
	require.Equal(t, http.StatusOK, w.Code)

	var body SocketHealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "ready", body.SocketIO)
}

func TestRoomsSortedByName(t *testing.T) {
	dir := stubDirectory{"zoo": 2, "general": 3, "random": 1}
	w := get(newTestEngine(dir), "/rooms")
	require.Equal(t, http.StatusOK, w.Code)

	var rooms []RoomInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rooms))
	assert.Equal(t, []RoomInfo{
		{Room: "general", Members: 3},
		{Room: "random", Members: 1},
		{Room: "zoo", Members: 2},
	}, rooms)
}

func TestRoomsEmpty(t *testing.T) {
	w := get(newTestEngine(stubDirectory{}), "/rooms")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}
