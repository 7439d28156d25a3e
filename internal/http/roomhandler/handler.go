package roomhandler

import (
	"chatrelaygo/internal/services/chat"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

const serviceName = "chat-relay"

type Handler struct {
	dir chat.IRoomDirectory
}

func New(dir chat.IRoomDirectory) *Handler { return &Handler{dir: dir} }

func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/", h.root)
	r.GET("/health", h.health)
	r.GET("/socket.io/health", h.socketHealth)
	r.GET("/rooms", h.rooms)
}

func (h *Handler) root(c *gin.Context) {
	c.String(http.StatusOK, "Hello World!")
}

// @Summary		Liveness probe
// @Description	Plain health check for the deployment platform.
// @Tags			Health
// @Success		200	{object}	HealthResponse
// @Router			/health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   serviceName,
	})
}

// @Summary		Websocket liveness probe
// @Description	Reports whether the realtime endpoint is accepting connections.
// @Tags			Health
// @Success		200	{object}	SocketHealthResponse
// @Router			/socket.io/health [get]
func (h *Handler) socketHealth(c *gin.Context) {
	c.JSON(http.StatusOK, SocketHealthResponse{
		Status:    "ok",
		SocketIO:  "ready",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// @Summary		List occupied rooms
// @Description	Returns every room with at least one member and its occupancy.
// @Tags			Rooms
// @Success		200	{array}	RoomInfo
// @Router			/rooms [get]
func (h *Handler) rooms(c *gin.Context) {
	counts := h.dir.RoomCounts()
	out := make([]RoomInfo, 0, len(counts))
	for room, n := range counts {
		out = append(out, RoomInfo{Room: room, Members: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Room < out[j].Room })
	c.JSON(http.StatusOK, out)
}
