package ws

import (
	"chatrelaygo/internal/config"
	"chatrelaygo/internal/services/chat"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10 // must be < pongWait

	// Room for the envelope plus JSON string escaping: a client that
	// \u-escapes non-ASCII text spends up to 6 bytes per rune.
	bytesPerRune     = 6
	envelopeOverhead = 512

	textMessage = websocket.TextMessage
)

// readLimitFor sizes the per-connection read limit off the configured message
// cap, so a cap-length chat frame is read (and rejected by the gateway where
// applicable) instead of tearing the connection down mid-protocol.
func readLimitFor(maxMessageLen int) int64 {
	return int64(bytesPerRune*maxMessageLen + envelopeOverhead)
}

type WsServer struct {
	router    *Router
	gateway   *chat.Gateway
	readLimit int64
	upgrader  websocket.Upgrader
}

func NewWsServer(gateway *chat.Gateway, allowedOrigins []string, maxMessageLen int) *WsServer {
	srv := &WsServer{
		router:    NewRouter(),
		gateway:   gateway,
		readLimit: readLimitFor(maxMessageLen),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true // non-browser client
				}
				return config.OriginAllowed(allowedOrigins, origin)
			},
		},
	}
	srv.registerHandlers() // ← all WS events configured here
	return srv
}

// ---------------------------------------------------------------------------
//  Public: Gin entry-point
// ---------------------------------------------------------------------------

func (s *WsServer) Handle(ginCtx *gin.Context) {
	rawConn, err := s.upgrader.Upgrade(ginCtx.Writer, ginCtx.Request, nil)
	if err != nil {
		zap.L().Warn("ws.accept", zap.Error(err))
		return
	}
	rawConn.SetReadLimit(s.readLimit)

	// ─────────────────── Client connected ─────────────────────
	conn := &clientConn{id: uuid.NewString(), rawConn: rawConn}
	_ = s.gateway.Handle(ginCtx.Request.Context(), conn, chat.Event{Kind: chat.KindConnect})

	go s.reader(conn)
	go s.pinger(conn)
}

// ---------------------------------------------------------------------------
//  Private helpers
// ---------------------------------------------------------------------------

func (s *WsServer) registerHandlers() {
	// 🔹 join ----------------------------------------------------------------
	Register(
		s.router,
		"join",
		func(ctx context.Context, cc *ConnContext, req JoinRequest) error {
			return s.gateway.Handle(ctx, cc.Session, chat.Event{
				Kind:     chat.KindJoin,
				Room:     req.Room,
				Nickname: req.Nickname,
			})
		},
	)

	// 🔹 chat ----------------------------------------------------------------
	Register(
		s.router,
		"chat",
		func(ctx context.Context, cc *ConnContext, req ChatRequest) error {
			return s.gateway.Handle(ctx, cc.Session, chat.Event{
				Kind: chat.KindChat,
				Room: req.Room,
				Text: req.Text,
			})
		},
	)

	// 🔹 ping ----------------------------------------------------------------
	Register(
		s.router,
		"ping",
		func(ctx context.Context, cc *ConnContext, _ struct{}) error {
			return s.gateway.Handle(ctx, cc.Session, chat.Event{Kind: chat.KindPing})
		},
	)
}

func (s *WsServer) reader(conn *clientConn) {
	reason := "client closed"
	defer func() {
		_ = s.gateway.Handle(context.Background(), conn,
			chat.Event{Kind: chat.KindDisconnect, Reason: reason})
		conn.close()
	}()

	_ = conn.rawConn.SetReadDeadline(time.Now().Add(pongWait))
	conn.rawConn.SetPongHandler(func(string) error {
		return conn.rawConn.SetReadDeadline(time.Now().Add(pongWait))
	})

	cc := &ConnContext{Session: conn}

	for {
		var env Envelope
		if err := conn.rawConn.ReadJSON(&env); err != nil {
			reason = err.Error() // client closed or errored
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1900*time.Millisecond)
		err := s.router.dispatch(ctx, cc, env)
		cancel()

		// ---- error -> {"event":"error", "body":{...}} ---------------
		if err != nil {
			_ = conn.Send("error", ErrorBody{Error: err.Error()})
		}
	}
}

func (s *WsServer) pinger(conn *clientConn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for range ticker.C {
		if err := conn.write(websocket.PingMessage, nil); err != nil {
			conn.close()
			return
		}
	}
}
