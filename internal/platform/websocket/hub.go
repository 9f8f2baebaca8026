// Package websocket serves request/reply conversations over WebSockets.
// Each connection is handled by one goroutine that reads a frame, computes
// the reply and writes it back before reading the next frame.
package websocket

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	gorillawebsocket "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const (
	maxMessageSize = 8 << 10
	writeWait      = 10 * time.Second
	idleTimeout    = 5 * time.Minute
)

// Conn abstracts a WebSocket connection for testability.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// MessageFunc turns one inbound frame into the reply frame. Returning a nil
// reply sends nothing.
type MessageFunc func(ctx context.Context, payload []byte) ([]byte, error)

// Client is a single connected socket.
type Client struct {
	ID   string
	conn Conn
}

// Hub tracks connected clients.
type Hub struct {
	mu  sync.RWMutex
	all map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{all: make(map[*Client]struct{})}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.all[client] = struct{}{}
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.all, client)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.all)
}

// Serve runs the read/reply loop for conn until it errors or ctx ends. The
// connection is closed on return.
func (h *Hub) Serve(ctx context.Context, conn Conn, handle MessageFunc, logger zerolog.Logger) {
	client := &Client{ID: uuid.NewString(), conn: conn}
	h.Register(client)
	defer func() {
		h.Unregister(client)
		conn.Close()
	}()

	for {
		if ctx.Err() != nil {
			return
		}
		mt, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if mt != gorillawebsocket.TextMessage {
			continue
		}

		reply, err := handle(ctx, payload)
		if err != nil {
			logger.Warn().Err(err).Str("client_id", client.ID).Msg("websocket message failed")
			continue
		}
		if reply == nil {
			continue
		}
		if err := conn.WriteMessage(gorillawebsocket.TextMessage, reply); err != nil {
			return
		}
	}
}

// Upgrader returns an upgrader accepting the listed origins. An empty list
// or "*" accepts any origin.
func Upgrader(allowedOrigins []string) *gorillawebsocket.Upgrader {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &gorillawebsocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || len(allowed) == 0 || allowed["*"] || allowed[origin]
		},
	}
}

// Handler upgrades the request and serves it with handle.
func (h *Hub) Handler(up *gorillawebsocket.Upgrader, handle func(c echo.Context) MessageFunc, logger zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ws, err := up.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			return nil // Upgrade already wrote the HTTP error.
		}
		ws.SetReadLimit(maxMessageSize)
		h.Serve(c.Request().Context(), &gorillaConnAdapter{ws}, handle(c), logger)
		return nil
	}
}

// gorillaConnAdapter wraps a gorilla/websocket.Conn to satisfy the Conn
// interface and refreshes deadlines on every frame.
type gorillaConnAdapter struct {
	conn *gorillawebsocket.Conn
}

func (a *gorillaConnAdapter) ReadMessage() (int, []byte, error) {
	_ = a.conn.SetReadDeadline(time.Now().Add(idleTimeout))
	return a.conn.ReadMessage()
}

func (a *gorillaConnAdapter) WriteMessage(messageType int, data []byte) error {
	_ = a.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return a.conn.WriteMessage(messageType, data)
}

func (a *gorillaConnAdapter) Close() error {
	return a.conn.Close()
}
