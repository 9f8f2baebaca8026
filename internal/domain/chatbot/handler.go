package chatbot

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/mentiq/mentiq/internal/platform/auth"
	"github.com/mentiq/mentiq/internal/platform/httpx"
	"github.com/mentiq/mentiq/internal/platform/middleware"
	"github.com/mentiq/mentiq/internal/platform/websocket"
	"github.com/mentiq/mentiq/pkg/pagination"
)

const msgTooManyRequests = "Too many requests, please slow down"

type Handler struct {
	svc        *Service
	hub        *websocket.Hub
	origins    []string
	frameLimit middleware.RateLimitConfig
	logger     zerolog.Logger
}

// NewHandler builds the chatbot handler. frameLimit caps the frames one
// websocket connection may send; a zero RequestsPerSecond disables it.
func NewHandler(svc *Service, hub *websocket.Hub, origins []string, frameLimit middleware.RateLimitConfig, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, hub: hub, origins: origins, frameLimit: frameLimit, logger: logger}
}

// RegisterRoutes mounts the chatbot endpoints. limit guards the message
// endpoints and is expected to be stricter than the API-wide limit.
func (h *Handler) RegisterRoutes(api *echo.Group, limit echo.MiddlewareFunc) {
	api.POST("/chatbot", h.Ask, limit)
	api.GET("/chatbot/history", h.History, auth.RequireAuth())
	api.GET("/chatbot/ws", h.hub.Handler(websocket.Upgrader(h.origins), h.frameHandler, h.logger), limit)
}

func (h *Handler) Ask(c echo.Context) error {
	var req AskRequest
	if err := c.Bind(&req); err != nil {
		return httpx.BadRequest(err)
	}
	reply, err := h.svc.Ask(c.Request().Context(), req.Message)
	if errors.Is(err, ErrEmptyMessage) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return httpx.Internal(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"response": reply.Text,
		"kind":     reply.Kind,
	})
}

func (h *Handler) History(c echo.Context) error {
	p, _ := auth.PrincipalFromContext(c.Request().Context())
	pg := pagination.FromContext(c)
	items, total, err := h.svc.History(c.Request().Context(), p.UserID, pg.Limit, pg.Offset)
	if err != nil {
		return httpx.Internal(err)
	}
	if items == nil {
		items = []*Conversation{}
	}
	return c.JSON(http.StatusOK, pagination.NewPage(items, total, pg))
}

type frameError struct {
	Error string `json:"error"`
}

// frameHandler answers websocket frames of the form {"message": "..."}.
// The principal of the upgrade request applies to every frame, and each
// connection gets its own token bucket.
func (h *Handler) frameHandler(c echo.Context) websocket.MessageFunc {
	p, signedIn := auth.PrincipalFromContext(c.Request().Context())
	var lim *rate.Limiter
	if h.frameLimit.RequestsPerSecond > 0 {
		lim = rate.NewLimiter(rate.Limit(h.frameLimit.RequestsPerSecond), h.frameLimit.BurstSize)
	}
	return func(ctx context.Context, payload []byte) ([]byte, error) {
		if lim != nil && !lim.Allow() {
			return json.Marshal(frameError{Error: msgTooManyRequests})
		}
		if signedIn {
			ctx = auth.WithPrincipal(ctx, p)
		}
		var req AskRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return json.Marshal(frameError{Error: "invalid message frame"})
		}
		reply, err := h.svc.Ask(ctx, req.Message)
		if errors.Is(err, ErrEmptyMessage) {
			return json.Marshal(frameError{Error: err.Error()})
		}
		if err != nil {
			return nil, err
		}
		return json.Marshal(reply)
	}
}
