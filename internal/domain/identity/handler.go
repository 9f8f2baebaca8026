package identity

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mentiq/mentiq/internal/platform/auth"
	"github.com/mentiq/mentiq/internal/platform/httpx"
	"github.com/mentiq/mentiq/internal/platform/validate"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/auth")
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout)
	g.GET("/me", h.Me, auth.RequireAuth())
}

type sessionResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	User      UserView  `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return httpx.BadRequest(err)
	}
	sess, err := h.svc.Register(c.Request().Context(), &req)
	if err != nil {
		var fe *validate.FieldError
		switch {
		case errors.As(err, &fe):
			return httpx.MissingField(err)
		case errors.Is(err, ErrConflict):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return httpx.Internal(err)
		}
	}
	return c.JSON(http.StatusCreated, sessionResponse{
		Success:   true,
		Message:   "Registration successful",
		User:      sess.User.View(),
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt,
	})
}

func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return httpx.BadRequest(err)
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password required")
	}
	sess, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrInvalidAccountType):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case err != nil:
		return httpx.Internal(err)
	}
	return c.JSON(http.StatusOK, sessionResponse{
		Success:   true,
		Message:   "Login successful",
		User:      sess.User.View(),
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt,
	})
}

// Logout is stateless; the client discards its token.
func (h *Handler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged out successfully",
	})
}

func (h *Handler) Me(c echo.Context) error {
	p, _ := auth.PrincipalFromContext(c.Request().Context())
	u, err := h.svc.Me(c.Request().Context(), p.UserID)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if err != nil {
		return httpx.Internal(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    u.View(),
	})
}
