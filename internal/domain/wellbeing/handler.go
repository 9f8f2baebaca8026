package wellbeing

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mentiq/mentiq/internal/platform/auth"
	"github.com/mentiq/mentiq/internal/platform/httpx"
	"github.com/mentiq/mentiq/internal/platform/validate"
)

const defaultCardCount = 3

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireAuth())
	g.GET("/motivation/cards", h.Cards)
	g.POST("/motivation/play", h.Play)
	g.GET("/saved", h.ListSaved)
	g.POST("/saved", h.Save)
	g.DELETE("/saved/:id", h.DeleteSaved)
	g.GET("/dashboard", h.Dashboard)
}

func userID(c echo.Context) uuid.UUID {
	p, _ := auth.PrincipalFromContext(c.Request().Context())
	return p.UserID
}

func (h *Handler) Cards(c echo.Context) error {
	n := defaultCardCount
	if raw := c.QueryParam("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "n must be a number")
		}
		n = v
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"cards":   h.svc.Cards(n),
	})
}

func (h *Handler) Play(c echo.Context) error {
	streak, milestone, err := h.svc.Play(c.Request().Context(), userID(c))
	if err != nil {
		return httpx.Internal(err)
	}
	resp := map[string]interface{}{
		"success":     true,
		"streak":      streak.Count,
		"last_played": streak.LastPlayed.Format("2006-01-02"),
		"milestone":   milestone,
	}
	if milestone {
		resp["message"] = fmt.Sprintf("🎉 Amazing! You've reached a %d-day streak! Keep it up!", streak.Count)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) ListSaved(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context(), userID(c), c.QueryParam("kind"))
	if err != nil {
		return httpx.Internal(err)
	}
	if items == nil {
		items = []*SavedItem{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"items":   items,
		"count":   len(items),
	})
}

func (h *Handler) Save(c echo.Context) error {
	var req SaveRequest
	if err := c.Bind(&req); err != nil {
		return httpx.BadRequest(err)
	}
	item, created, err := h.svc.Save(c.Request().Context(), userID(c), &req)
	if err != nil {
		var fe *validate.FieldError
		switch {
		case errors.As(err, &fe):
			return httpx.BadRequest(err)
		case errors.Is(err, ErrUnknownItem):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return httpx.Internal(err)
		}
	}
	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	return c.JSON(status, map[string]interface{}{
		"success":      true,
		"item":         item,
		"alreadySaved": !created,
	})
}

func (h *Handler) DeleteSaved(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid saved item id")
	}
	err = h.svc.Delete(c.Request().Context(), userID(c), id)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if err != nil {
		return httpx.Internal(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Dashboard(c echo.Context) error {
	dash, err := h.svc.Dashboard(c.Request().Context(), userID(c))
	if err != nil {
		return httpx.Internal(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":   true,
		"dashboard": dash,
	})
}
