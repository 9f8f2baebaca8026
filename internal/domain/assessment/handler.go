package assessment

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mentiq/mentiq/internal/platform/auth"
	"github.com/mentiq/mentiq/internal/platform/httpx"
	"github.com/mentiq/mentiq/internal/platform/validate"
	"github.com/mentiq/mentiq/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/assessment", h.Submit)

	profile := api.Group("/profile", auth.RequireAuth())
	profile.GET("/assessment", h.Latest)
	profile.GET("/assessments", h.History)
}

func (h *Handler) Submit(c echo.Context) error {
	var req Request
	if err := c.Bind(&req); err != nil {
		return httpx.BadRequest(err)
	}
	rec, err := h.svc.Submit(c.Request().Context(), &req)
	if err != nil {
		var fe *validate.FieldError
		if errors.As(err, &fe) {
			return httpx.BadRequest(err)
		}
		return httpx.Internal(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":    true,
		"assessment": rec.View(),
	})
}

func (h *Handler) Latest(c echo.Context) error {
	p, _ := auth.PrincipalFromContext(c.Request().Context())
	rec, err := h.svc.Latest(c.Request().Context(), p.UserID)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if err != nil {
		return httpx.Internal(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":    true,
		"assessment": rec.View(),
	})
}

func (h *Handler) History(c echo.Context) error {
	p, _ := auth.PrincipalFromContext(c.Request().Context())
	pg := pagination.FromContext(c)
	recs, total, err := h.svc.History(c.Request().Context(), p.UserID, pg.Limit, pg.Offset)
	if err != nil {
		return httpx.Internal(err)
	}
	views := make([]View, 0, len(recs))
	for _, rec := range recs {
		views = append(views, rec.View())
	}
	return c.JSON(http.StatusOK, pagination.NewPage(views, total, pg))
}
