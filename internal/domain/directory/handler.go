package directory

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mentiq/mentiq/internal/platform/httpx"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/doctors", h.ListDoctors)
	api.GET("/doctors/filters", h.FilterOptions)
	api.GET("/articles", h.ListArticles)
	api.GET("/articles/categories", h.Categories)
}

func (h *Handler) ListDoctors(c echo.Context) error {
	var f DoctorFilter
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &f); err != nil {
		return httpx.BadRequest(err)
	}
	doctors, err := h.svc.ListDoctors(c.Request().Context(), f)
	if err != nil {
		return httpx.Internal(err)
	}
	if doctors == nil {
		doctors = []*Doctor{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"doctors": doctors,
		"count":   len(doctors),
	})
}

func (h *Handler) FilterOptions(c echo.Context) error {
	opts, err := h.svc.FilterOptions(c.Request().Context())
	if err != nil {
		return httpx.Internal(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"filters": opts,
	})
}

func (h *Handler) ListArticles(c echo.Context) error {
	articles, err := h.svc.ListArticles(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return httpx.Internal(err)
	}
	if articles == nil {
		articles = []*Article{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"articles": articles,
		"count":    len(articles),
	})
}

func (h *Handler) Categories(c echo.Context) error {
	cats, err := h.svc.Categories(c.Request().Context())
	if err != nil {
		return httpx.Internal(err)
	}
	if cats == nil {
		cats = []string{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":    true,
		"categories": cats,
	})
}
