package scheduling

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
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
	// Consultation checks login itself so field errors are reported first.
	api.POST("/consultation", h.BookConsultation)

	authed := api.Group("", auth.RequireAuth())
	authed.POST("/appointments", h.BookAppointment)
	authed.GET("/profile/appointments", h.ListAppointments)
	authed.PUT("/appointments/:id/status", h.UpdateStatus)
	authed.DELETE("/appointments/:id", h.DeleteAppointment)
}

// errorFor maps service errors onto HTTP errors.
func errorFor(err error) error {
	var fe *validate.FieldError
	switch {
	case errors.As(err, &fe):
		return httpx.MissingField(err)
	case errors.Is(err, ErrLoginRequired):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrDoctorNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrConfirmedDelete):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return httpx.Internal(err)
	}
}

func appointmentID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid appointment id")
	}
	return id, nil
}

func (h *Handler) BookConsultation(c echo.Context) error {
	var req ConsultationRequest
	if err := c.Bind(&req); err != nil {
		return httpx.BadRequest(err)
	}
	booking, err := h.svc.BookConsultation(c.Request().Context(), &req)
	if err != nil {
		return errorFor(err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success":         true,
		"message":         "Appointment booked successfully",
		"consultation_id": booking.ConsultationID,
		"appointment_id":  booking.AppointmentID,
	})
}

func (h *Handler) BookAppointment(c echo.Context) error {
	var req AppointmentRequest
	if err := c.Bind(&req); err != nil {
		return httpx.BadRequest(err)
	}
	p, _ := auth.PrincipalFromContext(c.Request().Context())
	appt, err := h.svc.BookAppointment(c.Request().Context(), p, &req)
	if err != nil {
		return errorFor(err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success":        true,
		"message":        "Appointment booked successfully",
		"appointment_id": appt.ID,
	})
}

func (h *Handler) ListAppointments(c echo.Context) error {
	p, _ := auth.PrincipalFromContext(c.Request().Context())
	items, err := h.svc.ListForUser(c.Request().Context(), p)
	if err != nil {
		return httpx.Internal(err)
	}
	if items == nil {
		items = []*AppointmentView{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":      true,
		"appointments": items,
		"count":        len(items),
	})
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	id, err := appointmentID(c)
	if err != nil {
		return err
	}
	var req StatusRequest
	if err := c.Bind(&req); err != nil {
		return httpx.BadRequest(err)
	}
	p, _ := auth.PrincipalFromContext(c.Request().Context())
	if err := h.svc.UpdateStatus(c.Request().Context(), p, id, req.Status); err != nil {
		return errorFor(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":        true,
		"message":        "Appointment status updated",
		"appointment_id": id,
		"status":         req.Status,
	})
}

func (h *Handler) DeleteAppointment(c echo.Context) error {
	id, err := appointmentID(c)
	if err != nil {
		return err
	}
	p, _ := auth.PrincipalFromContext(c.Request().Context())
	if err := h.svc.Delete(c.Request().Context(), p, id); err != nil {
		return errorFor(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Appointment deleted successfully",
	})
}
