// Package httpx holds the response envelope shared by every handler.
package httpx

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mentiq/mentiq/internal/platform/validate"
)

// ErrorBody is the JSON shape of every failed request.
type ErrorBody struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorHandler renders errors as {"success": false, "error": "..."}.
// Internal errors are logged and replaced by a generic message.
func ErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		msg := "Internal server error"

		var he *echo.HTTPError
		var fe *validate.FieldError
		switch {
		case errors.As(err, &he):
			code = he.Code
			msg = messageOf(he)
		case errors.As(err, &fe):
			code = http.StatusBadRequest
			msg = fe.Error()
		}

		if code == http.StatusNotFound && msg == http.StatusText(http.StatusNotFound) {
			msg = "Resource not found"
		}
		if code >= http.StatusInternalServerError {
			rid, _ := c.Get("request_id").(string)
			logger.Error().Err(err).Str("request_id", rid).Str("path", c.Request().URL.Path).Msg("request failed")
			if he == nil || he.Internal != nil {
				msg = "Internal server error"
			}
		}

		rid, _ := c.Get("request_id").(string)
		body := ErrorBody{Success: false, Error: msg, RequestID: rid}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(code)
		} else {
			werr = c.JSON(code, body)
		}
		if werr != nil {
			logger.Error().Err(werr).Msg("write error response")
		}
	}
}

func messageOf(he *echo.HTTPError) string {
	switch m := he.Message.(type) {
	case string:
		return m
	case error:
		return m.Error()
	case nil:
		return http.StatusText(he.Code)
	default:
		return fmt.Sprint(m)
	}
}

// BadRequest wraps err (typically from c.Bind or validation) as a 400.
func BadRequest(err error) error {
	var fe *validate.FieldError
	if errors.As(err, &fe) {
		return echo.NewHTTPError(http.StatusBadRequest, fe.Error())
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return echo.NewHTTPError(http.StatusBadRequest, messageOf(he))
	}
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}

// Internal hides err from the client but keeps it for the logger.
func Internal(err error) error {
	return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error").SetInternal(err)
}

// MissingField is BadRequest except that an absent required field is
// reported as "Missing required field: <name>".
func MissingField(err error) error {
	var fe *validate.FieldError
	if errors.As(err, &fe) && (fe.Tag == "required" || fe.Tag == "notblank") {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing required field: "+fe.Field)
	}
	return BadRequest(err)
}
