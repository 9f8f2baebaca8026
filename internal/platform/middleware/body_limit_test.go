package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestParseLimit(t *testing.T) {
	tests := map[string]int64{
		"":      1 << 20,
		"512":   512,
		"4K":    4 << 10,
		"64kb":  64 << 10,
		"2M":    2 << 20,
		"1G":    1 << 30,
		"bogus": 1 << 20,
		"-5":    1 << 20,
	}
	for in, want := range tests {
		if got := parseLimit(in); got != want {
			t.Errorf("parseLimit(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestBodyLimit_ContentLength(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/chatbot", strings.NewReader(strings.Repeat("a", 20)))
	c := e.NewContext(req, httptest.NewRecorder())

	err := BodyLimit("10")(okHandler)(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %v", err)
	}
}

func TestBodyLimit_StreamingBody(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/chatbot", strings.NewReader(strings.Repeat("a", 20)))
	req.ContentLength = -1
	c := e.NewContext(req, httptest.NewRecorder())

	err := BodyLimit("10")(func(c echo.Context) error {
		_, err := io.ReadAll(c.Request().Body)
		return err
	})(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 while reading, got %v", err)
	}
}

func TestBodyLimit_WithinLimit(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/chatbot", strings.NewReader(`{"message":"hi"}`))
	c := e.NewContext(req, httptest.NewRecorder())

	var got string
	err := BodyLimit("1K")(func(c echo.Context) error {
		b, err := io.ReadAll(c.Request().Body)
		got = string(b)
		return err
	})(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"message":"hi"}` {
		t.Errorf("body = %q", got)
	}
}
