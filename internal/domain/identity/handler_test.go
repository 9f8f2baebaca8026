package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mentiq/mentiq/internal/platform/auth"
)

func newTestHandler() (*Handler, *Service, *echo.Echo) {
	svc, _, _ := newTestService()
	return NewHandler(svc), svc, echo.New()
}

func post(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func expectHTTPError(t *testing.T, err error, code int, msg string) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != code || he.Message != msg {
		t.Errorf("expected %d %q, got %d %q", code, msg, he.Code, he.Message)
	}
}

func TestHandler_Register(t *testing.T) {
	h, _, e := newTestHandler()
	c, rec := post(e, "/api/auth/register", `{"email":"a@b.co","password":"pw","name":"Ann","user_type":"patient"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	var body map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &body)
	user := body["user"].(map[string]interface{})
	if user["user_type"] != "patient" || user["type"] != "patient" {
		t.Errorf("expected both user_type and type, got %v", user)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Error("password hash must not be serialized")
	}
	if body["token"] == "" {
		t.Error("expected token")
	}
}

func TestHandler_RegisterMissingField(t *testing.T) {
	h, _, e := newTestHandler()
	c, _ := post(e, "/api/auth/register", `{"email":"a@b.co","password":"pw","name":"Ann"}`)
	expectHTTPError(t, h.Register(c), http.StatusBadRequest, "Missing required field: user_type")
}

func TestHandler_RegisterDuplicate(t *testing.T) {
	h, _, e := newTestHandler()
	body := `{"email":"a@b.co","password":"pw","name":"Ann","user_type":"patient"}`
	c, _ := post(e, "/api/auth/register", body)
	if err := h.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, _ = post(e, "/api/auth/register", body)
	expectHTTPError(t, h.Register(c), http.StatusBadRequest, "Email already registered")
}

func TestHandler_Login(t *testing.T) {
	h, _, e := newTestHandler()
	c, _ := post(e, "/api/auth/register", `{"email":"a@b.co","password":"pw","name":"Ann","user_type":"doctor"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, rec := post(e, "/api/auth/login", `{"email":"a@b.co","password":"pw"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"type":"doctor"`) {
		t.Errorf("expected doctor user in %s", rec.Body.String())
	}

	c, _ = post(e, "/api/auth/login", `{"email":"a@b.co","password":"nope"}`)
	expectHTTPError(t, h.Login(c), http.StatusUnauthorized, "Invalid email or password")

	c, _ = post(e, "/api/auth/login", `{"email":"a@b.co"}`)
	expectHTTPError(t, h.Login(c), http.StatusBadRequest, "Email and password required")
}

func TestHandler_Logout(t *testing.T) {
	h, _, e := newTestHandler()
	c, rec := post(e, "/api/auth/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "Logged out successfully") {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestHandler_Me(t *testing.T) {
	h, svc, e := newTestHandler()
	sess, err := svc.Register(context.Background(), patientRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = req.WithContext(auth.WithPrincipal(req.Context(), auth.Principal{UserID: sess.User.ID, Role: auth.RolePatient}))
	rec := httptest.NewRecorder()
	if err := h.Me(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"name":"Jane Doe"`) {
		t.Errorf("unexpected body %s", rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = req.WithContext(auth.WithPrincipal(req.Context(), auth.Principal{UserID: uuid.New(), Role: auth.RolePatient}))
	expectHTTPError(t, h.Me(e.NewContext(req, httptest.NewRecorder())), http.StatusNotFound, "User not found")
}
