package assessment

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentiq/mentiq/internal/domain/risk"
)

const samplePayload = `{
	"sleepHours": 5, "physicalActivity": 2, "workHours": 40,
	"financialStress": 3, "screenTime": 5, "feelingNervous": true,
	"familyHistory": 1, "supportSystem": 0, "medicationUsage": 0
}`

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestHandler_Submit(t *testing.T) {
	h := NewHandler(NewService(&mockRepo{}, zerolog.Nop()))
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/assessment", samplePayload), rec)

	require.NoError(t, h.Submit(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success    bool `json:"success"`
		Assessment View `json:"assessment"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 65, body.Assessment.RiskScore)
	assert.Equal(t, 65, body.Assessment.Score)
	assert.Equal(t, risk.LevelHigh, body.Assessment.RiskLevel)
	assert.True(t, body.Assessment.NeedsProfessionalHelp)
	assert.NotEmpty(t, body.Assessment.Recommendations)
	assert.Nil(t, body.Assessment.ID)
}

func TestHandler_SubmitMissingNumeric(t *testing.T) {
	h := NewHandler(NewService(&mockRepo{}, zerolog.Nop()))
	e := echo.New()
	payload := strings.Replace(samplePayload, `"workHours": 40,`, "", 1)
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/assessment", payload), httptest.NewRecorder())

	err := h.Submit(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Equal(t, "workHours is required", he.Message)
}

func TestHandler_SubmitMalformedJSON(t *testing.T) {
	h := NewHandler(NewService(&mockRepo{}, zerolog.Nop()))
	e := echo.New()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/assessment", `{"sleepHours": "lots"`), httptest.NewRecorder())

	err := h.Submit(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestHandler_LatestNotFound(t *testing.T) {
	h := NewHandler(NewService(&mockRepo{}, zerolog.Nop()))
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/profile/assessment", nil).WithContext(userCtx(uuid.New()))
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.Latest(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusNotFound, he.Code)
	assert.Equal(t, "No assessment found", he.Message)
}

func TestHandler_LatestAndHistory(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo, zerolog.Nop())
	h := NewHandler(svc)
	uid := uuid.New()
	_, err := svc.Submit(userCtx(uid), sampleRequest())
	require.NoError(t, err)

	e := echo.New()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/profile/assessment", nil).WithContext(userCtx(uid))
	require.NoError(t, h.Latest(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"riskLevel":"High"`)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/profile/assessments?limit=5", nil).WithContext(userCtx(uid))
	require.NoError(t, h.History(e.NewContext(req, rec)))

	var page struct {
		Items []View `json:"items"`
		Total int    `json:"total"`
		Limit int    `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, 5, page.Limit)
	require.Len(t, page.Items, 1)
	assert.NotNil(t, page.Items[0].ID)
}
