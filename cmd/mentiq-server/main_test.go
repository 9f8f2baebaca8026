package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentiq/mentiq/internal/config"
	"github.com/mentiq/mentiq/internal/domain/assessment"
	"github.com/mentiq/mentiq/internal/domain/risk"
	"github.com/mentiq/mentiq/internal/platform/auth"
	"github.com/mentiq/mentiq/internal/platform/db"
)

const questionnaireJSON = `{
	"sleepHours": 5, "physicalActivity": 2, "workHours": 40,
	"financialStress": 3, "screenTime": 5, "feelingNervous": true,
	"familyHistory": 1, "supportSystem": 0, "medicationUsage": 0
}`

const questionnaireYAML = `sleepHours: 5
physicalActivity: 2
workHours: 40
financialStress: 3
screenTime: 5
feelingNervous: true
familyHistory: 1
supportSystem: 0
medicationUsage: 0
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestAssess_JSONAndYAMLAgree(t *testing.T) {
	for _, path := range []string{
		writeFile(t, "q.json", questionnaireJSON),
		writeFile(t, "q.yaml", questionnaireYAML),
	} {
		var out bytes.Buffer
		require.NoError(t, runAssess(context.Background(), path, &out), path)

		var view assessment.View
		require.NoError(t, json.Unmarshal(out.Bytes(), &view))
		assert.Equal(t, 65, view.RiskScore, path)
		assert.Equal(t, risk.LevelHigh, view.RiskLevel, path)
		assert.True(t, view.NeedsProfessionalHelp, path)
	}
}

func TestAssess_ValidationError(t *testing.T) {
	path := writeFile(t, "q.json", `{"sleepHours": 30}`)
	err := runAssess(context.Background(), path, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sleepHours")
}

func TestAssessCmd_RequiresFile(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"assess"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--file")
}

func TestAssessCmd_PrintsResult(t *testing.T) {
	path := writeFile(t, "q.yml", questionnaireYAML)
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs([]string{"assess", "--file", path})
	cmd.SetOut(&out)
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), `"riskLevel": "High"`)
}

func TestPrintStatus(t *testing.T) {
	at := time.Date(2024, 4, 2, 10, 30, 0, 0, time.UTC)
	var out bytes.Buffer
	printStatus(&out, []db.MigrationStatus{
		{Version: 1, Name: "001_core.sql", Applied: true, AppliedAt: &at},
		{Version: 2, Name: "002_seed.sql"},
	})
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "applied")
	assert.Contains(t, lines[1], "2024-04-02 10:30:00")
	assert.Contains(t, lines[2], "pending")
}

func TestMigrationFiles_FallsBackToEmbedded(t *testing.T) {
	files := migrationFiles(filepath.Join(t.TempDir(), "missing"))
	migs, err := db.NewMigrator(nil, files).LoadMigrations()
	require.NoError(t, err)
	assert.Len(t, migs, 2)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_only.sql"), []byte("SELECT 1;"), 0o600))
	migs, err = db.NewMigrator(nil, migrationFiles(dir)).LoadMigrations()
	require.NoError(t, err)
	require.Len(t, migs, 1)
	assert.Equal(t, "001_only.sql", migs[0].Name)
}

func testConfig() *config.Config {
	return &config.Config{
		Env:            "development",
		JWTSecret:      "test-secret-with-at-least-32-characters!!",
		JWTTTL:         time.Hour,
		CORSOrigins:    []string{"http://localhost:5000"},
		RateLimitRPS:   100,
		RateLimitBurst: 100,
		ChatbotRPS:     100,
		ChatbotBurst:   100,
		BodyLimit:      "1M",
	}
}

func testServer(t *testing.T) (*httptest.Server, *auth.Issuer) {
	t.Helper()
	cfg := testConfig()
	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)
	e := newServer(cfg, zerolog.Nop(), serverDeps{issuer: issuer})
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv, issuer
}

func TestServer_Liveness(t *testing.T) {
	srv, _ := testServer(t)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestServer_AnonymousChatbotAndAssessment(t *testing.T) {
	srv, _ := testServer(t)

	resp, err := http.Post(srv.URL+"/api/chatbot", "application/json", strings.NewReader(`{"message":"I have anxiety before exams"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var chat struct {
		Success  bool   `json:"success"`
		Response string `json:"response"`
		Kind     string `json:"kind"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&chat))
	assert.True(t, chat.Success)
	assert.Equal(t, "keyword", chat.Kind)

	resp2, err := http.Post(srv.URL+"/api/assessment", "application/json", strings.NewReader(questionnaireJSON))
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
}

func TestServer_ErrorEnvelope(t *testing.T) {
	srv, _ := testServer(t)

	resp, err := http.Post(srv.URL+"/api/chatbot", "application/json", strings.NewReader(`{"message":"   "}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, "Message is required", body.Error)
}

func TestServer_ProtectedRoutes(t *testing.T) {
	srv, issuer := testServer(t)

	resp, err := http.Get(srv.URL + "/api/dashboard")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token, _, err := issuer.Sign(auth.Principal{UserID: uuid.New(), Email: "p@example.com", Role: auth.RolePatient})
	require.NoError(t, err)
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/motivation/cards?n=2", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req, _ = http.NewRequest(http.MethodGet, srv.URL+"/api/motivation/cards", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode)
}
