package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bijbelquiz.app/backend/internal/activation"
	"bijbelquiz.app/backend/internal/config"
	"bijbelquiz.app/backend/internal/download"
	"bijbelquiz.app/backend/internal/questionbank"
)

const questionsJSON = `[{"vraag":"Wie bouwde de ark?","juisteAntwoord":"Noach","moeilijkheidsgraad":1,"type":"mc","categories":[],"fouteAntwoorden":["Mozes","Abraham","David"]}]`

type testEnv struct {
	server        *Server
	handler       http.Handler
	questionsPath string
}

func newTestEnv(t *testing.T, mutate func(cfg *config.Config)) *testEnv {
	t.Helper()
	dir := t.TempDir()
	assets := filepath.Join(dir, "downloads")
	require.NoError(t, os.Mkdir(assets, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(assets, "bijbelquiz-web.zip"), []byte("PK\x03\x04zip"), 0644))
	questionsPath := filepath.Join(dir, "questions.json")
	require.NoError(t, os.WriteFile(questionsPath, []byte(questionsJSON), 0644))

	cfg := &config.Config{
		Server:     config.ServerConfig{Port: 8080, Mode: "release"},
		CORS:       config.CORSConfig{AllowedOrigins: []string{"*"}},
		RateLimit:  config.RateLimitConfig{MaxRequests: 0, Window: time.Minute},
		Activation: config.ActivationConfig{Codes: config.DefaultActivationCodes},
		Downloads: config.DownloadsConfig{
			Mode:            ModeRedirect,
			Source:          "dir",
			Directory:       assets,
			PublicPath:      "/downloads",
			DefaultPlatform: download.DefaultPlatform,
		},
		Questions: config.QuestionsConfig{File: questionsPath},
	}
	if mutate != nil {
		mutate(cfg)
	}

	s := NewServer(cfg,
		activation.NewChecker(cfg.Activation.Codes),
		questionbank.New(cfg.Questions.File),
		download.DirSource{Dir: cfg.Downloads.Directory},
	)
	return &testEnv{server: s, handler: s.Router(), questionsPath: questionsPath}
}

func (e *testEnv) do(method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestActivationCodes(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{name: "valid code", target: "/api/activation-codes?code=BIJBEL2025", want: `{"valid":true}`},
		{name: "case and whitespace are ignored", target: "/api/activation-codes?code=%20quiz1234%20", want: `{"valid":true}`},
		{name: "unknown code", target: "/api/activation-codes?code=NOPE", want: `{"valid":false}`},
		{name: "first code wins", target: "/api/activation-codes?code=NOPE&code=TESTCODE", want: `{"valid":false}`},
		{
			name:   "missing code lists the codes",
			target: "/api/activation-codes",
			want:   `{"codes":["BIJBEL2025","QUIZ1234","TESTCODE","DEMO-0000-2025"]}`,
		},
		{
			name:   "blank code lists the codes",
			target: "/api/activation-codes?code=%20%20",
			want:   `{"codes":["BIJBEL2025","QUIZ1234","TESTCODE","DEMO-0000-2025"]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodGet, tt.target, nil)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.want, rec.Body.String())
		})
	}
}

func TestActivationCodes_Methods(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(http.MethodPost, "/api/activation-codes", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"error":"Method Not Allowed"}`, rec.Body.String())

	rec = env.do(http.MethodOptions, "/api/activation-codes", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(http.MethodOptions, "/api/activation-codes", http.Header{
		"Origin":                        {"https://bijbelquiz.app"},
		"Access-Control-Request-Method": {"GET"},
	})
	assert.Less(t, rec.Code, 300)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestDownload_Redirect(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		target   string
		wantCode int
		wantLoc  string
	}{
		{target: "/api/download?platform=ios", wantCode: http.StatusFound, wantLoc: "/downloads/bijbelquiz-ios.ipa"},
		{target: "/api/download?platform=linux", wantCode: http.StatusFound, wantLoc: "/downloads/bijbelquiz-linux.AppImage"},
		{target: "/api/download", wantCode: http.StatusFound, wantLoc: "/downloads/bijbelquiz-android.apk"},
		{target: "/api/download?platform=symbian", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := env.do(http.MethodGet, tt.target, nil)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantLoc != "" {
				assert.Equal(t, tt.wantLoc, rec.Header().Get("Location"))
				return
			}
			assert.Equal(t, "Invalid platform", decode(t, rec)["error"])
		})
	}
}

func TestDownload_Stream(t *testing.T) {
	env := newTestEnv(t, func(cfg *config.Config) { cfg.Downloads.Mode = ModeStream })

	rec := env.do(http.MethodGet, "/api/download?platform=web", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))
	assert.Equal(t, "7", rec.Header().Get("Content-Length"))
	assert.Equal(t, `attachment; filename="bijbelquiz-web.zip"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "PK\x03\x04zip", rec.Body.String())

	rec = env.do(http.MethodGet, "/api/download?platform=macos", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"File not found"}`, rec.Body.String())
}

func TestPublicDownloads(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(http.MethodGet, "/downloads/bijbelquiz-web.zip", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))
	assert.Equal(t, "PK\x03\x04zip", rec.Body.String())

	rec = env.do(http.MethodGet, "/downloads/bijbelquiz-ios.ipa", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestQuestions(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(http.MethodGet, "/api/questions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, questionsJSON, rec.Body.String())

	require.NoError(t, os.Remove(env.questionsPath))
	rec = env.do(http.MethodGet, "/api/questions", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Questions file not found"}`, rec.Body.String())

	require.NoError(t, os.Mkdir(env.questionsPath, 0755))
	rec = env.do(http.MethodGet, "/api/questions", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
}

func TestNotFound(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(http.MethodGet, "/api/nothing", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, rec.Body.String())
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestRateLimit(t *testing.T) {
	env := newTestEnv(t, func(cfg *config.Config) {
		cfg.RateLimit = config.RateLimitConfig{MaxRequests: 2, Window: time.Hour}
	})

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/api/activation-codes", nil).Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, env.do(http.MethodGet, "/api/activation-codes", nil).Code)
	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/healthz", nil).Code)

	other := http.Header{"X-Real-Ip": {"203.0.113.9"}}
	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/api/activation-codes", other).Code)
}

func TestMetrics(t *testing.T) {
	env := newTestEnv(t, nil)
	env.do(http.MethodGet, "/api/download?platform=ios", nil)
	env.do(http.MethodGet, "/api/download?platform=ios", nil)

	rec := env.do(http.MethodGet, "/metrics", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `bijbelquiz_downloads_total{mode="redirect",platform="ios"} 2`)
	assert.True(t, strings.Contains(body, `endpoint="/api/download"`), body)
}
