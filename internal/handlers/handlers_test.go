package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gmassist/api/internal/content"
	"github.com/gmassist/api/internal/generator"
	"github.com/gmassist/api/internal/inference"
	"github.com/gmassist/api/internal/metrics"
	"github.com/gmassist/api/internal/middleware"
	"github.com/gmassist/api/internal/models"
	"github.com/gmassist/api/internal/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeGateway struct {
	requests []inference.Request
	text     string
	err      error
}

func (f *fakeGateway) Name() string { return "fake" }

func (f *fakeGateway) Generate(ctx context.Context, req inference.Request) (*inference.Response, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &inference.Response{Text: f.text, Model: req.Model}, nil
}

func (f *fakeGateway) Close() error { return nil }

func setupRouter(t *testing.T, gw *fakeGateway) *gin.Engine {
	t.Helper()

	tmpl, err := web.Templates()
	require.NoError(t, err)

	logger := zap.NewNop()
	svc := generator.NewService(content.NewRouter(content.DefaultModels()), gw, metrics.New(), nil, logger)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.SetHTMLTemplate(tmpl)

	page := NewPageHandler(svc, logger)
	r.GET("/", page.Index)
	r.POST("/", page.Submit)

	api := NewGenerationHandler(svc, logger)
	v1 := r.Group("/api/v1")
	v1.POST("/generate", api.Generate)
	v1.GET("/content-types", api.ListContentTypes)
	v1.GET("/settings", api.GetSettings)
	return r
}

func postForm(r *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func postJSON(r *gin.Engine, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestIndex_RendersIdleForm(t *testing.T) {
	r := setupRouter(t, &fakeGateway{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, web.Title)
	for _, ct := range content.Types() {
		assert.Contains(t, body, ">"+string(ct)+"<")
	}
	assert.Contains(t, body, `value="0.7"`)
	assert.Contains(t, body, `value="250"`)
	assert.Contains(t, body, "zephyr-7b-beta")
	assert.Contains(t, body, "Mistral-7B-Instruct-v0.2")
	assert.NotContains(t, body, "outcome success")
}

func TestSubmit_EmptyThemeMakesNoCall(t *testing.T) {
	gw := &fakeGateway{text: "unused"}
	r := setupRouter(t, gw)

	for _, theme := range []string{"", "   "} {
		rec := postForm(r, url.Values{"content_type": {"NPC"}, "theme": {theme}})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), web.EmptyThemeText)
	}
	assert.Empty(t, gw.requests)
}

func TestSubmit_Success(t *testing.T) {
	gw := &fakeGateway{text: "Find the lost idol beneath the ruins."}
	r := setupRouter(t, gw)

	rec := postForm(r, url.Values{
		"content_type": {"Quest"},
		"theme":        {"Ancient Ruins"},
		"temperature":  {"0.3"},
		"max_tokens":   {"400"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, gw.requests, 1)
	assert.Equal(t, content.DefaultInstructModel, gw.requests[0].Model)
	assert.Equal(t, 0.3, gw.requests[0].Temperature)
	assert.Equal(t, 400, gw.requests[0].MaxTokens)

	body := rec.Body.String()
	assert.Contains(t, body, "Quest:")
	assert.Contains(t, body, "Find the lost idol beneath the ruins.")
	assert.Contains(t, body, "Generated with Mistral-7B-Instruct-v0.2")
	assert.Contains(t, body, `value="Ancient Ruins"`)
	assert.Contains(t, body, `<option value="Quest" selected>`)
}

func TestSubmit_FailureShowsMessage(t *testing.T) {
	gw := &fakeGateway{err: errors.New("huggingface request failed with status 503: loading")}
	r := setupRouter(t, gw)

	rec := postForm(r, url.Values{"content_type": {"NPC"}, "theme": {"Elf"}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Generation failed: huggingface request failed with status 503: loading")
	assert.Len(t, gw.requests, 1)

	// the page stays usable after a failure
	gw.err = nil
	gw.text = "A wary elf ranger."
	rec = postForm(r, url.Values{"content_type": {"NPC"}, "theme": {"Elf"}})
	assert.Contains(t, rec.Body.String(), "A wary elf ranger.")
}

func TestSubmit_RejectsTamperedSliders(t *testing.T) {
	gw := &fakeGateway{}
	r := setupRouter(t, gw)

	for _, form := range []url.Values{
		{"content_type": {"NPC"}, "theme": {"Elf"}, "temperature": {"1.5"}},
		{"content_type": {"NPC"}, "theme": {"Elf"}, "max_tokens": {"50"}},
		{"content_type": {"NPC"}, "theme": {"Elf"}, "max_tokens": {"lots"}},
	} {
		rec := postForm(r, form)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
	assert.Empty(t, gw.requests)
}

func TestSubmit_MalformedContentTypeWithEmptyTheme(t *testing.T) {
	gw := &fakeGateway{}
	r := setupRouter(t, gw)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("content_type=%FF&theme="))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), web.EmptyThemeText)
	assert.Empty(t, gw.requests)
}

func TestSubmit_UnknownContentType(t *testing.T) {
	gw := &fakeGateway{}
	r := setupRouter(t, gw)

	rec := postForm(r, url.Values{"content_type": {"Dragon"}, "theme": {"Fire"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, gw.requests)
}

func TestGenerateAPI_Success(t *testing.T) {
	gw := &fakeGateway{text: "A haunted lighthouse keeper."}
	r := setupRouter(t, gw)

	rec := postJSON(r, map[string]any{"content_type": "NPC", "theme": "Lighthouse"})

	require.Equal(t, http.StatusOK, rec.Code)
	var result models.GenerationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "NPC", result.ContentType)
	assert.Equal(t, "A haunted lighthouse keeper.", result.Text)
	assert.Equal(t, content.DefaultConversationalModel, result.SourceModel)
	assert.Equal(t, "zephyr-7b-beta", result.ModelShortName)
	assert.NotEmpty(t, result.RequestID)

	require.Len(t, gw.requests, 1)
	assert.Equal(t, 0.7, gw.requests[0].Temperature)
	assert.Equal(t, 250, gw.requests[0].MaxTokens)
}

func TestGenerateAPI_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   map[string]any
		gwErr  error
		status int
		code   string
	}{
		{"empty theme", map[string]any{"content_type": "NPC", "theme": " "}, nil, http.StatusBadRequest, middleware.ErrCodeEmptyTheme},
		{"temperature out of range", map[string]any{"content_type": "NPC", "theme": "Elf", "temperature": 0.0}, nil, http.StatusBadRequest, middleware.ErrCodeInvalidSettings},
		{"max tokens out of range", map[string]any{"content_type": "NPC", "theme": "Elf", "max_tokens": 1000}, nil, http.StatusBadRequest, middleware.ErrCodeInvalidSettings},
		{"unknown type", map[string]any{"content_type": "Dragon", "theme": "Elf"}, nil, http.StatusBadRequest, middleware.ErrCodeUnknownContentType},
		{"gateway failure", map[string]any{"content_type": "NPC", "theme": "Elf"}, errors.New("connection refused"), http.StatusBadGateway, middleware.ErrCodeGenerationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(t, &fakeGateway{err: tt.gwErr})

			rec := postJSON(r, tt.body)

			assert.Equal(t, tt.status, rec.Code)
			var resp middleware.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestGenerateAPI_MalformedBody(t *testing.T) {
	r := setupRouter(t, &fakeGateway{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListContentTypes(t *testing.T) {
	r := setupRouter(t, &fakeGateway{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/content-types", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var infos []models.ContentTypeInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &infos))
	require.Len(t, infos, 7)
	assert.Equal(t, models.ContentTypeInfo{Name: "NPC", Tier: string(content.TierConversational), Model: content.DefaultConversationalModel}, infos[0])
	assert.Equal(t, "Magic Item", infos[6].Name)
}

func TestGetSettings(t *testing.T) {
	r := setupRouter(t, &fakeGateway{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp SettingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0.7, resp.Temperature.Default)
	assert.Equal(t, 250, resp.MaxTokens.Default)
	assert.Equal(t, 50, resp.MaxTokens.Step)
}

func TestDeepHealth(t *testing.T) {
	ok := CheckFunc(func(ctx context.Context) error { return nil })
	down := CheckFunc(func(ctx context.Context) error { return errors.New("refused") })

	tests := []struct {
		name   string
		checks map[string]Checker
		status int
		want   map[string]string
	}{
		{"all healthy", map[string]Checker{"inference": ok, "nats": nil}, http.StatusOK,
			map[string]string{"inference": "healthy", "nats": "not configured"}},
		{"degraded", map[string]Checker{"inference": down}, http.StatusServiceUnavailable,
			map[string]string{"inference": "unhealthy: refused"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			h := NewHealthHandler(tt.checks)
			r.GET("/health/deep", h.DeepHealth)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/deep", nil))

			assert.Equal(t, tt.status, rec.Code)
			var resp HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.want, resp.Dependencies)
		})
	}
}
