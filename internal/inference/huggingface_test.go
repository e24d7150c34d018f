package inference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHuggingFace_DefaultURL(t *testing.T) {
	gw := NewHuggingFace("", "token")
	assert.Equal(t, DefaultHuggingFaceURL, gw.baseURL)
	assert.NotNil(t, gw.client)
	assert.Equal(t, "huggingface", gw.Name())
}

func TestNewHuggingFace_TrimsTrailingSlash(t *testing.T) {
	gw := NewHuggingFace("http://localhost:9000/v1/", "token")
	assert.Equal(t, "http://localhost:9000/v1", gw.baseURL)
}

func TestHuggingFace_Generate_Success(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer hf_secret", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		assert.Equal(t, "mistralai/Mistral-7B-Instruct-v0.2", req.Model)
		assert.Equal(t, 0.7, req.Temperature)
		assert.Equal(t, 250, req.MaxTokens)
		assert.False(t, req.Stream)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, "quest prompt", req.Messages[0].Content)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"mistralai/Mistral-7B-Instruct-v0.2","choices":[{"message":{"role":"assistant","content":"  The lighthouse keeper vanished.  "},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	gw := NewHuggingFace(server.URL+"/v1", "hf_secret")
	resp, err := gw.Generate(context.Background(), Request{
		Model:       "mistralai/Mistral-7B-Instruct-v0.2",
		Prompt:      "quest prompt",
		Temperature: 0.7,
		MaxTokens:   250,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "The lighthouse keeper vanished.", resp.Text)
	assert.Equal(t, "mistralai/Mistral-7B-Instruct-v0.2", resp.Model)
}

func TestHuggingFace_Generate_Errors(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		errorContains string
	}{
		{
			name:          "string error envelope",
			status:        http.StatusUnauthorized,
			body:          `{"error":"Invalid credentials in Authorization header"}`,
			errorContains: "status 401: Invalid credentials in Authorization header",
		},
		{
			name:          "object error envelope",
			status:        http.StatusTooManyRequests,
			body:          `{"error":{"message":"quota exceeded","type":"rate_limit"}}`,
			errorContains: "status 429: quota exceeded",
		},
		{
			name:          "plain text error",
			status:        http.StatusBadGateway,
			body:          "upstream unavailable",
			errorContains: "status 502: upstream unavailable",
		},
		{
			name:          "malformed success body",
			status:        http.StatusOK,
			body:          "not json",
			errorContains: "failed to unmarshal response",
		},
		{
			name:          "no choices",
			status:        http.StatusOK,
			body:          `{"choices":[]}`,
			errorContains: "no choices returned in response",
		},
		{
			name:          "blank content",
			status:        http.StatusOK,
			body:          `{"choices":[{"message":{"role":"assistant","content":"  "}}]}`,
			errorContains: "no choices returned in response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			gw := NewHuggingFace(server.URL, "hf_secret")
			resp, err := gw.Generate(context.Background(), Request{Model: "m", Prompt: "p", Temperature: 0.5, MaxTokens: 100})

			require.Error(t, err)
			assert.Nil(t, resp)
			assert.Contains(t, err.Error(), tt.errorContains)
			assert.Equal(t, 1, calls, "gateway must not retry")
		})
	}
}

func TestHuggingFace_Generate_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	gw := NewHuggingFace(url, "hf_secret")
	_, err := gw.Generate(context.Background(), Request{Model: "m", Prompt: "p"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to make request")
}

func TestHuggingFace_Generate_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server")
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gw := NewHuggingFace(server.URL, "hf_secret")
	_, err := gw.Generate(ctx, Request{Model: "m", Prompt: "p"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHuggingFace_Check(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/models", r.URL.Path)
			assert.Equal(t, "Bearer hf_secret", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"data":[]}`))
		}))
		defer server.Close()

		assert.NoError(t, NewHuggingFace(server.URL, "hf_secret").Check(context.Background()))
	})

	t.Run("unauthorized", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"bad token"}`))
		}))
		defer server.Close()

		err := NewHuggingFace(server.URL, "nope").Check(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad token")
	})
}

func TestProviderError(t *testing.T) {
	assert.Equal(t, "empty response body", providerError(nil))
	assert.Equal(t, "boom", providerError([]byte(`{"error":"boom"}`)))
	assert.Equal(t, `{"error":{}}`, providerError([]byte(`{"error":{}}`)))
}
