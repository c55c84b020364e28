package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrickprogramme/ytbrief/pkg/model"
)

func TestNewValidatesOptions(t *testing.T) {
	_, err := New(Options{Provider: "unknown", APIKey: "k"}, nil)
	assert.ErrorIs(t, err, model.ErrConfiguration)

	_, err = New(Options{Provider: "deepseek"}, nil)
	assert.ErrorIs(t, err, model.ErrConfiguration)

	c, err := New(Options{Provider: "deepseek", APIKey: "k"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "deepseek-chat", c.Model())

	c, err = New(Options{Provider: "anthropic", APIKey: "k", Model: "claude-custom"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "claude-custom", c.Model())
}

func TestComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "deepseek-chat", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "analyze this", req.Messages[0].Content)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"## Analysis"},"finish_reason":"stop"}],"usage":{"total_tokens":12}}`))
	}))
	defer srv.Close()

	c, err := New(Options{Provider: "deepseek", APIKey: "secret", BaseURL: srv.URL}, nil)
	require.NoError(t, err)
	out, err := c.Complete(context.Background(), "analyze this")
	require.NoError(t, err)
	assert.Equal(t, "## Analysis", out)
}

func TestCompleteErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"unauthorized", 401, `{"error":{"message":"bad key","type":"invalid_request_error"}}`, model.ErrConfiguration},
		{"server error", 500, `{"error":{"message":"boom","type":"server_error"}}`, model.ErrTransport},
		{"empty completion", 200, `{"choices":[]}`, model.ErrTransport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c, err := New(Options{Provider: "openai", APIKey: "k", BaseURL: srv.URL}, nil)
			require.NoError(t, err)
			_, err = c.Complete(context.Background(), "p")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
