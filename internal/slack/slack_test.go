package slack

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrickprogramme/ytbrief/pkg/model"
)

func TestParseThreadURL(t *testing.T) {
	tests := []struct {
		in      string
		want    ThreadRef
		wantErr bool
	}{
		{"https://acme.slack.com/archives/C024BE91L/p1712345678123456", ThreadRef{"C024BE91L", "1712345678.123456"}, false},
		{"https://acme.slack.com/archives/C1/p1712345678123?thread_ts=1", ThreadRef{"C1", "1712345678.123000"}, false},
		{"https://acme.slack.com/archives/C1/p1712345678", ThreadRef{"C1", "1712345678.000000"}, false},
		{"https://acme.slack.com/archives/C1/p12345", ThreadRef{}, true},
		{"https://example.com/thread/1", ThreadRef{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseThreadURL(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrConfiguration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatMarkdown(t *testing.T) {
	in := "## Introduction ##\n\n**Key** point and __soft__ word\n- first\n  - nested\nSee [docs](https://go.dev/doc)\n\n---\n\n\n\nEnd   here"
	want := "*Introduction*\n\n*Key* point and _soft_ word\n• first\n  • nested\nSee docs\n\nEnd here"
	assert.Equal(t, want, FormatMarkdown(in))
}

func TestFormatMarkdownKeepsNestedIndent(t *testing.T) {
	got := FormatMarkdown("- top\n    - deep\n\t- tabbed\nword   \tword")
	assert.Equal(t, "• top\n    • deep\n\t• tabbed\nword word", got)
}

func TestFormatMessage(t *testing.T) {
	body := "### Go Talk\nYouTube Link: https://youtu.be/aaaaaaaaaaa\n### Overview\nSee https://example.com for more"
	got := FormatMessage("Go Talk", "https://youtu.be/aaaaaaaaaaa", body)
	assert.Equal(t, "*Go Talk*\n\n*Overview*\nSee for more", got)
}

func newTestPoster(t *testing.T, h http.HandlerFunc) *Poster {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	p, err := NewPoster("xoxb-test", srv.URL+"/", nil)
	require.NoError(t, err)
	return p
}

func TestPost(t *testing.T) {
	p := newTestPoster(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat.postMessage", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "C1", r.Form.Get("channel"))
		assert.Equal(t, "1712345678.123456", r.Form.Get("thread_ts"))
		assert.Equal(t, "*hello*", r.Form.Get("text"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"channel":"C1","ts":"1712345679.000100"}`))
	})
	ts, err := p.Post(context.Background(), ThreadRef{"C1", "1712345678.123456"}, "*hello*")
	require.NoError(t, err)
	assert.Equal(t, "1712345679.000100", ts)
}

func TestPostErrors(t *testing.T) {
	tests := map[string]error{
		"invalid_auth":      model.ErrConfiguration,
		"channel_not_found": model.ErrNotFound,
		"ratelimited":       model.ErrTransport,
	}
	for code, want := range tests {
		t.Run(code, func(t *testing.T) {
			p := newTestPoster(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"ok":false,"error":"` + code + `"}`))
			})
			_, err := p.Post(context.Background(), ThreadRef{"C1", "1.000000"}, "x")
			assert.ErrorIs(t, err, want)
		})
	}

	_, err := NewPoster("", "", nil)
	assert.ErrorIs(t, err, model.ErrConfiguration)
}

func TestThreadVideoURL(t *testing.T) {
	p := newTestPoster(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/conversations.replies", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"messages":[{"type":"message","text":"worth a look <https://youtu.be/bbbbbbbbbbb>","ts":"1.000000"}]}`))
	})
	u, err := p.ThreadVideoURL(context.Background(), ThreadRef{"C1", "1.000000"})
	require.NoError(t, err)
	assert.Equal(t, "https://www.youtube.com/watch?v=bbbbbbbbbbb", u)
}
