package metadata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/patrickprogramme/ytbrief/internal/retry"
	"github.com/patrickprogramme/ytbrief/pkg/model"
)

type stubProvider struct {
	title string
	urls  []string
	err   error
}

func (s stubProvider) Title(ctx context.Context, videoID string) (string, error) {
	return s.title, s.err
}

func (s stubProvider) ResolvePlaylist(ctx context.Context, playlistURL string) ([]string, error) {
	return s.urls, s.err
}

func TestChainFirstSuccessWins(t *testing.T) {
	c := NewChain(nil, stubProvider{err: ErrQuotaExhausted}, nil, stubProvider{title: "From yt-dlp", urls: []string{"u"}})
	title, err := c.Title(context.Background(), "aaaaaaaaaaa")
	require.NoError(t, err)
	assert.Equal(t, "From yt-dlp", title)

	urls, err := c.ResolvePlaylist(context.Background(), "https://youtube.com/playlist?list=PL1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u"}, urls)
}

func TestChainAllFail(t *testing.T) {
	c := NewChain(nil, stubProvider{err: model.ErrNotFound}, stubProvider{err: model.ErrTransport})
	_, err := c.Title(context.Background(), "x")
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.ErrorIs(t, err, model.ErrTransport)

	_, err = NewChain(nil).ResolvePlaylist(context.Background(), "x")
	assert.Error(t, err)
}

func newTestAPI(t *testing.T, h http.HandlerFunc) *APIProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	p, err := NewAPIProvider(context.Background(), "key", retry.Config{Attempts: 3, Delay: time.Millisecond}, nil,
		option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return p
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func TestAPITitle(t *testing.T) {
	p := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/youtube/v3/videos", r.URL.Path)
		if r.URL.Query().Get("id") == "missingvide" {
			writeJSON(w, 200, map[string]any{"items": []any{}})
			return
		}
		writeJSON(w, 200, map[string]any{
			"items": []any{map[string]any{"id": "aaaaaaaaaaa", "snippet": map[string]any{"title": "Go Concurrency"}}},
		})
	})

	title, err := p.Title(context.Background(), "aaaaaaaaaaa")
	require.NoError(t, err)
	assert.Equal(t, "Go Concurrency", title)

	_, err = p.Title(context.Background(), "missingvide")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestAPITitleRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	p := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			writeJSON(w, 503, map[string]any{"error": map[string]any{"code": 503, "message": "backend"}})
			return
		}
		writeJSON(w, 200, map[string]any{"items": []any{map[string]any{"snippet": map[string]any{"title": "ok"}}}})
	})
	title, err := p.Title(context.Background(), "aaaaaaaaaaa")
	require.NoError(t, err)
	assert.Equal(t, "ok", title)
	assert.EqualValues(t, 3, calls.Load())
}

func TestAPIQuotaExhausted(t *testing.T) {
	var calls atomic.Int32
	p := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, 403, map[string]any{"error": map[string]any{
			"code": 403, "message": "quota",
			"errors": []any{map[string]any{"reason": "quotaExceeded", "message": "quota"}},
		}})
	})
	_, err := p.Title(context.Background(), "aaaaaaaaaaa")
	assert.ErrorIs(t, err, ErrQuotaExhausted)
	_, err = p.ResolvePlaylist(context.Background(), "https://www.youtube.com/playlist?list=PL1")
	assert.ErrorIs(t, err, ErrQuotaExhausted)
	assert.EqualValues(t, 1, calls.Load())
}

func TestAPIResolvePlaylistPaginates(t *testing.T) {
	p := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/youtube/v3/playlistItems", r.URL.Path)
		assert.Equal(t, "PL1", r.URL.Query().Get("playlistId"))
		item := func(id string) map[string]any {
			return map[string]any{"contentDetails": map[string]any{"videoId": id}}
		}
		if r.URL.Query().Get("pageToken") == "" {
			writeJSON(w, 200, map[string]any{"items": []any{item("aaaaaaaaaaa"), item("bbbbbbbbbbb")}, "nextPageToken": "p2"})
			return
		}
		writeJSON(w, 200, map[string]any{"items": []any{item("ccccccccccc")}})
	})

	urls, err := p.ResolvePlaylist(context.Background(), "https://www.youtube.com/playlist?list=PL1")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://www.youtube.com/watch?v=aaaaaaaaaaa",
		"https://www.youtube.com/watch?v=bbbbbbbbbbb",
		"https://www.youtube.com/watch?v=ccccccccccc",
	}, urls)

	_, err = p.ResolvePlaylist(context.Background(), "https://www.youtube.com/watch?v=aaaaaaaaaaa")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestNewAPIProviderNeedsKey(t *testing.T) {
	_, err := NewAPIProvider(context.Background(), "", retry.DefaultConfig(), nil)
	assert.ErrorIs(t, err, model.ErrConfiguration)
}
