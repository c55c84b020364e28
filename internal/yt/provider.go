package yt

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/patrickprogramme/ytbrief/internal/fetch"
	"github.com/patrickprogramme/ytbrief/internal/subtitles"
	"github.com/patrickprogramme/ytbrief/pkg/model"
)

const (
	defaultExtractTimeout = 2 * time.Minute
	defaultTrackTimeout   = 30 * time.Second
	defaultTrackMaxBytes  = 20_000_000
)

// Provider expose yt-dlp comme fournisseur de transcriptions et de métadonnées.
// Les métadonnées d'une vidéo sont extraites une seule fois par exécution.
type Provider struct {
	ytdlp          Interface
	logger         *slog.Logger
	ExtractTimeout time.Duration

	mu    sync.Mutex
	cache map[string]*model.Meta
}

// NewProvider construit le fournisseur au-dessus d'un client yt-dlp.
func NewProvider(ytdlp Interface, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{
		ytdlp:          ytdlp,
		logger:         logger,
		ExtractTimeout: defaultExtractTimeout,
		cache:          make(map[string]*model.Meta),
	}
}

// Meta retourne les métadonnées de la vidéo, depuis le cache si possible.
func (p *Provider) Meta(ctx context.Context, videoID string) (*model.Meta, error) {
	p.mu.Lock()
	m, ok := p.cache[videoID]
	p.mu.Unlock()
	if ok {
		return m, nil
	}

	exCtx, cancel := context.WithTimeout(ctx, p.ExtractTimeout)
	defer cancel()
	raw, err := p.ytdlp.ExtractRaw(exCtx, model.VideoRef{ID: videoID}.CanonicalURL())
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", videoID, err)
	}
	m, err = ParseYTDLP(raw.JSON)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.cache[videoID] = m
	p.mu.Unlock()
	return m, nil
}

// List retourne le catalogue des pistes, manuelles d'abord.
// ErrTranscriptsDisabled si la vidéo n'expose aucune piste.
func (p *Provider) List(ctx context.Context, videoID string) ([]model.TranscriptHandle, error) {
	m, err := p.Meta(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !m.HasTracks() {
		return nil, fmt.Errorf("%s: %w", videoID, model.ErrTranscriptsDisabled)
	}
	tracks := m.Tracks()
	handles := make([]model.TranscriptHandle, 0, len(tracks))
	for _, t := range tracks {
		handles = append(handles, t.Handle())
	}
	return handles, nil
}

// Fetch télécharge la piste json3 référencée par h et la convertit en lignes.
func (p *Provider) Fetch(ctx context.Context, videoID string, h model.TranscriptHandle) ([]model.TranscriptLine, error) {
	data, err := fetch.FetchBytesWithTimeout(ctx, h.Ref, defaultTrackTimeout, defaultTrackMaxBytes)
	if err != nil {
		return nil, fmt.Errorf("download track %s/%s: %w", videoID, h.Language, err)
	}
	lines, err := subtitles.Lines(data, h.Generated)
	if err != nil {
		// une réponse tronquée ou une page d'erreur HTML : on retente
		return nil, fmt.Errorf("%w: %w", model.ErrTransport, err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("track %s/%s: %w", videoID, h.Language, model.ErrNoTranscript)
	}
	return lines, nil
}

// Title retourne le titre de la vidéo.
func (p *Provider) Title(ctx context.Context, videoID string) (string, error) {
	m, err := p.Meta(ctx, videoID)
	if err != nil {
		return "", err
	}
	if m.Title == "" {
		return "", fmt.Errorf("%s: empty title: %w", videoID, model.ErrNotFound)
	}
	return m.Title, nil
}

// ResolvePlaylist retourne les URL des vidéos de la playlist, dans l'ordre.
func (p *Provider) ResolvePlaylist(ctx context.Context, playlistURL string) ([]string, error) {
	exCtx, cancel := context.WithTimeout(ctx, p.ExtractTimeout)
	defer cancel()
	raw, err := p.ytdlp.ExtractPlaylist(exCtx, playlistURL)
	if err != nil {
		return nil, fmt.Errorf("extract playlist: %w", err)
	}
	urls, err := ParsePlaylist(raw.JSON)
	if err != nil {
		return nil, err
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("playlist %s: %w", playlistURL, model.ErrNotFound)
	}
	return urls, nil
}
