package metadata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/patrickprogramme/ytbrief/internal/retry"
	"github.com/patrickprogramme/ytbrief/pkg/model"
)

// ErrQuotaExhausted : le quota quotidien de l'API est consommé, la chaîne
// bascule sur le fournisseur suivant.
var ErrQuotaExhausted = errors.New("youtube api quota exhausted")

// APIProvider interroge l'API YouTube Data v3 avec une clé d'API.
type APIProvider struct {
	service *youtube.Service
	retry   retry.Config
	logger  *slog.Logger

	quotaExhausted atomic.Bool
}

// NewAPIProvider crée le service. opts permet de surcharger l'endpoint (tests).
func NewAPIProvider(ctx context.Context, apiKey string, cfg retry.Config, logger *slog.Logger, opts ...option.ClientOption) (*APIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: youtube api key required", model.ErrConfiguration)
	}
	if logger == nil {
		logger = slog.Default()
	}
	service, err := youtube.NewService(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &APIProvider{service: service, retry: cfg, logger: logger}, nil
}

func (a *APIProvider) Title(ctx context.Context, videoID string) (string, error) {
	if a.quotaExhausted.Load() {
		return "", ErrQuotaExhausted
	}
	var title string
	err := retry.Do(ctx, a.retry, a.classify, func(ctx context.Context) error {
		resp, err := a.service.Videos.List([]string{"snippet"}).Id(videoID).Context(ctx).Do()
		if err != nil {
			return a.wrap(err)
		}
		if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
			return fmt.Errorf("video %s: %w", videoID, model.ErrNotFound)
		}
		title = resp.Items[0].Snippet.Title
		return nil
	})
	if err != nil {
		return "", err
	}
	if title == "" {
		return "", fmt.Errorf("video %s: empty title: %w", videoID, model.ErrNotFound)
	}
	return title, nil
}

// ResolvePlaylist parcourt toutes les pages de la playlist (50 éléments par page).
func (a *APIProvider) ResolvePlaylist(ctx context.Context, playlistURL string) ([]string, error) {
	if a.quotaExhausted.Load() {
		return nil, ErrQuotaExhausted
	}
	playlistID := model.ExtractPlaylistID(playlistURL)
	if playlistID == "" {
		return nil, fmt.Errorf("no playlist id in %q: %w", playlistURL, model.ErrNotFound)
	}

	var urls []string
	pageToken := ""
	for {
		err := retry.Do(ctx, a.retry, a.classify, func(ctx context.Context) error {
			resp, err := a.service.PlaylistItems.List([]string{"snippet", "contentDetails"}).
				PlaylistId(playlistID).
				MaxResults(50).
				PageToken(pageToken).
				Context(ctx).
				Do()
			if err != nil {
				return a.wrap(err)
			}
			for _, item := range resp.Items {
				if item.ContentDetails == nil || item.ContentDetails.VideoId == "" {
					continue
				}
				urls = append(urls, model.VideoRef{ID: item.ContentDetails.VideoId}.CanonicalURL())
			}
			pageToken = resp.NextPageToken
			return nil
		})
		if err != nil {
			return nil, err
		}
		if pageToken == "" {
			break
		}
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("playlist %s: %w", playlistID, model.ErrNotFound)
	}
	return urls, nil
}

// wrap traduit les erreurs googleapi en erreurs du modèle.
func (a *APIProvider) wrap(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return fmt.Errorf("%w: %w", model.ErrTransport, err)
	}
	switch {
	case gerr.Code == http.StatusNotFound:
		return fmt.Errorf("%w: %w", model.ErrNotFound, err)
	case gerr.Code == http.StatusForbidden && isQuotaError(gerr):
		a.quotaExhausted.Store(true)
		a.logger.Warn("quota de l'API YouTube épuisé, bascule sur yt-dlp")
		return fmt.Errorf("%w: %w", ErrQuotaExhausted, err)
	case gerr.Code == http.StatusBadRequest || gerr.Code == http.StatusForbidden:
		return fmt.Errorf("%w: %w", model.ErrConfiguration, err)
	}
	return fmt.Errorf("%w: %w", model.ErrTransport, err)
}

func isQuotaError(gerr *googleapi.Error) bool {
	for _, e := range gerr.Errors {
		if e.Reason == "quotaExceeded" || e.Reason == "dailyLimitExceeded" {
			return true
		}
	}
	return false
}

// classify : seuls 429 et 5xx sont relancés.
func (a *APIProvider) classify(err error) bool {
	if errors.Is(err, ErrQuotaExhausted) {
		return false
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusTooManyRequests || gerr.Code >= 500
	}
	return retry.IsRetryable(err)
}
