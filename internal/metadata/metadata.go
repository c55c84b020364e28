// Package metadata résout les titres de vidéos et le contenu des playlists.
package metadata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Provider est implémenté par l'API YouTube Data et par yt-dlp (yt.Provider).
type Provider interface {
	Title(ctx context.Context, videoID string) (string, error)
	ResolvePlaylist(ctx context.Context, playlistURL string) ([]string, error)
}

// Chain interroge les fournisseurs dans l'ordre et retourne le premier succès.
type Chain struct {
	providers []Provider
	logger    *slog.Logger
}

// NewChain ignore les fournisseurs nil.
func NewChain(logger *slog.Logger, providers ...Provider) *Chain {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Chain{logger: logger}
	for _, p := range providers {
		if p != nil {
			c.providers = append(c.providers, p)
		}
	}
	return c
}

func (c *Chain) Title(ctx context.Context, videoID string) (string, error) {
	var errs []error
	for _, p := range c.providers {
		title, err := p.Title(ctx, videoID)
		if err == nil {
			return title, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		c.logger.Debug("titre indisponible", "provider", fmt.Sprintf("%T", p), "video", videoID, "err", err)
		errs = append(errs, err)
	}
	return "", chainError(errs)
}

func (c *Chain) ResolvePlaylist(ctx context.Context, playlistURL string) ([]string, error) {
	var errs []error
	for _, p := range c.providers {
		urls, err := p.ResolvePlaylist(ctx, playlistURL)
		if err == nil {
			return urls, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Debug("playlist non résolue", "provider", fmt.Sprintf("%T", p), "url", playlistURL, "err", err)
		errs = append(errs, err)
	}
	return nil, chainError(errs)
}

func chainError(errs []error) error {
	if len(errs) == 0 {
		return errors.New("no metadata provider configured")
	}
	return errors.Join(errs...)
}
