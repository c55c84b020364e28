package yt

import "context"

// Interface abstrait l'exécutable yt-dlp. Les tests fournissent une implémentation factice.
type Interface interface {
	CheckBinary() error
	GetVersion(ctx context.Context) (string, error)
	// ExtractRaw exécute `yt-dlp -j` sur une vidéo.
	ExtractRaw(ctx context.Context, url string) (*ExtractedRaw, error)
	// ExtractPlaylist exécute `yt-dlp --flat-playlist -J` sur une playlist.
	ExtractPlaylist(ctx context.Context, url string) (*ExtractedRaw, error)
}
