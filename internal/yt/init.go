package yt

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickprogramme/ytbrief/internal/config"
	"github.com/patrickprogramme/ytbrief/pkg/model"
)

const defaultVersionTimeout = 5 * time.Second

// InitYtDlp construit le client yt-dlp, vérifie le binaire et récupère sa version.
func InitYtDlp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*YtDlp, string, error) {
	dl := NewYtDlp(cfg.YtDlp.Name, cfg.YtDlp.ResolvedPath, *NewYtDlpConfig(cfg.YtDlp.ShowWarnings), logger)
	logger.Debug("yt-dlp", slog.String("path", dl.exe()))

	if err := dl.CheckBinary(); err != nil {
		return nil, "", fmt.Errorf("%w: yt-dlp introuvable : %w", model.ErrConfiguration, err)
	}

	vctx, cancel := context.WithTimeout(ctx, defaultVersionTimeout)
	defer cancel()
	version, err := dl.GetVersion(vctx)
	if err != nil {
		return dl, "", fmt.Errorf("échec récupération version yt-dlp : %w", err)
	}
	return dl, version, nil
}
