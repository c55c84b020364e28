package yt

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"
)

// NewYtDlp construit une instance. resolvedPath doit pointer vers l'exécutable.
func NewYtDlp(name string, resolvedPath string, cfg YtDlpConfig, logger *slog.Logger) *YtDlp {
	if logger == nil {
		logger = slog.Default()
	}
	return &YtDlp{
		Name:   name,
		Path:   resolvedPath,
		Config: cfg,
		Logger: logger,
	}
}

func (y *YtDlp) exe() string {
	if y.Path != "" {
		return y.Path
	}
	return y.Name
}

// CheckBinary vérifie que le binaire existe. Un nom nu est cherché dans le PATH.
func (y *YtDlp) CheckBinary() error {
	if y == nil {
		return fmt.Errorf("yt-dlp non initialisé")
	}
	exe := y.exe()
	if !strings.ContainsAny(exe, `/\`) {
		if _, err := exec.LookPath(exe); err != nil {
			return fmt.Errorf("yt-dlp introuvable dans le PATH (%s): %w", exe, err)
		}
		return nil
	}

	info, err := os.Stat(exe)
	if err != nil {
		return fmt.Errorf("yt-dlp introuvable (%s) à l'emplacement spécifié : %w", exe, err)
	}
	if info.IsDir() {
		return fmt.Errorf("le chemin spécifié pour yt-dlp est un répertoire : %s", exe)
	}
	return nil
}

// ExtractRaw exécute `yt-dlp -j <url>`.
func (y *YtDlp) ExtractRaw(ctx context.Context, url string) (*ExtractedRaw, error) {
	return y.run(ctx, y.Config.BuildArgs(url))
}

// ExtractPlaylist exécute `yt-dlp --flat-playlist -J <url>`.
func (y *YtDlp) ExtractPlaylist(ctx context.Context, url string) (*ExtractedRaw, error) {
	return y.run(ctx, y.Config.BuildPlaylistArgs(url))
}

// run exécute yt-dlp et sépare la ligne JSON des avertissements.
func (y *YtDlp) run(ctx context.Context, args []string) (*ExtractedRaw, error) {
	start := time.Now()
	out, err := exec.CommandContext(ctx, y.exe(), args...).CombinedOutput()
	y.Logger.Debug("yt-dlp exécuté", slog.Any("args", args), slog.Duration("elapsed", time.Since(start)))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &ExecError{Args: args, Output: string(out), Kind: classifyOutput(string(out)), Err: err}
	}

	raw := splitOutput(string(out))
	if raw.JSON == nil {
		return nil, &ExecError{Args: args, Output: string(out), Kind: classifyOutput(string(out)), Err: fmt.Errorf("aucun JSON détecté")}
	}
	raw.LogWarnings(y.Logger)
	return raw, nil
}

func splitOutput(out string) *ExtractedRaw {
	raw := &ExtractedRaw{}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "{") || strings.HasPrefix(line, "[") {
			// la dernière ligne JSON l'emporte
			raw.JSON = []byte(line)
			continue
		}
		raw.Warnings = append(raw.Warnings, line)
	}
	return raw
}
