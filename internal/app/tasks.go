package app

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/patrickprogramme/ytbrief/internal/assets"
	"github.com/patrickprogramme/ytbrief/internal/bootstrap"
	"github.com/patrickprogramme/ytbrief/internal/updater"
)

// YtDlpUpdateCheck affiche si une version plus récente de yt-dlp existe.
func (a *App) YtDlpUpdateCheck(ctx context.Context, timeout time.Duration, version string) error {
	uc, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	check, err := updater.CheckYtDlpUpdate(uc, version)
	if err != nil {
		return fmt.Errorf("vérification de mise à jour a échoué : %w", err)
	}
	a.ui.PrintInfo(ctx, check.Message(runtime.GOOS))
	return nil
}

// ResetTemplates réécrit les templates embarqués dans tplDir, avec sauvegarde
// des versions modifiées.
func ResetTemplates(tplDir string) (map[string]string, error) {
	return bootstrap.ExportDefaults(assets.Embedded, assets.DefaultTemplatePaths, tplDir, true)
}
