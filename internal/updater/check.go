// Package updater signale une version de yt-dlp plus récente que celle installée.
package updater

import (
	"context"
	"fmt"
	"strings"
)

// UpdateCheck contient le résultat de la comparaison
type UpdateCheck struct {
	CurrentVersion string
	Latest         *Release
}

// IsUpToDate : les versions yt-dlp sont des dates, le tag fait foi.
func (u UpdateCheck) IsUpToDate() bool {
	return u.Latest == nil || u.CurrentVersion == u.Latest.Tag
}

// CheckYtDlpUpdate compare la version locale et la dernière release.
func CheckYtDlpUpdate(ctx context.Context, localVer string) (*UpdateCheck, error) {
	latest, err := LatestRelease(ctx)
	if err != nil {
		return nil, err
	}
	return &UpdateCheck{CurrentVersion: strings.TrimSpace(localVer), Latest: latest}, nil
}

// Message résume le résultat pour l'utilisateur ; system vient de runtime.GOOS.
func (u UpdateCheck) Message(system string) string {
	if u.IsUpToDate() {
		return fmt.Sprintf("✅ yt-dlp est à jour (%s)", u.CurrentVersion)
	}
	return fmt.Sprintf("⚠️ Nouvelle version de yt-dlp disponible : %s (installée : %s)\nTéléchargez-la ici : %s",
		u.Latest.Tag, u.CurrentVersion, u.Latest.DownloadURL(system))
}
