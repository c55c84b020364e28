package yt

import (
	"context"
	"os/exec"
	"strings"

	"github.com/patrickprogramme/ytbrief/pkg/model"
)

// GetVersion retourne la dernière ligne non vide de `yt-dlp --version`
// (les éventuels avertissements Python précèdent la version).
func (y *YtDlp) GetVersion(ctx context.Context) (string, error) {
	args := []string{"--version"}
	out, err := exec.CommandContext(ctx, y.exe(), args...).CombinedOutput()
	if err != nil {
		return "", &ExecError{Args: args, Output: string(out), Kind: model.ErrConfiguration, Err: err}
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(lines[len(lines)-1]), nil
}
