package yt

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/patrickprogramme/ytbrief/pkg/model"
)

type subtitleItem struct {
	Ext string `json:"ext"`
	URL string `json:"url"`
}

// ytdlpOutput : sortie brute de `yt-dlp -j` pour une vidéo.
//
// Subtitles et AutomaticCaptions sont indexées par code langue ("fr", "en",
// "en-orig"...) ; chaque entrée liste les formats disponibles pour cette langue.
type ytdlpOutput struct {
	ID                string                    `json:"id"`
	Title             string                    `json:"title"`
	Uploader          string                    `json:"uploader"`
	Subtitles         map[string][]subtitleItem `json:"subtitles"`
	AutomaticCaptions map[string][]subtitleItem `json:"automatic_captions"`
}

// ytdlpPlaylist : sortie de `yt-dlp --flat-playlist -J`.
type ytdlpPlaylist struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Entries []struct {
		ID    string `json:"id"`
		URL   string `json:"url"`
		Title string `json:"title"`
	} `json:"entries"`
}

// ExtractedRaw : document JSON et lignes d'avertissement séparées.
type ExtractedRaw struct {
	JSON     []byte
	Warnings []string
}

// LogWarnings journalise les avertissements de yt-dlp.
func (r *ExtractedRaw) LogWarnings(logger *slog.Logger) {
	for _, w := range r.Warnings {
		logger.Warn("yt-dlp", slog.String("message", w))
	}
}

// YtDlp : binaire yt-dlp (nom ou chemin résolu) et ses flags.
type YtDlp struct {
	Name   string
	Path   string
	Config YtDlpConfig
	Logger *slog.Logger
}

// ExecError : échec d'exécution de yt-dlp. Kind vaut ErrNotFound quand la
// sortie désigne une vidéo absente, ErrTransport sinon.
type ExecError struct {
	Args   []string
	Output string
	Kind   error
	Err    error
}

func (e *ExecError) Error() string {
	out := strings.TrimSpace(e.Output)
	if len(out) > 300 {
		out = out[:300] + "..."
	}
	return fmt.Sprintf("yt-dlp %s: %v: %s", strings.Join(e.Args, " "), e.Err, out)
}

func (e *ExecError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// marqueurs d'une ressource définitivement absente dans la sortie de yt-dlp
var notFoundMarkers = []string{
	"Video unavailable",
	"Private video",
	"This video has been removed",
	"Incomplete YouTube ID",
	"is not a valid URL",
	"does not exist",
	"The playlist does not exist",
}

func classifyOutput(out string) error {
	for _, m := range notFoundMarkers {
		if strings.Contains(out, m) {
			return model.ErrNotFound
		}
	}
	return model.ErrTransport
}
