package updater

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickprogramme/ytbrief/internal/fetch"
	"github.com/patrickprogramme/ytbrief/pkg/model"
)

// LatestReleaseURL : API GitHub de la dernière release de yt-dlp.
var LatestReleaseURL = "https://api.github.com/repos/yt-dlp/yt-dlp/releases/latest"

const (
	releaseTimeout  = 15 * time.Second
	releaseMaxBytes = 2_000_000
)

// nom de l'exécutable publié pour chaque runtime.GOOS, "" : build générique
var assetForOS = map[string]string{
	"windows": "yt-dlp.exe",
	"darwin":  "yt-dlp_macos",
	"":        "yt-dlp",
}

// Release : dernière version publiée et liens de téléchargement par système.
type Release struct {
	Tag         string
	PublishedAt time.Time
	PageURL     string
	downloads   map[string]string // nom d'asset -> URL
}

// DownloadURL retourne l'exécutable adapté à system, ou la page de la release.
func (r *Release) DownloadURL(system string) string {
	name, ok := assetForOS[system]
	if !ok {
		name = assetForOS[""]
	}
	if u := r.downloads[name]; u != "" {
		return u
	}
	if u := r.downloads[assetForOS[""]]; u != "" {
		return u
	}
	return r.PageURL
}

type githubRelease struct {
	TagName     string    `json:"tag_name"`
	PublishedAt time.Time `json:"published_at"`
	HTMLURL     string    `json:"html_url"`
	Assets      []struct {
		Name string `json:"name"`
		URL  string `json:"browser_download_url"`
	} `json:"assets"`
}

// LatestRelease interroge l'API GitHub. Une release sans exécutable générique est rejetée.
func LatestRelease(ctx context.Context) (*Release, error) {
	gh, err := fetch.FetchJSON[githubRelease](ctx, LatestReleaseURL, releaseTimeout, releaseMaxBytes)
	if err != nil {
		return nil, fmt.Errorf("release GitHub : %w", err)
	}
	if gh.TagName == "" {
		return nil, fmt.Errorf("release GitHub sans tag : %w", model.ErrNotFound)
	}

	rel := &Release{
		Tag:         gh.TagName,
		PublishedAt: gh.PublishedAt,
		PageURL:     gh.HTMLURL,
		downloads:   make(map[string]string, len(gh.Assets)),
	}
	for _, a := range gh.Assets {
		rel.downloads[a.Name] = a.URL
	}
	if rel.downloads[assetForOS[""]] == "" {
		return nil, fmt.Errorf("asset %s introuvable dans %s : %w", assetForOS[""], gh.TagName, model.ErrNotFound)
	}
	return rel, nil
}
