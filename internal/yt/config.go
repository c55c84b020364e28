package yt

// YtDlpConfig regroupe les flags communs passés à yt-dlp.
type YtDlpConfig struct {
	NoWarnings bool // --no-warnings
	NoProgress bool
	NoUpdate   bool
	NoConfig   bool // --no-config : ignore les configs utilisateur
}

// NewYtDlpConfig : configuration standard, showWarning vient du yaml.
func NewYtDlpConfig(showWarning bool) *YtDlpConfig {
	return &YtDlpConfig{
		NoWarnings: !showWarning,
		NoProgress: true,
		NoUpdate:   true,
		NoConfig:   true,
	}
}

func (c *YtDlpConfig) common() []string {
	args := make([]string, 0, 8)
	// --no-config en tête
	if c.NoConfig {
		args = append(args, "--no-config")
	}
	if c.NoWarnings {
		args = append(args, "--no-warnings")
	}
	if c.NoProgress {
		args = append(args, "--no-progress")
	}
	if c.NoUpdate {
		args = append(args, "--no-update")
	}
	return args
}

// BuildArgs : métadonnées d'une vidéo sans téléchargement.
func (c *YtDlpConfig) BuildArgs(url string) []string {
	args := c.common()
	args = append(args, "-j", "--skip-download", "--no-playlist")
	return append(args, url)
}

// BuildPlaylistArgs : liste plate des entrées d'une playlist, un seul document JSON.
func (c *YtDlpConfig) BuildPlaylistArgs(url string) []string {
	args := c.common()
	args = append(args, "-J", "--flat-playlist", "--yes-playlist")
	return append(args, url)
}
