package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/patrickprogramme/ytbrief/internal/assets"
	"github.com/patrickprogramme/ytbrief/internal/fsutil"
	"gopkg.in/yaml.v3"
)

const CurrentConfigVersion = 2

// Cibles de rendu du prompt
const (
	TargetMarkdown = "markdown"
	TargetSlack    = "slack"
)

// Config : paramètres lus depuis ytbrief.yaml.
type Config struct {
	// Sortie
	OutputDir   string `yaml:"output_dir"`
	SaveFile    bool   `yaml:"save_file"`
	DynamicTags bool   `yaml:"dynamic_tags"`
	ReportPath  string `yaml:"report_path"`

	// Analyse
	Language   string `yaml:"language"`
	Target     string `yaml:"target"`
	PromptOnly bool   `yaml:"prompt_only"`

	// Mode automatique : aucune question posée à l'opérateur
	AutoMode bool `yaml:"auto_mode"`

	LLM struct {
		Provider    string  `yaml:"provider"`
		Model       string  `yaml:"model"`
		BaseURL     string  `yaml:"base_url"`
		Temperature float32 `yaml:"temperature"`
		MaxTokens   int     `yaml:"max_tokens"`
	} `yaml:"llm"`

	Batch struct {
		Pacing       time.Duration `yaml:"pacing"`
		RetryAttempt int           `yaml:"retry_attempts"`
		RetryDelay   time.Duration `yaml:"retry_delay"`
	} `yaml:"batch"`

	Slack struct {
		ThreadURL string `yaml:"thread_url"`
		APIURL    string `yaml:"api_url"`
	} `yaml:"slack"`

	YtDlp struct {
		Name            string `yaml:"name"`
		Path            string `yaml:"path"`
		ShowWarnings    bool   `yaml:"show_warnings"`
		AutoUpdateCheck bool   `yaml:"auto_update_check"`

		// ResolvedPath : chemin effectif vers l'exécutable
		ResolvedPath string `yaml:"-"`
	} `yaml:"yt_dlp"`

	ConfigVersion int `yaml:"config_version"`

	// Secrets : jamais écrits dans le yaml, lus depuis l'environnement
	Secrets Secrets `yaml:"-"`

	configFilePath string
}

// Configuration par défaut (fallback si l'asset embarqué est incomplet)
func defaultConfig() *Config {
	c := &Config{}

	c.OutputDir = "."
	c.SaveFile = true
	c.DynamicTags = false

	c.Language = "en"
	c.Target = TargetMarkdown

	c.LLM.Provider = "deepseek"
	c.LLM.Temperature = 0.2
	c.LLM.MaxTokens = 4096

	c.Batch.Pacing = 500 * time.Millisecond
	c.Batch.RetryAttempt = 3
	c.Batch.RetryDelay = time.Second

	c.YtDlp.Name = "yt-dlp"

	c.ConfigVersion = CurrentConfigVersion
	return c
}

// Load lit la config ; si le fichier n'existe pas, l'exemple embarqué est copié.
func Load(path string) (*Config, error) {
	if path == "" {
		path = "ytbrief.yaml"
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := createDefaultConfigFromEmbedded(path); err != nil {
			return nil, fmt.Errorf("échec de création du fichier de configuration par défaut : %w", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lecture du fichier de configuration %s impossible : %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("analyse du fichier de configuration %s impossible : %w", path, err)
	}
	cfg.configFilePath = path

	if cfg.ConfigVersion < CurrentConfigVersion {
		if err := orchestrateConfigUpgrade(cfg, cfg.ConfigVersion); err != nil {
			return nil, fmt.Errorf("échec de mise à niveau de la configuration : %w", err)
		}
	}
	return cfg, nil
}

// Parse décode un yaml par-dessus les valeurs par défaut et normalise le résultat.
func Parse(data []byte) (*Config, error) {
	cfg := defaultConfig()
	// chemins Windows avec backslashes
	data = bytes.ReplaceAll(data, []byte(`\`), []byte(`/`))
	// les champs absents conservent les valeurs par défaut
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.normalizeConfig()
	return cfg, nil
}

func createDefaultConfigFromEmbedded(dstPath string) error {
	b, err := assets.Embedded.ReadFile(assets.DefaultConfigAsset)
	if err != nil {
		return fmt.Errorf("lecture du modèle de configuration embarqué impossible : %w", err)
	}
	if err := fsutil.WriteFileAtomic(dstPath, b, 0o644); err != nil {
		return fmt.Errorf("échec d'écriture du fichier de configuration %s : %w", dstPath, err)
	}
	return nil
}

func (c *Config) normalizeConfig() {
	c.OutputDir = filepath.Clean(c.OutputDir)

	c.Language = strings.ToLower(strings.TrimSpace(c.Language))
	if c.Language == "" {
		c.Language = "en"
	}
	c.Target = strings.ToLower(strings.TrimSpace(c.Target))
	if c.Target == "" {
		c.Target = TargetMarkdown
	}
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))

	if c.Batch.Pacing < 0 {
		c.Batch.Pacing = 0
	}
	if c.Batch.RetryAttempt <= 0 {
		c.Batch.RetryAttempt = 3
	}
	if c.Batch.RetryDelay < 0 {
		c.Batch.RetryDelay = time.Second
	}

	c.ResolveYtDlpPath()
}

// ResolveYtDlpPath normalise le nom et résout le chemin vers l'exécutable.
// Path vide : le nom est cherché dans le PATH. Path répertoire : on y joint le nom.
func (c *Config) ResolveYtDlpPath() {
	if c == nil {
		return
	}

	c.YtDlp.Name = strings.TrimSpace(c.YtDlp.Name)
	if c.YtDlp.Name == "" {
		c.YtDlp.Name = "yt-dlp"
	}
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(c.YtDlp.Name), ".exe") {
		c.YtDlp.Name += ".exe"
	}

	p := strings.TrimSpace(c.YtDlp.Path)
	switch {
	case p == "":
		c.YtDlp.ResolvedPath = c.YtDlp.Name
	case filepath.Base(filepath.Clean(p)) == c.YtDlp.Name:
		c.YtDlp.ResolvedPath = filepath.Clean(p)
	default:
		c.YtDlp.ResolvedPath = filepath.Join(filepath.Clean(p), c.YtDlp.Name)
	}
}
