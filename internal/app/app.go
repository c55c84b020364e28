package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/patrickprogramme/ytbrief/internal/analyzer"
	"github.com/patrickprogramme/ytbrief/internal/assets"
	"github.com/patrickprogramme/ytbrief/internal/batch"
	"github.com/patrickprogramme/ytbrief/internal/clipboard"
	"github.com/patrickprogramme/ytbrief/internal/config"
	"github.com/patrickprogramme/ytbrief/internal/llm"
	"github.com/patrickprogramme/ytbrief/internal/metadata"
	"github.com/patrickprogramme/ytbrief/internal/output"
	"github.com/patrickprogramme/ytbrief/internal/render"
	"github.com/patrickprogramme/ytbrief/internal/retry"
	"github.com/patrickprogramme/ytbrief/internal/slack"
	"github.com/patrickprogramme/ytbrief/internal/transcript"
	"github.com/patrickprogramme/ytbrief/internal/ui"
	"github.com/patrickprogramme/ytbrief/internal/yt"
	"github.com/patrickprogramme/ytbrief/pkg/model"
)

const defaultUpdateTimeout = 15 * time.Second

// CLIFlags contient les informations venant des flags de l'app.
// Les valeurs vides laissent la configuration inchangée.
type CLIFlags struct {
	ConfigPath     string
	URLs           []string
	Auto           bool
	YtDlpPath      string
	Language       string
	Target         string
	PromptOnly     bool
	Clipboard      bool
	OutputDir      string
	Filename       string
	Tags           bool
	Thread         string
	ReportPath     string
	ResetTemplates bool
	LogLevel       string
}

// App orchestre les différentes dépendances (UI, yt-dlp, LLM, sorties...)
type App struct {
	cfg         *config.Config
	ui          ui.Interface
	flags       *CLIFlags
	templateDir string
	logger      *slog.Logger
	interactive bool
}

// New construit l'application. templateDir : templates modifiables à côté du binaire.
func New(cfg *config.Config, uiClient ui.Interface, flags *CLIFlags, templateDir string, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	if flags == nil {
		flags = &CLIFlags{}
	}
	return &App{
		cfg:         cfg,
		ui:          uiClient,
		flags:       flags,
		templateDir: templateDir,
		logger:      logger,
		interactive: ui.IsInteractive(),
	}
}

// ApplyFlags reporte les flags sur la configuration.
func ApplyFlags(cfg *config.Config, f *CLIFlags) {
	if f == nil {
		return
	}
	if f.Auto {
		cfg.AutoMode = true
	}
	if f.YtDlpPath != "" {
		cfg.YtDlp.Path = f.YtDlpPath
		cfg.ResolveYtDlpPath()
	}
	if f.Language != "" {
		cfg.Language = f.Language
	}
	if f.Target != "" {
		cfg.Target = f.Target
	}
	if f.PromptOnly {
		cfg.PromptOnly = true
	}
	if f.Clipboard {
		cfg.SaveFile = false
	}
	if f.OutputDir != "" {
		cfg.OutputDir = filepath.Clean(f.OutputDir)
	}
	if f.Tags {
		cfg.DynamicTags = true
	}
	if f.Thread != "" {
		cfg.Slack.ThreadURL = f.Thread
	}
	if f.ReportPath != "" {
		cfg.ReportPath = f.ReportPath
	}
}

// Destination déduite de la configuration : Slack, fichier ou presse-papier.
func Destination(cfg *config.Config) model.Destination {
	switch {
	case cfg.Target == config.TargetSlack:
		return model.DestinationChatThread
	case cfg.SaveFile:
		return model.DestinationFile
	default:
		return model.DestinationClipboard
	}
}

// SelectOperator choisit une fois pour toutes l'opérateur de saisie manuelle.
func SelectOperator(cfg *config.Config, batchMode, interactive bool) transcript.Operator {
	if cfg.AutoMode || batchMode || !interactive {
		return ui.AutoOperator{}
	}
	return ui.NewTerminalOperator()
}

// ExitCode : 1 si le lot n'a pas pu démarrer ou a été interrompu. Les échecs
// de vidéos isolées sont dans le rapport et ne changent pas le code de sortie.
func ExitCode(report *model.BatchReport, err error) int {
	if err != nil || report == nil {
		return 1
	}
	return 0
}

// Run exécute le flux principal et retourne le rapport du lot.
func (a *App) Run(ctx context.Context) (*model.BatchReport, error) {
	ApplyFlags(a.cfg, a.flags)
	a.cfg.LoadSecrets()
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}
	for _, w := range a.cfg.YtDlpWarnings() {
		a.ui.PrintError(ctx, w)
	}

	dest := Destination(a.cfg)

	var poster *slack.Poster
	if dest == model.DestinationChatThread {
		p, err := slack.NewPoster(a.cfg.Secrets.SlackToken, a.cfg.Slack.APIURL, a.logger)
		if err != nil {
			return nil, err
		}
		poster = p
	}

	urls, err := a.collectURLs(ctx, poster)
	if err != nil {
		return nil, err
	}
	// refus d'un lot sans sortie durable avant tout appel réseau
	if err := batch.CheckMode(urls, dest); err != nil {
		return nil, err
	}
	batchMode := batch.IsBatch(urls)

	dl, version, err := yt.InitYtDlp(ctx, a.cfg, a.logger)
	if err != nil {
		return nil, fmt.Errorf("yt init: %w", err)
	}
	if a.cfg.YtDlp.AutoUpdateCheck {
		if err := a.YtDlpUpdateCheck(ctx, defaultUpdateTimeout, version); err != nil {
			a.logger.Warn("vérification de mise à jour impossible", "err", err)
		}
	}
	ytProvider := yt.NewProvider(dl, a.logger)

	retryCfg := retry.Config{Attempts: a.cfg.Batch.RetryAttempt, Delay: a.cfg.Batch.RetryDelay}
	titles, err := a.metadataChain(ctx, ytProvider, retryCfg)
	if err != nil {
		return nil, err
	}

	renderer, err := a.renderer()
	if err != nil {
		return nil, err
	}

	var client llm.Client
	if !a.cfg.PromptOnly {
		c, err := llm.New(llm.Options{
			Provider:    a.cfg.LLM.Provider,
			APIKey:      a.cfg.Secrets.LLMAPIKey,
			Model:       a.cfg.LLM.Model,
			BaseURL:     a.cfg.LLM.BaseURL,
			Temperature: a.cfg.LLM.Temperature,
			MaxTokens:   a.cfg.LLM.MaxTokens,
		}, a.logger)
		if err != nil {
			return nil, err
		}
		client = c
	}

	operator := SelectOperator(a.cfg, batchMode, a.interactive)
	source := transcript.NewSource(ytProvider, operator, retryCfg, a.logger)
	an := analyzer.New(titles, source, renderer, client, a.cfg.Target, a.logger)

	var tagger output.Tagger
	if client != nil {
		tagger = an
	}
	var chat output.ChatPoster
	if poster != nil {
		chat = poster
	}
	sink := output.NewSink(clipboard.System{}, chat, tagger, a.logger)

	orch := batch.New(an, sink, titles, a.logger)
	report, runErr := orch.Run(ctx, urls, batch.Options{
		Language:    a.cfg.Language,
		PromptOnly:  a.cfg.PromptOnly,
		Destination: dest,
		Output: output.Options{
			DynamicTags:      a.cfg.DynamicTags,
			FilenameOverride: a.flags.Filename,
			OutputDir:        a.cfg.OutputDir,
			ThreadURL:        a.cfg.Slack.ThreadURL,
		},
		Pacing:     a.cfg.Batch.Pacing,
		ReportPath: a.cfg.ReportPath,
		OnItem: func(i, n int, item model.ReportItem) {
			a.ui.PrintItem(ctx, i, n, item)
		},
	})
	if report != nil {
		a.ui.PrintSummary(ctx, report)
	}
	if runErr != nil {
		return report, runErr
	}

	// fenêtre ouverte en usage interactif (lancement par double-clic)
	if !batchMode && !a.cfg.AutoMode && a.interactive {
		if err := a.ui.WaitForExit(ctx); err != nil && ctx.Err() == nil {
			return report, err
		}
	}
	return report, nil
}

// collectURLs : flags, puis message parent du fil Slack, puis presse-papier ou saisie.
func (a *App) collectURLs(ctx context.Context, poster *slack.Poster) ([]string, error) {
	if len(a.flags.URLs) > 0 {
		return a.flags.URLs, nil
	}
	if poster != nil {
		if thread, err := slack.ParseThreadURL(a.cfg.Slack.ThreadURL); err == nil {
			u, err := poster.ThreadVideoURL(ctx, thread)
			if err != nil {
				a.logger.Warn("lecture du fil Slack impossible", "err", err)
			} else if u != "" {
				a.ui.PrintInfo(ctx, fmt.Sprintf("Vidéo trouvée dans le fil Slack : %s", u))
				return []string{u}, nil
			}
		}
	}
	if a.cfg.AutoMode || !a.interactive {
		return nil, fmt.Errorf("no video url given: %w", model.ErrNotFound)
	}
	urls, err := a.ui.GetYtURLs(ctx)
	if err != nil {
		return nil, fmt.Errorf("get urls: %w", err)
	}
	return urls, nil
}

// metadataChain : API YouTube Data si une clé est fournie, yt-dlp ensuite.
func (a *App) metadataChain(ctx context.Context, ytProvider *yt.Provider, cfg retry.Config) (*metadata.Chain, error) {
	if a.cfg.Secrets.YouTubeKey == "" {
		return metadata.NewChain(a.logger, ytProvider), nil
	}
	api, err := metadata.NewAPIProvider(ctx, a.cfg.Secrets.YouTubeKey, cfg, a.logger)
	if err != nil {
		return nil, err
	}
	return metadata.NewChain(a.logger, api, ytProvider), nil
}

// renderer : templates modifiés par l'utilisateur si lisibles, embarqués sinon.
func (a *App) renderer() (*render.Renderer, error) {
	if a.templateDir != "" {
		if _, err := os.Stat(a.templateDir); err == nil {
			r, err := render.NewRendererFromFS(os.DirFS(a.templateDir), []string{assets.TemplatePattern})
			if err == nil {
				if err = r.ParseNow(); err == nil {
					return r, nil
				}
			}
			a.ui.PrintError(context.Background(), fmt.Sprintf("templates de %s illisibles, templates embarqués utilisés : %v", a.templateDir, err))
		}
	}
	r, err := render.NewRendererFromFS(assets.Embedded, []string{"templates/" + assets.TemplatePattern})
	if err != nil {
		return nil, err
	}
	return r, r.ParseNow()
}
