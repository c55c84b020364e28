package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/anatolykoptev/go-kit/env"

	"github.com/patrickprogramme/ytbrief/internal/app"
	"github.com/patrickprogramme/ytbrief/internal/assets"
	"github.com/patrickprogramme/ytbrief/internal/bootstrap"
	"github.com/patrickprogramme/ytbrief/internal/config"
	"github.com/patrickprogramme/ytbrief/internal/ui"
)

const defaultConfigName = "ytbrief.yaml"

func main() {
	os.Exit(run())
}

func run() int {
	flags := parseFlags()
	logger := newLogger(flags.LogLevel)
	slog.SetDefault(logger)

	// déterminer exePath/binDir
	binDir := "."
	exePath, err := os.Executable()
	if err != nil {
		logger.Warn("impossible de déterminer le chemin de l'exécutable", "err", err)
	} else {
		binDir = filepath.Dir(exePath)
		logger.Debug("lancement", "exe", exePath)
	}

	if flags.ConfigPath == "" {
		flags.ConfigPath = filepath.Join(binDir, defaultConfigName)
	}

	// templates modifiables dans binDir/templates
	tplDir := filepath.Join(binDir, "templates")
	if flags.ResetTemplates {
		status, err := app.ResetTemplates(tplDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "réinitialisation des templates : %v\n", err)
			return 1
		}
		for _, src := range assets.DefaultTemplatePaths {
			fmt.Printf("%s : %s\n", filepath.Base(src), status[src])
		}
		return 0
	}
	if err := bootstrap.EnsureTemplatesPresent(tplDir, assets.Embedded, assets.DefaultTemplatePaths); err != nil {
		logger.Warn("templates absents, templates embarqués utilisés", "err", err)
	}

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load: %v\n", err)
		return 1
	}

	// root context qui s'annule sur SIGINT / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New(cfg, ui.NewTerminal(), flags, tplDir, logger)
	report, err := a.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "erreur : %v\n", err)
	}
	return app.ExitCode(report, err)
}

func parseFlags() *app.CLIFlags {
	f := &app.CLIFlags{}
	flag.StringVar(&f.ConfigPath, "config", "", "chemin du fichier de configuration (défaut : ytbrief.yaml à côté du binaire)")
	flag.Func("url", "URL YouTube (vidéo ou playlist), répétable", func(s string) error {
		f.URLs = append(f.URLs, s)
		return nil
	})
	flag.BoolVar(&f.Auto, "auto", false, "exécution automatique sans interaction")
	flag.StringVar(&f.YtDlpPath, "yt-dlp-path", "", "chemin vers l'exécutable yt-dlp ou son répertoire")
	flag.StringVar(&f.Language, "lang", "", "langue de l'analyse (ex: en, fr)")
	flag.StringVar(&f.Target, "target", "", "markdown | slack")
	flag.BoolVar(&f.PromptOnly, "prompt-only", false, "produire le prompt sans appeler le LLM")
	flag.BoolVar(&f.Clipboard, "clipboard", false, "copier le résultat au lieu d'écrire un fichier")
	flag.StringVar(&f.OutputDir, "out", "", "répertoire de sortie")
	flag.StringVar(&f.Filename, "filename", "", "nom du fichier de sortie (vidéo unique)")
	flag.BoolVar(&f.Tags, "tags", false, "générer des tags et un front matter YAML")
	flag.StringVar(&f.Thread, "thread", "", "URL du fil Slack cible")
	flag.StringVar(&f.ReportPath, "report", "", "chemin du rapport JSON du lot")
	flag.BoolVar(&f.ResetTemplates, "reset-templates", false, "réécrire les templates par défaut (avec sauvegarde)")
	flag.StringVar(&f.LogLevel, "log-level", "", "debug | info | warn | error")
	flag.Parse()

	f.URLs = append(f.URLs, flag.Args()...)
	return f
}

// newLogger : niveau pris du flag, puis de YTBRIEF_LOG_LEVEL.
func newLogger(level string) *slog.Logger {
	if level == "" {
		level = env.Str("YTBRIEF_LOG_LEVEL", "warn")
	}
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
