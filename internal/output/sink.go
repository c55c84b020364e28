// Package output livre les analyses : fichier Markdown, presse-papier ou fil Slack.
package output

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/patrickprogramme/ytbrief/internal/fsutil"
	"github.com/patrickprogramme/ytbrief/internal/slack"
	"github.com/patrickprogramme/ytbrief/pkg/model"
)

// ChatPoster est satisfait par slack.Poster.
type ChatPoster interface {
	Post(ctx context.Context, thread slack.ThreadRef, text string) (string, error)
}

// ClipboardWriter est satisfait par clipboard.System.
type ClipboardWriter interface {
	WriteAll(text string) error
}

// Tagger est satisfait par analyzer.Analyzer.
type Tagger interface {
	GenerateTags(ctx context.Context, analysis string) ([]string, error)
}

// Options de livraison d'une analyse.
type Options struct {
	DynamicTags bool
	// FilenameOverride remplace le nom dérivé du titre (vidéo unique seulement)
	FilenameOverride string
	OutputDir        string
	ThreadURL        string
}

// Sink route un AnalysisResult vers sa destination.
type Sink struct {
	clipboard ClipboardWriter
	poster    ChatPoster
	tagger    Tagger
	logger    *slog.Logger
}

// NewSink : les collaborateurs nil désactivent la destination correspondante.
func NewSink(clip ClipboardWriter, poster ChatPoster, tagger Tagger, logger *slog.Logger) *Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sink{clipboard: clip, poster: poster, tagger: tagger, logger: logger}
}

// Deliver n'échoue jamais par panique ni par erreur : l'issue est dans DeliveryResult.
func (s *Sink) Deliver(ctx context.Context, res model.AnalysisResult, dest model.Destination, opts Options) model.DeliveryResult {
	out := model.DeliveryResult{Destination: dest}
	if res.Status != model.StatusSuccess {
		out.Detail = fmt.Sprintf("nothing to deliver (status %s)", res.Status)
		return out
	}

	var err error
	switch dest {
	case model.DestinationFile:
		out.Detail, err = s.toFile(ctx, res, opts)
	case model.DestinationClipboard:
		out.Detail, err = s.toClipboard(ctx, res, opts)
	case model.DestinationChatThread:
		out.Detail, err = s.toThread(ctx, res, opts)
	default:
		err = fmt.Errorf("unknown destination %q", dest)
	}
	if err != nil {
		s.logger.Error("livraison échouée", "destination", dest, "title", res.VideoTitle, "err", err)
		out.Detail = err.Error()
		return out
	}
	out.Success = true
	return out
}

// document construit le Markdown final, avec tags si demandés et possibles.
func (s *Sink) document(ctx context.Context, res model.AnalysisResult, opts Options) ([]byte, error) {
	var tags []string
	if opts.DynamicTags && res.Mode == model.ModeAnalysis && s.tagger != nil {
		t, err := s.tagger.GenerateTags(ctx, res.Body)
		if err != nil {
			s.logger.Warn("génération des tags échouée, titre simple utilisé", "err", err)
		} else {
			tags = t
		}
	}
	return RenderDocument(res.VideoTitle, res.Body, tags)
}

func (s *Sink) toFile(ctx context.Context, res model.AnalysisResult, opts Options) (string, error) {
	content, err := s.document(ctx, res, opts)
	if err != nil {
		return "", err
	}
	base := fsutil.SanitizeFilename(res.VideoTitle)
	if o := strings.TrimSpace(opts.FilenameOverride); o != "" {
		base = fsutil.SanitizeFilename(strings.TrimSuffix(filepath.Base(o), ".md"))
	}
	dir := opts.OutputDir
	if dir == "" {
		dir = "."
	}
	// même titre : le dernier écrit gagne
	path, err := fsutil.SaveMarkdownAtomic(dir, base, content, true)
	if err != nil {
		return "", fmt.Errorf("save %s: %w", base, err)
	}
	s.logger.Info("analyse enregistrée", "path", path)
	return path, nil
}

func (s *Sink) toClipboard(ctx context.Context, res model.AnalysisResult, opts Options) (string, error) {
	if s.clipboard == nil {
		return "", fmt.Errorf("clipboard unavailable")
	}
	content, err := s.document(ctx, res, opts)
	if err != nil {
		return "", err
	}
	if err := s.clipboard.WriteAll(string(content)); err != nil {
		return "", fmt.Errorf("clipboard: %w", err)
	}
	return "copied to clipboard", nil
}

func (s *Sink) toThread(ctx context.Context, res model.AnalysisResult, opts Options) (string, error) {
	if s.poster == nil {
		return "", fmt.Errorf("slack poster unavailable")
	}
	thread, err := slack.ParseThreadURL(opts.ThreadURL)
	if err != nil {
		return "", err
	}
	text := slack.FormatMessage(res.VideoTitle, res.VideoURL, res.Body)
	ts, err := s.poster.Post(ctx, thread, text)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("posted to %s (ts %s)", thread.Channel, ts), nil
}
