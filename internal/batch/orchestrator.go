// Package batch enchaîne l'analyse et la livraison de plusieurs vidéos et
// produit le rapport du lot.
package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/patrickprogramme/ytbrief/internal/fsutil"
	"github.com/patrickprogramme/ytbrief/internal/output"
	"github.com/patrickprogramme/ytbrief/pkg/model"
)

// MinPacing est l'écart minimal entre deux vidéos.
const MinPacing = 500 * time.Millisecond

// VideoAnalyzer est satisfait par analyzer.Analyzer.
type VideoAnalyzer interface {
	Analyze(ctx context.Context, ref model.VideoRef, language string, promptOnly bool) model.AnalysisResult
}

// Deliverer est satisfait par output.Sink.
type Deliverer interface {
	Deliver(ctx context.Context, res model.AnalysisResult, dest model.Destination, opts output.Options) model.DeliveryResult
}

// PlaylistResolver est satisfait par metadata.Chain.
type PlaylistResolver interface {
	ResolvePlaylist(ctx context.Context, playlistURL string) ([]string, error)
}

// Options d'un lot.
type Options struct {
	Language    string
	PromptOnly  bool
	Destination model.Destination
	Output      output.Options
	Pacing      time.Duration
	// ReportPath : rapport JSON écrit en fin de lot si non vide
	ReportPath string
	// OnItem est appelé après chaque vidéo (affichage de la progression)
	OnItem func(index, total int, item model.ReportItem)
}

// Orchestrator traite les vidéos une par une.
type Orchestrator struct {
	analyzer  VideoAnalyzer
	sink      Deliverer
	playlists PlaylistResolver
	logger    *slog.Logger
	newRunID  func() string
}

func New(analyzer VideoAnalyzer, sink Deliverer, playlists PlaylistResolver, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		analyzer:  analyzer,
		sink:      sink,
		playlists: playlists,
		logger:    logger,
		newRunID:  uuid.NewString,
	}
}

// IsBatch : plusieurs entrées, ou au moins une playlist.
func IsBatch(urls []string) bool {
	if len(urls) > 1 {
		return true
	}
	for _, u := range urls {
		if model.IsPlaylistURL(u) {
			return true
		}
	}
	return false
}

// CheckMode refuse un lot dont la sortie n'est pas durable. Aucun effet de bord.
func CheckMode(urls []string, dest model.Destination) error {
	if len(urls) == 0 {
		return fmt.Errorf("no video url: %w", model.ErrNotFound)
	}
	if model.ParseDestination(string(dest)) == "" {
		return fmt.Errorf("%w: unknown destination %q", model.ErrConfiguration, dest)
	}
	if IsBatch(urls) && dest == model.DestinationClipboard {
		return model.ErrBatchNeedsFile
	}
	return nil
}

// Run traite urls dans l'ordre. Une vidéo en échec n'interrompt pas le lot ;
// seule l'annulation du contexte l'arrête, le rapport partiel est alors retourné
// avec l'erreur du contexte.
func (o *Orchestrator) Run(ctx context.Context, urls []string, opts Options) (*model.BatchReport, error) {
	if err := CheckMode(urls, opts.Destination); err != nil {
		return nil, err
	}
	batch := IsBatch(urls)
	if batch && opts.Output.FilenameOverride != "" {
		o.logger.Warn("nom de fichier imposé ignoré en mode lot", "filename", opts.Output.FilenameOverride)
		opts.Output.FilenameOverride = ""
	}

	work := o.expand(ctx, urls)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := model.NewBatchReport(o.newRunID(), len(work))
	log := o.logger.With("run", report.RunID)
	log.Info("début du lot", "entries", len(work), "batch", batch, "destination", opts.Destination)

	pacing := max(opts.Pacing, MinPacing)
	limiter := rate.NewLimiter(rate.Every(pacing), 1)

	var runErr error
	for _, w := range work {
		// une playlist non résolue est consignée à sa place, sans appel réseau
		if w.failed != nil {
			o.record(report, opts, *w.failed)
			continue
		}
		if err := limiter.Wait(ctx); err != nil {
			runErr = err
			break
		}
		o.record(report, opts, o.processOne(ctx, log, w.url, opts))
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
	}

	report.Finalize()
	log.Info("fin du lot", "summary", report.Summary())

	if opts.ReportPath != "" {
		if err := WriteReport(opts.ReportPath, report); err != nil {
			log.Error("écriture du rapport impossible", "path", opts.ReportPath, "err", err)
		}
	}
	return report, runErr
}

func (o *Orchestrator) record(report *model.BatchReport, opts Options, item model.ReportItem) {
	report.Record(item)
	if opts.OnItem != nil {
		opts.OnItem(len(report.Items), report.Total, item)
	}
}

// workItem : une URL à traiter, ou une entrée déjà en échec.
type workItem struct {
	url    string
	failed *model.ReportItem
}

// expand remplace chaque playlist par ses vidéos, dans l'ordre du catalogue,
// en conservant l'ordre des entrées. Une playlist non résolue devient une
// entrée en échec, sauf si l'URL désigne aussi une vidéo (watch?v=...&list=...),
// traitée alors seule.
func (o *Orchestrator) expand(ctx context.Context, urls []string) []workItem {
	var work []workItem
	for _, raw := range urls {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if !model.IsPlaylistURL(raw) {
			work = append(work, workItem{url: raw})
			continue
		}

		var (
			videos []string
			err    error
		)
		if o.playlists == nil {
			err = errors.New("no playlist resolver configured")
		} else {
			videos, err = o.playlists.ResolvePlaylist(ctx, raw)
		}
		if err == nil && len(videos) == 0 {
			err = fmt.Errorf("empty playlist: %w", model.ErrNotFound)
		}
		if err != nil {
			if ctx.Err() != nil {
				return work
			}
			if model.ExtractVideoID(raw) != "" {
				o.logger.Warn("playlist non résolue, vidéo seule traitée", "url", raw, "err", err)
				work = append(work, workItem{url: raw})
				continue
			}
			o.logger.Warn("playlist non résolue, ignorée", "url", raw, "err", err)
			work = append(work, workItem{failed: &model.ReportItem{URL: raw, Status: model.StatusFailed, Detail: "playlist: " + err.Error()}})
			continue
		}
		o.logger.Info("playlist développée", "url", raw, "videos", len(videos))
		for _, v := range videos {
			work = append(work, workItem{url: v})
		}
	}
	return work
}

// processOne isole une vidéo : une panique devient une entrée en échec.
func (o *Orchestrator) processOne(ctx context.Context, log *slog.Logger, raw string, opts Options) (item model.ReportItem) {
	item = model.ReportItem{URL: raw, Status: model.StatusFailed}
	defer func() {
		if r := recover(); r != nil {
			log.Error("panique pendant le traitement", "url", raw, "panic", r)
			item.Status = model.StatusFailed
			item.Detail = fmt.Sprintf("internal error: %v", r)
		}
	}()

	ref, err := model.ParseVideoRef(raw)
	if err != nil {
		item.Detail = err.Error()
		return item
	}
	log = log.With("video", ref.ID)

	res := o.analyzer.Analyze(ctx, ref, opts.Language, opts.PromptOnly)
	item.Title = res.VideoTitle
	if res.Status != model.StatusSuccess {
		item.Status = res.Status
		item.Detail = res.Err
		log.Warn("vidéo non analysée", "status", res.Status, "err", res.Err)
		return item
	}

	delivery := o.sink.Deliver(ctx, res, opts.Destination, opts.Output)
	item.Detail = delivery.Detail
	if !delivery.Success {
		log.Warn("livraison échouée", "detail", delivery.Detail)
		return item
	}
	item.Status = model.StatusSuccess
	return item
}

// WriteReport écrit le rapport au format JSON.
func WriteReport(path string, report *model.BatchReport) error {
	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return fsutil.WriteFileAtomic(path, append(b, '\n'), 0o644)
}
