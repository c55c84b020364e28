// Package analyzer transforme une vidéo en prompt d'analyse et, sauf mode
// prompt seul, en analyse produite par le LLM.
package analyzer

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"github.com/patrickprogramme/ytbrief/internal/assets"
	"github.com/patrickprogramme/ytbrief/internal/llm"
	"github.com/patrickprogramme/ytbrief/pkg/model"
)

// UnknownTitle remplace un titre introuvable.
const UnknownTitle = "Unknown Title"

// TitleResolver est satisfait par metadata.Chain.
type TitleResolver interface {
	Title(ctx context.Context, videoID string) (string, error)
}

// TranscriptFetcher est satisfait par transcript.Source.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, ref model.VideoRef, language, title string) (model.TranscriptResult, error)
}

// Renderer est satisfait par render.Renderer.
type Renderer interface {
	Render(name string, data any) ([]byte, error)
}

// Analyzer assemble titre, transcription, prompt et appel LLM.
type Analyzer struct {
	titles      TitleResolver
	transcripts TranscriptFetcher
	renderer    Renderer
	llm         llm.Client // nil en mode prompt seul
	target      string
	logger      *slog.Logger
}

// New construit l'analyseur. target : "markdown" ou "slack".
func New(titles TitleResolver, transcripts TranscriptFetcher, renderer Renderer, client llm.Client, target string, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		titles:      titles,
		transcripts: transcripts,
		renderer:    renderer,
		llm:         client,
		target:      target,
		logger:      logger,
	}
}

// promptLine : une ligne de transcription telle qu'affichée dans le prompt.
type promptLine struct {
	Clock string
	Link  string
	Text  string
}

// promptData alimente les templates d'analyse.
type promptData struct {
	Title        string
	URL          string
	Language     string
	Target       string
	UserSupplied bool
	Lines        []promptLine
}

// Analyze ne retourne jamais d'erreur : l'issue est portée par Status et Err.
func (a *Analyzer) Analyze(ctx context.Context, ref model.VideoRef, language string, promptOnly bool) model.AnalysisResult {
	log := a.logger.With("video", ref.ID)
	res := model.AnalysisResult{
		VideoTitle: UnknownTitle,
		VideoURL:   ref.SourceURL,
		Status:     model.StatusFailed,
	}
	if res.VideoURL == "" {
		res.VideoURL = ref.CanonicalURL()
	}

	if title, err := a.titles.Title(ctx, ref.ID); err != nil {
		log.Warn("titre introuvable, titre générique utilisé", "err", err)
	} else {
		res.VideoTitle = title
	}

	tr, err := a.transcripts.Fetch(ctx, ref, language, res.VideoTitle)
	res.Transcript = tr.Mode
	if err != nil {
		res.Err = err.Error()
		if errors.Is(err, model.ErrUserCancelled) {
			res.Status = model.StatusCancelled
		}
		return res
	}

	prompt, err := a.BuildPrompt(ref, res.VideoTitle, res.VideoURL, language, tr)
	if err != nil {
		res.Err = err.Error()
		return res
	}

	if promptOnly {
		res.Mode = model.ModePrompt
		res.Body = prompt
		res.Status = model.StatusSuccess
		return res
	}

	if a.llm == nil {
		res.Err = "no llm client configured"
		return res
	}
	out, err := a.llm.Complete(ctx, prompt)
	if err != nil {
		res.Err = err.Error()
		return res
	}
	res.Mode = model.ModeAnalysis
	res.Body = PostProcess(out)
	res.Status = model.StatusSuccess
	log.Info("analyse terminée", "transcript", tr.Mode, "chars", len(res.Body))
	return res
}

// BuildPrompt rend le template adapté : transcription horodatée si disponible,
// titre seul sinon.
func (a *Analyzer) BuildPrompt(ref model.VideoRef, title, videoURL, language string, tr model.TranscriptResult) (string, error) {
	data := promptData{
		Title:        title,
		URL:          videoURL,
		Language:     language,
		Target:       a.target,
		UserSupplied: tr.Mode == model.AcquisitionUserSupplied,
	}

	name := assets.TemplateTitleOnly
	if tr.Available() && len(tr.Lines) > 0 {
		name = assets.TemplateTranscript
		data.Lines = make([]promptLine, 0, len(tr.Lines))
		for _, l := range tr.Lines {
			pl := promptLine{Text: l.Text}
			// une saisie manuelle n'a pas d'horodatage
			if !data.UserSupplied {
				at := model.Seconds(math.Floor(l.Offset))
				pl.Clock = at.Clock()
				pl.Link = ref.TimestampURL(at)
			}
			data.Lines = append(data.Lines, pl)
		}
	}

	b, err := a.renderer.Render(name, data)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
