// Package transcript choisit et récupère la transcription d'une vidéo en
// descendant une chaîne ordonnée de paliers.
package transcript

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/patrickprogramme/ytbrief/internal/retry"
	"github.com/patrickprogramme/ytbrief/pkg/model"
)

const fallbackLanguage = "en"

// Provider expose le catalogue des pistes d'une vidéo et leur contenu.
type Provider interface {
	List(ctx context.Context, videoID string) ([]model.TranscriptHandle, error)
	Fetch(ctx context.Context, videoID string, h model.TranscriptHandle) ([]model.TranscriptLine, error)
}

// Operator est sollicité quand aucun palier automatique n'a abouti.
// ok=false signifie que l'opérateur a refusé.
type Operator interface {
	ManualTranscript(ctx context.Context, ref model.VideoRef, title string) (text string, ok bool, err error)
	Interactive() bool
}

// strategy sélectionne une piste dans le catalogue.
type strategy struct {
	name string
	mode model.AcquisitionMode
	pick func(catalog []model.TranscriptHandle) (model.TranscriptHandle, bool)
}

func byLanguage(lang string, generated bool) func([]model.TranscriptHandle) (model.TranscriptHandle, bool) {
	return func(catalog []model.TranscriptHandle) (model.TranscriptHandle, bool) {
		for _, h := range catalog {
			if h.Generated == generated && sameLanguage(h.Language, lang) {
				return h, true
			}
		}
		return model.TranscriptHandle{}, false
	}
}

func first(catalog []model.TranscriptHandle) (model.TranscriptHandle, bool) {
	if len(catalog) == 0 {
		return model.TranscriptHandle{}, false
	}
	return catalog[0], true
}

// sameLanguage compare les codes sans tenir compte de la région ("en-US" == "en").
func sameLanguage(a, b string) bool {
	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == b {
		return true
	}
	base := func(s string) string {
		if i := strings.IndexAny(s, "-_"); i > 0 {
			return s[:i]
		}
		return s
	}
	return base(a) == base(b)
}

// strategies retourne les paliers dans l'ordre strict de priorité.
func strategies(lang string) []strategy {
	out := []strategy{
		{name: "manual " + lang, mode: model.AcquisitionManual, pick: byLanguage(lang, false)},
		{name: "generated " + lang, mode: model.AcquisitionGenerated, pick: byLanguage(lang, true)},
	}
	if !sameLanguage(lang, fallbackLanguage) {
		out = append(out,
			strategy{name: "manual en", mode: model.AcquisitionManual, pick: byLanguage(fallbackLanguage, false)},
			strategy{name: "generated en", mode: model.AcquisitionGenerated, pick: byLanguage(fallbackLanguage, true)},
		)
	}
	return append(out, strategy{name: "any", mode: model.AcquisitionFallback, pick: first})
}

// Source descend la chaîne de paliers pour une vidéo.
type Source struct {
	provider Provider
	operator Operator
	retry    retry.Config
	logger   *slog.Logger
}

// NewSource construit la chaîne. operator peut être nil (équivaut à un refus silencieux).
func NewSource(provider Provider, operator Operator, cfg retry.Config, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{provider: provider, operator: operator, retry: cfg, logger: logger}
}

// Fetch retourne la transcription de ref.
//
// Une vidéo sans transcription n'est pas une erreur : Mode vaut Unavailable.
// Erreurs possibles :
//   - ErrUserCancelled quand l'opérateur refuse la saisie manuelle ;
//   - ErrTransport, en mode non interactif, quand des pistes existaient mais
//     qu'aucune n'a pu être téléchargée (ErrNotFound si la vidéo est introuvable) ;
//   - l'erreur du contexte en cas d'annulation.
func (s *Source) Fetch(ctx context.Context, ref model.VideoRef, language, title string) (model.TranscriptResult, error) {
	log := s.logger.With("video", ref.ID)
	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" {
		language = fallbackLanguage
	}

	catalog, err := s.provider.List(ctx, ref.ID)
	if err != nil {
		if ctx.Err() != nil {
			return unavailable(), ctx.Err()
		}
		log.Info("catalogue de transcriptions indisponible", "err", err)
	}

	var fetchErr error
	if len(catalog) > 0 {
		res, err := s.fromCatalog(ctx, log, ref.ID, language, catalog)
		if err == nil {
			return res, nil
		}
		if ctx.Err() != nil {
			return unavailable(), ctx.Err()
		}
		fetchErr = err
	} else if err != nil && !errors.Is(err, model.ErrTranscriptsDisabled) && !errors.Is(err, model.ErrNoTranscript) {
		fetchErr = err
	}

	return s.degrade(ctx, log, ref, title, fetchErr)
}

// fromCatalog applique les paliers 1 à 4, puis la relance réseau et le repli
// sur les autres pistes.
func (s *Source) fromCatalog(ctx context.Context, log *slog.Logger, videoID, language string, catalog []model.TranscriptHandle) (model.TranscriptResult, error) {
	var (
		selected model.TranscriptHandle
		tier     strategy
		found    bool
	)
	for _, st := range strategies(language) {
		if h, ok := st.pick(catalog); ok {
			selected, tier, found = h, st, true
			break
		}
		log.Debug("palier sans piste", "tier", st.name)
	}
	if !found {
		return model.TranscriptResult{}, model.ErrNoTranscript
	}
	log.Info("piste sélectionnée", "tier", tier.name, "lang", selected.Language, "generated", selected.Generated)

	var lines []model.TranscriptLine
	err := retry.Do(ctx, s.retry, nil, func(ctx context.Context) error {
		var ferr error
		lines, ferr = s.provider.Fetch(ctx, videoID, selected)
		if ferr != nil {
			log.Warn("téléchargement de la piste échoué", "lang", selected.Language, "err", ferr)
		}
		return ferr
	})
	if err == nil {
		return model.TranscriptResult{Lines: lines, LanguageUsed: selected.Language, Mode: tier.mode}, nil
	}
	if ctx.Err() != nil {
		return model.TranscriptResult{}, ctx.Err()
	}

	lastErr := err
	for _, h := range catalog {
		if h == selected {
			continue
		}
		lines, ferr := s.provider.Fetch(ctx, videoID, h)
		if ferr != nil {
			if ctx.Err() != nil {
				return model.TranscriptResult{}, ctx.Err()
			}
			log.Debug("piste de repli échouée", "lang", h.Language, "err", ferr)
			lastErr = ferr
			continue
		}
		log.Info("piste de repli retenue", "lang", h.Language, "generated", h.Generated)
		return model.TranscriptResult{Lines: lines, LanguageUsed: h.Language, Mode: model.AcquisitionFallback}, nil
	}
	return model.TranscriptResult{}, lastErr
}

// degrade traite l'épuisement de la chaîne : saisie opérateur en mode
// interactif, résultat Unavailable sinon.
func (s *Source) degrade(ctx context.Context, log *slog.Logger, ref model.VideoRef, title string, fetchErr error) (model.TranscriptResult, error) {
	if s.operator == nil || !s.operator.Interactive() {
		if fetchErr != nil {
			log.Warn("aucune piste n'a pu être téléchargée", "err", fetchErr)
			if errors.Is(fetchErr, model.ErrTransport) || errors.Is(fetchErr, model.ErrNotFound) {
				return unavailable(), fmt.Errorf("transcript fetch: %w", fetchErr)
			}
			return unavailable(), fmt.Errorf("transcript fetch: %w: %w", model.ErrTransport, fetchErr)
		}
		log.Info("aucune transcription, analyse sur le titre seul")
		return unavailable(), nil
	}

	text, ok, err := s.operator.ManualTranscript(ctx, ref, title)
	if err != nil {
		return unavailable(), fmt.Errorf("manual transcript: %w", err)
	}
	text = strings.TrimSpace(text)
	if !ok || text == "" {
		log.Info("saisie manuelle refusée")
		return unavailable(), model.ErrUserCancelled
	}
	log.Info("transcription fournie par l'opérateur", "chars", len(text))
	return model.TranscriptResult{
		Lines:        []model.TranscriptLine{{Offset: 0, Text: text}},
		LanguageUsed: "",
		Mode:         model.AcquisitionUserSupplied,
	}, nil
}

func unavailable() model.TranscriptResult {
	return model.TranscriptResult{Mode: model.AcquisitionUnavailable}
}
