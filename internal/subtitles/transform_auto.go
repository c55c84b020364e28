package subtitles

import (
	"strings"
)

// Les captions ASR fournissent un horodatage par mot (tStartMs + tOffsetMs).
// On reconstruit des phrases à partir des pauses et de la ponctuation.

const (
	// au-delà de cette pause entre deux mots, on coupe la phrase
	pauseThresholdMs = 2000
	// nombre maximum de mots par phrase
	maxWordsPerPhrase = 100
)

// Phrase : texte normalisé et timestamp du premier mot, en millisecondes.
type Phrase struct {
	TimestampMs int64
	Text        string
}

type phraseBuilder struct {
	out     []Phrase
	words   []string
	startMs int64
	lastMs  int64
}

func newPhraseBuilder() *phraseBuilder {
	return &phraseBuilder{startMs: -1, lastMs: -1}
}

// commit ferme la phrase en cours. lastMs est conservé comme repli de timestamp.
func (b *phraseBuilder) commit() {
	if len(b.words) == 0 {
		b.startMs = -1
		return
	}
	ts := b.startMs
	if ts < 0 {
		ts = max(b.lastMs, 0)
	}
	b.out = append(b.out, Phrase{TimestampMs: ts, Text: strings.Join(b.words, " ")})
	b.words = b.words[:0]
	b.startMs = -1
}

// add traite un seg comme une unité atomique.
func (b *phraseBuilder) add(text string, ts int64) {
	if ts > 0 {
		if b.lastMs >= 0 && ts-b.lastMs > pauseThresholdMs && len(b.words) > 0 {
			b.commit()
		}
		b.lastMs = ts
		if b.startMs < 0 {
			b.startMs = ts
		}
	}
	b.words = append(b.words, strings.Fields(text)...)

	if len(b.words) >= maxWordsPerPhrase {
		b.commit()
		return
	}
	if r, ok := lastNonSpaceRune(trimTrailingClosers(text)); ok && isSentenceTerminatorRune(r) {
		b.commit()
	}
}

// buildPhrases regroupe les segs ASR en phrases lisibles.
func buildPhrases(raw rawJSON3) []Phrase {
	b := newPhraseBuilder()
	for _, ev := range raw.Events {
		if ev.isNewlineOnly() {
			continue
		}
		for _, seg := range ev.Segs {
			s := strings.ReplaceAll(seg.Utf8, "\\n", "\n")
			if strings.TrimSpace(s) == "" {
				continue
			}
			b.add(s, calculateAbsTime(ev, seg))
		}
	}
	b.commit()
	return b.out
}
