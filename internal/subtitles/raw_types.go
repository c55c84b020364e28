package subtitles

import "strings"

// rawJSON3 : structure brute d'une piste json3 Youtube.
type rawJSON3 struct {
	Events []rawEvent `json:"events"`
}

type rawEvent struct {
	TStartMs    *int64   `json:"tStartMs,omitempty"`
	DDurationMs *int64   `json:"dDurationMs,omitempty"`
	Segs        []rawSeg `json:"segs,omitempty"`
	// wpWinPosId, wWinId... ignorés
}

type rawSeg struct {
	Utf8      string `json:"utf8"`
	TOffsetMs *int64 `json:"tOffsetMs,omitempty"`
}

// startMs retourne tStartMs ou 0.
func (e rawEvent) startMs() int64 {
	if e.TStartMs == nil {
		return 0
	}
	return *e.TStartMs
}

// text concatène les segs de l'event en une ligne normalisée.
func (e rawEvent) text() string {
	var b strings.Builder
	for _, s := range e.Segs {
		b.WriteString(strings.ReplaceAll(s.Utf8, "\\n", "\n"))
	}
	return normalizeWhitespace(b.String())
}

// isNewlineOnly : events de mise en page ASR qui ne portent aucun mot.
func (e rawEvent) isNewlineOnly() bool {
	if len(e.Segs) == 0 {
		return false
	}
	return e.text() == ""
}
