package subtitles

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// calculateAbsTime : tStartMs de l'event + tOffsetMs du seg s'il existe.
func calculateAbsTime(ev rawEvent, seg rawSeg) int64 {
	if seg.TOffsetMs != nil {
		return ev.startMs() + *seg.TOffsetMs
	}
	return ev.startMs()
}

func isSentenceTerminatorRune(r rune) bool {
	return r == '.' || r == '!' || r == '?' || r == '…'
}

func isCloserRune(r rune) bool {
	switch r {
	case '"', '\'', '”', '’', ')', ']', '}', '»':
		return true
	}
	return false
}

// trimTrailingClosers retire les guillemets et parenthèses fermantes
// qui masquent un terminator en fin de seg.
func trimTrailingClosers(s string) string {
	for {
		s = strings.TrimRightFunc(s, unicode.IsSpace)
		r, size := utf8.DecodeLastRuneInString(s)
		if s == "" || !(isCloserRune(r) || (r == utf8.RuneError && size == 1)) {
			return s
		}
		s = s[:len(s)-size]
	}
}

// lastNonSpaceRune retourne la dernière rune non blanche (octets invalides ignorés).
func lastNonSpaceRune(s string) (rune, bool) {
	for len(s) > 0 {
		r, size := utf8.DecodeLastRuneInString(s)
		s = s[:len(s)-size]
		if r == utf8.RuneError && size == 1 {
			continue
		}
		if !unicode.IsSpace(r) {
			return r, true
		}
	}
	return 0, false
}

// normalizeWhitespace : un seul espace entre les mots, aucun en début ou fin.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
