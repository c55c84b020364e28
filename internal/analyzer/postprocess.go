package analyzer

import (
	"regexp"
	"strings"
)

var (
	excessNewlines = regexp.MustCompile(`\n{3,}`)
	// en-tête recopié du prompt ou phrase d'introduction du modèle
	boilerplateHeader = regexp.MustCompile(`(?i)^\s*(\*{1,2}Video Analysis Request\*{1,2}|here is (the|a|an|your)\b.*\banalysis\b.*:)\s*$`)
)

// PostProcess normalise la réponse du LLM : sauts de ligne multiples réduits,
// en-tête superflu retiré.
func PostProcess(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimSpace(s)

	first, rest, _ := strings.Cut(s, "\n")
	if boilerplateHeader.MatchString(first) {
		s = strings.TrimSpace(rest)
	}
	return excessNewlines.ReplaceAllString(s, "\n\n")
}
