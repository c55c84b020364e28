package fsutil

import (
	"regexp"
	"strings"
)

const (
	// longueur maximale d'un nom de fichier (en runes, sans extension)
	maxFilenameLen = 100
	// nom utilisé quand il ne reste rien après nettoyage
	FallbackFilename = "untitled-video"
	trimSet          = "-. "
)

var (
	// caractères interdits dans les noms de fichiers, contrôles compris
	invalidFileRunes = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F\x7F]`)
	// espaces et underscores deviennent un tiret unique
	separatorRun = regexp.MustCompile(`[\s_]+`)
	dashRun      = regexp.MustCompile(`-{2,}`)
)

// SanitizeFilename dérive un nom de fichier sûr depuis un titre de vidéo.
// Appliquer la fonction à son propre résultat ne change rien.
func SanitizeFilename(title string) string {
	// séparateurs d'abord : \t et \n font aussi partie des caractères de contrôle
	clean := separatorRun.ReplaceAllString(title, "-")
	clean = invalidFileRunes.ReplaceAllString(clean, "")
	clean = dashRun.ReplaceAllString(clean, "-")
	clean = strings.Trim(clean, trimSet)

	if rs := []rune(clean); len(rs) > maxFilenameLen {
		clean = strings.TrimRight(string(rs[:maxFilenameLen]), trimSet)
	}
	if clean == "" {
		return FallbackFilename
	}
	return clean
}
