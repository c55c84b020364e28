package model

import "fmt"

// Seconds est un alias explicite pour représenter une position en secondes.
type Seconds int64

// Clock formate Seconds en "M:SS" (les minutes ne sont pas bornées).
// Exemple : 65 -> "1:05", 3661 -> "61:01".
func (s Seconds) Clock() string {
	total := int64(s)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// Format des pistes de sous-titres
type Format string

const (
	FormatJSON3 Format = "json3"
	FormatSRT   Format = "srt"
	FormatVTT   Format = "vtt"
)

// ParseFormat convertit une extension yt-dlp en Format, erreur si inconnu.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json3":
		return FormatJSON3, nil
	case "srt":
		return FormatSRT, nil
	case "vtt":
		return FormatVTT, nil
	default:
		return "", fmt.Errorf("format demandé inconnu: %s", s)
	}
}

func (f Format) String() string {
	return string(f)
}
