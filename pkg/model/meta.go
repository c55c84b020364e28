package model

import (
	"fmt"
	"strings"
)

// SubSource représente la provenance d'une piste de sous-titres.
// automatic = générée par la reconnaissance vocale de Youtube
// manual = fournie par l'auteur de la vidéo
type SubSource string

const (
	SubSourceUnknown   SubSource = "unknown"
	SubSourceAutomatic SubSource = "automatic"
	SubSourceManual    SubSource = "manual"
)

func (s SubSource) String() string {
	switch s {
	case SubSourceAutomatic:
		return "auto captions"
	case SubSourceManual:
		return "manual subtitles"
	default:
		return "unknown subtitles"
	}
}

// SubtitleTrack décrit une piste de sous-titres téléchargeable.
type SubtitleTrack struct {
	Lang   string    `json:"lang"`
	Format Format    `json:"format,omitempty"`
	URL    string    `json:"url,omitempty"`
	Source SubSource `json:"source,omitempty"`
}

func (s SubtitleTrack) String() string {
	return fmt.Sprintf("SubtitleTrack(lang=%s, format=%s, source=%s)", s.Lang, s.Format, s.Source)
}

// Handle convertit la piste en référence utilisable par la chaîne de transcription.
func (s SubtitleTrack) Handle() TranscriptHandle {
	return TranscriptHandle{
		Language:  s.Lang,
		Generated: s.Source == SubSourceAutomatic,
		Ref:       s.URL,
	}
}

// Meta regroupe les métadonnées d'une vidéo utiles au pipeline.
type Meta struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Uploader   string          `json:"uploader,omitempty"`
	ManualSubs []SubtitleTrack `json:"manual_subtitles,omitempty"`
	AutoSubs   []SubtitleTrack `json:"subtitles,omitempty"`
}

// HasTracks indique si la vidéo expose au moins une piste exploitable.
func (m Meta) HasTracks() bool {
	return len(m.ManualSubs)+len(m.AutoSubs) > 0
}

// Tracks retourne les pistes manuelles puis automatiques.
func (m Meta) Tracks() []SubtitleTrack {
	out := make([]SubtitleTrack, 0, len(m.ManualSubs)+len(m.AutoSubs))
	out = append(out, m.ManualSubs...)
	return append(out, m.AutoSubs...)
}

func (m Meta) String() string {
	langs := func(tracks []SubtitleTrack) string {
		if len(tracks) == 0 {
			return "(aucun)"
		}
		out := make([]string, 0, len(tracks))
		for _, t := range tracks {
			out = append(out, t.Lang)
		}
		return strings.Join(out, ",")
	}
	return fmt.Sprintf("Meta[ID=%s, Title=%q, Manual=%s, Auto=%s]",
		m.ID, m.Title, langs(m.ManualSubs), langs(m.AutoSubs))
}
