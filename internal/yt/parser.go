package yt

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/patrickprogramme/ytbrief/pkg/model"
)

// suffixe des pistes ASR dans la langue d'origine ; les autres clés de
// automatic_captions sont des traductions automatiques
const origSuffix = "-orig"

// ParseYTDLP transforme le JSON brut de `yt-dlp -j` en Meta.
func ParseYTDLP(raw []byte) (*model.Meta, error) {
	var y ytdlpOutput
	if err := json.Unmarshal(raw, &y); err != nil {
		return nil, fmt.Errorf("unmarshal ytdlp output: %w", err)
	}
	return &model.Meta{
		ID:         y.ID,
		Title:      y.Title,
		Uploader:   y.Uploader,
		ManualSubs: selectTracks(y.Subtitles, model.FormatJSON3, model.SubSourceManual),
		AutoSubs:   selectTracks(y.AutomaticCaptions, model.FormatJSON3, model.SubSourceAutomatic),
	}, nil
}

// selectTracks garde une piste par langue au format demandé, triées par langue.
// Pour les captions automatiques seules les langues "-orig" sont retenues,
// suffixe retiré.
func selectTracks(m map[string][]subtitleItem, format model.Format, src model.SubSource) []model.SubtitleTrack {
	var out []model.SubtitleTrack
	for lang, items := range m {
		if src == model.SubSourceAutomatic {
			if !strings.HasSuffix(lang, origSuffix) {
				continue
			}
			lang = strings.TrimSuffix(lang, origSuffix)
		}
		// "live_chat" n'est pas une piste de sous-titres
		if lang == "live_chat" {
			continue
		}
		for _, it := range items {
			if pf, err := model.ParseFormat(it.Ext); err == nil && pf == format && it.URL != "" {
				out = append(out, model.SubtitleTrack{Lang: lang, Format: pf, URL: it.URL, Source: src})
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Lang < out[j].Lang })
	return out
}

// ParsePlaylist retourne les URL watch des entrées, dans l'ordre du catalogue.
func ParsePlaylist(raw []byte) ([]string, error) {
	var p ytdlpPlaylist
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("unmarshal ytdlp playlist: %w", err)
	}
	urls := make([]string, 0, len(p.Entries))
	for _, e := range p.Entries {
		id := model.ExtractVideoID(e.ID)
		if id == "" {
			id = model.ExtractVideoID(e.URL)
		}
		if id == "" {
			continue
		}
		urls = append(urls, model.VideoRef{ID: id}.CanonicalURL())
	}
	return urls, nil
}
