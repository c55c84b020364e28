// Package subtitles convertit les pistes json3 de Youtube en lignes de transcription.
package subtitles

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/patrickprogramme/ytbrief/pkg/model"
)

// ParseJSON3Bytes décode un blob json3 déjà en mémoire.
// Les champs non mappés sont ignorés.
func ParseJSON3Bytes(b []byte) (rawJSON3, error) {
	var raw rawJSON3
	if len(b) == 0 {
		return raw, fmt.Errorf("ParseJSON3Bytes: empty input")
	}
	if err := json.NewDecoder(bytes.NewReader(b)).Decode(&raw); err != nil {
		return raw, fmt.Errorf("ParseJSON3Bytes: decode error: %w", err)
	}
	return raw, nil
}

// Lines décode une piste json3 et retourne ses lignes triées par offset.
// Les pistes générées (ASR, horodatage par mot) sont regroupées en phrases,
// les pistes manuelles gardent un event par ligne.
func Lines(b []byte, generated bool) ([]model.TranscriptLine, error) {
	raw, err := ParseJSON3Bytes(b)
	if err != nil {
		return nil, err
	}

	var lines []model.TranscriptLine
	if generated {
		for _, p := range buildPhrases(raw) {
			lines = append(lines, model.TranscriptLine{Offset: float64(p.TimestampMs) / 1000, Text: p.Text})
		}
	} else {
		for _, ev := range raw.Events {
			txt := ev.text()
			if txt == "" {
				continue
			}
			lines = append(lines, model.TranscriptLine{Offset: float64(ev.startMs()) / 1000, Text: txt})
		}
	}

	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Offset < lines[j].Offset })
	return lines, nil
}
