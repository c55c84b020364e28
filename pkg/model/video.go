package model

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const (
	watchBaseURL = "https://www.youtube.com/watch?v="
	shortBaseURL = "https://youtu.be/"
)

var (
	// un ID après "v=" ou un chemin connu (youtu.be, embed, shorts, live, v)
	videoIDInURL = regexp.MustCompile(`(?:[?&]v=|youtu\.be/|/embed/|/shorts/|/live/|/v/)([0-9A-Za-z_-]{11})(?:[^0-9A-Za-z_-]|$)`)
	bareVideoID  = regexp.MustCompile(`^[0-9A-Za-z_-]{11}$`)
)

// VideoRef identifie une vidéo. Immuable une fois construite.
type VideoRef struct {
	ID        string
	SourceURL string
}

// ExtractVideoID retourne l'ID à 11 caractères contenu dans raw, ou "" si aucun.
// Un ID nu est retourné tel quel.
func ExtractVideoID(raw string) string {
	raw = strings.TrimSpace(raw)
	if bareVideoID.MatchString(raw) {
		return raw
	}
	if m := videoIDInURL.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return ""
}

// ParseVideoRef construit une VideoRef depuis une URL ou un ID nu.
func ParseVideoRef(raw string) (VideoRef, error) {
	id := ExtractVideoID(raw)
	if id == "" {
		return VideoRef{}, fmt.Errorf("%w: no video id in %q", ErrNotFound, raw)
	}
	src := strings.TrimSpace(raw)
	if src == id {
		src = watchBaseURL + id
	}
	return VideoRef{ID: id, SourceURL: src}, nil
}

// CanonicalURL retourne l'URL watch?v= de la vidéo.
func (v VideoRef) CanonicalURL() string {
	return watchBaseURL + v.ID
}

// TimestampURL retourne le lien court positionné à l'offset donné.
func (v VideoRef) TimestampURL(at Seconds) string {
	return fmt.Sprintf("%s%s?t=%d", shortBaseURL, v.ID, int64(at))
}

// IsPlaylistURL indique si l'URL porte un identifiant de playlist.
func IsPlaylistURL(raw string) bool {
	return strings.Contains(raw, "list=")
}

// ExtractPlaylistID retourne la valeur du paramètre list, ou "".
func ExtractPlaylistID(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return u.Query().Get("list")
}
