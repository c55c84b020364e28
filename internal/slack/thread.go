// Package slack publie les analyses dans un fil Slack.
package slack

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/patrickprogramme/ytbrief/pkg/model"
)

var threadURLRe = regexp.MustCompile(`slack\.com/archives/([A-Z0-9]+)/p(\d+)`)

// ThreadRef identifie un fil : canal et horodatage du message parent.
type ThreadRef struct {
	Channel  string
	ThreadTS string
}

// ParseThreadURL lit un lien de message Slack
// (https://<espace>.slack.com/archives/<canal>/p<horodatage>).
// L'horodatage "p1712345678123456" devient "1712345678.123456".
func ParseThreadURL(raw string) (ThreadRef, error) {
	m := threadURLRe.FindStringSubmatch(raw)
	if m == nil {
		return ThreadRef{}, fmt.Errorf("%w: invalid slack thread url %q", model.ErrConfiguration, raw)
	}
	digits := m[2]
	if len(digits) < 10 {
		return ThreadRef{}, fmt.Errorf("%w: invalid timestamp %q in slack url", model.ErrConfiguration, digits)
	}
	micro := digits[10:]
	if len(micro) > 6 {
		micro = micro[:6]
	}
	micro += strings.Repeat("0", 6-len(micro))
	return ThreadRef{Channel: m[1], ThreadTS: digits[:10] + "." + micro}, nil
}

var youTubeInText = regexp.MustCompile(`https?://(?:www\.)?(?:youtube\.com/(?:watch\?v=|embed/|v/)|youtu\.be/)([A-Za-z0-9_-]{11})`)
