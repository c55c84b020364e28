package slack

import (
	"regexp"
	"strings"
)

// règles appliquées dans l'ordre
var mrkdwnRules = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`(?m)^#+\s+(.*?)(\s*#+)?$`), "*$1*"},
	{regexp.MustCompile(`\*\*(.*?)\*\*`), "*$1*"},
	{regexp.MustCompile(`__(.*?)__`), "_${1}_"},
	{regexp.MustCompile(`(?m)^(\s*)-\s+(.*)$`), "$1• $2"},
	{regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`), "$1"},
	{regexp.MustCompile(`-{3,}`), ""},
	{regexp.MustCompile(`\n{3,}`), "\n\n"},
	// l'indentation en début de ligne (puces imbriquées) est conservée
	{regexp.MustCompile(`(\S)[ \t]{2,}`), "$1 "},
	{regexp.MustCompile(`\n\s*\n`), "\n\n"},
}

var (
	bareURL    = regexp.MustCompile(`https?://\S+`)
	multiSpace = regexp.MustCompile(`(\S)[ \t]{2,}`)
)

// FormatMarkdown convertit du Markdown en mrkdwn Slack.
func FormatMarkdown(s string) string {
	for _, r := range mrkdwnRules {
		s = r.re.ReplaceAllString(s, r.repl)
	}
	return strings.TrimSpace(s)
}

// FormatMessage prépare le message d'un fil : titre en gras, corps converti,
// lignes du lien source et du titre retirées, URL restantes supprimées.
func FormatMessage(title, videoURL, body string) string {
	var kept []string
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if videoURL != "" && strings.Contains(trimmed, videoURL) && isLinkLine(trimmed) {
			continue
		}
		if title != "" && isTitleLine(trimmed, title) {
			continue
		}
		kept = append(kept, line)
	}
	out := FormatMarkdown(strings.Join(kept, "\n"))
	out = bareURL.ReplaceAllString(out, "")
	out = multiSpace.ReplaceAllString(out, "$1 ")
	if title != "" {
		out = "*" + title + "*\n\n" + out
	}
	return strings.TrimSpace(out)
}

func isLinkLine(line string) bool {
	l := strings.ToLower(line)
	return strings.HasPrefix(l, "youtube link:") || strings.HasPrefix(l, "video:") || strings.HasPrefix(l, "http")
}

func isTitleLine(line, title string) bool {
	l := strings.Trim(line, "#*_ ")
	return l == title || (strings.HasPrefix(strings.ToLower(l), "title:") && strings.Contains(l, title))
}
