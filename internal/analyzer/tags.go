package analyzer

import (
	"context"
	"errors"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/patrickprogramme/ytbrief/internal/assets"
)

// GenerateTags demande au LLM une liste de tags pour une analyse.
func (a *Analyzer) GenerateTags(ctx context.Context, analysis string) ([]string, error) {
	if a.llm == nil {
		return nil, errors.New("no llm client configured")
	}
	prompt, err := a.renderer.Render(assets.TemplateTags, struct{ Analysis string }{analysis})
	if err != nil {
		return nil, err
	}
	out, err := a.llm.Complete(ctx, string(prompt))
	if err != nil {
		return nil, err
	}
	tags := ParseTags(out)
	a.logger.Debug("tags générés", "count", len(tags))
	return tags, nil
}

// ParseTags lit une liste YAML, éventuellement entourée d'un bloc de code.
// Si le YAML est invalide, les lignes "- tag" sont récupérées une à une.
func ParseTags(raw string) []string {
	raw = strings.ReplaceAll(raw, "```yaml", "")
	raw = strings.ReplaceAll(raw, "```", "")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var list []string
	if err := yaml.Unmarshal([]byte(raw), &list); err == nil {
		return cleanTags(list)
	}
	var doc struct {
		Tags []string `yaml:"tags"`
	}
	if err := yaml.Unmarshal([]byte(raw), &doc); err == nil && len(doc.Tags) > 0 {
		return cleanTags(doc.Tags)
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if t, ok := strings.CutPrefix(line, "- "); ok {
			list = append(list, t)
		}
	}
	return cleanTags(list)
}

func cleanTags(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.Trim(strings.TrimSpace(t), `"'#`)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
