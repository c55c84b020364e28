package output

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

type frontMatter struct {
	Title string   `yaml:"title"`
	Tags  []string `yaml:"tags,omitempty"`
}

// RenderDocument assemble le document Markdown : front matter YAML quand des
// tags sont fournis, simple titre de niveau 1 sinon.
func RenderDocument(title, body string, tags []string) ([]byte, error) {
	var buf bytes.Buffer
	if len(tags) > 0 {
		buf.WriteString("---\n")
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(frontMatter{Title: title + " Analysis", Tags: tags}); err != nil {
			return nil, fmt.Errorf("encode front matter: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode front matter: %w", err)
		}
		buf.WriteString("---\n\n")
	} else {
		fmt.Fprintf(&buf, "# %s\n\n", title)
	}
	buf.WriteString(strings.TrimSpace(body))
	buf.WriteString("\n")
	return buf.Bytes(), nil
}
