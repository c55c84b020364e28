package assets

import "embed"

//go:embed ytbrief.example.yaml
//go:embed templates/*.tmpl
var Embedded embed.FS

// Nom de l'asset de config par défaut (chemin DANS Embedded)
const DefaultConfigAsset = "ytbrief.example.yaml"

// Noms des templates (basenames, utilisés par render.Renderer)
const (
	TemplateTranscript = "analysis_transcript.txt.tmpl"
	TemplateTitleOnly  = "analysis_title_only.txt.tmpl"
	TemplateTags       = "tags_prompt.txt.tmpl"
)

// TemplatePattern sélectionne tous les templates, dans Embedded comme sur disque.
const TemplatePattern = "*.tmpl"

// DefaultTemplatePaths : templates embarqués copiés à côté du binaire.
var DefaultTemplatePaths = []string{
	"templates/" + TemplateTranscript,
	"templates/" + TemplateTitleOnly,
	"templates/" + TemplateTags,
}
