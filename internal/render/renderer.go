// Package render exécute les templates de prompt (embarqués ou copiés à côté du binaire).
package render

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"
	"text/template"
)

// Renderer gère le parsing paresseux (lazy) des templates et fournit le rendu.
type Renderer struct {
	templates *template.Template
	fsys      fs.FS    // embed.FS ou os.DirFS
	patterns  []string // relatifs au fsys, ex: "templates/*.tmpl"
	once      sync.Once
	err       error // erreur d'initialisation mémorisée par once
}

// NewRendererFromFS construit un Renderer qui parsera plus tard les patterns
// fournis depuis fsys.
func NewRendererFromFS(fsys fs.FS, patterns []string) (*Renderer, error) {
	if fsys == nil {
		return nil, fmt.Errorf("fsys est nil")
	}
	if len(patterns) == 0 {
		return nil, fmt.Errorf("aucun template fourni")
	}
	return &Renderer{
		fsys:     fsys,
		patterns: append([]string(nil), patterns...),
	}, nil
}

func (r *Renderer) parseTemplates() error {
	r.once.Do(func() {
		t := template.New("root").Funcs(baseFuncMap())
		for _, p := range r.patterns {
			var err error
			t, err = t.ParseFS(r.fsys, p)
			if err != nil {
				r.err = fmt.Errorf("parse pattern %q: %w", p, err)
				return
			}
		}
		r.templates = t
	})
	return r.err
}

// ParseNow force le parsing immédiat.
func (r *Renderer) ParseNow() error {
	if r == nil {
		return fmt.Errorf("nil renderer")
	}
	return r.parseTemplates()
}

// Render exécute le template name (basename du fichier .tmpl) avec data.
func (r *Renderer) Render(name string, data any) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("renderer is nil")
	}
	if err := r.parseTemplates(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// TemplateNames retourne les noms des templates parsés.
// Avant parsing, renvoie les basenames des patterns.
func (r *Renderer) TemplateNames() []string {
	if r == nil {
		return nil
	}
	if r.templates == nil {
		out := make([]string, 0, len(r.patterns))
		for _, p := range r.patterns {
			out = append(out, path.Base(p))
		}
		return out
	}
	var names []string
	for _, t := range r.templates.Templates() {
		if n := t.Name(); n != "" && n != "root" {
			names = append(names, n)
		}
	}
	return names
}

func baseFuncMap() template.FuncMap {
	return template.FuncMap{
		"upper": strings.ToUpper,
		"trim":  strings.TrimSpace,
	}
}
