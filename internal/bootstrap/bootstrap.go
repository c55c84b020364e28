// Package bootstrap copie les ressources embarquées (templates de prompt) à
// côté du binaire, où l'utilisateur peut les modifier.
package bootstrap

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/patrickprogramme/ytbrief/internal/fsutil"
)

// Statuts retournés par ExportDefaults
const (
	StatusWritten     = "written"
	StatusUnchanged   = "unchanged"
	StatusSkipped     = "skipped (different)"
	StatusOverwritten = "overwritten"
)

// EnsureTemplatesPresent copie dans tplDir chaque fichier de srcFiles absent
// sur disque. Un fichier existant n'est jamais remplacé.
// Les chemins de srcFiles sont relatifs à fsys (ex: "templates/tags_prompt.txt.tmpl").
func EnsureTemplatesPresent(tplDir string, fsys fs.FS, srcFiles []string) error {
	if err := os.MkdirAll(tplDir, 0o755); err != nil {
		return fmt.Errorf("échec de création du répertoire de templates %s : %w", tplDir, err)
	}
	for _, src := range srcFiles {
		dest := filepath.Join(tplDir, path.Base(src))
		if _, err := os.Stat(dest); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("échec lors du test du fichier %s : %w", dest, err)
		}
		data, err := fs.ReadFile(fsys, src)
		if err != nil {
			return fmt.Errorf("fichier embarqué introuvable %s : %w", src, err)
		}
		if err := fsutil.WriteFileAtomic(dest, data, 0o644); err != nil {
			return fmt.Errorf("échec d'écriture du template %s : %w", dest, err)
		}
	}
	return nil
}

// ExportDefaults copie srcFiles vers destDir et retourne un statut par fichier.
// force=true remplace les fichiers modifiés après en avoir fait une sauvegarde.
func ExportDefaults(fsys fs.FS, srcFiles []string, destDir string, force bool) (map[string]string, error) {
	status := make(map[string]string, len(srcFiles))
	for _, src := range srcFiles {
		data, err := fs.ReadFile(fsys, src)
		if err != nil {
			return status, fmt.Errorf("lecture ressource embarquée %s : %w", src, err)
		}
		dest := filepath.Join(destDir, path.Base(src))

		existing, err := os.ReadFile(dest)
		switch {
		case err != nil && !os.IsNotExist(err):
			return status, fmt.Errorf("lecture %s : %w", dest, err)
		case err == nil && bytes.Equal(existing, data):
			status[src] = StatusUnchanged
			continue
		case err == nil && !force:
			status[src] = StatusSkipped
			continue
		case err == nil:
			backup := dest + ".bak." + time.Now().Format("20060102T150405")
			if err := fsutil.WriteFileAtomic(backup, existing, 0o644); err != nil {
				return status, fmt.Errorf("sauvegarde de %s : %w", dest, err)
			}
			status[src] = StatusOverwritten
		default:
			status[src] = StatusWritten
		}

		if err := fsutil.WriteFileAtomic(dest, data, 0o644); err != nil {
			return status, fmt.Errorf("écriture %s : %w", dest, err)
		}
	}
	return status, nil
}
