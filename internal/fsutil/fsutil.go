package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFileAtomic écrit data dans destPath : fichier temporaire dans le même
// répertoire puis os.Rename. Les répertoires parents sont créés si besoin.
func WriteFileAtomic(destPath string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(destPath)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	// sans effet si le rename a réussi
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	// best-effort : certains systèmes de fichiers ne supportent pas fsync
	_ = tmp.Sync()
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	_ = os.Chmod(tmpName, perm)

	if err := os.Rename(tmpName, destPath); err != nil {
		return fmt.Errorf("rename tmp -> dest: %w", err)
	}
	return nil
}

// SaveMarkdownAtomic écrit content dans outDir/baseName.md.
// - overwrite=true  : le dernier écrivain gagne.
// - overwrite=false : suffixe _1, _2, ... si le fichier existe déjà.
// Retourne le chemin final.
func SaveMarkdownAtomic(outDir, baseName string, content []byte, overwrite bool) (string, error) {
	if baseName == "" {
		return "", fmt.Errorf("baseName empty")
	}
	final := filepath.Join(outDir, baseName+".md")

	if !overwrite {
		const maxAttempts = 1000
		for i := 1; fileExists(final); i++ {
			if i > maxAttempts {
				return "", fmt.Errorf("no free filename for %s in %s", baseName, outDir)
			}
			final = filepath.Join(outDir, fmt.Sprintf("%s_%d.md", baseName, i))
		}
	}

	if err := WriteFileAtomic(final, content, filePerm); err != nil {
		return "", err
	}
	return final, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
