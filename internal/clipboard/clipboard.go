package clipboard

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"
)

// ReadAll lit le contenu texte du presse-papier (BOM et CRLF normalisés).
func ReadAll() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", err
	}
	text = strings.TrimPrefix(text, "\ufeff")
	return strings.ReplaceAll(text, "\r\n", "\n"), nil
}

// WriteAll écrit une chaîne de caractères dans le presse-papier.
func WriteAll(text string) error {
	if text == "" {
		return errors.New("le texte à copier ne peut pas être vide")
	}
	return clipboard.WriteAll(text)
}

// System est le presse-papier du système, utilisable là où une interface est attendue.
type System struct{}

func (System) ReadAll() (string, error)   { return ReadAll() }
func (System) WriteAll(text string) error { return WriteAll(text) }

// Unsupported indique qu'aucun utilitaire de presse-papier n'est disponible
// (xclip/xsel absents sous Linux par exemple).
func Unsupported() bool {
	return clipboard.Unsupported
}
