package fsutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"How to Code in Python", "How-to-Code-in-Python"},
		{"Video: Test? (2024)", "Video-Test-(2024)"},
		{"  Spaces   and---dashes  ", "Spaces-and-dashes"},
		{"snake_case__title", "snake-case-title"},
		{"Tabs\tand\nnewlines", "Tabs-and-newlines"},
		{"...dots at the end...", "dots-at-the-end"},
		{strings.Repeat("A", 150), strings.Repeat("A", 100)},
		{`<>:"/\|?*`, FallbackFilename},
		{"", FallbackFilename},
		{"Café déjà vu", "Café-déjà-vu"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, SanitizeFilename(c.in), "input %q", c.in)
	}
}

func TestSanitizeFilenameTruncationTrimsSeparators(t *testing.T) {
	in := strings.Repeat("a", 99) + " tail"
	got := SanitizeFilename(in)
	assert.Equal(t, strings.Repeat("a", 99), got)
}

func TestSanitizeFilenameIdempotent(t *testing.T) {
	inputs := []string{
		"How to Code in Python",
		"  Spaces   and---dashes  ",
		strings.Repeat("Ab c_", 40),
		`<>:"/\|?*`,
		"Émission spéciale : l'IA en 2024 !",
	}
	for _, in := range inputs {
		once := SanitizeFilename(in)
		assert.Equal(t, once, SanitizeFilename(once), "input %q", in)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "nested", "file.txt")

	require.NoError(t, WriteFileAtomic(dest, []byte("v1"), 0o644))
	require.NoError(t, WriteFileAtomic(dest, []byte("v2"), 0o644))

	b, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(b))

	// aucun fichier temporaire ne doit traîner
	entries, err := os.ReadDir(filepath.Dir(dest))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSaveMarkdownAtomic(t *testing.T) {
	dir := t.TempDir()

	p1, err := SaveMarkdownAtomic(dir, "note", []byte("first"), true)
	require.NoError(t, err)
	p2, err := SaveMarkdownAtomic(dir, "note", []byte("second"), true)
	require.NoError(t, err)
	assert.Equal(t, p1, p2)
	b, _ := os.ReadFile(p1)
	assert.Equal(t, "second", string(b))

	p3, err := SaveMarkdownAtomic(dir, "note", []byte("third"), false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "note_1.md"), p3)

	_, err = SaveMarkdownAtomic(dir, "", []byte("x"), true)
	assert.Error(t, err)
}
