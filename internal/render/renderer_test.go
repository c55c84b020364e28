package render

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrickprogramme/ytbrief/internal/assets"
)

type line struct {
	Clock, Link, Text string
}

func TestRenderEmbeddedTranscriptTemplate(t *testing.T) {
	r, err := NewRendererFromFS(assets.Embedded, []string{"templates/" + assets.TemplatePattern})
	require.NoError(t, err)
	require.NoError(t, r.ParseNow())
	assert.Contains(t, r.TemplateNames(), assets.TemplateTranscript)

	out, err := r.Render(assets.TemplateTranscript, map[string]any{
		"Title":        "Go Tour",
		"URL":          "https://www.youtube.com/watch?v=abcdefghijk",
		"Language":     "en",
		"Target":       "markdown",
		"UserSupplied": false,
		"Lines": []line{
			{Clock: "0:00", Link: "https://youtu.be/abcdefghijk?t=0", Text: "hello"},
			{Clock: "1:05", Link: "https://youtu.be/abcdefghijk?t=65", Text: "world"},
		},
	})
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, "[Go Tour](https://www.youtube.com/watch?v=abcdefghijk)")
	assert.Contains(t, s, "[TRANSCRIPT START]\n0:00 (Link: https://youtu.be/abcdefghijk?t=0): hello\n1:05 (Link: https://youtu.be/abcdefghijk?t=65): world\n[TRANSCRIPT END]")
}

func TestRenderErrors(t *testing.T) {
	_, err := NewRendererFromFS(nil, []string{"*.tmpl"})
	assert.Error(t, err)
	_, err = NewRendererFromFS(fstest.MapFS{}, nil)
	assert.Error(t, err)

	r, err := NewRendererFromFS(fstest.MapFS{"a.tmpl": {Data: []byte("{{ upper .X }}")}}, []string{"*.tmpl"})
	require.NoError(t, err)
	assert.Equal(t, []string{"*.tmpl"}, r.TemplateNames())
	out, err := r.Render("a.tmpl", map[string]string{"X": "go"})
	require.NoError(t, err)
	assert.Equal(t, "GO", string(out))

	_, err = r.Render("missing.tmpl", nil)
	assert.Error(t, err)

	bad, err := NewRendererFromFS(fstest.MapFS{"b.tmpl": {Data: []byte("{{ .X")}}, []string{"*.tmpl"})
	require.NoError(t, err)
	assert.Error(t, bad.ParseNow())
}
