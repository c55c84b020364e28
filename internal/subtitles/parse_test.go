package subtitles

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const manualJSON3 = `{
  "wireMagic": "pb3",
  "events": [
    {"tStartMs": 5000, "dDurationMs": 2000, "segs": [{"utf8": "Second   line"}]},
    {"tStartMs": 1000, "dDurationMs": 2000, "segs": [{"utf8": "Hello "}, {"utf8": "world"}]},
    {"tStartMs": 7000, "segs": [{"utf8": "\n"}]}
  ]
}`

const asrJSON3 = `{
  "events": [
    {"tStartMs": 0, "segs": [{"utf8": "\n"}]},
    {"tStartMs": 1000, "segs": [{"utf8": "so"}, {"utf8": " today", "tOffsetMs": 300}, {"utf8": " we start.", "tOffsetMs": 600}]},
    {"tStartMs": 2000, "segs": [{"utf8": "then"}, {"utf8": " a", "tOffsetMs": 200}]},
    {"tStartMs": 9000, "segs": [{"utf8": "long pause"}]}
  ]
}`

func TestLinesManual(t *testing.T) {
	lines, err := Lines([]byte(manualJSON3), false)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 1.0, lines[0].Offset)
	assert.Equal(t, "Hello world", lines[0].Text)
	assert.Equal(t, 5.0, lines[1].Offset)
	assert.Equal(t, "Second line", lines[1].Text)
}

func TestLinesGeneratedBuildsPhrases(t *testing.T) {
	lines, err := Lines([]byte(asrJSON3), true)
	require.NoError(t, err)
	require.Len(t, lines, 3)

	assert.Equal(t, "so today we start.", lines[0].Text)
	assert.Equal(t, 1.0, lines[0].Offset)
	// coupure sur la pause de plus de 2s
	assert.Equal(t, "then a", lines[1].Text)
	assert.Equal(t, 2.0, lines[1].Offset)
	assert.Equal(t, "long pause", lines[2].Text)
	assert.Equal(t, 9.0, lines[2].Offset)
}

func TestPhraseWordCap(t *testing.T) {
	seg := `{"utf8": "word"}`
	segs := strings.TrimSuffix(strings.Repeat(seg+",", maxWordsPerPhrase+5), ",")
	raw, err := ParseJSON3Bytes([]byte(`{"events":[{"tStartMs":10,"segs":[` + segs + `]}]}`))
	require.NoError(t, err)

	phrases := buildPhrases(raw)
	require.Len(t, phrases, 2)
	assert.Len(t, strings.Fields(phrases[0].Text), maxWordsPerPhrase)
}

func TestLinesRejectsGarbage(t *testing.T) {
	_, err := Lines(nil, false)
	assert.Error(t, err)
	_, err = Lines([]byte("<xml/>"), true)
	assert.Error(t, err)
}

func TestTrimTrailingClosers(t *testing.T) {
	assert.Equal(t, `he said "stop.`, trimTrailingClosers(`he said "stop."  `))
	r, ok := lastNonSpaceRune(trimTrailingClosers("(end!)"))
	assert.True(t, ok)
	assert.True(t, isSentenceTerminatorRune(r))
}
