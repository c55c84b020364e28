package transcript

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrickprogramme/ytbrief/internal/retry"
	"github.com/patrickprogramme/ytbrief/pkg/model"
)

type fakeProvider struct {
	catalog []model.TranscriptHandle
	listErr error
	// échecs par langue/type ; -1 = échoue toujours
	failures map[model.TranscriptHandle]int
	calls    map[model.TranscriptHandle]int
}

func (f *fakeProvider) List(ctx context.Context, videoID string) ([]model.TranscriptHandle, error) {
	return f.catalog, f.listErr
}

func (f *fakeProvider) Fetch(ctx context.Context, videoID string, h model.TranscriptHandle) ([]model.TranscriptLine, error) {
	if f.calls == nil {
		f.calls = map[model.TranscriptHandle]int{}
	}
	f.calls[h]++
	if n, ok := f.failures[h]; ok && (n < 0 || f.calls[h] <= n) {
		return nil, fmt.Errorf("%w: boom", model.ErrTransport)
	}
	return []model.TranscriptLine{{Offset: 0, Text: h.Language + " text"}}, nil
}

type fakeOperator struct {
	interactive bool
	text        string
	ok          bool
	asked       int
}

func (o *fakeOperator) ManualTranscript(ctx context.Context, ref model.VideoRef, title string) (string, bool, error) {
	o.asked++
	return o.text, o.ok, nil
}

func (o *fakeOperator) Interactive() bool { return o.interactive }

var (
	frManual = model.TranscriptHandle{Language: "fr", Ref: "fr"}
	frAuto   = model.TranscriptHandle{Language: "fr", Generated: true, Ref: "fr-auto"}
	enManual = model.TranscriptHandle{Language: "en", Ref: "en"}
	enAuto   = model.TranscriptHandle{Language: "en", Generated: true, Ref: "en-auto"}
	deManual = model.TranscriptHandle{Language: "de", Ref: "de"}
)

var ref = model.VideoRef{ID: "aaaaaaaaaaa", SourceURL: "https://youtu.be/aaaaaaaaaaa"}

func fastRetry() retry.Config {
	return retry.Config{Attempts: 3, Delay: time.Millisecond}
}

func TestFetchTierOrder(t *testing.T) {
	tests := []struct {
		name     string
		lang     string
		catalog  []model.TranscriptHandle
		wantLang string
		wantMode model.AcquisitionMode
	}{
		{"manual wins over generated", "fr", []model.TranscriptHandle{frAuto, enManual, frManual}, "fr", model.AcquisitionManual},
		{"generated in requested language", "fr", []model.TranscriptHandle{enManual, frAuto}, "fr", model.AcquisitionGenerated},
		{"english manual fallback", "fr", []model.TranscriptHandle{deManual, enAuto, enManual}, "en", model.AcquisitionManual},
		{"english generated fallback", "fr", []model.TranscriptHandle{deManual, enAuto}, "en", model.AcquisitionGenerated},
		{"any transcript", "fr", []model.TranscriptHandle{deManual}, "de", model.AcquisitionFallback},
		{"regional code matches", "en", []model.TranscriptHandle{{Language: "en-US", Ref: "x"}}, "en-US", model.AcquisitionManual},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewSource(&fakeProvider{catalog: tt.catalog}, nil, fastRetry(), nil)
			res, err := src.Fetch(context.Background(), ref, tt.lang, "title")
			require.NoError(t, err)
			assert.Equal(t, tt.wantLang, res.LanguageUsed)
			assert.Equal(t, tt.wantMode, res.Mode)
			assert.True(t, res.Available())
		})
	}
}

func TestFetchRetriesSelectedTrack(t *testing.T) {
	p := &fakeProvider{
		catalog:  []model.TranscriptHandle{enManual, deManual},
		failures: map[model.TranscriptHandle]int{enManual: 2},
	}
	res, err := NewSource(p, nil, fastRetry(), nil).Fetch(context.Background(), ref, "en", "")
	require.NoError(t, err)
	assert.Equal(t, model.AcquisitionManual, res.Mode)
	assert.Equal(t, 3, p.calls[enManual])
	assert.Zero(t, p.calls[deManual])
}

func TestFetchCrossTranscriptFallback(t *testing.T) {
	p := &fakeProvider{
		catalog:  []model.TranscriptHandle{enManual, frAuto, deManual},
		failures: map[model.TranscriptHandle]int{enManual: -1, frAuto: -1},
	}
	res, err := NewSource(p, nil, fastRetry(), nil).Fetch(context.Background(), ref, "en", "")
	require.NoError(t, err)
	assert.Equal(t, model.AcquisitionFallback, res.Mode)
	assert.Equal(t, "de", res.LanguageUsed)
	assert.Equal(t, 3, p.calls[enManual])
	assert.Equal(t, 1, p.calls[frAuto])
	assert.Equal(t, 1, p.calls[deManual])
}

func TestFetchAllTracksFailUnattended(t *testing.T) {
	p := &fakeProvider{
		catalog:  []model.TranscriptHandle{enManual, enAuto},
		failures: map[model.TranscriptHandle]int{enManual: -1, enAuto: -1},
	}
	op := &fakeOperator{}
	res, err := NewSource(p, op, fastRetry(), nil).Fetch(context.Background(), ref, "en", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrTransport)
	assert.Equal(t, model.AcquisitionUnavailable, res.Mode)
	assert.Zero(t, op.asked)
}

func TestFetchNoTranscriptUnattended(t *testing.T) {
	for name, p := range map[string]*fakeProvider{
		"disabled": {listErr: fmt.Errorf("x: %w", model.ErrTranscriptsDisabled)},
		"empty":    {},
	} {
		t.Run(name, func(t *testing.T) {
			res, err := NewSource(p, &fakeOperator{}, fastRetry(), nil).Fetch(context.Background(), ref, "en", "")
			require.NoError(t, err)
			assert.Equal(t, model.AcquisitionUnavailable, res.Mode)
			assert.False(t, res.Available())
		})
	}
}

func TestFetchInteractiveDegradation(t *testing.T) {
	p := &fakeProvider{listErr: model.ErrTranscriptsDisabled}

	op := &fakeOperator{interactive: true, text: "  my own summary  ", ok: true}
	res, err := NewSource(p, op, fastRetry(), nil).Fetch(context.Background(), ref, "en", "Title")
	require.NoError(t, err)
	assert.Equal(t, model.AcquisitionUserSupplied, res.Mode)
	assert.Equal(t, []model.TranscriptLine{{Offset: 0, Text: "my own summary"}}, res.Lines)

	decline := &fakeOperator{interactive: true}
	res, err = NewSource(p, decline, fastRetry(), nil).Fetch(context.Background(), ref, "en", "Title")
	assert.True(t, errors.Is(err, model.ErrUserCancelled))
	assert.Equal(t, model.AcquisitionUnavailable, res.Mode)
	assert.Equal(t, 1, decline.asked)
}

func TestFetchInteractiveAfterFetchFailures(t *testing.T) {
	p := &fakeProvider{
		catalog:  []model.TranscriptHandle{enManual},
		failures: map[model.TranscriptHandle]int{enManual: -1},
	}
	op := &fakeOperator{interactive: true, text: "pasted", ok: true}
	res, err := NewSource(p, op, fastRetry(), nil).Fetch(context.Background(), ref, "en", "")
	require.NoError(t, err)
	assert.Equal(t, model.AcquisitionUserSupplied, res.Mode)
	assert.Equal(t, 1, op.asked)
}

func TestFetchContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := &fakeProvider{
		catalog:  []model.TranscriptHandle{enManual},
		failures: map[model.TranscriptHandle]int{enManual: -1},
	}
	_, err := NewSource(p, &fakeOperator{interactive: true}, retry.Config{Attempts: 3, Delay: time.Hour}, nil).
		Fetch(ctx, ref, "en", "")
	assert.ErrorIs(t, err, context.Canceled)
}
