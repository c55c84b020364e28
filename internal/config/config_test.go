package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrickprogramme/ytbrief/pkg/model"
)

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("language: FR\nbatch:\n  pacing: 2s\n"))
	require.NoError(t, err)

	assert.Equal(t, "fr", cfg.Language)
	assert.Equal(t, 2*time.Second, cfg.Batch.Pacing)
	assert.Equal(t, 3, cfg.Batch.RetryAttempt)
	assert.Equal(t, TargetMarkdown, cfg.Target)
	assert.Equal(t, "deepseek", cfg.LLM.Provider)
	assert.True(t, cfg.SaveFile)
}

func TestLoadCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ytbrief.yaml")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Equal(t, CurrentConfigVersion, cfg.ConfigVersion)
	assert.Equal(t, 500*time.Millisecond, cfg.Batch.Pacing)
}

func TestLoadMigratesOldVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ytbrief.yaml")
	require.NoError(t, os.WriteFile(path, []byte("config_version: 1\noutput_dir: notes\nbatch:\n  pacing: 0s\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, CurrentConfigVersion, cfg.ConfigVersion)
	assert.Equal(t, 500*time.Millisecond, cfg.Batch.Pacing)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "config_version: 2")
	assert.Contains(t, string(b), "output_dir: notes")

	backups, _ := filepath.Glob(path + ".bak.*")
	assert.Len(t, backups, 1)
}

func TestValidate(t *testing.T) {
	cfg := defaultConfig()
	err := cfg.Validate()
	require.ErrorIs(t, err, model.ErrConfiguration)
	assert.Contains(t, err.Error(), "DEEPSEEK_API_KEY")

	cfg.Secrets.LLMAPIKey = "k"
	assert.NoError(t, cfg.Validate())

	cfg.PromptOnly = true
	cfg.Secrets.LLMAPIKey = ""
	assert.NoError(t, cfg.Validate())

	cfg.Target = TargetSlack
	err = cfg.Validate()
	require.ErrorIs(t, err, model.ErrConfiguration)
	assert.True(t, strings.Contains(err.Error(), "SLACK_TOKEN"))

	cfg.Target = "html"
	assert.ErrorIs(t, cfg.Validate(), model.ErrConfiguration)
}

func TestLoadSecrets(t *testing.T) {
	t.Setenv("YTBRIEF_LLM_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("SLACK_TOKEN", "")
	t.Setenv("SLACK_BOT_TOKEN", "xoxb")

	cfg := defaultConfig()
	cfg.LLM.Provider = "anthropic"
	cfg.LoadSecrets()
	assert.Equal(t, "sk-ant", cfg.Secrets.LLMAPIKey)
	assert.Equal(t, "xoxb", cfg.Secrets.SlackToken)
}

func TestResolveYtDlpPath(t *testing.T) {
	cfg := defaultConfig()
	cfg.YtDlp.Path = "/opt/tools"
	cfg.ResolveYtDlpPath()
	want := filepath.Join("/opt/tools", cfg.YtDlp.Name)
	assert.Equal(t, want, cfg.YtDlp.ResolvedPath)

	cfg.YtDlp.Path = ""
	cfg.ResolveYtDlpPath()
	assert.Equal(t, cfg.YtDlp.Name, cfg.YtDlp.ResolvedPath)
	assert.Empty(t, cfg.YtDlpWarnings())

	cfg.YtDlp.Path = filepath.Join(t.TempDir(), "missing")
	assert.Len(t, cfg.YtDlpWarnings(), 1)
}
