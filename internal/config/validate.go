package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/patrickprogramme/ytbrief/pkg/model"
)

// Validate vérifie que la configuration permet de démarrer un lot.
// Appelée avant toute vidéo : une erreur ici est fatale.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: config nil", model.ErrConfiguration)
	}
	var errs []error

	switch c.Target {
	case TargetMarkdown, TargetSlack:
	default:
		errs = append(errs, fmt.Errorf("target inconnue %q (markdown|slack)", c.Target))
	}

	if !c.PromptOnly {
		if LLMKeyEnv(c.LLM.Provider) == "" {
			errs = append(errs, fmt.Errorf("fournisseur LLM inconnu %q", c.LLM.Provider))
		} else if c.Secrets.LLMAPIKey == "" {
			errs = append(errs, fmt.Errorf("clé d'API manquante : définir %s", LLMKeyEnv(c.LLM.Provider)))
		}
	}

	if c.Target == TargetSlack {
		if c.Secrets.SlackToken == "" {
			errs = append(errs, errors.New("token Slack manquant : définir SLACK_TOKEN"))
		}
		if strings.TrimSpace(c.Slack.ThreadURL) == "" {
			errs = append(errs, errors.New("URL du fil Slack manquante (slack.thread_url ou -thread)"))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", model.ErrConfiguration, errors.Join(errs...))
	}
	return nil
}

// YtDlpWarnings signale, sans bloquer, un chemin yt-dlp configuré mais absent.
func (c *Config) YtDlpWarnings() []string {
	c.ResolveYtDlpPath()
	p := c.YtDlp.ResolvedPath
	// nom nu : résolu dans le PATH au lancement
	if !strings.ContainsAny(p, `/\`) {
		return nil
	}
	info, err := os.Stat(p)
	switch {
	case os.IsNotExist(err):
		return []string{fmt.Sprintf("yt-dlp introuvable à l'emplacement configuré : %s", p)}
	case err != nil:
		return []string{fmt.Sprintf("impossible de tester %s : %v", p, err)}
	case info.IsDir():
		return []string{fmt.Sprintf("le chemin configuré pour yt-dlp est un répertoire : %s", p)}
	}
	return nil
}
