package config

import (
	"github.com/anatolykoptev/go-kit/env"
)

// Secrets : identifiants lus depuis l'environnement.
type Secrets struct {
	LLMAPIKey  string
	YouTubeKey string
	SlackToken string
}

// clé d'API attendue pour chaque fournisseur LLM
var llmKeyEnv = map[string]string{
	"deepseek":  "DEEPSEEK_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
	"openai":    "OPENAI_API_KEY",
}

// LLMKeyEnv retourne la variable d'environnement du fournisseur, "" si inconnu.
func LLMKeyEnv(provider string) string {
	return llmKeyEnv[provider]
}

// LoadSecrets lit les identifiants depuis l'environnement.
// YTBRIEF_LLM_API_KEY prend le pas sur la variable propre au fournisseur.
func (c *Config) LoadSecrets() {
	key := env.Str("YTBRIEF_LLM_API_KEY", "")
	if key == "" {
		if name := LLMKeyEnv(c.LLM.Provider); name != "" {
			key = env.Str(name, "")
		}
	}
	c.Secrets.LLMAPIKey = key
	c.Secrets.YouTubeKey = env.Str("YOUTUBE_API_KEY", "")

	token := env.Str("SLACK_TOKEN", "")
	if token == "" {
		token = env.Str("SLACK_BOT_TOKEN", "")
	}
	c.Secrets.SlackToken = token
}
