// Package llm envoie les prompts d'analyse à un fournisseur compatible OpenAI.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/patrickprogramme/ytbrief/pkg/model"
)

// Client produit une complétion pour un prompt.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Preset : endpoint et modèle par défaut d'un fournisseur.
type Preset struct {
	BaseURL string
	Model   string
}

// Presets des fournisseurs connus. Anthropic expose un endpoint compatible OpenAI.
var Presets = map[string]Preset{
	"deepseek":  {BaseURL: "https://api.deepseek.com", Model: "deepseek-chat"},
	"anthropic": {BaseURL: "https://api.anthropic.com/v1/", Model: "claude-sonnet-4-5"},
	"openai":    {BaseURL: "https://api.openai.com/v1", Model: "gpt-4o-mini"},
}

// Options de construction du client. Les champs vides prennent la valeur du preset.
type Options struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// OpenAIClient implémente Client avec go-openai.
type OpenAIClient struct {
	client      *openai.Client
	provider    string
	model       string
	temperature float32
	maxTokens   int
	logger      *slog.Logger
}

// New construit le client. Clé absente ou fournisseur inconnu : ErrConfiguration.
func New(opts Options, logger *slog.Logger) (*OpenAIClient, error) {
	preset, ok := Presets[opts.Provider]
	if !ok {
		return nil, fmt.Errorf("%w: unknown llm provider %q", model.ErrConfiguration, opts.Provider)
	}
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("%w: missing api key for %s", model.ErrConfiguration, opts.Provider)
	}
	if logger == nil {
		logger = slog.Default()
	}

	cfg := openai.DefaultConfig(opts.APIKey)
	cfg.BaseURL = preset.BaseURL
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	m := preset.Model
	if opts.Model != "" {
		m = opts.Model
	}
	return &OpenAIClient{
		client:      openai.NewClientWithConfig(cfg),
		provider:    opts.Provider,
		model:       m,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
		logger:      logger,
	}, nil
}

// Model retourne le modèle effectivement utilisé.
func (c *OpenAIClient) Model() string { return c.model }

func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	log := c.logger.With("provider", c.provider, "model", c.model)
	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	duration := time.Since(start)
	if err != nil {
		log.Error("appel LLM échoué", "duration", duration, "err", err)
		return "", classify(err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("%w: empty completion from %s", model.ErrTransport, c.provider)
	}
	log.Info("réponse LLM reçue", "duration", duration, "total_tokens", resp.Usage.TotalTokens)
	return resp.Choices[0].Message.Content, nil
}

// classify : identifiants refusés -> ErrConfiguration, le reste -> ErrTransport.
func classify(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %w", model.ErrConfiguration, err)
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && (reqErr.HTTPStatusCode == http.StatusUnauthorized || reqErr.HTTPStatusCode == http.StatusForbidden) {
		return fmt.Errorf("%w: %w", model.ErrConfiguration, err)
	}
	return fmt.Errorf("%w: %w", model.ErrTransport, err)
}
