package slack

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/slack-go/slack"

	"github.com/patrickprogramme/ytbrief/pkg/model"
)

// Poster publie dans un fil via l'API Web Slack.
type Poster struct {
	api    *slack.Client
	logger *slog.Logger
}

// NewPoster construit le client. apiURL vide : API publique de Slack.
func NewPoster(token, apiURL string, logger *slog.Logger) (*Poster, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: slack token required (SLACK_TOKEN or SLACK_BOT_TOKEN)", model.ErrConfiguration)
	}
	if logger == nil {
		logger = slog.Default()
	}
	var opts []slack.Option
	if apiURL != "" {
		opts = append(opts, slack.OptionAPIURL(apiURL))
	}
	return &Poster{api: slack.New(token, opts...), logger: logger}, nil
}

// Post publie text en réponse dans le fil et retourne l'horodatage du message.
func (p *Poster) Post(ctx context.Context, thread ThreadRef, text string) (string, error) {
	_, ts, err := p.api.PostMessageContext(ctx, thread.Channel,
		slack.MsgOptionText(text, false),
		slack.MsgOptionTS(thread.ThreadTS),
	)
	if err != nil {
		return "", classify(thread, err)
	}
	p.logger.Info("message publié dans le fil", "channel", thread.Channel, "thread_ts", thread.ThreadTS, "ts", ts)
	return ts, nil
}

// ThreadVideoURL retourne la première URL YouTube du message parent du fil, "" si aucune.
func (p *Poster) ThreadVideoURL(ctx context.Context, thread ThreadRef) (string, error) {
	msgs, _, _, err := p.api.GetConversationRepliesContext(ctx, &slack.GetConversationRepliesParameters{
		ChannelID: thread.Channel,
		Timestamp: thread.ThreadTS,
		Limit:     1,
		Inclusive: true,
	})
	if err != nil {
		return "", classify(thread, err)
	}
	if len(msgs) == 0 {
		return "", fmt.Errorf("thread %s/%s: %w", thread.Channel, thread.ThreadTS, model.ErrNotFound)
	}
	if m := youTubeInText.FindStringSubmatch(msgs[0].Text); m != nil {
		return model.VideoRef{ID: m[1]}.CanonicalURL(), nil
	}
	return "", nil
}

// classify : jeton refusé -> ErrConfiguration, canal introuvable -> ErrNotFound.
func classify(thread ThreadRef, err error) error {
	var resp slack.SlackErrorResponse
	if errors.As(err, &resp) {
		switch resp.Err {
		case "not_authed", "invalid_auth", "account_inactive", "token_revoked", "missing_scope":
			return fmt.Errorf("%w: slack: %w", model.ErrConfiguration, err)
		case "channel_not_found", "thread_not_found", "message_not_found":
			return fmt.Errorf("%w: slack channel %s: %w", model.ErrNotFound, thread.Channel, err)
		}
	}
	return fmt.Errorf("%w: slack: %w", model.ErrTransport, err)
}
