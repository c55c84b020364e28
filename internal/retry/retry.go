// Package retry fournit une relance à délai fixe pour les appels réseau instables.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/patrickprogramme/ytbrief/pkg/model"
)

// Config : nombre total de tentatives et délai fixe entre deux tentatives.
type Config struct {
	Attempts int
	Delay    time.Duration
}

// DefaultConfig : 3 tentatives espacées d'une seconde.
func DefaultConfig() Config {
	return Config{Attempts: 3, Delay: time.Second}
}

// Classifier indique si une erreur mérite une nouvelle tentative.
type Classifier func(error) bool

// IsRetryable : tout est relancé sauf l'annulation et les erreurs définitives.
func IsRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrConfiguration) {
		return false
	}
	return true
}

// ExhaustedError est retournée quand toutes les tentatives ont échoué.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// Do exécute fn jusqu'à cfg.Attempts fois.
func Do(ctx context.Context, cfg Config, classifier Classifier, fn func(context.Context) error) error {
	if classifier == nil {
		classifier = IsRetryable
	}
	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.Attempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err
		if !classifier(err) {
			return err
		}
		if attempt == cfg.Attempts {
			break
		}

		timer := time.NewTimer(cfg.Delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
	return &ExhaustedError{Attempts: cfg.Attempts, Err: lastErr}
}
