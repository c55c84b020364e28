// Package fetch fournit des utilitaires légers et testables pour télécharger
// des ressources HTTP (pistes de sous-titres json3, API GitHub).
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/patrickprogramme/ytbrief/pkg/model"
)

const (
	DefaultTimeout   = 15 * time.Second
	DefaultMaxBytes  = 10_000_000
	DefaultUserAgent = "ytbrief/1.0"
)

// ErrTooLarge : le corps de réponse dépasse la limite demandée.
var ErrTooLarge = errors.New("response body too large")

// Client est le client HTTP utilisé par le package, remplaçable dans les tests.
var Client = &http.Client{}

// get ouvre la requête et vérifie statut et Content-Length.
// L'appelant doit fermer le corps et appeler cancel.
func get(ctx context.Context, rawURL string, timeout time.Duration, maxBytes int64) (*http.Response, context.CancelFunc, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return nil, nil, fmt.Errorf("fetch: invalid url %q: %w", rawURL, err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		cancel()
		return nil, nil, fmt.Errorf("fetch: new request: %w", err)
	}
	req.Header.Set("User-Agent", DefaultUserAgent)

	resp, err := Client.Do(req)
	if err != nil {
		cancel()
		return nil, nil, fmt.Errorf("fetch: %w: %w", model.ErrTransport, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		cancel()
		return nil, nil, fmt.Errorf("fetch: %w: %s", model.ErrNotFound, rawURL)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		resp.Body.Close()
		cancel()
		return nil, nil, fmt.Errorf("fetch: %w: unexpected http status %s", model.ErrTransport, resp.Status)
	case resp.ContentLength > 0 && resp.ContentLength > maxBytes:
		resp.Body.Close()
		cancel()
		return nil, nil, fmt.Errorf("fetch: content-length %d exceeds limit %d: %w", resp.ContentLength, maxBytes, ErrTooLarge)
	}
	return resp, cancel, nil
}

// FetchBytesWithTimeout télécharge l'URL et retourne les octets.
// timeout et maxBytes <= 0 prennent les valeurs par défaut.
func FetchBytesWithTimeout(ctx context.Context, rawURL string, timeout time.Duration, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	resp, cancel, err := get(ctx, rawURL, timeout, maxBytes)
	if err != nil {
		return nil, err
	}
	defer cancel()
	defer resp.Body.Close()

	// +1 pour détecter le dépassement
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("fetch: %w: read body: %w", model.ErrTransport, err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("fetch: body over %d bytes: %w", maxBytes, ErrTooLarge)
	}
	return data, nil
}
