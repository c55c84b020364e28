package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// FetchJSON télécharge rawURL (borné à maxBytes) et décode la réponse dans T.
func FetchJSON[T any](ctx context.Context, rawURL string, timeout time.Duration, maxBytes int64) (T, error) {
	var v T
	data, err := FetchBytesWithTimeout(ctx, rawURL, timeout, maxBytes)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		var zero T
		return zero, fmt.Errorf("fetch json %s: %w", rawURL, err)
	}
	return v, nil
}
