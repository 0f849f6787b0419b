package gemini

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// GeminiClientSelector rotates lookup traffic across the configured API keys
// and fails a request over to the remaining keys before giving up. One
// throttled or revoked key must not take property lookup down while other
// keys still work.
type GeminiClientSelector struct {
	clients []GeminiClient
	next    int
	mu      sync.Mutex
}

func NewGeminiClientSelector(clients []GeminiClient) *GeminiClientSelector {
	return &GeminiClientSelector{clients: clients}
}

// nextClient returns the next key's client in rotation order.
func (s *GeminiClientSelector) nextClient() (*GeminiClient, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.clients) == 0 {
		return nil, -1
	}
	idx := s.next
	s.next = (s.next + 1) % len(s.clients)
	return &s.clients[idx], idx
}

// TryAllClients runs the operation against each configured key until one
// succeeds. Every failure is classified into the package error taxonomy, so
// a caller that sees ErrRateLimited knows the last key tried was throttled
// after every earlier key had already failed.
func (s *GeminiClientSelector) TryAllClients(operation func(client *GeminiClient, idx int) error) error {
	total := len(s.clients)
	if total == 0 {
		return errors.New("no Gemini clients available")
	}

	var lastErr error
	for attempt := 1; attempt <= total; attempt++ {
		client, idx := s.nextClient()

		err := operation(client, idx)
		if err == nil {
			if attempt > 1 {
				slog.Info("Gemini request recovered on failover key",
					"client_index", idx, "attempt", attempt)
			}
			return nil
		}

		lastErr = classifyError(err)
		slog.Warn("Gemini request failed",
			"client_index", idx,
			"attempt", attempt,
			"remaining_keys", total-attempt,
			"error", err)
	}

	slog.Error("all Gemini keys exhausted", "total_keys", total, "error", lastErr)
	return fmt.Errorf("all %d Gemini clients failed: %w", total, lastErr)
}
