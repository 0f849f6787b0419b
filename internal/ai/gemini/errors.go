package gemini

import (
	"errors"

	"google.golang.org/genai"
)

var (
	// ErrResponseExtract means the model replied but the reply could not be
	// parsed into the expected record shape.
	ErrResponseExtract = errors.New("could not extract structured data from AI response")
	// ErrRateLimited means the provider signaled throttling. Callers should
	// surface retry guidance rather than retry silently.
	ErrRateLimited = errors.New("AI provider rate limit reached")
	// ErrInvalidCredentials means the provider rejected the API key. This is
	// a configuration error, not retryable.
	ErrInvalidCredentials = errors.New("AI provider rejected credentials")
)

// classifyError maps provider transport errors onto the package error
// taxonomy so handlers can pick a status code without inspecting SDK
// internals.
func classifyError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429:
			return ErrRateLimited
		case 401, 403:
			return ErrInvalidCredentials
		}
	}
	return err
}
