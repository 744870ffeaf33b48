// Package translation requests machine translations for untranslated keys
// and merges the replies back into translation files.
package translation

import (
	"context"
	"errors"
	"fmt"
)

// Supported providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

var (
	// ErrNoClient means no credential is configured for the provider.
	ErrNoClient = errors.New("no completion credential configured")
	// ErrMalformedReply means a reply could not be parsed into the expected shape.
	ErrMalformedReply = errors.New("malformed completion reply")
)

// Client is the text-completion collaborator. Translate is called once per
// request: no retries.
type Client interface {
	Translate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ClientOptions selects and configures a Client.
type ClientOptions struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

// NewClient builds the client for opts.Provider. It returns ErrNoClient when
// the API key is empty.
func NewClient(ctx context.Context, opts ClientOptions) (Client, error) {
	if opts.APIKey == "" {
		return nil, ErrNoClient
	}
	switch opts.Provider {
	case ProviderOpenAI, "":
		return NewOpenAIClient(opts.APIKey, opts.Model, opts.BaseURL), nil
	case ProviderGemini:
		gc, err := NewGenAIClient(ctx, opts.APIKey, opts.Model)
		if err != nil {
			return nil, err
		}
		return gc, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", opts.Provider)
	}
}
