// Package embedding generates vector embeddings for project text via an
// OpenAI-compatible API. The service is an optional capability: when it
// is not configured, Embed reports ErrUnavailable and callers degrade
// per their own rules rather than failing the request.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// ErrUnavailable indicates the embedding service is not configured or
// the upstream call produced no vector.
var ErrUnavailable = errors.New("embedding service unavailable")

// Embedder maps free text to a fixed-length vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Config holds configuration for the embedding service.
type Config struct {
	// BaseURL is the base URL for the embedding API.
	BaseURL string

	// Model is the embedding model, e.g. text-embedding-3-small.
	Model string

	// APIKey authenticates against the provider. Empty means the
	// capability is absent.
	APIKey string
}

// Service provides embedding generation via langchaingo's OpenAI client.
// A nil *Service is valid and always reports ErrUnavailable.
type Service struct {
	embedder embeddings.Embedder
	model    string
}

// NewService creates an embedding service. Returns (nil, nil) when no
// API key is configured, so the caller can wire the absent capability
// through unchanged.
func NewService(cfg Config) (*Service, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}
	if cfg.BaseURL == "" || cfg.Model == "" {
		return nil, fmt.Errorf("embedding config: base URL and model required")
	}

	llm, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithEmbeddingModel(cfg.Model),
		openai.WithToken(cfg.APIKey),
	)
	if err != nil {
		return nil, fmt.Errorf("creating OpenAI client: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("creating embedder: %w", err)
	}

	return &Service{embedder: embedder, model: cfg.Model}, nil
}

// Embed generates an embedding for the given text. Newlines are folded
// into spaces before the upstream call, matching the provider's
// recommendation for embedding inputs.
func (s *Service) Embed(ctx context.Context, text string) ([]float32, error) {
	if s == nil || s.embedder == nil {
		return nil, ErrUnavailable
	}

	text = strings.ReplaceAll(text, "\n", " ")
	vectors, err := s.embedder.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, ErrUnavailable
	}
	return vectors[0], nil
}
