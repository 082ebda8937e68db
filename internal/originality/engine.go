// Package originality flags proposals that are conceptually redundant
// with existing approved work, by nearest-neighbor search over project
// embeddings.
package originality

import (
	"context"
	"errors"
	"fmt"

	"github.com/projecthub/projecthub-backend/internal/embedding"
)

// Neighbor is one approved, embedded project returned by the store's
// nearest-neighbor search, ordered by ascending L2 distance.
type Neighbor struct {
	ID       int64
	Title    string
	Distance float64
}

// Match pairs a neighboring project with its similarity score. Produced
// fresh per check; never persisted.
type Match struct {
	ID              int64   `json:"id"`
	Title           string  `json:"title"`
	SimilarityScore float64 `json:"similarity_score"`
}

// Result is the advisory verdict of an originality check.
type Result struct {
	IsOriginal      bool    `json:"is_original"`
	Message         string  `json:"message"`
	SimilarProjects []Match `json:"similar_projects"`
}

// Searcher is the vector query surface the engine needs from the store.
type Searcher interface {
	NearestApproved(ctx context.Context, vec []float32, k int) ([]Neighbor, error)
}

// Config carries the decision parameters, injected at construction.
type Config struct {
	// Threshold is the similarity above which the nearest neighbor
	// marks the submission non-original.
	Threshold float64

	// Neighbors is k, the number of nearest approved projects compared.
	Neighbors int
}

// Engine performs originality checks against approved prior work.
type Engine struct {
	search   Searcher
	embedder embedding.Embedder
	cfg      Config
}

// NewEngine creates an originality engine.
func NewEngine(search Searcher, embedder embedding.Embedder, cfg Config) *Engine {
	return &Engine{search: search, embedder: embedder, cfg: cfg}
}

// Check embeds the candidate text and ranks the k nearest approved
// projects by similarity. Unlike create/update, a failed embedding here
// fails the whole check: there is nothing advisory to say without a
// vector.
func (e *Engine) Check(ctx context.Context, title, synopsis string) (*Result, error) {
	blob := title + " " + synopsis

	vec, err := e.embedder.Embed(ctx, blob)
	if err != nil {
		if errors.Is(err, embedding.ErrUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("embed candidate: %w", err)
	}

	neighbors, err := e.search.NearestApproved(ctx, vec, e.cfg.Neighbors)
	if err != nil {
		return nil, fmt.Errorf("nearest neighbor search: %w", err)
	}

	result := &Result{
		IsOriginal:      true,
		Message:         "This project idea seems original!",
		SimilarProjects: make([]Match, 0, len(neighbors)),
	}

	for _, n := range neighbors {
		result.SimilarProjects = append(result.SimilarProjects, Match{
			ID:              n.ID,
			Title:           n.Title,
			SimilarityScore: Score(n.Distance),
		})
	}

	if len(result.SimilarProjects) > 0 && result.SimilarProjects[0].SimilarityScore > e.cfg.Threshold {
		result.IsOriginal = false
		result.Message = "This project is conceptually very similar to existing projects."
	}

	return result, nil
}

// Score converts an L2 distance between normalized embeddings into a
// similarity in [0,1]. No clamping is applied: vectors that are not
// unit-normalized can push the score outside that range, and the value
// is reported as computed.
func Score(distance float64) float64 {
	return 1 - distance/2
}
