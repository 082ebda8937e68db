// Package jobs runs the background embedding backfill: projects stored
// with a NULL embedding (because the embedding service was down at
// create or edit time) are retried on a schedule.
package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/projecthub/projecthub-backend/internal/embedding"
	"github.com/projecthub/projecthub-backend/internal/projects/repository"
)

const backfillBatchSize = 50

// BackfillStore is the repository surface the backfill needs.
type BackfillStore interface {
	ListMissingEmbedding(ctx context.Context, limit int) ([]repository.EmbeddingCandidate, error)
	SetEmbedding(ctx context.Context, id int64, vec []float32) error
}

// Backfill periodically re-embeds projects missing their vector.
type Backfill struct {
	store    BackfillStore
	embedder embedding.Embedder
	cron     *cron.Cron
}

// NewBackfill creates the backfill job.
func NewBackfill(store BackfillStore, embedder embedding.Embedder) *Backfill {
	return &Backfill{store: store, embedder: embedder}
}

// Start schedules the backfill to run nightly. Safe to call with an
// absent embedder; each run simply finds nothing embeddable.
func (b *Backfill) Start() {
	c := cron.New()

	_, err := c.AddFunc("@midnight", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		b.Run(ctx)
	})
	if err != nil {
		log.Printf("[backfill] failed to schedule: %v", err)
		return
	}

	log.Println("[backfill] embedding backfill scheduled (nightly)")
	c.Start()
	b.cron = c
}

// Stop halts the scheduler.
func (b *Backfill) Stop() {
	if b.cron != nil {
		b.cron.Stop()
	}
}

// Run processes one batch of projects missing embeddings. Failures are
// logged per project; the batch keeps going.
func (b *Backfill) Run(ctx context.Context) {
	candidates, err := b.store.ListMissingEmbedding(ctx, backfillBatchSize)
	if err != nil {
		log.Printf("[backfill] list failed: %v", err)
		return
	}
	if len(candidates) == 0 {
		return
	}

	filled := 0
	for _, cand := range candidates {
		vec, err := b.embedder.Embed(ctx, cand.Title+" "+cand.Synopsis)
		if err != nil {
			log.Printf("[backfill] embed project %d failed: %v", cand.ID, err)
			continue
		}
		if err := b.store.SetEmbedding(ctx, cand.ID, vec); err != nil {
			log.Printf("[backfill] store embedding for project %d failed: %v", cand.ID, err)
			continue
		}
		filled++
	}

	log.Printf("[backfill] re-embedded %d/%d projects", filled, len(candidates))
}
