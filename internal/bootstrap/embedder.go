package bootstrap

import (
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/projecthub/projecthub-backend/config"
	"github.com/projecthub/projecthub-backend/internal/embedding"
)

// NewEmbedder builds the embedding capability: the OpenAI-compatible
// service when configured, wrapped in the Redis cache when one is
// available. Without an API key the returned embedder always reports
// the capability absent, and create/update degrade to NULL embeddings.
func NewEmbedder(cfg *config.Config, redisClient *redis.Client) embedding.Embedder {
	svc, err := embedding.NewService(embedding.Config{
		BaseURL: cfg.Embedding.BaseURL,
		Model:   cfg.Embedding.Model,
		APIKey:  cfg.Embedding.APIKey,
	})
	if err != nil {
		log.Printf("WARNING: embedding service init failed, continuing without embeddings: %v", err)
	}
	if svc == nil {
		if err == nil {
			log.Println("WARNING: OPENAI_API_KEY not found. Skipping embedding generation.")
		}
		return (*embedding.Service)(nil)
	}

	if redisClient != nil {
		return embedding.NewCache(svc, redisClient, cfg.Embedding.CacheTTL)
	}
	return svc
}
