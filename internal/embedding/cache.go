package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "emb:" // emb:{model-agnostic text hash}

// Cache memoizes embeddings in Redis, keyed by a hash of the input
// text. Identical title+synopsis blobs hit the provider only once per
// TTL window. Cache failures are soft: the wrapped embedder is always
// the fallback.
type Cache struct {
	inner  Embedder
	client *redis.Client
	ttl    time.Duration
}

// NewCache wraps an embedder with a Redis cache.
func NewCache(inner Embedder, client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{inner: inner, client: client, ttl: ttl}
}

// Embed returns a cached vector when present, otherwise delegates to
// the wrapped embedder and stores the result.
func (c *Cache) Embed(ctx context.Context, text string) ([]float32, error) {
	key := cacheKey(text)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var vec []float32
		if jsonErr := json.Unmarshal(data, &vec); jsonErr == nil && len(vec) > 0 {
			return vec, nil
		}
		// corrupt entry, fall through and recompute
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("[embedding] cache read failed: %v", err)
	}

	vec, err := c.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if data, jsonErr := json.Marshal(vec); jsonErr == nil {
		if setErr := c.client.Set(ctx, key, data, c.ttl).Err(); setErr != nil {
			log.Printf("[embedding] cache write failed: %v", setErr)
		}
	}
	return vec, nil
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
