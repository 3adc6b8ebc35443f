package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"docquiz-service/internal/domain"
	"docquiz-service/internal/generator"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// GenerationCache stores generated question sets in Redis keyed by the input
// digest, so any instance can serve a regeneration of identical documents
// without another remote call.
// Layout: SET gen:{digest} {question set JSON} EX ttl
type GenerationCache struct {
	client *redis.Client
	next   generator.Generator
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewGenerationCache(client *redis.Client, next generator.Generator, ttl time.Duration) *GenerationCache {
	return &GenerationCache{
		client: client,
		next:   next,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *GenerationCache) Generate(ctx context.Context, files []domain.SourceFile, opts domain.GenerationOptions) (domain.QuestionSet, error) {
	key := c.key(generator.CacheKey(files, opts))

	if set, ok := c.lookup(ctx, key); ok {
		return set, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if set, ok := c.lookup(ctx, key); ok {
			return set, nil
		}

		set, err := c.next.Generate(ctx, files, opts)
		if err != nil {
			return domain.QuestionSet(nil), err
		}
		if len(set) == 0 {
			return set, nil
		}

		if payload, err := json.Marshal(set); err == nil {
			// best-effort write; a cache miss later just re-generates
			_ = c.client.Set(ctx, key, payload, c.ttlWithJitter()).Err()
		}
		return set, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(domain.QuestionSet), nil
}

func (c *GenerationCache) lookup(ctx context.Context, key string) (domain.QuestionSet, bool) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var set domain.QuestionSet
	if err := json.Unmarshal(payload, &set); err != nil || len(set) == 0 {
		return nil, false
	}
	return set, true
}

func (c *GenerationCache) key(digest string) string {
	return "gen:" + digest
}

func (c *GenerationCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
