package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"docquiz-service/internal/domain"
	"docquiz-service/internal/generator"
	"golang.org/x/sync/singleflight"
)

// GenerationCache wraps a Generator and caches its results with TTL, keyed by
// a digest of the input documents and options. Regenerating a quiz from
// identical documents skips the remote call.
type GenerationCache struct {
	next  generator.Generator
	ttl   time.Duration
	clock func() time.Time
	sf    singleflight.Group
	rnd   *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedSet
}

type cachedSet struct {
	set       domain.QuestionSet
	expiresAt time.Time
}

func NewGenerationCache(next generator.Generator, ttl time.Duration) *GenerationCache {
	return &GenerationCache{
		next:  next,
		ttl:   ttl,
		clock: time.Now,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
		cache: make(map[string]cachedSet),
	}
}

func (c *GenerationCache) Generate(ctx context.Context, files []domain.SourceFile, opts domain.GenerationOptions) (domain.QuestionSet, error) {
	key := generator.CacheKey(files, opts)
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.cache[key]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.set, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.cache[key]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.set, nil
		}
		c.mu.RUnlock()

		set, err := c.next.Generate(ctx, files, opts)
		if err != nil {
			return domain.QuestionSet(nil), err
		}
		if len(set) == 0 {
			// Empty results are not worth caching; let the session surface the failure.
			return set, nil
		}

		c.mu.Lock()
		c.cache[key] = cachedSet{
			set:       set,
			expiresAt: now.Add(c.ttlWithJitter()),
		}
		c.mu.Unlock()
		return set, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(domain.QuestionSet), nil
}

func (c *GenerationCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
