package cron_test

import (
	"sync"
	"testing"

	"github.com/reugn/go-cronspec/cron"
	"github.com/reugn/go-cronspec/internal/assert"
)

func TestCacheHit(t *testing.T) {
	t.Parallel()
	cache, err := cron.NewCachingParser(mustParser(t), 10)
	assert.IsNil(t, err)

	first, err := cache.Parse("*/5 * * * *")
	assert.IsNil(t, err)
	second, err := cache.Parse("*/5 * * * *")
	assert.IsNil(t, err)

	if first != second {
		t.Fatalf("cache miss: %p != %p", first, second)
	}
	assert.Equal(t, cache.Len(), 1)
	assert.Equal(t, cache.Contains("*/5 * * * *"), true)
}

func TestCacheErrorsNotCached(t *testing.T) {
	t.Parallel()
	cache, err := cron.NewCachingParser(mustParser(t), 10)
	assert.IsNil(t, err)

	_, err = cache.Parse("60 * * * *")
	assert.ErrorIs(t, err, cron.ErrValueOutOfRange)
	assert.ErrorIs(t, cache.Validate("60 * * * *"), cron.ErrValueOutOfRange)
	assert.Equal(t, cache.Len(), 0)
	assert.IsNil(t, cache.Validate("0 0 * * *"))
	assert.Equal(t, cache.Len(), 1)
}

func TestCacheEviction(t *testing.T) {
	t.Parallel()
	cache, err := cron.NewCachingParser(mustParser(t), 5)
	assert.IsNil(t, err)

	expressions := []string{
		"*/5 * * * *",
		"0 */2 * * *",
		"0 0 * * *",
		"0 0 1 * *",
		"0 0 1 1 *",
		"30 15 * * *",
	}
	for _, expression := range expressions {
		_, err := cache.Parse(expression)
		assert.IsNil(t, err)
	}

	assert.Equal(t, cache.Len(), 5)
	assert.Equal(t, cache.Contains(expressions[0]), false)
	assert.Equal(t, cache.Contains(expressions[len(expressions)-1]), true)

	cache.Purge()
	assert.Equal(t, cache.Len(), 0)
}

func TestCacheConcurrency(t *testing.T) {
	t.Parallel()
	cache, err := cron.NewCachingParser(mustParser(t), 0)
	assert.IsNil(t, err)

	expressions := []string{
		"*/5 * * * *",
		"0 */2 * * *",
		"0 0 * * *",
		"0 30 23 * * *",
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				for _, expression := range expressions {
					if _, err := cache.Parse(expression); err != nil {
						t.Error(err)
					}
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, cache.Len(), len(expressions))
}

func TestCacheNilParser(t *testing.T) {
	t.Parallel()
	_, err := cron.NewCachingParser(nil, 1)
	assert.ErrorIs(t, err, cron.ErrIllegalArgument)
}
