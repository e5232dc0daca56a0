package cron

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheSize is the capacity used when NewCachingParser is given a
// non-positive size.
const DefaultCacheSize = 1000

// CachingParser memoizes successful parses in a bounded LRU cache.
// Concurrent misses for the same expression share one parse. Failed
// parses are not cached.
type CachingParser struct {
	parser *Parser
	cache  *lru.Cache[string, *Schedule]
	group  singleflight.Group
}

// NewCachingParser wraps p with a cache of the given capacity.
func NewCachingParser(p *Parser, size int) (*CachingParser, error) {
	if p == nil {
		return nil, illegalArgumentError("parser is nil")
	}
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, *Schedule](size)
	if err != nil {
		return nil, fmt.Errorf("create schedule cache: %w", err)
	}
	return &CachingParser{parser: p, cache: cache}, nil
}

// Parse returns the cached schedule for expression, parsing it on a miss.
// Schedules are immutable, so the same pointer is handed to every caller.
func (c *CachingParser) Parse(expression string) (*Schedule, error) {
	if s, ok := c.cache.Get(expression); ok {
		return s, nil
	}
	v, err, _ := c.group.Do(expression, func() (any, error) {
		s, err := c.parser.Parse(expression)
		if err != nil {
			return nil, err
		}
		c.cache.Add(expression, s)
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Schedule), nil
}

// Validate parses expression and discards the schedule.
func (c *CachingParser) Validate(expression string) error {
	_, err := c.Parse(expression)
	return err
}

// Len returns the number of cached schedules.
func (c *CachingParser) Len() int {
	return c.cache.Len()
}

// Contains reports whether expression is cached, without touching its
// recency.
func (c *CachingParser) Contains(expression string) bool {
	return c.cache.Contains(expression)
}

// Purge empties the cache.
func (c *CachingParser) Purge() {
	c.cache.Purge()
}
