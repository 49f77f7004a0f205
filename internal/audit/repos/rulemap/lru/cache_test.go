package lru

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crawlcheck/crawlcheck/internal/audit/repos/rulemap"
)

func rules(pattern string) rulemap.DomainRules {
	return rulemap.DomainRules{
		"robots": rulemap.SourceRules{"GPTBot": {Disallow: []string{pattern}}},
	}
}

func TestCache_HitMissCounters(t *testing.T) {
	c, err := New(4)
	require.NoError(t, err)

	_, ok := c.Get("example.com")
	assert.False(t, ok)

	c.Put("example.com", rules("/private"))
	got, ok := c.Get("example.com")
	require.True(t, ok)
	assert.Equal(t, []string{"/private"}, got["robots"]["GPTBot"].Disallow)

	hits, misses, evictions := c.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
	assert.Equal(t, uint64(0), evictions)
}

func TestCache_EvictionAtCapacity(t *testing.T) {
	c, err := New(2)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		c.Put(fmt.Sprintf("domain-%d.example", i), rules("/"))
	}
	assert.Equal(t, 2, c.Len())

	_, _, evictions := c.Stats()
	assert.Equal(t, uint64(1), evictions)

	// oldest entry is gone
	_, ok := c.Get("domain-0.example")
	assert.False(t, ok)
}

func TestCache_PurgeCountsEvictions(t *testing.T) {
	c, err := New(4)
	require.NoError(t, err)
	c.Put("a.example", rules("/"))
	c.Put("b.example", rules("/"))

	c.Purge()
	assert.Equal(t, 0, c.Len())

	_, _, evictions := c.Stats()
	assert.Equal(t, uint64(2), evictions)
}

func TestDisabledCache(t *testing.T) {
	c, err := New(0)
	require.NoError(t, err)

	c.Put("example.com", rules("/"))
	_, ok := c.Get("example.com")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())

	hits, misses, evictions := c.Stats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
	assert.Zero(t, evictions)
}
