package data

import (
	"testing"
	"time"

	"rainrunoff/internal/simulate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCachePutGet(t *testing.T) {
	c := NewRunCache(time.Minute)
	res := &simulate.Result{SimulatedFlow: []float64{0.1}}

	id := c.Put(res)
	got, ok := c.Get(id)
	require.True(t, ok)
	assert.Same(t, res, got)
	assert.Equal(t, 1, c.Len())

	_, ok = c.Get("not-a-uuid")
	assert.False(t, ok)

	c.Clear()
	_, ok = c.Get(id)
	assert.False(t, ok)
}

func TestRunCacheExpiry(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	c := NewRunCache(time.Minute)
	c.now = func() time.Time { return now }

	id := c.Put(&simulate.Result{})
	now = now.Add(30 * time.Second)
	_, ok := c.Get(id)
	assert.True(t, ok)

	now = now.Add(time.Minute)
	_, ok = c.Get(id)
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	c.Evict()
	assert.Equal(t, 0, c.Len())
}

func TestRunCacheNil(t *testing.T) {
	var c *RunCache
	_, ok := c.Get("00000000-0000-0000-0000-000000000000")
	assert.False(t, ok)
}

func TestRunCacheCloseIdempotent(t *testing.T) {
	c := NewRunCache(0)
	c.StartCleanup(time.Millisecond)
	c.Close()
	c.Close()
}
