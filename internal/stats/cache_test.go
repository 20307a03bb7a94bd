package stats

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultCacheExpiry(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c, err := newResultCache(4, time.Minute, func() time.Time { return now })
	require.NoError(t, err)

	c.add("feeds", 3)
	v, ok := c.get("feeds")
	require.True(t, ok)
	assert.Equal(t, 3, v)

	now = now.Add(time.Minute)
	_, ok = c.get("feeds")
	assert.False(t, ok)
	assert.Equal(t, 0, c.len(), "expired entry is evicted on read")
}

func TestResultCacheConcurrentRefresh(t *testing.T) {
	var clock atomic.Int64
	clock.Store(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC).UnixNano())
	now := func() time.Time { return time.Unix(0, clock.Load()).UTC() }

	c, err := newResultCache(8, time.Second, now)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%2)
			for j := 0; j < 200; j++ {
				if _, ok := c.get(key); !ok {
					c.add(key, j)
				}
				if j%50 == 0 {
					clock.Add(int64(time.Second))
				}
			}
		}(i)
	}
	wg.Wait()

	// Contention leaves the cache usable for fresh entries.
	for _, key := range []string{"k0", "k1"} {
		c.add(key, -1)
		v, ok := c.get(key)
		require.True(t, ok)
		assert.Equal(t, -1, v)
	}
}

func TestResultCacheNil(t *testing.T) {
	var c *resultCache
	c.add("feeds", 1)
	_, ok := c.get("feeds")
	assert.False(t, ok)
	assert.Equal(t, 0, c.len())
}
