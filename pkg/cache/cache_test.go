package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInMemoryCache_Expiry(t *testing.T) {
	now := time.Unix(1700000000, 0)
	c := NewInMemoryCache[string, int](time.Minute)
	c.now = func() time.Time { return now }

	c.Set("MSFT", 1, 0)
	c.Set("AAPL", 2, time.Hour)

	v, ok := c.Get("MSFT")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("MSFT")
	assert.False(t, ok, "default ttl should have expired")

	v, ok = c.Get("AAPL")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.Size())
}

func TestInMemoryCache_SweepAndClear(t *testing.T) {
	now := time.Unix(1700000000, 0)
	c := NewInMemoryCache[string, string](time.Second)
	c.now = func() time.Time { return now }

	c.Set("a", "x", 0)
	c.Set("b", "y", time.Hour)
	now = now.Add(time.Minute)

	c.Sweep()
	assert.Equal(t, 1, c.Size())

	c.Clear()
	assert.Equal(t, 0, c.Size())
}
