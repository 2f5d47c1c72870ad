package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheSetGet(t *testing.T) {
	c := NewCache(1*time.Minute, 5*time.Minute)

	c.Set(CacheKeyPost(1), "hello")

	got, ok := c.Get(CacheKeyPost(1))
	assert.True(t, ok)
	assert.Equal(t, "hello", got)

	_, ok = c.Get(CacheKeyPost(2))
	assert.False(t, ok)
}

func TestCacheExpiration(t *testing.T) {
	c := NewCache(1*time.Minute, 5*time.Minute)

	c.Set(CacheKeyPosts(), "value", 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get(CacheKeyPosts())
	assert.False(t, ok)
}

func TestCacheFlush(t *testing.T) {
	c := NewCache(1*time.Minute, 5*time.Minute)

	c.Set(CacheKeyPost(1), "a")
	c.Set(CacheKeyComments(1), "b")
	c.Flush()

	_, ok := c.Get(CacheKeyPost(1))
	assert.False(t, ok)
	_, ok = c.Get(CacheKeyComments(1))
	assert.False(t, ok)
}
