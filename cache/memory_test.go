package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/warp/fiscal-engine/cache"
)

func TestMemory_SetGetDelete(t *testing.T) {
	c := cache.NewMemory()

	_, ok := c.Get("k")
	assert.False(t, ok)

	assert.NoError(t, c.Set("k", "v"))
	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", got)

	assert.NoError(t, c.Delete("k"))
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestMemory_DeleteMissingKeyIsNoop(t *testing.T) {
	c := cache.NewMemory()
	assert.NoError(t, c.Delete("never-set"))
}
