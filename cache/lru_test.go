// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRUExpiry(t *testing.T) {
	c, err := NewLRU(2, time.Minute)
	require.NoError(t, err)
	now := time.Unix(1000, 0)
	c.now = func() time.Time { return now }

	c.Add("a", 1)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	now = now.Add(time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok)
	assert.Zero(t, c.Len())

	hit, miss := c.Stats()
	assert.Equal(t, int64(1), hit)
	assert.Equal(t, int64(1), miss)
}

func TestLRUEviction(t *testing.T) {
	c, err := NewLRU(2, 0)
	require.NoError(t, err)
	c.Add("a", 1)
	c.Add("b", 2)
	c.Get("a")
	c.Add("c", 3)

	_, ok := c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)

	c.Purge()
	assert.Zero(t, c.Len())
}

func TestGetOrLoad(t *testing.T) {
	c, err := NewLRU(4, time.Hour)
	require.NoError(t, err)

	loads := 0
	loader := func(key any) (any, error) {
		loads++
		return key.(string) + "!", nil
	}
	for range 3 {
		v, err := c.GetOrLoad("x", loader)
		require.NoError(t, err)
		assert.Equal(t, "x!", v)
	}
	assert.Equal(t, 1, loads)

	_, err = c.GetOrLoad("y", func(any) (any, error) { return nil, errors.New("boom") })
	assert.EqualError(t, err, "boom")
	_, ok := c.Get("y")
	assert.False(t, ok)
}

func TestNewLRUInvalidSize(t *testing.T) {
	_, err := NewLRU(0, time.Second)
	assert.Error(t, err)
}
