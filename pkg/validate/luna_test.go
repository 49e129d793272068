package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLuna(t *testing.T) {
	assert.True(t, IsLuna("2404815702"))
	assert.False(t, IsLuna("2404815703"))
	assert.False(t, IsLuna("abc"))
}

func TestNewOrderID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, err := NewOrderID()
		require.NoError(t, err)
		assert.Len(t, id, OrderIDBodyLen+1)
		assert.NotEqual(t, byte('0'), id[0])
		assert.True(t, IsLuna(id), id)
		seen[id] = true
	}
	assert.Greater(t, len(seen), 45)
}
