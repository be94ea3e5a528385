package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSlateRegistry(t *testing.T) {
	reg := NewSlateRegistry()
	assert.Equal(t, 0, reg.Len())

	_, ok := reg.Get(uuid.NewString())
	assert.False(t, ok)

	slate := &Slate{ID: uuid.New()}
	reg.Put(slate)
	assert.Equal(t, 1, reg.Len())

	got, ok := reg.Get(slate.ID.String())
	assert.True(t, ok)
	assert.Same(t, slate, got)

	// Re-putting the same slate does not grow the registry.
	reg.Put(slate)
	assert.Equal(t, 1, reg.Len())
}
