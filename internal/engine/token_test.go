package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDv7Generator_ValidAndSortable(t *testing.T) {
	gen := UUIDv7Generator{}

	first := gen.Generate()
	second := gen.Generate()

	parsed, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.NotEqual(t, first, second)
}

func TestFixedGenerator_ReturnsTokensInOrder(t *testing.T) {
	gen := NewFixedGenerator("q-1", "q-2")

	assert.Equal(t, "q-1", gen.Generate())
	assert.Equal(t, "q-2", gen.Generate())
}

func TestFixedGenerator_PanicsWhenExhausted(t *testing.T) {
	gen := NewFixedGenerator("q-1")
	gen.Generate()

	assert.Panics(t, func() { gen.Generate() })
}
