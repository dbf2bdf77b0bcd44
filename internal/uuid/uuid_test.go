package uuid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoogleUUIDGenerator(t *testing.T) {
	g := NewGoogleUUIDGenerator()
	a, b := g.New(), g.New()
	assert.True(t, IsValid(a))
	assert.NotEqual(t, a, b)
}

func TestSequentialGenerator(t *testing.T) {
	g := NewSequentialGenerator("cond")
	assert.Equal(t, "cond-1", g.New())
	assert.Equal(t, "cond-2", g.New())
	assert.False(t, IsValid("cond-3"))
}
