package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	cat := Seed()

	p, ok := cat.Get(1)
	require.True(t, ok)
	assert.Equal(t, "T-Shirt", p.Name)
	assert.Equal(t, int64(2500), p.PriceCents)

	_, ok = cat.Get(99)
	assert.False(t, ok)
}

func TestNewCopiesInput(t *testing.T) {
	src := []Product{{ID: 1, Name: "A", PriceCents: 100}}
	cat := New(src)
	src[0].Name = "mutated"

	p, ok := cat.Get(1)
	require.True(t, ok)
	assert.Equal(t, "A", p.Name)
}
