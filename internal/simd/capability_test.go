package simd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestISAWidths(t *testing.T) {
	for _, isa := range []ISA{Generic, NEON, AVX2, AVX512} {
		assert.Equal(t, Lanes, isa.RegisterLanes()*isa.Passes(), isa.String())
	}
	assert.Equal(t, 1, AVX512.Passes())
	assert.Equal(t, "unknown", ISA(42).String())
}

func TestParseISA(t *testing.T) {
	isa, ok := parseISA(" AVX2 ")
	assert.True(t, ok)
	assert.Equal(t, AVX2, isa)

	_, ok = parseISA("sse")
	assert.False(t, ok)
}

func TestActiveISAAvailable(t *testing.T) {
	assert.True(t, Available(Generic))
	assert.True(t, Available(ActiveISA()))
	assert.False(t, Available(ISA(42)))
}
