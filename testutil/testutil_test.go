package testutil

import (
	"testing"

	"github.com/hupe1980/seedscan/internal/game"
	"github.com/hupe1980/seedscan/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeeds(t *testing.T) {
	rng := NewRNG(4711)

	s := rng.Seeds(16)

	assert.Equal(t, 16, len(s))
	for _, v := range s {
		assert.Equal(t, seed.MaxLength, v.Len())
		_, err := seed.Parse(v.String())
		require.NoError(t, err)
	}
}

func TestMixedLengthSeeds(t *testing.T) {
	rng := NewRNG(4711)

	for _, v := range rng.MixedLengthSeeds(64) {
		assert.GreaterOrEqual(t, v.Len(), 1)
		assert.LessOrEqual(t, v.Len(), seed.MaxLength)
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	s1 := rng.Seeds(4)

	rng.Reset()
	s2 := rng.Seeds(4)

	assert.Equal(t, s1, s2)
}

func TestFirstVoucherIsBase(t *testing.T) {
	rng := NewRNG(7)
	for _, s := range rng.Seeds(200) {
		v := FirstVoucher(s, game.DeckRed, 1)
		assert.Equal(t, game.CategoryVoucher, v.Category())
		assert.Equal(t, -1, game.VoucherPrerequisite(v.Index()), "%s offered %s", s, v)
	}
}

func TestTagsRespectMinAnte(t *testing.T) {
	rng := NewRNG(9)
	for _, s := range rng.Seeds(200) {
		for _, tag := range Tags(s, 1) {
			assert.True(t, game.TagAvailable(tag.Index(), 1), "%s drew %s", s, tag)
		}
	}
}
