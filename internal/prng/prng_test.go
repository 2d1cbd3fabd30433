package prng

import (
	"math"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/hupe1980/seedscan/internal/seed"
	"github.com/hupe1980/seedscan/internal/simd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomSeed(rng *rand.Rand) seed.Seed {
	n := 1 + rng.IntN(seed.MaxLength)
	chars := make([]byte, n)
	for i := range chars {
		chars[i] = seed.Char(rng.IntN(seed.Radix))
	}
	return seed.FromChars(chars)
}

var keyParts = []string{"Voucher", "Tag", "cdt", "rarity", "Joker1sho", "Tarotar1", "shop_pack", "soul_Tarot", "edisho", "standard_edition"}

func randomKey(rng *rand.Rand) string {
	return keyParts[rng.IntN(len(keyParts))] + strings.Repeat("1", 1+rng.IntN(2))
}

func TestHashScalarMatchesLanes(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))

	for i := 0; i < 10000/simd.Lanes; i++ {
		var ls Lanes
		var seeds [simd.Lanes]seed.Seed
		for l := 0; l < simd.Lanes; l++ {
			seeds[l] = randomSeed(rng)
			ls.SetLane(l, seeds[l])
		}
		key := randomKey(rng)

		got := ls.Hash(key)
		for l := 0; l < simd.Lanes; l++ {
			want := Hash(seeds[l].Chars(), key)
			require.Equal(t, math.Float64bits(want), math.Float64bits(got[l]), "seed %s key %s", seeds[l], key)
			assert.GreaterOrEqual(t, got[l], 0.0)
			assert.Less(t, got[l], 1.0)
		}
	}
}

func TestHashMatchesConcatenatedString(t *testing.T) {
	s := seed.MustParse("7LB2WVPK")
	for _, key := range []string{"", "boss", "Voucher1", "Joker1sho1_resample2"} {
		assert.Equal(t, HashString(key+s.String()), Hash(s.Chars(), key), key)
	}
}

func TestPartialHashExtend(t *testing.T) {
	chars := []byte("ABCDEFGH")
	keyLen := 8

	num := 1.0
	for j := len(chars) - 1; j >= 0; j-- {
		num = Extend(num, chars[j], j, keyLen)
	}
	assert.Equal(t, PartialHash(chars, keyLen), num)

	// Folding position 0 onto the suffix partial gives the full partial.
	var c [simd.Lanes]byte
	for l := range c {
		c[l] = 'A'
	}
	base := 1.0
	for j := 7; j >= 1; j-- {
		base = Extend(base, chars[j], j, keyLen)
	}
	lanes := simd.Broadcast(base)
	ExtendLanes(&lanes, &c, 0, keyLen)
	for l := range lanes {
		assert.Equal(t, PartialHash(chars, keyLen), lanes[l])
	}
}

func TestLongKeyBypassesCache(t *testing.T) {
	var ls Lanes
	s := seed.MustParse("ABC")
	ls.SetLane(0, s)
	key := strings.Repeat("k", MaxKeyLength+5)
	got := ls.Hash(key)
	assert.Equal(t, Hash(s.Chars(), key), got[0])
}

func TestStreamDeterministicAndBounded(t *testing.T) {
	s := seed.MustParse("TESTSEED")
	a := NewStream(s, "Voucher1")
	b := NewStream(s, "Voucher1")
	for i := 0; i < 100; i++ {
		va, vb := a.Random(), b.Random()
		require.Equal(t, va, vb)
		assert.GreaterOrEqual(t, va, 0.0)
		assert.Less(t, va, 1.0)
		assert.GreaterOrEqual(t, a.State(), 0.0)
		assert.Less(t, a.State(), 1.0)
	}
}

func TestVecStreamMatchesScalar(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 9))
	var ls Lanes
	var seeds [simd.Lanes]seed.Seed
	for l := 0; l < simd.Lanes; l++ {
		seeds[l] = randomSeed(rng)
		ls.SetLane(l, seeds[l])
	}

	vs := ls.Stream("Tag1")
	var scalar [simd.Lanes]Stream
	for l := range scalar {
		scalar[l] = NewStream(seeds[l], "Tag1")
	}

	for i := 0; i < 20; i++ {
		idx := vs.Index(simd.AllTrue, 24)
		for l := 0; l < simd.Lanes; l++ {
			assert.Equal(t, scalar[l].Index(24), idx[l])
		}
	}
}

func TestMaskedAdvanceLeavesOtherLanes(t *testing.T) {
	var ls Lanes
	for l := 0; l < simd.Lanes; l++ {
		ls.SetLane(l, seed.MustParse("AAAA"))
	}
	vs := ls.Stream("cdt1")
	before := vs.State

	vs.NextMasked(simd.FirstN(4))
	for l := 0; l < simd.Lanes; l++ {
		if l < 4 {
			assert.NotEqual(t, before[l], vs.State[l])
		} else {
			assert.Equal(t, before[l], vs.State[l])
		}
	}

	idx := vs.Index(simd.Mask(0b1000_0000), 10)
	assert.Equal(t, -1, idx[0])
	assert.GreaterOrEqual(t, idx[7], 0)
}

func TestLuaRandomRanges(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 13))
	for i := 0; i < 1000; i++ {
		d := rng.Float64()
		r := LuaRandom(d)
		assert.GreaterOrEqual(t, r, 0.0)
		assert.Less(t, r, 1.0)

		v := LuaRandInt(d, 3, 7)
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 7)

		idx := LuaIndex(d, 5)
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 5)
	}
	assert.Equal(t, LuaRandom(0.5), LuaRandom(0.5))
	assert.NotEqual(t, LuaRandom(0.5), LuaRandom(0.25))
}

func TestResampleNeverRepeatsWithinSet(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 5))
	const poolSize = 12
	const capacity = 5

	for trial := 0; trial < 50; trial++ {
		var ls Lanes
		for l := 0; l < simd.Lanes; l++ {
			ls.SetLane(l, randomSeed(rng))
		}
		rs := ls.ResampleStream("Planetpl11")

		var sets [simd.Lanes][]int
		for k := 0; k < capacity; k++ {
			out := rs.Next(simd.AllTrue, poolSize, func(lane, idx int) bool {
				for _, v := range sets[lane] {
					if v == idx {
						return true
					}
				}
				return false
			})
			for l := 0; l < simd.Lanes; l++ {
				require.NotContains(t, sets[l], out[l])
				sets[l] = append(sets[l], out[l])
			}
		}
	}
}

func TestResampleScalarMatchesLanes(t *testing.T) {
	rng := rand.New(rand.NewPCG(8, 1))
	var ls Lanes
	var seeds [simd.Lanes]seed.Seed
	for l := 0; l < simd.Lanes; l++ {
		seeds[l] = randomSeed(rng)
		ls.SetLane(l, seeds[l])
	}
	unavailable := map[int]bool{9: true, 10: true, 11: true}

	vs := ls.ResampleStream("Planetsho1")
	var scalar [simd.Lanes]ResampleStream
	for l := range scalar {
		scalar[l] = NewResampleStream(seeds[l].Chars(), "Planetsho1")
	}
	for i := 0; i < 10; i++ {
		got := vs.Next(simd.AllTrue, 12, func(_, idx int) bool { return unavailable[idx] })
		for l := range scalar {
			want := scalar[l].Next(12, func(idx int) bool { return unavailable[idx] })
			assert.Equal(t, want, got[l])
			assert.False(t, unavailable[got[l]])
		}
	}
}

func TestKeyLengths(t *testing.T) {
	var k KeyLengths
	k.Register("")
	k.Register("Tag1")
	k.Register("Voucher1")
	k.Register("Tag2")
	assert.Equal(t, 3, k.Count())
	assert.True(t, k.Has(4))
	assert.False(t, k.Has(5))
	assert.False(t, k.Has(100))

	var got []int
	k.ForEach(func(n int) { got = append(got, n) })
	assert.Equal(t, []int{0, 4, 8}, got)
}
