package pool

import (
	"testing"
	"time"

	"github.com/hupe1980/seedscan/internal/prng"
	"github.com/hupe1980/seedscan/internal/seed"
	"github.com/hupe1980/seedscan/internal/simd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScratchGetPut(t *testing.T) {
	s := Get()
	require.NotNil(t, s)
	assert.Equal(t, simd.NoneTrue, s.Lanes.Valid())
	assert.Empty(t, s.Results)

	s.Lanes.SetLane(0, seed.MustParse("ABC"))
	Put(s)

	s2 := Get()
	assert.Equal(t, simd.NoneTrue, s2.Lanes.Valid())
	Put(s2)
}

func TestBufferRoundTrip(t *testing.T) {
	var keys prng.KeyLengths
	keys.Register("Voucher1")
	keys.Register("Tag1")

	seeds := []seed.Seed{
		seed.MustParse("AAAAAAAA"), seed.MustParse("B"), seed.MustParse("12345678"),
		seed.MustParse("ZZ0"), seed.MustParse("QWERTY"), seed.MustParse("7LB2WVPK"),
		seed.MustParse("X"), seed.MustParse("HELL1"),
	}
	var src prng.Lanes
	for l, s := range seeds {
		src.SetLane(l, s)
	}

	b := GetBuffer()
	defer PutBuffer(b)
	now := time.Now()

	for l := simd.Lanes - 1; l >= 0; l-- {
		require.True(t, b.Push(&src, l, keys, now))
	}
	assert.True(t, b.Full())
	assert.False(t, b.Push(&src, 0, keys, now))
	assert.Equal(t, time.Second, b.Age(now.Add(time.Second)))

	var dst prng.Lanes
	b.Load(&dst, keys)
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, simd.AllTrue, dst.Valid())

	for l := 0; l < simd.Lanes; l++ {
		want := seeds[simd.Lanes-1-l]
		assert.Equal(t, want, dst.Seed(l))
	}
	for _, key := range []string{"Voucher1", "Tag1", "Tag2"} {
		got := dst.Hash(key)
		for l := 0; l < simd.Lanes; l++ {
			assert.Equal(t, prng.Hash(seeds[simd.Lanes-1-l].Chars(), key), got[l], key)
		}
	}
}

func TestBufferPartialLoad(t *testing.T) {
	var keys prng.KeyLengths
	keys.Register("boss")

	var src prng.Lanes
	src.SetLane(0, seed.MustParse("SEED"))

	b := GetBuffer()
	defer PutBuffer(b)
	assert.Equal(t, time.Duration(0), b.Age(time.Now()))
	require.True(t, b.Push(&src, 0, keys, time.Now()))

	var dst prng.Lanes
	dst.SetLane(5, seed.MustParse("XTHER"))
	b.Load(&dst, keys)
	assert.Equal(t, simd.FirstN(1), dst.Valid())
	assert.Equal(t, prng.Hash([]byte("SEED"), "boss"), dst.Hash("boss")[0])
}

func TestSizes(t *testing.T) {
	assert.Positive(t, ScratchSize)
	assert.Greater(t, BufferSize, int64(prng.MaxKeyLength*simd.Lanes*8))
}
