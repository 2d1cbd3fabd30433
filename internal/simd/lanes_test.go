package simd

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskAlgebra(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 1000; i++ {
		var xb, yb [Lanes]bool
		for l := 0; l < Lanes; l++ {
			xb[l] = rng.IntN(2) == 1
			yb[l] = rng.IntN(2) == 1
		}
		x, y := MaskOf(xb), MaskOf(yb)

		assert.Equal(t, x, AllTrue.And(x))
		assert.Equal(t, x, NoneTrue.Or(x))
		assert.Equal(t, AllTrue, x.Or(x.Not()))
		assert.Equal(t, NoneTrue, x.And(x.Not()))

		and, or := x.And(y), x.Or(y)
		for l := 0; l < Lanes; l++ {
			assert.Equal(t, xb[l] && yb[l], and.Lane(l))
			assert.Equal(t, xb[l] || yb[l], or.Lane(l))
			assert.Equal(t, xb[l] && !yb[l], x.AndNot(y).Lane(l))
		}
	}
}

func TestMaskHelpers(t *testing.T) {
	assert.Equal(t, Mask(0b111), FirstN(3))
	assert.Equal(t, AllTrue, FirstN(8))
	assert.Equal(t, NoneTrue, FirstN(0))

	m := NoneTrue.With(2, true).With(5, true)
	assert.Equal(t, 2, m.Count())
	assert.True(t, m.Lane(5))
	assert.False(t, m.With(5, false).Lane(5))

	var lanes []int
	m.ForEach(func(l int) { lanes = append(lanes, l) })
	assert.Equal(t, []int{2, 5}, lanes)

	assert.True(t, AllTrue.Covers(m))
	assert.False(t, m.Covers(AllTrue))
}

func TestFracAndGt(t *testing.T) {
	v := F64x8{0.25, 1.5, 2.75, -0.25, 3, 0.999, 10.125, 0}
	Frac(&v)
	for i := range v {
		assert.GreaterOrEqual(t, v[i], 0.0)
		assert.Less(t, v[i], 1.0)
	}
	assert.Equal(t, 0.75, v[3])
	assert.Equal(t, 0.0, v[4])

	m := Gt(&v, 0.5)
	assert.Equal(t, Mask(0b00101100), m)

	dst := Broadcast(math.Pi)
	Blend(&dst, &v, FirstN(2))
	assert.Equal(t, 0.25, dst[0])
	assert.Equal(t, math.Pi, dst[2])
}
