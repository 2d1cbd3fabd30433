package simd

import (
	"math"
	"math/bits"
)

// Lanes is the number of seeds processed together.
const Lanes = 8

// Mask holds one bit per lane; bit i is lane i.
type Mask uint8

const (
	// NoneTrue has no lane set.
	NoneTrue Mask = 0
	// AllTrue has every lane set.
	AllTrue Mask = 0xFF
)

// MaskOf builds a mask from a lane-indexed bool array.
func MaskOf(b [Lanes]bool) Mask {
	var m Mask
	for i, v := range b {
		if v {
			m |= 1 << i
		}
	}
	return m
}

// FirstN returns a mask with lanes 0..n-1 set.
func FirstN(n int) Mask {
	if n >= Lanes {
		return AllTrue
	}
	if n <= 0 {
		return NoneTrue
	}
	return Mask(1<<n - 1)
}

// Lane reports whether lane i is set.
func (m Mask) Lane(i int) bool { return m&(1<<i) != 0 }

// With returns m with lane i set to v.
func (m Mask) With(i int, v bool) Mask {
	if v {
		return m | 1<<i
	}
	return m &^ (1 << i)
}

// And returns the lane-wise conjunction.
func (m Mask) And(o Mask) Mask { return m & o }

// Or returns the lane-wise disjunction.
func (m Mask) Or(o Mask) Mask { return m | o }

// AndNot returns lanes in m that are not in o.
func (m Mask) AndNot(o Mask) Mask { return m &^ o }

// Not returns the lane-wise negation.
func (m Mask) Not() Mask { return ^m }

// Count returns the number of set lanes.
func (m Mask) Count() int { return bits.OnesCount8(uint8(m)) }

// Any reports whether any lane is set.
func (m Mask) Any() bool { return m != 0 }

// Covers reports whether every lane of live is set in m.
func (m Mask) Covers(live Mask) bool { return m&live == live }

// ForEach calls fn for every set lane in ascending order.
func (m Mask) ForEach(fn func(lane int)) {
	for v := uint8(m); v != 0; v &= v - 1 {
		fn(bits.TrailingZeros8(v))
	}
}

// F64x8 is eight float64 lanes.
type F64x8 [Lanes]float64

// Broadcast returns a vector with every lane set to v.
func Broadcast(v float64) F64x8 {
	return F64x8{v, v, v, v, v, v, v, v}
}

// Gt returns the lanes where a > c.
func Gt(a *F64x8, c float64) Mask {
	var m Mask
	for i := 0; i < Lanes; i++ {
		if a[i] > c {
			m |= 1 << i
		}
	}
	return m
}

// Frac replaces every lane with x - floor(x).
func Frac(a *F64x8) {
	for i := 0; i < Lanes; i++ {
		a[i] = a[i] - math.Floor(a[i])
	}
}

// Blend copies lanes of src selected by m into dst.
func Blend(dst *F64x8, src *F64x8, m Mask) {
	for i := 0; i < Lanes; i++ {
		if m.Lane(i) {
			dst[i] = src[i]
		}
	}
}
