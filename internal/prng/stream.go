package prng

import (
	"math"
	"strconv"

	"github.com/hupe1980/seedscan/internal/seed"
	"github.com/hupe1980/seedscan/internal/simd"
)

// Index lanes hold 0-based pool indices. Masked-out lanes hold -1.
type Index [simd.Lanes]int

// advance is the game's pseudoseed state update followed by the value
// mixed with the hashed seed.
func advance(state, hashed float64) (next, value float64) {
	x := float64(state * 1.72431234)
	x = float64(2.134453429141 + x)
	x = x - math.Floor(x)
	next = round13(x)
	return next, float64(next+hashed) / 2
}

// tieMargin bounds the error of x*1e13 for x in [0,1) with room to spare.
// Within it of a half, the scaled product may round the wrong way.
const tieMargin = 0.01

// round13 emulates tonumber(string.format("%.13f", x)) for x in [0,1).
// Near a rounding tie the decimal formatting decides.
func round13(x float64) float64 {
	y := float64(x * 1e13)
	if _, f := math.Modf(y); math.Abs(f-0.5) < tieMargin {
		v, _ := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 13, 64), 64)
		return math.Abs(v)
	}
	return math.Abs(math.Round(y) / 1e13)
}

// Stream is a single-seed channel cursor.
type Stream struct {
	state  float64
	hashed float64
}

// NewStream creates the stream for key on s.
func NewStream(s seed.Seed, key string) Stream {
	chars := s.Chars()
	return Stream{
		state:  Hash(chars, key),
		hashed: PartialHash(chars, 0),
	}
}

// State returns the raw channel state.
func (s *Stream) State() float64 { return s.state }

// Next advances the stream and returns the pseudoseed value.
func (s *Stream) Next() float64 {
	var v float64
	s.state, v = advance(s.state, s.hashed)
	return v
}

// Random advances the stream and returns a draw in [0,1).
func (s *Stream) Random() float64 {
	return LuaRandom(s.Next())
}

// RandInt advances the stream and returns a draw in [minV,maxV].
func (s *Stream) RandInt(minV, maxV int) int {
	return LuaRandInt(s.Next(), minV, maxV)
}

// Index advances the stream and returns a 0-based index into n entries.
func (s *Stream) Index(n int) int {
	return LuaIndex(s.Next(), n)
}

// VecStream is a channel cursor for eight lanes.
//
// An Invalid stream belongs to a channel no clause can observe. It never
// advances; generators return the excluded sentinel instead of drawing.
type VecStream struct {
	State   simd.F64x8
	Hashed  simd.F64x8
	Invalid bool
}

// InvalidStream returns an excluded stream.
func InvalidStream() VecStream {
	return VecStream{Invalid: true}
}

// Next advances every lane (full advancement) and returns the values.
func (s *VecStream) Next() simd.F64x8 {
	var out simd.F64x8
	for l := 0; l < simd.Lanes; l++ {
		s.State[l], out[l] = advance(s.State[l], s.Hashed[l])
	}
	return out
}

// NextMasked advances only the lanes in m (masked advancement). Lanes
// outside m keep their state and return 0.
func (s *VecStream) NextMasked(m simd.Mask) simd.F64x8 {
	var out simd.F64x8
	for l := 0; l < simd.Lanes; l++ {
		if m.Lane(l) {
			s.State[l], out[l] = advance(s.State[l], s.Hashed[l])
		}
	}
	return out
}

// Random advances the lanes in m and returns draws in [0,1).
func (s *VecStream) Random(m simd.Mask) simd.F64x8 {
	v := s.NextMasked(m)
	return LuaRandomLanes(&v, m)
}

// Index advances the lanes in m and returns 0-based indices into n entries.
func (s *VecStream) Index(m simd.Mask, n int) Index {
	v := s.NextMasked(m)
	var out Index
	for l := 0; l < simd.Lanes; l++ {
		if m.Lane(l) {
			out[l] = LuaIndex(v[l], n)
		} else {
			out[l] = -1
		}
	}
	return out
}

// IndexLanes is Index with a per-lane pool size. Lanes with n <= 0 are
// treated as masked out.
func (s *VecStream) IndexLanes(m simd.Mask, n *[simd.Lanes]int) Index {
	for l := 0; l < simd.Lanes; l++ {
		if n[l] <= 0 {
			m = m.With(l, false)
		}
	}
	v := s.NextMasked(m)
	var out Index
	for l := 0; l < simd.Lanes; l++ {
		if m.Lane(l) {
			out[l] = LuaIndex(v[l], n[l])
		} else {
			out[l] = -1
		}
	}
	return out
}
