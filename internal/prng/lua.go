package prng

import (
	"math"

	"github.com/hupe1980/seedscan/internal/simd"
)

// luaRandom is LuaJIT's TW223 combined Tausworthe generator.
type luaRandom [4]uint64

func newLuaRandom(d float64) luaRandom {
	var rs luaRandom
	// 64-k[i] as four 8 bit constants.
	r := uint32(0x11090601)
	for i := 0; i < 4; i++ {
		m := uint64(1) << (r & 255)
		r >>= 8
		d = float64(d*math.Pi) + math.E
		u := math.Float64bits(d)
		if u < m {
			u += m
		}
		rs[i] = u
	}
	for i := 0; i < 10; i++ {
		rs.step()
	}
	return rs
}

// step advances the four Tausworthe components. The masks clear the low
// 64-k bits of each component (k = 63, 58, 55, 47).
func (rs *luaRandom) step() uint64 {
	var r uint64
	z := rs[0]
	z = (((z << 31) ^ z) >> (63 - 18)) ^ ((z & 0xFFFFFFFFFFFFFFFE) << 18)
	r ^= z
	rs[0] = z

	z = rs[1]
	z = (((z << 19) ^ z) >> (58 - 28)) ^ ((z & 0xFFFFFFFFFFFFFFC0) << 28)
	r ^= z
	rs[1] = z

	z = rs[2]
	z = (((z << 24) ^ z) >> (55 - 7)) ^ ((z & 0xFFFFFFFFFFFFFE00) << 7)
	r ^= z
	rs[2] = z

	z = rs[3]
	z = (((z << 21) ^ z) >> (47 - 8)) ^ ((z & 0xFFFFFFFFFFFE0000) << 8)
	r ^= z
	rs[3] = z

	return (r & 0x000fffffffffffff) | 0x3ff0000000000000
}

func (rs *luaRandom) float() float64 {
	return math.Float64frombits(rs.step()) - 1.0
}

// LuaRandom returns the first math.random() after math.randomseed(d).
func LuaRandom(d float64) float64 {
	rs := newLuaRandom(d)
	return rs.float()
}

// LuaRandInt returns math.random(min, max) after math.randomseed(d).
func LuaRandInt(d float64, minV, maxV int) int {
	r := LuaRandom(d)
	return int(math.Floor(float64(r*float64(maxV-minV+1)))) + minV
}

// LuaIndex returns math.random(n)-1 after math.randomseed(d): a 0-based
// index into a pool of n entries.
func LuaIndex(d float64, n int) int {
	r := LuaRandom(d)
	return int(math.Floor(float64(r * float64(n))))
}

// LuaRandomLanes seeds one generator per lane in m and draws once.
// Lanes outside m are left zero.
func LuaRandomLanes(d *simd.F64x8, m simd.Mask) simd.F64x8 {
	var out simd.F64x8
	for l := 0; l < simd.Lanes; l++ {
		if m.Lane(l) {
			out[l] = LuaRandom(d[l])
		}
	}
	return out
}
