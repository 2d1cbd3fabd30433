package prng

import (
	"math"

	"github.com/hupe1980/seedscan/internal/simd"
)

const hashMul = 1.1239285023

// step folds character c at 1-based string position pos into num.
//
// Operation order mirrors ((1.1239285023/num)*c)*π + π*pos; do not
// reassociate.
func step(num float64, c byte, pos int) float64 {
	x := float64(hashMul / num)
	x = float64(x * float64(c))
	x = float64(x * math.Pi)
	y := float64(math.Pi * float64(pos))
	x = float64(x + y)
	return x - math.Floor(x)
}

// Extend folds seed character c at seed position j (0-based) for a key of
// length keyLen into the partial state num.
func Extend(num float64, c byte, j, keyLen int) float64 {
	return step(num, c, keyLen+j+1)
}

// PartialHash folds the seed characters for a key of length keyLen.
func PartialHash(chars []byte, keyLen int) float64 {
	num := 1.0
	for j := len(chars) - 1; j >= 0; j-- {
		num = step(num, chars[j], keyLen+j+1)
	}
	return num
}

// FinishHash folds the key characters into a partial state.
func FinishHash(partial float64, key string) float64 {
	num := partial
	for i := len(key); i >= 1; i-- {
		num = step(num, key[i-1], i)
	}
	return num
}

// Hash returns the pseudo-hash of key++seed.
func Hash(seed []byte, key string) float64 {
	return FinishHash(PartialHash(seed, len(key)), key)
}

// HashString returns the pseudo-hash of an arbitrary string.
func HashString(s string) float64 {
	num := 1.0
	for i := len(s); i >= 1; i-- {
		num = step(num, s[i-1], i)
	}
	return num
}

// ExtendLanes folds one character per lane at seed position j.
func ExtendLanes(num *simd.F64x8, chars *[simd.Lanes]byte, j, keyLen int) {
	pos := keyLen + j + 1
	for l := 0; l < simd.Lanes; l++ {
		num[l] = step(num[l], chars[l], pos)
	}
}

// FinishLanes folds the key characters into every lane of partial.
func FinishLanes(partial *simd.F64x8, key string) simd.F64x8 {
	num := *partial
	for i := len(key); i >= 1; i-- {
		c := key[i-1]
		for l := 0; l < simd.Lanes; l++ {
			num[l] = step(num[l], c, i)
		}
	}
	return num
}
