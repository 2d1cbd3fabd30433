// Package prng reproduces the game's seeded randomness bit for bit.
//
// # Pseudo-hash
//
// Every random channel is identified by a string key. The channel's initial
// state is the pseudo-hash of key++seed:
//
//	num = 1
//	for i = len(str) downto 1:
//	    num = frac((1.1239285023/num) * byte(str, i) * π + π*i)
//
// The seed characters sit at the end of the string and are folded first,
// so the state after the seed part depends only on the key length. Those
// partial states are cached per key length (see KeyLengths and Lanes) and
// each key finishes from its cached partial.
//
// Every multiply and add is rounded explicitly with a float64 conversion.
// Go allows x*y+z to be fused into one FMA instruction on some
// architectures, which rounds once instead of twice and would desynchronize
// the result from the game.
//
// # Streams
//
// A stream advances like the game's pseudoseed:
//
//	state = round13(frac(2.134453429141 + state*1.72431234))
//	value = (state + hash(seed)) / 2
//
// and each value seeds LuaJIT's TW223 generator (math.randomseed followed by
// one math.random), which produces the actual draw.
package prng
