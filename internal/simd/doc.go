// Package simd provides the 8-lane primitives the search is built on.
//
// Every hot-path value is an eight element array (one element per seed in a
// batch) and every predicate result is a Mask with one bit per lane. The
// loops are plain Go with a fixed trip count of Lanes, which the compiler
// unrolls; no lane ever branches on another lane's value.
//
// # Platforms
//
// Runtime CPU feature detection (golang.org/x/sys/cpu) reports the widest
// vector unit available: AVX-512 or AVX2 on x86-64, NEON on ARM64. It is
// reported by seedscan.Platform, the "search started" log record and the
// platform command; the lane loops do not branch on it. Set SEEDSCAN_SIMD
// to report a narrower one.
//
// # Operations
//
//   - Masks: And, Or, AndNot, Not, Count, ForEach, FirstN
//   - Float lanes: Broadcast, Gt, Frac, Blend
package simd
