// Package testutil provides testing utilities for seedscan.
//
// This package is intended for use in tests and benchmarks only.
// It provides reproducible seed generators and single-seed reference
// implementations of the draws the vectorized generators must agree with.
//
// # Random Seeds
//
//	rng := testutil.NewRNG(4711)
//	seeds := rng.Seeds(10000)         // full-length seeds
//	mixed := rng.MixedLengthSeeds(100) // lengths 1..8
//
// # Reference Draws
//
//	v := testutil.FirstVoucher(s, game.DeckRed, 1)
package testutil
