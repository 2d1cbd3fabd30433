package testutil

import (
	"math/rand/v2"
	"strconv"
	"sync"

	"github.com/hupe1980/seedscan/internal/game"
	"github.com/hupe1980/seedscan/internal/prng"
	"github.com/hupe1980/seedscan/internal/seed"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed uint64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(s uint64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15)),
		seed: s,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewPCG(r.seed, r.seed^0x9e3779b97f4a7c15))
}

// Seed returns the initial seed.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// IntN returns a non-negative pseudo-random number in [0,n).
func (r *RNG) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.IntN(n)
}

func (r *RNG) seedLocked(n int) seed.Seed {
	chars := make([]byte, n)
	for i := range chars {
		chars[i] = seed.Char(r.rand.IntN(seed.Radix))
	}
	return seed.FromChars(chars)
}

// Seeds returns num random seeds of full length.
func (r *RNG) Seeds(num int) []seed.Seed {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]seed.Seed, num)
	for i := range out {
		out[i] = r.seedLocked(seed.MaxLength)
	}
	return out
}

// MixedLengthSeeds returns num random seeds of random length.
func (r *RNG) MixedLengthSeeds(num int) []seed.Seed {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]seed.Seed, num)
	for i := range out {
		out[i] = r.seedLocked(1 + r.rand.IntN(seed.MaxLength))
	}
	return out
}

// FirstVoucher returns the voucher offered in ante for a run that redeemed
// nothing beyond the deck's starting vouchers, computed one seed at a time.
func FirstVoucher(s seed.Seed, deck game.Deck, ante int) game.ItemType {
	owned := deck.StartingVouchers()
	rs := prng.NewResampleStream(s.Chars(), "Voucher"+strconv.Itoa(ante))
	idx := rs.Next(game.NumVouchers, func(i int) bool { return !owned.Available(i) })
	return game.Voucher(idx).Type()
}

// Tags returns the small and big blind tags of ante, computed one seed at
// a time.
func Tags(s seed.Seed, ante int) [2]game.ItemType {
	rs := prng.NewResampleStream(s.Chars(), "Tag"+strconv.Itoa(ante))
	var out [2]game.ItemType
	for i := range out {
		idx := rs.Next(game.NumTags, func(j int) bool { return !game.TagAvailable(j, ante) })
		out[i] = game.Tag(idx).Type()
	}
	return out
}
