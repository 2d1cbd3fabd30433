package prng

import (
	"math/bits"

	"github.com/hupe1980/seedscan/internal/seed"
	"github.com/hupe1980/seedscan/internal/simd"
)

// MaxKeyLength is the longest key whose seed partial can be cached.
// Longer keys are hashed from the seed characters on every use.
const MaxKeyLength = 63

// KeyLengths is a set of key lengths, one bit per length.
// Length 0 is the hashed seed itself.
type KeyLengths uint64

// Register adds the length of key to the set.
func (k *KeyLengths) Register(key string) {
	k.Add(len(key))
}

// Add adds length n to the set. Lengths above MaxKeyLength are ignored.
func (k *KeyLengths) Add(n int) {
	if n <= MaxKeyLength {
		*k |= 1 << n
	}
}

// Has reports whether n is in the set.
func (k KeyLengths) Has(n int) bool {
	return n <= MaxKeyLength && k&(1<<n) != 0
}

// Count returns the number of lengths in the set.
func (k KeyLengths) Count() int { return bits.OnesCount64(uint64(k)) }

// ForEach calls fn for every length in ascending order.
func (k KeyLengths) ForEach(fn func(n int)) {
	for v := uint64(k); v != 0; v &= v - 1 {
		fn(bits.TrailingZeros64(v))
	}
}

// Lanes holds up to eight seeds and their cached partial hashes.
//
// A Lanes value is scratch owned by one goroutine; it is reset and refilled
// for every batch.
type Lanes struct {
	chars  [simd.Lanes][seed.MaxLength]byte
	lens   [simd.Lanes]uint8
	valid  simd.Mask
	cached KeyLengths
	parts  [MaxKeyLength + 1]simd.F64x8
}

// Reset clears all lanes and the partial cache.
func (s *Lanes) Reset() {
	s.valid = simd.NoneTrue
	s.cached = 0
	s.lens = [simd.Lanes]uint8{}
}

// SetLane stores sd in lane l and marks it valid. Any cached partials become
// stale, so the cache is cleared.
func (s *Lanes) SetLane(l int, sd seed.Seed) {
	chars, n := sd.Raw()
	s.chars[l] = chars
	s.lens[l] = uint8(n)
	s.valid = s.valid.With(l, true)
	s.cached = 0
}

// SetChars stores raw characters without touching the partial cache.
// Callers supply the partials with SetPartial and MarkCached.
func (s *Lanes) SetChars(l int, chars *[seed.MaxLength]byte, n int) {
	s.chars[l] = *chars
	s.lens[l] = uint8(n)
	s.valid = s.valid.With(l, true)
}

// SetPartial stores the partial state for keyLen in lane l.
func (s *Lanes) SetPartial(l, keyLen int, v float64) {
	s.parts[keyLen][l] = v
}

// SetPartialLanes stores the partial state vector for keyLen.
func (s *Lanes) SetPartialLanes(keyLen int, v *simd.F64x8) {
	s.parts[keyLen] = *v
}

// MarkCached declares the partials for lengths as filled in.
func (s *Lanes) MarkCached(lengths KeyLengths) {
	s.cached |= lengths
}

// SetValid overrides the validity mask.
func (s *Lanes) SetValid(m simd.Mask) { s.valid = m }

// Valid returns the live lanes.
func (s *Lanes) Valid() simd.Mask { return s.valid }

// Seed returns the seed in lane l.
func (s *Lanes) Seed(l int) seed.Seed {
	return seed.FromChars(s.chars[l][:s.lens[l]])
}

// PartialAt returns the cached partial for keyLen in lane l, computing the
// vector if needed.
func (s *Lanes) PartialAt(l, keyLen int) float64 {
	return s.Partial(keyLen)[l]
}

// Partial returns the partial state vector for keyLen.
func (s *Lanes) Partial(keyLen int) *simd.F64x8 {
	if keyLen > MaxKeyLength {
		panic("prng: key too long for partial cache")
	}
	if !s.cached.Has(keyLen) {
		for l := 0; l < simd.Lanes; l++ {
			s.parts[keyLen][l] = PartialHash(s.chars[l][:s.lens[l]], keyLen)
		}
		s.cached.Add(keyLen)
	}
	return &s.parts[keyLen]
}

// Hash returns hash(key++seed) for every lane.
func (s *Lanes) Hash(key string) simd.F64x8 {
	if len(key) > MaxKeyLength {
		var out simd.F64x8
		for l := 0; l < simd.Lanes; l++ {
			out[l] = Hash(s.chars[l][:s.lens[l]], key)
		}
		return out
	}
	return FinishLanes(s.Partial(len(key)), key)
}

// HashedSeed returns hash(seed) for every lane.
func (s *Lanes) HashedSeed() *simd.F64x8 {
	return s.Partial(0)
}

// Stream creates the stream for key over all lanes.
func (s *Lanes) Stream(key string) VecStream {
	return VecStream{
		State:  s.Hash(key),
		Hashed: *s.HashedSeed(),
	}
}

// ResampleStream creates a resampling stream for key over all lanes.
func (s *Lanes) ResampleStream(key string) VecResampleStream {
	return VecResampleStream{
		Base:  s.Stream(key),
		key:   key,
		lanes: s,
	}
}
