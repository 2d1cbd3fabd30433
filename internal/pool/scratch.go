// Package pool provides reusable per-worker scratch for the search loop.
// Uses sync.Pool so that restarting a search does not reallocate lane
// state, and fixed-size arrays so that a batch never allocates.
package pool

import (
	"sync"
	"time"
	"unsafe"

	"github.com/hupe1980/seedscan/internal/prng"
	"github.com/hupe1980/seedscan/internal/score"
	"github.com/hupe1980/seedscan/internal/seed"
	"github.com/hupe1980/seedscan/internal/simd"
)

// DefaultResultCapacity is the initial capacity of the result buffer.
const DefaultResultCapacity = 64

// Scratch holds the lane state a worker fills for every batch.
// It is owned by a single goroutine.
type Scratch struct {
	Lanes   prng.Lanes
	Results []score.Result
}

var scratchPool = sync.Pool{
	New: func() any {
		return &Scratch{Results: make([]score.Result, 0, DefaultResultCapacity)}
	},
}

// Get retrieves a Scratch from the pool.
func Get() *Scratch {
	s := scratchPool.Get().(*Scratch)
	s.Reset()
	return s
}

// Put returns a Scratch to the pool for reuse.
func Put(s *Scratch) {
	if cap(s.Results) > DefaultResultCapacity*16 {
		s.Results = make([]score.Result, 0, DefaultResultCapacity)
	}
	scratchPool.Put(s)
}

// Reset clears the scratch for reuse.
func (s *Scratch) Reset() {
	s.Lanes.Reset()
	clear(s.Results)
	s.Results = s.Results[:0]
}

// ScratchSize is the accounted size of one Scratch.
const ScratchSize = int64(unsafe.Sizeof(Scratch{})) + DefaultResultCapacity*int64(unsafe.Sizeof(score.Result{}))

// Buffer collects single seeds that passed one filter stage until eight of
// them can run through the next stage together. It keeps the seed
// characters and their partial hashes so the next stage does not recompute
// them.
type Buffer struct {
	chars [simd.Lanes][seed.MaxLength]byte
	lens  [simd.Lanes]uint8
	parts [prng.MaxKeyLength + 1][simd.Lanes]float64
	n     int
	since time.Time
}

// BufferSize is the accounted size of one Buffer.
const BufferSize = int64(unsafe.Sizeof(Buffer{}))

var bufferPool = sync.Pool{
	New: func() any { return new(Buffer) },
}

// GetBuffer retrieves an empty Buffer from the pool.
func GetBuffer() *Buffer {
	b := bufferPool.Get().(*Buffer)
	b.Reset()
	return b
}

// PutBuffer returns a Buffer to the pool for reuse.
func PutBuffer(b *Buffer) { bufferPool.Put(b) }

// Reset empties the buffer.
func (b *Buffer) Reset() {
	b.n = 0
	b.since = time.Time{}
}

// Len returns the number of buffered seeds.
func (b *Buffer) Len() int { return b.n }

// Full reports whether the buffer holds eight seeds.
func (b *Buffer) Full() bool { return b.n == simd.Lanes }

// Age returns how long the oldest buffered seed has waited.
func (b *Buffer) Age(now time.Time) time.Duration {
	if b.n == 0 {
		return 0
	}
	return now.Sub(b.since)
}

// Push copies lane l of src, including the partials for keys. It returns
// false when the buffer is full.
func (b *Buffer) Push(src *prng.Lanes, l int, keys prng.KeyLengths, now time.Time) bool {
	if b.n == simd.Lanes {
		return false
	}
	if b.n == 0 {
		b.since = now
	}
	s := src.Seed(l)
	chars, n := s.Raw()
	b.chars[b.n] = chars
	b.lens[b.n] = uint8(n)
	keys.ForEach(func(k int) {
		b.parts[k][b.n] = src.PartialAt(l, k)
	})
	b.n++
	return true
}

// Load moves the buffered seeds into dst lanes 0..Len()-1 and empties the
// buffer.
func (b *Buffer) Load(dst *prng.Lanes, keys prng.KeyLengths) {
	dst.Reset()
	for l := 0; l < b.n; l++ {
		dst.SetChars(l, &b.chars[l], int(b.lens[l]))
	}
	keys.ForEach(func(k int) {
		v := simd.F64x8(b.parts[k])
		dst.SetPartialLanes(k, &v)
	})
	dst.MarkCached(keys)
	b.Reset()
}
