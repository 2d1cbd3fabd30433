package search

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/seedscan/internal/prng"
	"github.com/hupe1980/seedscan/internal/seed"
	"github.com/hupe1980/seedscan/internal/simd"
)

// Provider supplies the seeds of a search, batch by batch.
type Provider interface {
	// Batches returns the number of batches.
	Batches() uint64
	// Seeds returns the number of seeds in batch index.
	Seeds(index uint64) uint64
	// Batch loads the seeds of batch index into lanes, eight at a time,
	// and calls fn after every group. Partials for keys are filled in
	// where the provider can share work between lanes. fn returns false
	// to stop the batch.
	Batch(index uint64, keys prng.KeyLengths, lanes *prng.Lanes, fn func() bool)
}

// Sequential enumerates every seed of one length in batch order. The last
// Length-BatchChars characters are fixed per batch and the first
// BatchChars characters run through all combinations inside it.
type Sequential struct {
	space seed.Space
	first uint64
	count uint64
}

// NewSequential returns the provider for batches [start, end) of space.
// An end of 0 means the last batch.
func NewSequential(space seed.Space, start, end uint64) (*Sequential, error) {
	if err := space.Validate(); err != nil {
		return nil, err
	}
	total := space.BatchCount()
	if end == 0 || end > total {
		end = total
	}
	if start >= end {
		return nil, fmt.Errorf("empty batch range [%d,%d) of %d batches", start, end, total)
	}
	return &Sequential{space: space, first: start, count: end - start}, nil
}

func (p *Sequential) Batches() uint64 { return p.count }

func (p *Sequential) Seeds(uint64) uint64 { return p.space.SeedsPerBatch() }

// Batch folds the fixed suffix into the partial hash once and then extends
// it by the varying prefix for every group of eight.
func (p *Sequential) Batch(index uint64, keys prng.KeyLengths, lanes *prng.Lanes, fn func() bool) {
	sp := p.space
	var chars [seed.MaxLength]byte
	sp.FillSuffix(p.first+index, &chars)

	var suffix [prng.MaxKeyLength + 1]float64
	keys.ForEach(func(k int) {
		num := 1.0
		for j := sp.Length - 1; j >= sp.BatchChars; j-- {
			num = prng.Extend(num, chars[j], j, k)
		}
		suffix[k] = num
	})

	var digits [seed.MaxLength]int
	for i := 0; i < sp.BatchChars; i++ {
		chars[i] = seed.Alphabet[0]
	}

	var cols [seed.MaxLength][simd.Lanes]byte
	total := sp.SeedsPerBatch()
	for done := uint64(0); done < total; {
		lanes.Reset()
		n := 0
		for ; n < simd.Lanes && done < total; n++ {
			lanes.SetChars(n, &chars, sp.Length)
			for j := 0; j < sp.BatchChars; j++ {
				cols[j][n] = chars[j]
			}
			done++

			// Odometer over the prefix, position 0 fastest.
			for pos := 0; pos < sp.BatchChars; pos++ {
				digits[pos]++
				if digits[pos] < sp.Radix {
					chars[pos] = seed.Alphabet[digits[pos]]
					break
				}
				digits[pos] = 0
				chars[pos] = seed.Alphabet[0]
			}
		}

		keys.ForEach(func(k int) {
			v := simd.Broadcast(suffix[k])
			for j := sp.BatchChars - 1; j >= 0; j-- {
				prng.ExtendLanes(&v, &cols[j], j, k)
			}
			lanes.SetPartialLanes(k, &v)
		})
		lanes.MarkCached(keys)

		if !fn() {
			return
		}
	}
}

// DefaultListBatch is the number of seeds per batch of a List or Random
// provider.
const DefaultListBatch = 1024

// List searches a fixed set of seeds. Duplicates are removed and the seeds
// are visited in packed order.
type List struct {
	seeds []uint64
	batch int
}

// NewList returns the provider for seeds.
func NewList(seeds []seed.Seed) *List {
	bm := roaring64.New()
	for _, s := range seeds {
		if !s.IsZero() {
			bm.Add(s.Pack())
		}
	}
	return &List{seeds: bm.ToArray(), batch: DefaultListBatch}
}

// NewSingle returns the provider for one seed.
func NewSingle(s seed.Seed) *List {
	return NewList([]seed.Seed{s})
}

// Len returns the number of distinct seeds.
func (p *List) Len() int { return len(p.seeds) }

func (p *List) Batches() uint64 {
	return uint64((len(p.seeds) + p.batch - 1) / p.batch)
}

func (p *List) Seeds(index uint64) uint64 {
	lo := int(index) * p.batch
	return uint64(min(len(p.seeds), lo+p.batch) - lo)
}

func (p *List) Batch(index uint64, _ prng.KeyLengths, lanes *prng.Lanes, fn func() bool) {
	lo := int(index) * p.batch
	hi := min(len(p.seeds), lo+p.batch)
	for group := range slices.Chunk(p.seeds[lo:hi], simd.Lanes) {
		lanes.Reset()
		for l, v := range group {
			s, err := seed.Unpack(v)
			if err != nil {
				continue
			}
			lanes.SetLane(l, s)
		}
		if !fn() {
			return
		}
	}
}

// Random searches count seeds of full length drawn from a PCG generator.
// Batch i always produces the same seeds for the same source, so a random
// search can be repeated or resumed.
type Random struct {
	count  uint64
	source uint64
	batch  uint64
}

// NewRandom returns the provider for count random seeds.
func NewRandom(count, source uint64) *Random {
	return &Random{count: count, source: source, batch: DefaultListBatch}
}

func (p *Random) Batches() uint64 { return (p.count + p.batch - 1) / p.batch }

func (p *Random) Seeds(index uint64) uint64 {
	return min(p.count, (index+1)*p.batch) - index*p.batch
}

func (p *Random) Batch(index uint64, _ prng.KeyLengths, lanes *prng.Lanes, fn func() bool) {
	rng := rand.New(rand.NewPCG(p.source, index))
	n := p.Seeds(index)
	var chars [seed.MaxLength]byte
	for done := uint64(0); done < n; {
		lanes.Reset()
		for l := 0; l < simd.Lanes && done < n; l++ {
			for j := range chars {
				chars[j] = seed.Alphabet[rng.IntN(seed.Radix)]
			}
			lanes.SetChars(l, &chars, seed.MaxLength)
			done++
		}
		if !fn() {
			return
		}
	}
}
