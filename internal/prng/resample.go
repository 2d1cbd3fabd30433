package prng

import (
	"strconv"

	"github.com/hupe1980/seedscan/internal/simd"
)

// firstResample is the suffix number of the first resample key; the game
// starts its counter at 1 and increments before building the key.
const firstResample = 2

// maxResampleLevels bounds the resample loop. A lane still rejected after
// this many channels gets index -1; it only happens when every pool entry
// is unavailable.
const maxResampleLevels = 512

// VecResampleStream is a base stream plus the lazily created streams keyed
// key+"_resample"+n that the game falls back to when a draw lands on an
// unavailable pool entry.
//
// Resample streams persist for the lifetime of the stream: a later draw
// that collides again continues the same resample channel.
type VecResampleStream struct {
	Base     VecStream
	key      string
	lanes    *Lanes
	resample []VecStream
}

// InvalidResampleStream returns an excluded resampling stream.
func InvalidResampleStream() VecResampleStream {
	return VecResampleStream{Base: InvalidStream()}
}

// Invalid reports whether the stream is excluded.
func (r *VecResampleStream) Invalid() bool { return r.Base.Invalid }

// Key returns the base key.
func (r *VecResampleStream) Key() string { return r.key }

func (r *VecResampleStream) level(i int) *VecStream {
	for len(r.resample) <= i {
		n := len(r.resample) + firstResample
		r.resample = append(r.resample, r.lanes.Stream(r.key+"_resample"+strconv.Itoa(n)))
	}
	return &r.resample[i]
}

// Next draws an index into n entries for every lane in m, redrawing a lane
// from the next resample channel while reject reports its index unusable.
//
// The base stream uses masked advancement over m; each resample channel
// advances only for the lanes that were rejected at the previous level.
func (r *VecResampleStream) Next(m simd.Mask, n int, reject func(lane, idx int) bool) Index {
	out := r.Base.Index(m, n)
	pending := simd.NoneTrue
	m.ForEach(func(l int) {
		if reject(l, out[l]) {
			pending = pending.With(l, true)
		}
	})

	for lvl := 0; pending.Any(); lvl++ {
		if lvl == maxResampleLevels {
			pending.ForEach(func(l int) { out[l] = -1 })
			break
		}
		s := r.level(lvl)
		redraw := s.Index(pending, n)
		next := simd.NoneTrue
		pending.ForEach(func(l int) {
			out[l] = redraw[l]
			if reject(l, out[l]) {
				next = next.With(l, true)
			}
		})
		pending = next
	}
	return out
}

// ResampleStream is the single-seed form of VecResampleStream.
type ResampleStream struct {
	base     Stream
	key      string
	chars    []byte
	resample []Stream
}

// NewResampleStream creates the resampling stream for key on chars.
func NewResampleStream(chars []byte, key string) ResampleStream {
	return ResampleStream{
		base:  Stream{state: Hash(chars, key), hashed: PartialHash(chars, 0)},
		key:   key,
		chars: chars,
	}
}

// Next draws an index into n entries, resampling while reject is true.
func (r *ResampleStream) Next(n int, reject func(idx int) bool) int {
	idx := r.base.Index(n)
	for lvl := 0; reject(idx); lvl++ {
		if lvl == maxResampleLevels {
			return -1
		}
		for len(r.resample) <= lvl {
			k := r.key + "_resample" + strconv.Itoa(len(r.resample)+firstResample)
			r.resample = append(r.resample, Stream{state: Hash(r.chars, k), hashed: r.base.hashed})
		}
		idx = r.resample[lvl].Index(n)
	}
	return idx
}
