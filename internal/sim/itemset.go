package sim

import (
	"github.com/hupe1980/seedscan/internal/game"
	"github.com/hupe1980/seedscan/internal/simd"
)

// VecItemSet is the per-lane set of cards already shown in the current
// pack. Its capacity is the largest pack size.
type VecItemSet struct {
	items [simd.Lanes][game.MaxPackCards]game.ItemType
	n     [simd.Lanes]uint8
}

// Reset empties the set for every lane.
func (s *VecItemSet) Reset() { s.n = [simd.Lanes]uint8{} }

// Add inserts the items of lanes m. Excluded items are skipped.
func (s *VecItemSet) Add(v *game.ItemVec, m simd.Mask) {
	m.ForEach(func(l int) {
		if v[l].IsExcluded() || int(s.n[l]) == game.MaxPackCards {
			return
		}
		s.items[l][s.n[l]] = v[l].Type()
		s.n[l]++
	})
}

// Contains reports whether lane l already holds t.
func (s *VecItemSet) Contains(l int, t game.ItemType) bool {
	if s == nil {
		return false
	}
	for i := 0; i < int(s.n[l]); i++ {
		if s.items[l][i] == t {
			return true
		}
	}
	return false
}

// Len returns the number of items in lane l.
func (s *VecItemSet) Len(l int) int { return int(s.n[l]) }
