package filter

import (
	"github.com/hupe1980/seedscan/internal/sim"
	"github.com/hupe1980/seedscan/internal/simd"
)

// Criteria is a compiled predicate over the eight lanes of a context.
//
// The set of implementations is closed; every type is built by the
// compiler in this package.
type Criteria interface {
	// Kind is the clause category the criteria was compiled from.
	Kind() Kind
	// Filter returns the live lanes that satisfy the criteria.
	Filter(ctx *sim.Context) simd.Mask
	// Count returns how often the criteria is satisfied per lane.
	Count(ctx *sim.Context) [simd.Lanes]int
	// MaxAnte is the highest ante the criteria inspects.
	MaxAnte() int

	isCriteria()
}

// clauseGroup holds the clauses of one category. A lane passes when every
// positive clause hits at least once and no inverted clause hits.
type clauseGroup struct {
	kind Kind
	pos  []*matcher
	neg  []*matcher
	plan scanPlan
	scan scanFunc
}

func newClauseGroup(kind Kind, ms []*matcher) clauseGroup {
	g := clauseGroup{kind: kind, plan: planFor(ms), scan: scanners[kind]}
	for _, m := range ms {
		if m.inverted {
			g.neg = append(g.neg, m)
		} else {
			g.pos = append(g.pos, m)
		}
	}
	return g
}

func (g *clauseGroup) Kind() Kind { return g.kind }

func (g *clauseGroup) MaxAnte() int { return g.plan.maxAnte }

func (g *clauseGroup) isCriteria() {}

// Filter scans the category once. The scan stops as soon as every live lane
// satisfies all positive clauses, or, with inverted clauses present, as
// soon as every live lane is banned.
func (g *clauseGroup) Filter(ctx *sim.Context) simd.Mask {
	live := ctx.Valid()
	if !live.Any() {
		return simd.NoneTrue
	}
	found := make([]simd.Mask, len(g.pos))
	var banned simd.Mask

	g.scan(ctx, &g.plan, func(o *occurrence) bool {
		ok := live
		for i, m := range g.pos {
			found[i] |= m.hits(o)
			ok = ok.And(found[i])
		}
		if len(g.neg) == 0 {
			return ok == live
		}
		for _, m := range g.neg {
			banned |= m.hits(o)
		}
		return !live.AndNot(banned).Any()
	})

	out := live.AndNot(banned)
	for _, f := range found {
		out = out.And(f)
	}
	return out
}

// Count returns the number of positive clause hits per lane over the whole
// scan. Without positive clauses it returns 1 for every lane that passes.
func (g *clauseGroup) Count(ctx *sim.Context) [simd.Lanes]int {
	var counts [simd.Lanes]int
	if len(g.pos) == 0 {
		g.Filter(ctx).ForEach(func(l int) { counts[l] = 1 })
		return counts
	}
	var banned simd.Mask
	g.scan(ctx, &g.plan, func(o *occurrence) bool {
		for _, m := range g.neg {
			banned |= m.hits(o)
		}
		for _, m := range g.pos {
			m.hits(o).ForEach(func(l int) { counts[l]++ })
		}
		return false
	})
	banned.ForEach(func(l int) { counts[l] = 0 })
	return counts
}

// JokerCriteria matches shop and Buffoon pack jokers.
type JokerCriteria struct{ clauseGroup }

// SoulJokerCriteria matches the legendary jokers created by The Soul.
type SoulJokerCriteria struct{ clauseGroup }

// VoucherCriteria matches the voucher offered in each ante.
type VoucherCriteria struct{ clauseGroup }

// TarotCriteria matches tarots in the shop and in Arcana packs.
type TarotCriteria struct{ clauseGroup }

// PlanetCriteria matches planets in the shop and in Celestial packs.
type PlanetCriteria struct{ clauseGroup }

// SpectralCriteria matches spectrals in the shop, Spectral packs and
// Arcana packs.
type SpectralCriteria struct{ clauseGroup }

// PlayingCardCriteria matches playing cards in Standard packs and, with
// Magic Trick, in the shop.
type PlayingCardCriteria struct{ clauseGroup }

// BossCriteria matches boss blinds.
type BossCriteria struct{ clauseGroup }

// TagCriteria matches small and big blind tags.
type TagCriteria struct{ clauseGroup }

// newGroupCriteria returns the criteria of a category group.
func newGroupCriteria(kind Kind, ms []*matcher) Criteria {
	g := newClauseGroup(kind, ms)
	switch kind {
	case KindJoker:
		return &JokerCriteria{g}
	case KindSoulJoker:
		return &SoulJokerCriteria{g}
	case KindVoucher:
		return &VoucherCriteria{g}
	case KindTarot:
		return &TarotCriteria{g}
	case KindPlanet:
		return &PlanetCriteria{g}
	case KindSpectral:
		return &SpectralCriteria{g}
	case KindPlayingCard:
		return &PlayingCardCriteria{g}
	case KindBoss:
		return &BossCriteria{g}
	case KindTag:
		return &TagCriteria{g}
	default:
		panic("filter: no scanner for " + kind.String())
	}
}

// AndCriteria requires every part. Inverted, it passes the lanes where
// at least one part fails.
type AndCriteria struct {
	Parts    []Criteria
	Inverted bool
}

func (c *AndCriteria) Kind() Kind { return KindAnd }

func (c *AndCriteria) MaxAnte() int { return maxAnteOf(c.Parts) }

func (c *AndCriteria) isCriteria() {}

func (c *AndCriteria) Filter(ctx *sim.Context) simd.Mask {
	live := ctx.Valid()
	out := live
	for _, p := range c.Parts {
		if !out.Any() {
			break
		}
		out = out.And(p.Filter(ctx))
	}
	if c.Inverted {
		return live.AndNot(out)
	}
	return out
}

// Count is the smallest part count per lane.
func (c *AndCriteria) Count(ctx *sim.Context) [simd.Lanes]int {
	if c.Inverted {
		return indicator(c.Filter(ctx))
	}
	var out [simd.Lanes]int
	for i, p := range c.Parts {
		n := p.Count(ctx)
		for l := range out {
			if i == 0 || n[l] < out[l] {
				out[l] = n[l]
			}
		}
	}
	return out
}

// OrCriteria requires any part. Inverted, it passes the lanes where every
// part fails.
type OrCriteria struct {
	Parts    []Criteria
	Inverted bool
}

func (c *OrCriteria) Kind() Kind { return KindOr }

func (c *OrCriteria) MaxAnte() int { return maxAnteOf(c.Parts) }

func (c *OrCriteria) isCriteria() {}

func (c *OrCriteria) Filter(ctx *sim.Context) simd.Mask {
	live := ctx.Valid()
	var out simd.Mask
	for _, p := range c.Parts {
		if out == live {
			break
		}
		out = out.Or(p.Filter(ctx))
	}
	out = out.And(live)
	if c.Inverted {
		return live.AndNot(out)
	}
	return out
}

// Count is the sum of the part counts per lane.
func (c *OrCriteria) Count(ctx *sim.Context) [simd.Lanes]int {
	if c.Inverted {
		return indicator(c.Filter(ctx))
	}
	var out [simd.Lanes]int
	for _, p := range c.Parts {
		n := p.Count(ctx)
		for l := range out {
			out[l] += n[l]
		}
	}
	return out
}

// CompositeCriteria ANDs category groups in a single pass. Inverted clauses
// live inside their category group.
type CompositeCriteria struct {
	Parts []Criteria
}

func (c *CompositeCriteria) Kind() Kind { return KindAnd }

func (c *CompositeCriteria) MaxAnte() int { return maxAnteOf(c.Parts) }

func (c *CompositeCriteria) isCriteria() {}

func (c *CompositeCriteria) Filter(ctx *sim.Context) simd.Mask {
	out := ctx.Valid()
	for _, p := range c.Parts {
		if !out.Any() {
			break
		}
		out = out.And(p.Filter(ctx))
	}
	return out
}

func (c *CompositeCriteria) Count(ctx *sim.Context) [simd.Lanes]int {
	return indicator(c.Filter(ctx))
}

func indicator(m simd.Mask) [simd.Lanes]int {
	var out [simd.Lanes]int
	m.ForEach(func(l int) { out[l] = 1 })
	return out
}

func maxAnteOf(cs []Criteria) int {
	n := 0
	for _, c := range cs {
		n = max(n, c.MaxAnte())
	}
	return n
}
