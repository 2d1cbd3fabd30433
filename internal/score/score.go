package score

import (
	"sync/atomic"

	"github.com/hupe1980/seedscan/internal/filter"
	"github.com/hupe1980/seedscan/internal/seed"
	"github.com/hupe1980/seedscan/internal/sim"
	"github.com/hupe1980/seedscan/internal/simd"
)

// Result is one reported seed.
type Result struct {
	Seed    seed.Seed
	Score   int
	Tallies []int
}

// Options configures a Provider.
type Options struct {
	// Cutoff is the minimum score a seed needs to be reported.
	Cutoff int
	// Auto raises the cutoff to every better score reported.
	Auto bool
}

// Provider scores the seeds that passed the filter stages.
type Provider struct {
	should  []filter.Criteria
	weights []int
	auto    bool
	cutoff  atomic.Int64
}

// New returns a provider for the SHOULD clauses of p.
func New(p *filter.Pipeline, opts Options) *Provider {
	sp := &Provider{
		should:  p.Should,
		weights: p.Weights,
		auto:    opts.Auto,
	}
	sp.cutoff.Store(int64(opts.Cutoff))
	return sp
}

// Cutoff returns the current cutoff.
func (p *Provider) Cutoff() int { return int(p.cutoff.Load()) }

// Clauses returns the number of SHOULD clauses.
func (p *Provider) Clauses() int { return len(p.should) }

// Scratch is per-worker tally storage reused across batches.
type Scratch struct {
	counts [][simd.Lanes]int
}

// NewScratch returns scratch sized for p.
func (p *Provider) NewScratch() *Scratch {
	return &Scratch{counts: make([][simd.Lanes]int, len(p.should))}
}

// Score tallies the lanes in m and appends a Result for every lane that
// reaches the cutoff. Lanes below the cutoff cost no allocation.
func (p *Provider) Score(ctx *sim.Context, m simd.Mask, s *Scratch, dst []Result) []Result {
	m = m.And(ctx.Valid())
	if !m.Any() {
		return dst
	}
	for i, c := range p.should {
		s.counts[i] = c.Count(ctx)
	}

	m.ForEach(func(l int) {
		total := 0
		for i, w := range p.weights {
			total += s.counts[i][l] * w
		}
		if !p.admit(total) {
			return
		}
		tallies := make([]int, len(p.should))
		for i := range tallies {
			tallies[i] = s.counts[i][l]
		}
		dst = append(dst, Result{Seed: ctx.Seed(l), Score: total, Tallies: tallies})
	})
	return dst
}

// admit reports whether score reaches the cutoff, raising an auto cutoff
// to score.
func (p *Provider) admit(score int) bool {
	for {
		cur := p.cutoff.Load()
		if int64(score) < cur {
			return false
		}
		if !p.auto || int64(score) == cur || p.cutoff.CompareAndSwap(cur, int64(score)) {
			return true
		}
	}
}
