package filter

import (
	"errors"
	"strings"

	"github.com/hupe1980/seedscan/internal/game"
	"github.com/hupe1980/seedscan/internal/prng"
	"github.com/hupe1980/seedscan/internal/sim"
	"github.com/hupe1980/seedscan/internal/simd"
)

// Pipeline is a compiled query.
type Pipeline struct {
	// Stages run in order; a seed must pass every stage. A composite
	// pipeline has exactly one stage.
	Stages []Criteria
	// Should holds one criteria per SHOULD clause.
	Should []Criteria
	// Labels and Weights belong to Should, index by index.
	Labels  []string
	Weights []int

	Deck  game.Deck
	Stake game.Stake

	// Keys holds the lengths of every stream key the stages and SHOULD
	// clauses can touch.
	Keys prng.KeyLengths

	Composite bool
}

// Evaluate runs every stage on ctx and returns the surviving lanes.
func (p *Pipeline) Evaluate(ctx *sim.Context) simd.Mask {
	m := ctx.Valid()
	for _, s := range p.Stages {
		if !m.Any() {
			break
		}
		m = m.And(s.Filter(ctx))
	}
	return m
}

// Tallies returns the SHOULD clause counts of every lane.
func (p *Pipeline) Tallies(ctx *sim.Context) [][simd.Lanes]int {
	out := make([][simd.Lanes]int, len(p.Should))
	for i, c := range p.Should {
		out[i] = c.Count(ctx)
	}
	return out
}

// MaxAnte returns the highest ante any criteria inspects.
func (p *Pipeline) MaxAnte() int {
	return max(maxAnteOf(p.Stages), maxAnteOf(p.Should))
}

type compileOptions struct {
	chaining bool
}

// CompileOption configures Compile.
type CompileOption func(*compileOptions)

// WithChaining toggles one-stage-per-clause chaining for single-category
// queries without exclusions. It is on by default; turning it off always
// compiles a single composite stage.
func WithChaining(enabled bool) CompileOption {
	return func(o *compileOptions) {
		o.chaining = enabled
	}
}

// Compile validates q and builds its pipeline. Errors are *ConfigError
// values naming the offending clause.
func Compile(q *Query, optFns ...CompileOption) (*Pipeline, error) {
	opts := compileOptions{chaining: true}
	for _, fn := range optFns {
		fn(&opts)
	}

	p := &Pipeline{Deck: game.DeckRed, Stake: game.StakeWhite}
	var err error
	if q.Deck != "" {
		if p.Deck, err = game.ParseDeck(q.Deck); err != nil {
			return nil, &ConfigError{Section: "deck", Index: -1, Value: q.Deck, Err: err}
		}
	}
	if q.Stake != "" {
		if p.Stake, err = game.ParseStake(q.Stake); err != nil {
			return nil, &ConfigError{Section: "stake", Index: -1, Value: q.Stake, Err: err}
		}
	}

	// MUST and MUST-NOT clauses, grouped by category in first-seen order.
	var (
		order    []Kind
		groups   = make(map[Kind][]*matcher)
		nested   []Criteria
		inverted bool
	)
	add := func(section string, clauses []Clause, invert bool) error {
		for i := range clauses {
			c := &clauses[i]
			inv := invert != c.IsInverted
			kind, err := ParseKind(c.Type)
			if err != nil {
				return wrapClause(section, i, c, err)
			}
			if inv {
				inverted = true
			}
			if kind == KindAnd || kind == KindOr {
				cr, err := compileNested(kind, c, inv)
				if err != nil {
					return wrapClause(section, i, c, err)
				}
				nested = append(nested, cr)
				continue
			}
			m, err := newMatcher(kind, c, inv)
			if err != nil {
				return wrapClause(section, i, c, err)
			}
			g := kind.group()
			if _, ok := groups[g]; !ok {
				order = append(order, g)
			}
			groups[g] = append(groups[g], m)
		}
		return nil
	}
	if err := add("must", q.Must, false); err != nil {
		return nil, err
	}
	if err := add("mustNot", q.MustNot, true); err != nil {
		return nil, err
	}

	for i := range q.Should {
		c := &q.Should[i]
		cr, err := compileClause(c, c.IsInverted)
		if err != nil {
			return nil, wrapClause("should", i, c, err)
		}
		p.Should = append(p.Should, cr)
		p.Labels = append(p.Labels, c.label())
		w := c.Score
		if w == 0 {
			w = 1
		}
		p.Weights = append(p.Weights, w)
	}

	categories := len(order) + len(nested)
	p.Composite = !opts.chaining || categories > 1 || inverted
	switch {
	case categories == 0:
	case p.Composite:
		parts := make([]Criteria, 0, categories)
		for _, k := range order {
			parts = append(parts, newGroupCriteria(k, groups[k]))
		}
		parts = append(parts, nested...)
		p.Stages = []Criteria{&CompositeCriteria{Parts: parts}}
	case len(nested) == 1:
		p.Stages = nested
	default:
		for _, m := range groups[order[0]] {
			p.Stages = append(p.Stages, newGroupCriteria(order[0], []*matcher{m}))
		}
	}

	for a := 1; a <= p.MaxAnte(); a++ {
		for _, k := range sim.Keys(a) {
			p.Keys.Register(k)
		}
	}
	return p, nil
}

// compileClause compiles one clause on its own.
func compileClause(c *Clause, inverted bool) (Criteria, error) {
	kind, err := ParseKind(c.Type)
	if err != nil {
		return nil, err
	}
	if kind == KindAnd || kind == KindOr {
		return compileNested(kind, c, inverted)
	}
	m, err := newMatcher(kind, c, inverted)
	if err != nil {
		return nil, err
	}
	return newGroupCriteria(kind.group(), []*matcher{m}), nil
}

func compileNested(kind Kind, c *Clause, inverted bool) (Criteria, error) {
	if len(c.Clauses) == 0 {
		return nil, errNoClauses
	}
	parts := make([]Criteria, 0, len(c.Clauses))
	for i := range c.Clauses {
		sub := &c.Clauses[i]
		cr, err := compileClause(sub, sub.IsInverted)
		if err != nil {
			return nil, err
		}
		parts = append(parts, cr)
	}
	if kind == KindAnd {
		return &AndCriteria{Parts: parts, Inverted: inverted}, nil
	}
	return &OrCriteria{Parts: parts, Inverted: inverted}, nil
}

func wrapClause(section string, index int, c *Clause, err error) error {
	ce := &ConfigError{Section: section, Index: index, Type: c.Type, Err: err}
	var ve *valueError
	if errors.As(err, &ve) {
		ce.Value = ve.value
	} else if vs := c.values(); len(vs) > 0 {
		ce.Value = strings.Join(vs, ",")
	}
	return ce
}
