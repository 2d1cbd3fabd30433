package filter

import (
	"errors"
	"testing"

	"github.com/hupe1980/seedscan/internal/game"
	"github.com/hupe1980/seedscan/internal/prng"
	"github.com/hupe1980/seedscan/internal/seed"
	"github.com/hupe1980/seedscan/internal/sim"
	"github.com/hupe1980/seedscan/internal/simd"
	"github.com/hupe1980/seedscan/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, q Query, opts ...CompileOption) *Pipeline {
	t.Helper()
	p, err := Compile(&q, opts...)
	require.NoError(t, err)
	return p
}

// run feeds seeds through fn in batches of eight lanes and collects the
// seeds of the lanes fn returns.
func run(seeds []seed.Seed, deck game.Deck, stake game.Stake, fn func(ctx *sim.Context) simd.Mask) map[string]bool {
	out := make(map[string]bool)
	lanes := new(prng.Lanes)
	for i := 0; i < len(seeds); i += simd.Lanes {
		lanes.Reset()
		n := min(simd.Lanes, len(seeds)-i)
		for l := 0; l < n; l++ {
			lanes.SetLane(l, seeds[i+l])
		}
		ctx := sim.NewContext(lanes, deck, stake)
		fn(&ctx).ForEach(func(l int) { out[seeds[i+l].String()] = true })
	}
	return out
}

func matches(p *Pipeline, seeds []seed.Seed) map[string]bool {
	return run(seeds, p.Deck, p.Stake, p.Evaluate)
}

func isSubset(sub, super map[string]bool) bool {
	for s := range sub {
		if !super[s] {
			return false
		}
	}
	return true
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name    string
		query   Query
		section string
		index   int
		value   string
	}{
		{"missing type", Query{Must: []Clause{{Value: "Joker"}}}, "must", 0, "Joker"},
		{"unknown type", Query{Must: []Clause{{Type: "Relic", Value: "x"}}}, "must", 0, "x"},
		{"missing value", Query{Should: []Clause{{Type: "Joker"}}}, "should", 0, ""},
		{"unknown joker", Query{Must: []Clause{{Type: "Joker", Value: "Blueprint"}, {Type: "Joker", Value: "Nope"}}}, "must", 1, "Nope"},
		{"not legendary", Query{Must: []Clause{{Type: "SoulJoker", Value: "Blueprint"}}}, "must", 0, "Blueprint"},
		{"ante range", Query{MustNot: []Clause{{Type: "Boss", Value: "The Wall", Antes: []int{0}}}}, "mustNot", 0, "0"},
		{"bad edition", Query{Must: []Clause{{Type: "Joker", Value: "Any", Edition: "Shiny"}}}, "must", 0, "Shiny"},
		{"bad source", Query{Must: []Clause{{Type: "Tarot", Value: "The Fool", Sources: []string{"mail"}}}}, "must", 0, "mail"},
		{"empty and", Query{Must: []Clause{{Type: "And"}}}, "must", 0, ""},
		{"bad nested", Query{Must: []Clause{{Type: "Or", Clauses: []Clause{{Type: "Tag", Value: "Nope"}}}}}, "must", 0, "Nope"},
		{"bad deck", Query{Deck: "Purple", Must: []Clause{{Type: "Boss", Value: "Any"}}}, "deck", -1, "Purple"},
		{"bad stake", Query{Stake: "Platinum"}, "stake", -1, "Platinum"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(&tt.query)
			require.Error(t, err)

			var ce *ConfigError
			require.True(t, errors.As(err, &ce), "got %T", err)
			assert.Equal(t, tt.section, ce.Section)
			assert.Equal(t, tt.index, ce.Index)
			assert.Equal(t, tt.value, ce.Value)
			assert.NotEmpty(t, ce.Error())
		})
	}
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{
		"Joker":         KindJoker,
		"souljoker":     KindSoulJoker,
		"TarotCard":     KindTarot,
		"tarot":         KindTarot,
		"PlanetCard":    KindPlanet,
		"SpectralCard":  KindSpectral,
		"playingcard":   KindPlayingCard,
		"SmallBlindTag": KindSmallBlindTag,
		"OR":            KindOr,
	} {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseKind("")
	assert.ErrorIs(t, err, errMissingType)
}

func TestPipelineSelection(t *testing.T) {
	jokers := []Clause{{Type: "Joker", Value: "Blueprint"}, {Type: "Joker", Value: "Brainstorm"}}

	p := compile(t, Query{Must: jokers})
	assert.False(t, p.Composite)
	assert.Len(t, p.Stages, 2)

	p = compile(t, Query{Must: jokers}, WithChaining(false))
	assert.True(t, p.Composite)
	assert.Len(t, p.Stages, 1)

	p = compile(t, Query{Must: jokers[:1], MustNot: jokers[1:]})
	assert.True(t, p.Composite)
	assert.Len(t, p.Stages, 1)

	p = compile(t, Query{Must: []Clause{jokers[0], {Type: "Voucher", Value: "Telescope"}}})
	assert.True(t, p.Composite)

	p = compile(t, Query{Should: jokers})
	assert.Empty(t, p.Stages)
	assert.Equal(t, []string{"Blueprint", "Brainstorm"}, p.Labels)
	assert.Equal(t, []int{1, 1}, p.Weights)
	assert.Equal(t, game.DeckRed, p.Deck)
	assert.Equal(t, game.StakeWhite, p.Stake)
	assert.Positive(t, p.Keys.Count())
}

func TestKeysCoverInspectedAntes(t *testing.T) {
	p := compile(t, Query{Must: []Clause{{Type: "Tag", Value: "Any", Antes: []int{12}}}})
	assert.Equal(t, 12, p.MaxAnte())
	for _, k := range sim.Keys(12) {
		assert.True(t, p.Keys.Has(len(k)), k)
	}
}

func TestTelescopeScenario(t *testing.T) {
	seeds := testutil.NewRNG(2024).Seeds(10000)
	clause := Clause{Type: "Voucher", Value: "Telescope", Antes: []int{1}}

	want := make(map[string]bool)
	for _, s := range seeds {
		if testutil.FirstVoucher(s, game.DeckRed, 1) == game.Voucher(game.VoucherTelescope).Type() {
			want[s.String()] = true
		}
	}
	require.NotEmpty(t, want)

	got := matches(compile(t, Query{Must: []Clause{clause}, Deck: "Red", Stake: "White"}), seeds)
	assert.Equal(t, want, got)

	excluded := matches(compile(t, Query{MustNot: []Clause{clause}, Deck: "Red", Stake: "White"}), seeds)
	assert.Len(t, excluded, len(seeds)-len(want))
	for s := range excluded {
		assert.False(t, want[s], s)
	}
}

func TestTagSlots(t *testing.T) {
	seeds := testutil.NewRNG(5).Seeds(800)
	small := Clause{Type: "SmallBlindTag", Value: "Charm Tag", Antes: []int{2}}
	big := Clause{Type: "BigBlindTag", Value: "Charm Tag", Antes: []int{2}}
	either := Clause{Type: "Tag", Value: "Charm Tag", Antes: []int{2}}

	gotSmall := matches(compile(t, Query{Must: []Clause{small}}), seeds)
	gotBig := matches(compile(t, Query{Must: []Clause{big}}), seeds)
	gotAny := matches(compile(t, Query{Must: []Clause{either}}), seeds)

	for _, s := range seeds {
		tags := testutil.Tags(s, 2)
		k := s.String()
		assert.Equal(t, tags[0].Name() == "Charm Tag", gotSmall[k], k)
		assert.Equal(t, tags[1].Name() == "Charm Tag", gotBig[k], k)
		assert.Equal(t, gotSmall[k] || gotBig[k], gotAny[k], k)
	}
}

func TestQueryMonotonicity(t *testing.T) {
	seeds := testutil.NewRNG(11).Seeds(1200)
	base := []Clause{{Type: "Tarot", Value: "Any", Antes: []int{1, 2}}}

	all := matches(compile(t, Query{Must: base}), seeds)

	withMust := matches(compile(t, Query{Must: append(base[:1:1], Clause{Type: "Planet", Value: "Jupiter", Antes: []int{1, 2}})}), seeds)
	assert.True(t, isSubset(withMust, all))
	assert.LessOrEqual(t, len(withMust), len(all))

	withNot := matches(compile(t, Query{Must: base, MustNot: []Clause{{Type: "Boss", Value: "The Hook", Antes: []int{1, 2}}}}), seeds)
	assert.True(t, isSubset(withNot, all))
	assert.Less(t, len(withNot), len(all))
}

func TestCompositeMatchesGroupAlgebra(t *testing.T) {
	seeds := testutil.NewRNG(13).Seeds(640)
	jokers := Clause{Type: "Joker", Value: "Any", Edition: "Foil", Antes: []int{1, 2, 3}}
	tarots := Clause{Type: "Tarot", Values: []string{"The Fool", "Death"}, Antes: []int{1, 2}}
	boss := Clause{Type: "Boss", Value: "The Wall", Antes: []int{1, 2, 3}}

	composite := compile(t, Query{Must: []Clause{jokers, tarots}, MustNot: []Clause{boss}})
	require.True(t, composite.Composite)

	pj := compile(t, Query{Must: []Clause{jokers}})
	pt := compile(t, Query{Must: []Clause{tarots}})
	pb := compile(t, Query{Must: []Clause{boss}})

	got := run(seeds, game.DeckRed, game.StakeWhite, composite.Evaluate)
	want := run(seeds, game.DeckRed, game.StakeWhite, func(ctx *sim.Context) simd.Mask {
		return pj.Evaluate(ctx).And(pt.Evaluate(ctx)).AndNot(pb.Evaluate(ctx))
	})
	assert.Equal(t, want, got)
}

func TestChainingMatchesComposite(t *testing.T) {
	seeds := testutil.NewRNG(17).Seeds(640)
	q := Query{Must: []Clause{
		{Type: "Spectral", Value: "Any", Antes: []int{1, 2, 3, 4}},
		{Type: "Spectral", Values: []string{"Ankh", "Hex", "Wraith"}, Antes: []int{1, 2, 3, 4}},
	}}

	chained := compile(t, q)
	require.False(t, chained.Composite)
	composite := compile(t, q, WithChaining(false))

	assert.Equal(t, matches(composite, seeds), matches(chained, seeds))
}

func TestAndOrNesting(t *testing.T) {
	seeds := testutil.NewRNG(19).Seeds(640)
	a := Clause{Type: "Voucher", Value: "Any", Antes: []int{1}}
	b := Clause{Type: "Planet", Value: "Pluto", Antes: []int{1, 2}}
	c := Clause{Type: "Boss", Value: "The Club", Antes: []int{1, 2}}

	pa := compile(t, Query{Must: []Clause{b}})
	pb := compile(t, Query{Must: []Clause{c}})
	and := compile(t, Query{Must: []Clause{{Type: "And", Clauses: []Clause{a, b, c}}}})
	or := compile(t, Query{Must: []Clause{{Type: "Or", Clauses: []Clause{b, c}}}})
	nor := compile(t, Query{MustNot: []Clause{{Type: "Or", Clauses: []Clause{b, c}}}})

	run(seeds, game.DeckRed, game.StakeWhite, func(ctx *sim.Context) simd.Mask {
		mb, mc := pa.Evaluate(ctx), pb.Evaluate(ctx)
		assert.Equal(t, mb.And(mc), and.Evaluate(ctx))
		assert.Equal(t, mb.Or(mc), or.Evaluate(ctx))
		assert.Equal(t, ctx.Valid().AndNot(mb.Or(mc)), nor.Evaluate(ctx))
		return simd.NoneTrue
	})
}

func TestCountAgreesWithFilter(t *testing.T) {
	seeds := testutil.NewRNG(23).Seeds(320)
	p := compile(t, Query{Should: []Clause{
		{Type: "Joker", Value: "Any", Antes: []int{1, 2}},
		{Type: "Or", Clauses: []Clause{
			{Type: "Tag", Value: "Any", Antes: []int{1}},
			{Type: "Boss", Value: "Any", Antes: []int{1}},
		}},
	}})

	run(seeds, p.Deck, p.Stake, func(ctx *sim.Context) simd.Mask {
		tallies := p.Tallies(ctx)
		require.Len(t, tallies, 2)

		pass := p.Should[0].Filter(ctx)
		for l := 0; l < simd.Lanes; l++ {
			assert.Equal(t, pass.Lane(l), tallies[0][l] > 0)
		}
		// Two tags plus one boss in ante 1.
		ctx.Valid().ForEach(func(l int) { assert.Equal(t, 3, tallies[1][l]) })
		return simd.NoneTrue
	})
}

func TestSoulJokerFollowsTheSoul(t *testing.T) {
	seeds := testutil.NewRNG(29).Seeds(2400)
	antes := []int{1, 2, 3, 4}

	souls := matches(compile(t, Query{Must: []Clause{{Type: "Spectral", Value: "The Soul", Antes: antes, Sources: []string{"packs"}}}}), seeds)
	legendary := matches(compile(t, Query{Must: []Clause{{Type: "SoulJoker", Value: "Any", Antes: antes}}}), seeds)
	assert.Equal(t, souls, legendary)

	one := matches(compile(t, Query{Must: []Clause{{Type: "SoulJoker", Value: "Perkeo", Antes: antes}}}), seeds)
	assert.True(t, isSubset(one, legendary))
}

func TestMatcherAdmits(t *testing.T) {
	m, err := newMatcher(KindJoker, &Clause{Value: "Any", Antes: []int{2}, ShopSlots: []int{0, 1}, Sources: []string{"shop"}}, false)
	require.NoError(t, err)

	items := game.ExcludedVec()
	items[0] = game.Joker(game.RarityCommon, 0)

	assert.Equal(t, simd.Mask(1), m.hits(&occurrence{ante: 2, source: sourceShop, slot: 1, items: &items, mask: simd.AllTrue}))
	assert.Equal(t, simd.NoneTrue, m.hits(&occurrence{ante: 2, source: sourceShop, slot: 2, items: &items, mask: simd.AllTrue}))
	assert.Equal(t, simd.NoneTrue, m.hits(&occurrence{ante: 3, source: sourceShop, slot: 0, items: &items, mask: simd.AllTrue}))
	assert.Equal(t, simd.NoneTrue, m.hits(&occurrence{ante: 2, source: sourcePack, slot: 0, items: &items, mask: simd.AllTrue}))
}

func TestMatcherPlayingCard(t *testing.T) {
	m, err := newMatcher(KindPlayingCard, &Clause{Rank: "Ace", Suit: "Spades", Seal: "Red"}, false)
	require.NoError(t, err)

	ace := game.CardOf(game.RankAce, game.SuitSpades)
	assert.False(t, m.matches(ace))
	assert.True(t, m.matches(ace.WithSeal(game.SealRed)))
	assert.False(t, m.matches(game.CardOf(game.RankKing, game.SuitSpades).WithSeal(game.SealRed)))
}
