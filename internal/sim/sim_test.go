package sim

import (
	"math/rand/v2"
	"testing"

	"github.com/hupe1980/seedscan/internal/game"
	"github.com/hupe1980/seedscan/internal/prng"
	"github.com/hupe1980/seedscan/internal/seed"
	"github.com/hupe1980/seedscan/internal/simd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomSeeds(rng *rand.Rand, n int) []seed.Seed {
	out := make([]seed.Seed, n)
	for i := range out {
		chars := make([]byte, seed.MaxLength)
		for j := range chars {
			chars[j] = seed.Char(rng.IntN(seed.Radix))
		}
		out[i] = seed.FromChars(chars)
	}
	return out
}

func newContext(seeds []seed.Seed, deck game.Deck, stake game.Stake) (Context, *prng.Lanes) {
	lanes := new(prng.Lanes)
	for l, s := range seeds {
		lanes.SetLane(l, s)
	}
	return NewContext(lanes, deck, stake), lanes
}

func TestAnalyzeDeterministic(t *testing.T) {
	s := seed.MustParse("ALEEB")
	a := Analyze(s, game.DeckRed, game.StakeWhite, 8, 6)
	b := Analyze(s, game.DeckRed, game.StakeWhite, 8, 6)
	require.Equal(t, a, b)
	require.Len(t, a.Antes, 8)

	first := a.Antes[0]
	require.NotEmpty(t, first.Packs)
	assert.Equal(t, game.BoosterItem(game.FirstBuffoon), first.Packs[0].Pack)
	assert.Len(t, first.Packs, game.PacksPerAnte(1))
	assert.Len(t, a.Antes[1].Packs, game.PacksPerAnte(2))
	assert.Len(t, first.Shop, 6)
}

func TestLanesMatchSingleSeedReplay(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, deck := range []game.Deck{game.DeckRed, game.DeckGhost, game.DeckZodiac, game.DeckAbandoned} {
		seeds := randomSeeds(rng, simd.Lanes)
		ctx, _ := newContext(seeds, deck, game.StakeGold)
		reps := AnalyzeLanes(&ctx, 4, 4)
		for l, s := range seeds {
			want := Analyze(s, deck, game.StakeGold, 4, 4)
			require.Equal(t, want, reps[l], "deck %s lane %d", deck, l)
		}
	}
}

func TestPartialLanesMatchFullLanes(t *testing.T) {
	rng := rand.New(rand.NewPCG(4, 4))
	seeds := randomSeeds(rng, 3)
	ctx, _ := newContext(seeds, game.DeckRed, game.StakeWhite)
	reps := AnalyzeLanes(&ctx, 2, 3)
	for l, s := range seeds {
		assert.Equal(t, Analyze(s, game.DeckRed, game.StakeWhite, 2, 3), reps[l])
	}
	assert.Empty(t, reps[simd.Lanes-1].Antes)
}

func TestPackContentsHaveNoDuplicates(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	for trial := 0; trial < 40; trial++ {
		for _, s := range randomSeeds(rng, 4) {
			rep := Analyze(s, game.DeckRed, game.StakeWhite, 4, 0)
			for _, ar := range rep.Antes {
				for _, p := range ar.Packs {
					b := game.BoosterAt(p.Pack.Index())
					require.Len(t, p.Cards, b.Cards)
					if b.Kind == game.PackStandard || b.Kind == game.PackCelestial {
						// Standard cards may repeat; Celestial may carry an
						// unknown Telescope card.
						continue
					}
					seen := map[game.ItemType]bool{}
					for _, c := range p.Cards {
						require.False(t, seen[c.Type()], "seed %s ante %d pack %s: %v", s, ar.Ante, p.Pack.Name(), p.Cards)
						seen[c.Type()] = true
					}
				}
			}
		}
	}
}

func TestPackCardsMatchKind(t *testing.T) {
	rng := rand.New(rand.NewPCG(10, 3))
	for _, s := range randomSeeds(rng, 60) {
		rep := Analyze(s, game.DeckAbandoned, game.StakeWhite, 3, 0)
		for _, ar := range rep.Antes {
			for _, p := range ar.Packs {
				for _, c := range p.Cards {
					require.False(t, c.IsExcluded())
					switch game.BoosterAt(p.Pack.Index()).Kind {
					case game.PackArcana:
						ok := c.Category() == game.CategoryTarot || c.Type() == game.TheSoul
						assert.True(t, ok, c.String())
					case game.PackCelestial:
						ok := c.Category() == game.CategoryPlanet || c.Type() == game.BlackHole
						assert.True(t, ok, c.String())
						if c.Category() == game.CategoryPlanet {
							assert.False(t, game.PlanetLocked(c.Index()))
						}
					case game.PackSpectral:
						assert.Equal(t, game.CategorySpectral, c.Category())
					case game.PackBuffoon:
						assert.Equal(t, game.CategoryJoker, c.Category())
						assert.NotEqual(t, game.RarityLegendary, game.JokerRarity(c.Type()))
					case game.PackStandard:
						assert.Equal(t, game.CategoryPlayingCard, c.Category())
						assert.False(t, game.CardRank(c).IsFace())
						assert.NotEqual(t, game.EditionNegative, c.Edition())
					}
				}
			}
		}
	}
}

func TestShopRespectsAvailability(t *testing.T) {
	rng := rand.New(rand.NewPCG(12, 5))
	for _, s := range randomSeeds(rng, 50) {
		rep := Analyze(s, game.DeckGhost, game.StakeWhite, 2, 20)
		for _, ar := range rep.Antes {
			for _, it := range ar.Shop {
				require.False(t, it.IsExcluded())
				switch it.Category() {
				case game.CategoryPlanet:
					assert.False(t, game.PlanetLocked(it.Index()))
				case game.CategorySpectral:
					assert.False(t, game.SpectralHidden(it.Index()))
				case game.CategoryJoker:
					r := game.JokerRarity(it.Type())
					assert.NotEqual(t, game.RarityLegendary, r)
					assert.Zero(t, it&(game.FlagEternal|game.FlagPerishable|game.FlagRental))
				case game.CategoryTarot:
				default:
					t.Fatalf("unexpected shop item %s", it)
				}
			}
		}
	}
}

func TestShopFlagsOnlyExcludeStreams(t *testing.T) {
	rng := rand.New(rand.NewPCG(6, 1))
	seeds := randomSeeds(rng, simd.Lanes)

	ctxAll, _ := newContext(seeds, game.DeckRed, game.StakeWhite)
	ctxJokers, _ := newContext(seeds, game.DeckRed, game.StakeWhite)
	rs := ctxAll.NewRunState()
	var runA, runB RunStreams
	all := ctxAll.CreateShopStream(1, ShopAll, JokerAll, &runA)
	jokers := ctxJokers.CreateShopStream(1, ShopJokers, JokerAll, &runB)

	for i := 0; i < 15; i++ {
		a := ctxAll.NextShopItem(&all, &rs)
		b := ctxJokers.NextShopItem(&jokers, &rs)
		for l := range a {
			if a[l].Category() == game.CategoryJoker {
				assert.Equal(t, a[l], b[l])
			} else {
				assert.True(t, b[l].IsExcluded())
			}
		}
	}
}

func TestVoucherSequence(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	for _, s := range randomSeeds(rng, 100) {
		rep := Analyze(s, game.DeckRed, game.StakeWhite, 10, 0)
		var redeemed game.VoucherSet
		for _, ar := range rep.Antes {
			v := ar.Voucher
			require.Equal(t, game.CategoryVoucher, v.Category())
			require.True(t, redeemed.Available(v.Index()), "seed %s ante %d voucher %s", s, ar.Ante, v)
			redeemed = redeemed.With(v.Index())
		}
	}
}

func TestTagsRespectMinAnte(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 8))
	for _, s := range randomSeeds(rng, 200) {
		rep := Analyze(s, game.DeckRed, game.StakeWhite, 1, 0)
		for _, tag := range rep.Antes[0].Tags {
			assert.True(t, game.TagAvailable(tag.Index(), 1), tag.String())
		}
	}
}

func TestBossesBalanceUsage(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 3))
	for _, s := range randomSeeds(rng, 50) {
		rep := Analyze(s, game.DeckRed, game.StakeWhite, 16, 0)
		seen := map[game.ItemType]bool{}
		for _, ar := range rep.Antes {
			b := ar.Boss
			require.Equal(t, game.CategoryBoss, b.Category())
			require.True(t, game.BossEligible(b.Index(), ar.Ante))
			if game.IsShowdown(ar.Ante) {
				continue
			}
			// Fewer regular antes than bosses: no boss repeats.
			assert.False(t, seen[b.Type()], "seed %s repeats %s", s, b)
			seen[b.Type()] = true
		}
		assert.NotEqual(t, rep.Antes[7].Boss, rep.Antes[15].Boss)
	}
}

func TestStickersFollowStake(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 11))
	var eternal, perishable, rental int
	for _, s := range randomSeeds(rng, 100) {
		for _, stake := range []game.Stake{game.StakeBlack, game.StakeGold} {
			rep := Analyze(s, game.DeckRed, stake, 2, 10)
			for _, ar := range rep.Antes {
				for _, it := range ar.Shop {
					if it.Has(game.FlagPerishable) || it.Has(game.FlagRental) {
						require.Equal(t, game.StakeGold, stake)
					}
					if it.Has(game.FlagEternal) {
						eternal++
						assert.False(t, it.Has(game.FlagPerishable))
					}
					if it.Has(game.FlagPerishable) {
						perishable++
					}
					if it.Has(game.FlagRental) {
						rental++
					}
				}
			}
		}
	}
	assert.Positive(t, eternal)
	assert.Positive(t, perishable)
	assert.Positive(t, rental)
}

func TestVecItemSet(t *testing.T) {
	var set VecItemSet
	items := game.ExcludedVec()
	items[0] = game.Tarot(3)
	items[2] = game.Tarot(5)
	set.Add(&items, simd.AllTrue)
	assert.True(t, set.Contains(0, game.Tarot(3).Type()))
	assert.False(t, set.Contains(1, game.Tarot(3).Type()))
	assert.Equal(t, 0, set.Len(1))
	assert.Equal(t, 1, set.Len(2))
	set.Reset()
	assert.False(t, set.Contains(0, game.Tarot(3).Type()))

	var nilSet *VecItemSet
	assert.False(t, nilSet.Contains(0, game.Tarot(3).Type()))
}

func TestRunStateRates(t *testing.T) {
	rs := NewRunState(game.DeckZodiac)
	assert.Equal(t, 9.6, rs.TarotRate())
	assert.Equal(t, 9.6, rs.PlanetRate())
	rs.Activate(game.VoucherTarotTycoon)
	assert.Equal(t, 32.0, rs.TarotRate())
	assert.Equal(t, 0.0, rs.PlayingCardRate())
	rs.Activate(game.VoucherMagicTrick)
	assert.Equal(t, 4.0, rs.PlayingCardRate())
	assert.Equal(t, 1.0, rs.EditionRate())
	rs.Activate(game.VoucherGlowUp)
	assert.Equal(t, 4.0, rs.EditionRate())

	vec := NewVecRunState(game.DeckNebula)
	assert.Equal(t, simd.AllTrue, vec.HasVoucher(game.VoucherTelescope))
	items := game.ExcludedVec()
	items[1] = game.Voucher(game.VoucherHone)
	vec.Activate(&items, simd.AllTrue)
	assert.Equal(t, simd.Mask(0b10), vec.HasVoucher(game.VoucherHone))
}

func TestKeys(t *testing.T) {
	keys := Keys(3)
	assert.Contains(t, keys, "cdt3")
	assert.Contains(t, keys, "rarity3sho")
	assert.Contains(t, keys, "Joker2buf3")
	assert.Contains(t, keys, "boss")
	for _, k := range keys {
		assert.LessOrEqual(t, len(k), prng.MaxKeyLength)
	}
}
