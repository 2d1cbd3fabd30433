package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolSizes(t *testing.T) {
	assert.Equal(t, 61, PoolSize(RarityCommon))
	assert.Equal(t, 64, PoolSize(RarityUncommon))
	assert.Equal(t, 20, PoolSize(RarityRare))
	assert.Equal(t, 5, PoolSize(RarityLegendary))
	assert.Equal(t, 150, NumJokers)
	assert.Equal(t, 22, NumTarots)
	assert.Equal(t, 12, NumPlanets)
	assert.Equal(t, 18, NumSpectrals)
	assert.Equal(t, 32, NumVouchers)
	assert.Equal(t, 24, NumTags)
	assert.Equal(t, 28, NumBosses)
	assert.Equal(t, 32, NumBoosters)
	assert.Len(t, cardNames, NumCards)
}

func TestItemPacking(t *testing.T) {
	it := Card(17).WithEdition(EditionPolychrome).WithSeal(SealRed).WithEnhancement(EnhancementGlass)
	assert.Equal(t, CategoryPlayingCard, it.Category())
	assert.Equal(t, 17, it.Index())
	assert.Equal(t, EditionPolychrome, it.Edition())
	assert.Equal(t, SealRed, it.Seal())
	assert.Equal(t, EnhancementGlass, it.Enhancement())
	assert.Equal(t, Card(17).Type(), it.Type())
	assert.False(t, it.IsExcluded())

	j := Joker(RarityRare, 0) | FlagEternal | FlagRental
	assert.True(t, j.Has(FlagEternal))
	assert.False(t, j.Has(FlagPerishable))
	assert.Equal(t, "DNA", j.Name())
	assert.Equal(t, RarityRare, JokerRarity(j.Type()))
	assert.Equal(t, "DNA [Eternal] [Rental]", j.String())

	assert.True(t, ItemExcluded.IsExcluded())
	assert.Equal(t, "<excluded>", ItemExcluded.String())
}

func TestJokerRarityRanges(t *testing.T) {
	for _, r := range []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityLegendary} {
		for i := 0; i < PoolSize(r); i++ {
			assert.Equal(t, r, JokerRarity(Joker(r, i).Type()))
		}
	}
	assert.Equal(t, "Perkeo", Joker(RarityLegendary, 4).Name())
	assert.Equal(t, RarityRare, RarityFromPoll(0.96))
	assert.Equal(t, RarityUncommon, RarityFromPoll(0.95))
	assert.Equal(t, RarityCommon, RarityFromPoll(0.7))
}

func TestLockedJokers(t *testing.T) {
	cav, err := LookupIn(CategoryJoker, "Cavendish")
	require.NoError(t, err)
	assert.True(t, JokerLocked(RarityCommon, cav.Index()))
	assert.False(t, JokerLocked(RarityCommon, 0))
	assert.Len(t, lockedJokers, 6)
}

func TestEditionFromPoll(t *testing.T) {
	assert.Equal(t, EditionNegative, EditionFromPoll(0.9999, 1, 1, false))
	assert.Equal(t, EditionPolychrome, EditionFromPoll(0.9999, 1, 1, true))
	assert.Equal(t, EditionPolychrome, EditionFromPoll(0.995, 1, 1, false))
	assert.Equal(t, EditionHolographic, EditionFromPoll(0.985, 1, 1, false))
	assert.Equal(t, EditionFoil, EditionFromPoll(0.965, 1, 1, false))
	assert.Equal(t, EditionNone, EditionFromPoll(0.95, 1, 1, false))
	// Glow Up quadruples the foil window.
	assert.Equal(t, EditionFoil, EditionFromPoll(0.85, 4, 1, false))
	// Standard packs double every window.
	assert.Equal(t, EditionFoil, EditionFromPoll(0.93, 1, 2, true))
}

func TestCardOrder(t *testing.T) {
	first := Card(0)
	assert.Equal(t, RankTwo, CardRank(first))
	assert.Equal(t, SuitClubs, CardSuit(first))

	// "C_A" sorts before "C_J", "C_K", "C_Q" and "C_T".
	assert.Equal(t, RankAce, CardRank(Card(8)))
	assert.Equal(t, RankTen, CardRank(Card(12)))
	assert.Equal(t, SuitDiamonds, CardSuit(Card(13)))

	assert.Equal(t, CardOf(RankQueen, SuitHearts).Type(), mustLookup(t, CategoryPlayingCard, "Queen of Hearts"))
	assert.Len(t, FrontPool(DeckRed), 52)
	assert.Len(t, FrontPool(DeckAbandoned), 40)
	for _, i := range FrontPool(DeckAbandoned) {
		assert.False(t, CardRank(Card(i)).IsFace())
	}
}

func TestVoucherSet(t *testing.T) {
	var s VoucherSet
	assert.True(t, s.Available(VoucherTelescope))
	assert.False(t, s.Available(VoucherTelescope+1))

	s = s.With(VoucherTelescope)
	assert.False(t, s.Available(VoucherTelescope))
	assert.True(t, s.Available(VoucherTelescope+1))
	assert.Equal(t, 1, s.Len())

	assert.Equal(t, -1, VoucherPrerequisite(VoucherTarotMerchant))
	assert.Equal(t, VoucherTarotMerchant, VoucherPrerequisite(VoucherTarotTycoon))
}

func TestDeckStartingVouchers(t *testing.T) {
	assert.True(t, DeckMagic.StartingVouchers().Has(VoucherCrystalBall))
	assert.True(t, DeckNebula.StartingVouchers().Has(VoucherTelescope))
	z := DeckZodiac.StartingVouchers()
	assert.Equal(t, 3, z.Len())
	assert.True(t, z.Has(VoucherOverstock))
	assert.Equal(t, 0, DeckRed.StartingVouchers().Len())
	assert.Equal(t, 2.0, DeckGhost.SpectralRate())
}

func TestStakeStickers(t *testing.T) {
	assert.Equal(t, Item(0), StakeWhite.Stickers(0.9, 0.9))
	assert.Equal(t, FlagEternal, StakeBlack.Stickers(0.9, 0.9))
	assert.Equal(t, Item(0), StakeBlack.Stickers(0.5, 0.9))
	assert.Equal(t, FlagPerishable, StakeOrange.Stickers(0.5, 0.1))
	assert.Equal(t, FlagPerishable|FlagRental, StakeGold.Stickers(0.5, 0.8))
	assert.Equal(t, FlagEternal, StakeGold.Stickers(0.71, -1))
}

func TestTagsAndBosses(t *testing.T) {
	neg := mustLookup(t, CategoryTag, "Negative")
	assert.False(t, TagAvailable(neg.Index(), 1))
	assert.True(t, TagAvailable(neg.Index(), 2))

	assert.True(t, IsShowdown(8))
	assert.True(t, IsShowdown(16))
	assert.False(t, IsShowdown(1))

	ox := mustLookup(t, CategoryBoss, "The Ox")
	assert.False(t, BossEligible(ox.Index(), 5))
	assert.True(t, BossEligible(ox.Index(), 6))
	assert.False(t, BossEligible(ox.Index(), 8))

	acorn := mustLookup(t, CategoryBoss, "Amber Acorn")
	assert.True(t, BossEligible(acorn.Index(), 8))
	assert.False(t, BossEligible(acorn.Index(), 7))
}

func TestBoosterFromPoll(t *testing.T) {
	assert.Equal(t, 0, BoosterFromPoll(0))
	assert.Equal(t, NumBoosters-1, BoosterFromPoll(0.999999))
	assert.Equal(t, PackBuffoon, BoosterAt(FirstBuffoon).Kind)
	assert.Equal(t, PackNormal, BoosterAt(FirstBuffoon).Size)
	assert.Equal(t, "Mega Spectral Pack", BoosterAt(19).Name())

	for i := 0; i < 1000; i++ {
		b := BoosterAt(BoosterFromPoll(float64(i) / 1000))
		assert.LessOrEqual(t, b.Cards, MaxPackCards)
	}
	assert.Equal(t, 4, PacksPerAnte(1))
	assert.Equal(t, 6, PacksPerAnte(2))
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"mr bones", "Mr. Bones", "MRBONES"} {
		it, err := LookupIn(CategoryJoker, name)
		require.NoError(t, err)
		assert.Equal(t, "Mr. Bones", it.Name())
	}

	it, err := Lookup("Telescope")
	require.NoError(t, err)
	assert.Equal(t, CategoryVoucher, it.Category())

	_, err = LookupIn(CategoryTarot, "Perkeo")
	var unk *UnknownNameError
	require.ErrorAs(t, err, &unk)
	assert.Equal(t, CategoryTarot, unk.Category)

	d, err := ParseDeck("ghost deck")
	require.NoError(t, err)
	assert.Equal(t, DeckGhost, d)
	s, err := ParseStake("Gold")
	require.NoError(t, err)
	assert.Equal(t, StakeGold, s)
	e, err := ParseEdition("Holo")
	require.NoError(t, err)
	assert.Equal(t, EditionHolographic, e)
	se, err := ParseSeal("Red Seal")
	require.NoError(t, err)
	assert.Equal(t, SealRed, se)
	en, err := ParseEnhancement("Glass Card")
	require.NoError(t, err)
	assert.Equal(t, EnhancementGlass, en)
	r, err := ParseRank("K")
	require.NoError(t, err)
	assert.Equal(t, RankKing, r)
	su, err := ParseSuit("spade")
	require.NoError(t, err)
	assert.Equal(t, SuitSpades, su)
}

func mustLookup(t *testing.T, c Category, name string) ItemType {
	t.Helper()
	it, err := LookupIn(c, name)
	require.NoError(t, err)
	return it
}
