package sim

import (
	"github.com/hupe1980/seedscan/internal/game"
	"github.com/hupe1980/seedscan/internal/prng"
	"github.com/hupe1980/seedscan/internal/seed"
	"github.com/hupe1980/seedscan/internal/simd"
)

// PackReport is one pack slot with the cards it shows.
type PackReport struct {
	Pack  game.Item
	Cards []game.Item
}

// AnteReport lists the events of one ante.
type AnteReport struct {
	Ante    int
	Boss    game.Item
	Voucher game.Item
	Tags    [2]game.Item
	Shop    []game.Item
	Packs   []PackReport
}

// Report is the replay of one seed.
type Report struct {
	Seed  seed.Seed
	Deck  game.Deck
	Stake game.Stake
	Antes []AnteReport
}

// Analyze replays antes 1..maxAnte of s with the same generators the
// search uses, on a single lane. Every voucher is assumed redeemed when it
// appears; shops and packs see the deck's starting state, as filters do.
func Analyze(s seed.Seed, deck game.Deck, stake game.Stake, maxAnte, shopSlots int) Report {
	var lanes prng.Lanes
	lanes.SetLane(0, s)
	ctx := NewContext(&lanes, deck, stake)
	return AnalyzeLanes(&ctx, maxAnte, shopSlots)[0]
}

// AnalyzeLanes is Analyze for every valid lane of ctx.
func AnalyzeLanes(ctx *Context, maxAnte, shopSlots int) [simd.Lanes]Report {
	var reps [simd.Lanes]Report
	m := ctx.Valid()
	m.ForEach(func(l int) {
		reps[l] = Report{Seed: ctx.Seed(l), Deck: ctx.deck, Stake: ctx.stake}
	})

	start := ctx.NewRunState()
	redeemed := ctx.NewRunState()
	boss := ctx.CreateBossStream(true)
	var run RunStreams

	for ante := 1; ante <= maxAnte; ante++ {
		var ars [simd.Lanes]AnteReport

		bv := ctx.NextBoss(&boss, ante, m)
		vs := ctx.CreateVoucherStream(ante, true)
		v := ctx.NextVoucher(&vs, &redeemed, m)
		ts := ctx.CreateTagStream(ante, true)
		var tags [2]game.ItemVec
		for i := range tags {
			tags[i] = ctx.NextTag(&ts, ante, m)
		}
		m.ForEach(func(l int) {
			ars[l] = AnteReport{Ante: ante, Boss: bv[l], Voucher: v[l], Tags: [2]game.Item{tags[0][l], tags[1][l]}}
		})

		shop := ctx.CreateShopStream(ante, ShopAll, JokerAll, &run)
		for i := 0; i < shopSlots; i++ {
			items := ctx.NextShopItem(&shop, &start)
			m.ForEach(func(l int) { ars[l].Shop = append(ars[l].Shop, items[l]) })
		}

		bs := ctx.CreateBoosterStream(ante, true)
		ps := ctx.CreatePackStreams(ante, PackKindsAll, JokerAll, &run)
		for i := 0; i < game.PacksPerAnte(ante); i++ {
			packs := ctx.NextBoosterPack(&bs)
			contents := ctx.NextPackContents(ps, &packs, &start)
			m.ForEach(func(l int) {
				ars[l].Packs = append(ars[l].Packs, PackReport{Pack: packs[l], Cards: contents.Lane(l)})
			})
		}

		redeemed.Activate(&v, m)
		m.ForEach(func(l int) { reps[l].Antes = append(reps[l].Antes, ars[l]) })
	}
	return reps
}
