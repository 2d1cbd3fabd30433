package filter

import (
	"math/bits"

	"github.com/hupe1980/seedscan/internal/game"
	"github.com/hupe1980/seedscan/internal/sim"
)

// visitFunc receives every occurrence of a scan. Returning true stops the
// scan.
type visitFunc func(o *occurrence) bool

// scanFunc walks the occurrences of one category in ante order.
type scanFunc func(ctx *sim.Context, p *scanPlan, visit visitFunc)

// scanPlan is the union of what the clauses of a group need.
type scanPlan struct {
	antes      uint64
	maxAnte    int
	shop       bool
	packs      bool
	shopDepth  int
	packDepth  int
	jokerFlags sim.JokerFlags
}

func planFor(ms []*matcher) scanPlan {
	var p scanPlan
	for _, m := range ms {
		p.antes |= m.antes
		p.maxAnte = max(p.maxAnte, m.maxAnte())
		if m.shop {
			p.shop = true
			p.shopDepth = max(p.shopDepth, 64-bits.LeadingZeros64(m.shopSlots))
		}
		if m.packs {
			p.packs = true
			p.packDepth = max(p.packDepth, 64-bits.LeadingZeros64(m.packSlots))
		}
		if m.hasEdition {
			p.jokerFlags |= sim.JokerEdition
		}
	}
	return p
}

func (p *scanPlan) has(ante int) bool { return p.antes&(1<<uint(ante)) != 0 }

// scanItems scans shop slots and pack contents.
func scanItems(shopFlags sim.ShopFlags, kinds sim.PackKinds) scanFunc {
	return func(ctx *sim.Context, p *scanPlan, visit visitFunc) {
		rs := ctx.NewRunState()
		var run sim.RunStreams
		live := ctx.Valid()

		shopFlags := shopFlags
		if shopFlags == sim.ShopPlayingCards && !rs.HasVoucher(game.VoucherMagicTrick).Any() {
			shopFlags = 0
		}

		for ante := 1; ante <= p.maxAnte; ante++ {
			if !p.has(ante) {
				continue
			}
			if p.shop && shopFlags != 0 {
				shop := ctx.CreateShopStream(ante, shopFlags, p.jokerFlags, &run)
				for slot := 0; slot < p.shopDepth; slot++ {
					items := ctx.NextShopItem(&shop, &rs)
					if visit(&occurrence{ante: ante, source: sourceShop, slot: slot, items: &items, mask: live}) {
						return
					}
				}
			}
			if p.packs && kinds != 0 {
				if scanPacks(ctx, ante, min(game.PacksPerAnte(ante), p.packDepth), kinds, p.jokerFlags, &run, &rs, visit) {
					return
				}
			}
		}
	}
}

// scanPacks visits every card of the first n pack slots of ante.
func scanPacks(ctx *sim.Context, ante, n int, kinds sim.PackKinds, flags sim.JokerFlags, run *sim.RunStreams, rs *sim.VecRunState, visit visitFunc) bool {
	bs := ctx.CreateBoosterStream(ante, true)
	ps := ctx.CreatePackStreams(ante, kinds, flags, run)
	for slot := 0; slot < n; slot++ {
		packs := ctx.NextBoosterPack(&bs)
		contents := ctx.NextPackContents(ps, &packs, rs)
		for i := 0; i < game.MaxPackCards; i++ {
			m := contents.Shown(i)
			if !m.Any() {
				break
			}
			if visit(&occurrence{ante: ante, source: sourcePack, slot: slot, items: &contents.Cards[i], mask: m}) {
				return true
			}
		}
	}
	return false
}

// scanSoulJokers follows every Soul in Arcana and Spectral packs to the
// legendary joker it creates. The legendary stream spans the whole run, so
// every ante up to the last requested one is walked.
func scanSoulJokers(ctx *sim.Context, p *scanPlan, visit visitFunc) {
	rs := ctx.NewRunState()
	var run sim.RunStreams
	soul := ctx.CreateSoulJokerStream(true, p.jokerFlags)
	kinds := sim.Of(game.PackArcana) | sim.Of(game.PackSpectral)

	for ante := 1; ante <= p.maxAnte; ante++ {
		bs := ctx.CreateBoosterStream(ante, true)
		ps := ctx.CreatePackStreams(ante, kinds, 0, &run)
		for slot := 0; slot < game.PacksPerAnte(ante); slot++ {
			packs := ctx.NextBoosterPack(&bs)
			contents := ctx.NextPackContents(ps, &packs, &rs)
			for i := 0; i < game.MaxPackCards; i++ {
				m := contents.Shown(i)
				if !m.Any() {
					break
				}
				souls := contents.Cards[i].TypeEq(game.TheSoul) & m
				if !souls.Any() {
					continue
				}
				jokers := ctx.NextSoulJoker(&soul, ante, &rs, souls)
				if p.has(ante) && visit(&occurrence{ante: ante, source: sourcePack, slot: slot, items: &jokers, mask: souls}) {
					return
				}
			}
		}
	}
}

// scanVouchers walks the shop voucher of every ante, redeeming each one so
// upgrades become available.
func scanVouchers(ctx *sim.Context, p *scanPlan, visit visitFunc) {
	rs := ctx.NewRunState()
	live := ctx.Valid()
	for ante := 1; ante <= p.maxAnte; ante++ {
		s := ctx.CreateVoucherStream(ante, true)
		v := ctx.NextVoucher(&s, &rs, live)
		if p.has(ante) && visit(&occurrence{ante: ante, source: sourceEvent, items: &v, mask: live}) {
			return
		}
		rs.Activate(&v, live)
	}
}

// scanBosses walks the boss of every ante.
func scanBosses(ctx *sim.Context, p *scanPlan, visit visitFunc) {
	live := ctx.Valid()
	b := ctx.CreateBossStream(true)
	for ante := 1; ante <= p.maxAnte; ante++ {
		v := ctx.NextBoss(&b, ante, live)
		if p.has(ante) && visit(&occurrence{ante: ante, source: sourceEvent, items: &v, mask: live}) {
			return
		}
	}
}

// scanTags walks the small and big blind tags of the requested antes. The
// occurrence slot is 0 for the small blind and 1 for the big blind.
func scanTags(ctx *sim.Context, p *scanPlan, visit visitFunc) {
	live := ctx.Valid()
	for ante := 1; ante <= p.maxAnte; ante++ {
		if !p.has(ante) {
			continue
		}
		s := ctx.CreateTagStream(ante, true)
		for slot := 0; slot < 2; slot++ {
			v := ctx.NextTag(&s, ante, live)
			if visit(&occurrence{ante: ante, source: sourceEvent, slot: slot, items: &v, mask: live}) {
				return
			}
		}
	}
}

// scanners maps each group kind to its scan.
var scanners = map[Kind]scanFunc{
	KindJoker:       scanItems(sim.ShopJokers, sim.Of(game.PackBuffoon)),
	KindSoulJoker:   scanSoulJokers,
	KindVoucher:     scanVouchers,
	KindTarot:       scanItems(sim.ShopTarots, sim.Of(game.PackArcana)),
	KindPlanet:      scanItems(sim.ShopPlanets, sim.Of(game.PackCelestial)),
	KindSpectral:    scanItems(sim.ShopSpectrals, sim.Of(game.PackSpectral)|sim.Of(game.PackArcana)),
	KindPlayingCard: scanItems(sim.ShopPlayingCards, sim.Of(game.PackStandard)),
	KindBoss:        scanBosses,
	KindTag:         scanTags,
}
