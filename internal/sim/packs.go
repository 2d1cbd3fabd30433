package sim

import (
	"github.com/hupe1980/seedscan/internal/game"
	"github.com/hupe1980/seedscan/internal/simd"
)

// BoosterStream draws the booster packs offered in one ante's shops.
type BoosterStream struct {
	ante         int
	enabled      bool
	firstBuffoon bool
	s            lazyStream
}

// CreateBoosterStream returns the pack stream of ante. The first pack of
// the run is always a Buffoon pack and does not touch the stream.
func (c *Context) CreateBoosterStream(ante int, enabled bool) BoosterStream {
	return BoosterStream{ante: ante, enabled: enabled, firstBuffoon: ante == 1}
}

// NextBoosterPack draws the next pack slot for every valid lane.
func (c *Context) NextBoosterPack(b *BoosterStream) game.ItemVec {
	out := game.ExcludedVec()
	m := c.Valid()
	if !b.enabled || !m.Any() {
		return out
	}
	if b.firstBuffoon {
		b.firstBuffoon = false
		m.ForEach(func(l int) { out[l] = game.BoosterItem(game.FirstBuffoon) })
		return out
	}
	v := c.open(&b.s, true, "shop_pack", b.ante, "").Random(m)
	m.ForEach(func(l int) { out[l] = game.BoosterItem(game.BoosterFromPoll(v[l])) })
	return out
}

// PackKinds selects which pack contents a PackStreams generates.
type PackKinds uint8

// PackKindsAll enables every pack kind.
const PackKindsAll PackKinds = 1<<5 - 1

// Of returns the set holding only kind k.
func Of(k game.PackKind) PackKinds { return 1 << k }

// Has reports whether k is enabled.
func (p PackKinds) Has(k game.PackKind) bool { return p&(1<<k) != 0 }

// PackContents holds the cards of one pack slot for every lane.
// Lanes whose pack is not of the generated kind have size 0.
type PackContents struct {
	Cards [game.MaxPackCards]game.ItemVec
	Size  [simd.Lanes]int
	Mask  simd.Mask
}

// Lane returns the cards lane l was shown.
func (p *PackContents) Lane(l int) []game.Item {
	out := make([]game.Item, p.Size[l])
	for i := range out {
		out[i] = p.Cards[i][l]
	}
	return out
}

// Any returns the lanes whose pack shows a card for which match is true.
func (p *PackContents) Any(match func(game.Item) bool) simd.Mask {
	var m simd.Mask
	p.Mask.ForEach(func(l int) {
		for i := 0; i < p.Size[l]; i++ {
			if it := p.Cards[i][l]; !it.IsExcluded() && match(it) {
				m |= 1 << l
				return
			}
		}
	})
	return m
}

// Shown returns the lanes that show a card at position i.
func (p *PackContents) Shown(i int) simd.Mask {
	var m simd.Mask
	p.Mask.ForEach(func(l int) {
		if p.Size[l] > i {
			m |= 1 << l
		}
	})
	return m
}

func (c *Context) packLanes(packs *game.ItemVec, kind game.PackKind) PackContents {
	var p PackContents
	for l := 0; l < simd.Lanes; l++ {
		p.Cards[0][l] = game.ItemExcluded
		it := packs[l]
		if it.IsExcluded() || it.Category() != game.CategoryBooster || !c.Valid().Lane(l) {
			continue
		}
		b := game.BoosterAt(it.Index())
		if b.Kind == kind {
			p.Size[l] = b.Cards
			p.Mask |= 1 << l
		}
	}
	for i := 1; i < game.MaxPackCards; i++ {
		p.Cards[i] = game.ExcludedVec()
	}
	return p
}

// PackStreams holds the content streams of every pack kind in one ante.
// Streams are opened on first use.
type PackStreams struct {
	ante  int
	kinds PackKinds
	run   *RunStreams

	tarots         ConsumableStream
	arcanaSpectral ConsumableStream
	planets        ConsumableStream
	spectrals      ConsumableStream
	soulSpectral   lazyStream
	jokers         JokerStream
	cards          CardStream
}

// CreatePackStreams returns the content streams of ante. Kinds outside
// kinds yield excluded cards. Streams without an ante in their key live in
// run.
func (c *Context) CreatePackStreams(ante int, kinds PackKinds, jokerFlags JokerFlags, run *RunStreams) *PackStreams {
	ps := &PackStreams{ante: ante, kinds: kinds, run: run}
	ps.tarots = c.consumableStream(game.CategoryTarot, "ar1", ante, kinds.Has(game.PackArcana), true, nil)
	ps.arcanaSpectral = c.consumableStream(game.CategorySpectral, "ar2", ante, kinds.Has(game.PackArcana), true, &ps.soulSpectral)
	ps.planets = c.consumableStream(game.CategoryPlanet, "pl1", ante, kinds.Has(game.PackCelestial), true, nil)
	ps.spectrals = c.consumableStream(game.CategorySpectral, "spe", ante, kinds.Has(game.PackSpectral), true, &ps.soulSpectral)
	ps.jokers = c.CreateBuffoonJokerStream(ante, kinds.Has(game.PackBuffoon), jokerFlags)
	ps.cards = c.CreateStandardCardStream(ante, kinds.Has(game.PackStandard))
	return ps
}

// NextArcanaPackContents fills the Arcana packs among packs. With Omen
// Globe each card first rolls for a spectral replacement.
func (c *Context) NextArcanaPackContents(ps *PackStreams, packs *game.ItemVec, rs *VecRunState) PackContents {
	p := c.packLanes(packs, game.PackArcana)
	if !ps.kinds.Has(game.PackArcana) || !p.Mask.Any() {
		return p
	}
	omen := rs.HasVoucher(game.VoucherOmenGlobe)

	var set VecItemSet
	for i := 0; i < game.MaxPackCards; i++ {
		m := p.Shown(i)
		if !m.Any() {
			break
		}
		var spectral simd.Mask
		if om := m & omen; om.Any() {
			v := c.open(&ps.run.omenGlobe, true, "omen_globe", noAnte, "").Random(om)
			spectral = simd.Gt(&v, 0.8) & om
		}
		tarot := m &^ spectral
		cards := c.NextTarot(&ps.tarots, &set, rs, tarot)
		blend(&cards, c.NextSpectral(&ps.arcanaSpectral, &set, rs, spectral), spectral)
		p.Cards[i] = cards
		set.Add(&cards, m)
	}
	return p
}

// NextCelestialPackContents fills the Celestial packs among packs. With
// Telescope the first card is the planet of the most played hand.
func (c *Context) NextCelestialPackContents(ps *PackStreams, packs *game.ItemVec, rs *VecRunState) PackContents {
	p := c.packLanes(packs, game.PackCelestial)
	if !ps.kinds.Has(game.PackCelestial) || !p.Mask.Any() {
		return p
	}
	telescope := rs.HasVoucher(game.VoucherTelescope)

	var set VecItemSet
	for i := 0; i < game.MaxPackCards; i++ {
		m := p.Shown(i)
		if !m.Any() {
			break
		}
		var forced simd.Mask
		if i == 0 {
			forced = m & telescope
		}
		cards := c.NextPlanet(&ps.planets, &set, rs, m&^forced)
		forced.ForEach(func(l int) {
			if planet := rs[l].TelescopePlanet; planet != 0 {
				cards[l] = planet
			}
		})
		p.Cards[i] = cards
		set.Add(&cards, m)
	}
	return p
}

// NextSpectralPackContents fills the Spectral packs among packs.
func (c *Context) NextSpectralPackContents(ps *PackStreams, packs *game.ItemVec, rs *VecRunState) PackContents {
	p := c.packLanes(packs, game.PackSpectral)
	if !ps.kinds.Has(game.PackSpectral) || !p.Mask.Any() {
		return p
	}
	var set VecItemSet
	for i := 0; i < game.MaxPackCards; i++ {
		m := p.Shown(i)
		if !m.Any() {
			break
		}
		cards := c.NextSpectral(&ps.spectrals, &set, rs, m)
		p.Cards[i] = cards
		set.Add(&cards, m)
	}
	return p
}

// NextBuffoonPackContents fills the Buffoon packs among packs.
func (c *Context) NextBuffoonPackContents(ps *PackStreams, packs *game.ItemVec, rs *VecRunState) PackContents {
	p := c.packLanes(packs, game.PackBuffoon)
	if !ps.kinds.Has(game.PackBuffoon) || !p.Mask.Any() {
		return p
	}
	var set VecItemSet
	for i := 0; i < game.MaxPackCards; i++ {
		m := p.Shown(i)
		if !m.Any() {
			break
		}
		cards := c.NextJoker(&ps.jokers, &set, rs, m)
		p.Cards[i] = cards
		set.Add(&cards, m)
	}
	return p
}

// NextStandardPackContents fills the Standard packs among packs. Playing
// cards may repeat within a pack.
func (c *Context) NextStandardPackContents(ps *PackStreams, packs *game.ItemVec, rs *VecRunState) PackContents {
	p := c.packLanes(packs, game.PackStandard)
	if !ps.kinds.Has(game.PackStandard) || !p.Mask.Any() {
		return p
	}
	for i := 0; i < game.MaxPackCards; i++ {
		m := p.Shown(i)
		if !m.Any() {
			break
		}
		p.Cards[i] = c.NextStandardCard(&ps.cards, rs, m)
	}
	return p
}

// NextPackContents dispatches to the generator of every kind present in
// packs and merges the results.
func (c *Context) NextPackContents(ps *PackStreams, packs *game.ItemVec, rs *VecRunState) PackContents {
	var out PackContents
	for i := range out.Cards {
		out.Cards[i] = game.ExcludedVec()
	}
	for _, gen := range []func(*PackStreams, *game.ItemVec, *VecRunState) PackContents{
		c.NextArcanaPackContents,
		c.NextCelestialPackContents,
		c.NextSpectralPackContents,
		c.NextStandardPackContents,
		c.NextBuffoonPackContents,
	} {
		p := gen(ps, packs, rs)
		p.Mask.ForEach(func(l int) {
			out.Size[l] = p.Size[l]
			for i := 0; i < p.Size[l]; i++ {
				out.Cards[i][l] = p.Cards[i][l]
			}
		})
		out.Mask |= p.Mask
	}
	return out
}
