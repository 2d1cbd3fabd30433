package sim

import (
	"github.com/hupe1980/seedscan/internal/game"
	"github.com/hupe1980/seedscan/internal/simd"
)

// CardStream draws playing cards for one source in one ante.
type CardStream struct {
	source   string
	ante     int
	enabled  bool
	front    lazyStream
	enhanced lazyStream
	kind     lazyStream
	edition  lazyStream
	seal     lazyStream
	sealType lazyStream
}

// CreateShopCardStream returns the shop playing card stream of ante.
func (c *Context) CreateShopCardStream(ante int, enabled bool) CardStream {
	return CardStream{source: "sho", ante: ante, enabled: enabled}
}

// CreateStandardCardStream returns the Standard pack card stream of ante.
func (c *Context) CreateStandardCardStream(ante int, enabled bool) CardStream {
	return CardStream{source: "sta", ante: ante, enabled: enabled}
}

// Excluded reports whether the stream was disabled.
func (s *CardStream) Excluded() bool { return !s.enabled }

// NextPlayingCard draws a card for the lanes in m. Lanes in enhanced draw
// an enhancement first; the front is drawn from the deck's card pool.
func (c *Context) NextPlayingCard(s *CardStream, enhanced simd.Mask, m simd.Mask) game.ItemVec {
	out := game.ExcludedVec()
	m &= c.Valid()
	if !s.enabled || !m.Any() {
		return out
	}

	var enh [simd.Lanes]int
	if em := enhanced & m; em.Any() {
		idx := c.open(&s.enhanced, true, "Enhanced"+s.source, s.ante, "").Index(em, game.NumEnhancements)
		em.ForEach(func(l int) { enh[l] = idx[l] + 1 })
	}

	pool := game.FrontPool(c.deck)
	front := c.open(&s.front, true, "front"+s.source, s.ante, "").Index(m, len(pool))
	m.ForEach(func(l int) {
		out[l] = game.Card(pool[front[l]]).WithEnhancement(game.Enhancement(enh[l]))
	})
	return out
}

// NextStandardCard draws one Standard pack card for the lanes in m: the
// enhanced roll, the card, then edition (doubled odds, never Negative) and
// seal.
func (c *Context) NextStandardCard(s *CardStream, rs *VecRunState, m simd.Mask) game.ItemVec {
	m &= c.Valid()
	if !s.enabled || !m.Any() {
		return game.ExcludedVec()
	}

	kind := c.open(&s.kind, true, "stdset", s.ante, "").Random(m)
	enhanced := simd.Gt(&kind, 0.6) & m
	out := c.NextPlayingCard(s, enhanced, m)

	ed := c.open(&s.edition, true, "standard_edition", s.ante, "").Random(m)
	sealPoll := c.open(&s.seal, true, "stdseal", s.ante, "").Random(m)
	sealed := simd.Gt(&sealPoll, 0.8) & m
	var sealType simd.F64x8
	if sealed.Any() {
		sealType = c.open(&s.sealType, true, "stdsealtype", s.ante, "").Random(sealed)
	}

	m.ForEach(func(l int) {
		out[l] = out[l].WithEdition(game.EditionFromPoll(ed[l], rs[l].EditionRate(), 2, true))
		if sealed.Lane(l) {
			out[l] = out[l].WithSeal(game.SealFromPoll(sealType[l]))
		}
	})
	return out
}
