package sim

import (
	"github.com/hupe1980/seedscan/internal/game"
	"github.com/hupe1980/seedscan/internal/simd"
)

// ShopFlags selects which shop item types a ShopStream generates. Types
// left out yield game.ItemExcluded and their streams never advance.
type ShopFlags uint8

const (
	ShopJokers ShopFlags = 1 << iota
	ShopTarots
	ShopPlanets
	ShopSpectrals
	ShopPlayingCards
)

// ShopAll enables every shop item type.
const ShopAll = ShopJokers | ShopTarots | ShopPlanets | ShopSpectrals | ShopPlayingCards

// ShopStream is the shop queue of one ante.
type ShopStream struct {
	ante     int
	itemType lazyStream
	illusion *lazyStream

	Jokers    JokerStream
	Tarots    ConsumableStream
	Planets   ConsumableStream
	Spectrals ConsumableStream
	Cards     CardStream
}

// CreateShopStream returns the shop queue of ante. Streams without an ante
// in their key live in run.
func (c *Context) CreateShopStream(ante int, flags ShopFlags, jokerFlags JokerFlags, run *RunStreams) ShopStream {
	return ShopStream{
		ante:      ante,
		illusion:  &run.illusion,
		Jokers:    c.CreateShopJokerStream(ante, flags&ShopJokers != 0, jokerFlags),
		Tarots:    c.CreateShopTarotStream(ante, flags&ShopTarots != 0),
		Planets:   c.CreateShopPlanetStream(ante, flags&ShopPlanets != 0),
		Spectrals: c.CreateShopSpectralStream(ante, flags&ShopSpectrals != 0),
		Cards:     c.CreateShopCardStream(ante, flags&ShopPlayingCards != 0),
	}
}

// NextShopItem draws the next shop slot for every valid lane.
//
// The item type is a single draw scaled by the sum of the lane's rates and
// partitioned in the order joker, tarot, planet, playing card, spectral.
// The type draw and the Illusion rolls use full advancement over the live
// lanes; each item generator advances only the lanes that landed on its
// type.
func (c *Context) NextShopItem(s *ShopStream, rs *VecRunState) game.ItemVec {
	m := c.Valid()
	out := game.ExcludedVec()
	if !m.Any() {
		return out
	}

	const jokerRate = 20
	poll := c.open(&s.itemType, true, "cdt", s.ante, "").Random(m)

	illusionLanes := rs.HasVoucher(game.VoucherIllusion) & m
	var illusionPoll simd.F64x8
	if illusionLanes.Any() {
		illusionPoll = c.open(s.illusion, true, "illusion", noAnte, "").Random(illusionLanes)
	}

	var lanes [len(shopTypes)]simd.Mask
	m.ForEach(func(l int) {
		rates := [len(shopTypes)]float64{
			jokerRate,
			rs[l].TarotRate(),
			rs[l].PlanetRate(),
			rs[l].PlayingCardRate(),
			c.deck.SpectralRate(),
		}
		if t := shopType(poll[l], &rates); t >= 0 {
			lanes[t] |= 1 << l
		}
	})
	jokers, tarots, planets, cards, spectrals := lanes[0], lanes[1], lanes[2], lanes[3], lanes[4]

	blend(&out, c.NextJoker(&s.Jokers, nil, rs, jokers), jokers)
	blend(&out, c.NextTarot(&s.Tarots, nil, rs, tarots), tarots)
	blend(&out, c.NextPlanet(&s.Planets, nil, rs, planets), planets)
	blend(&out, c.NextSpectral(&s.Spectrals, nil, rs, spectrals), spectrals)

	if cards.Any() {
		enhanced := simd.Gt(&illusionPoll, 0.6) & illusionLanes & cards
		blend(&out, c.NextPlayingCard(&s.Cards, enhanced, cards), cards)

		if il := cards & illusionLanes; il.Any() {
			ill := c.open(s.illusion, true, "illusion", noAnte, "")
			roll := ill.Random(il)
			edited := simd.Gt(&roll, 0.8) & il
			if edited.Any() {
				ed := ill.Random(edited)
				edited.ForEach(func(l int) {
					out[l] = out[l].WithEdition(illusionEdition(ed[l]))
				})
			}
		}
	}
	return out
}

var shopTypes = [...]game.Category{
	game.CategoryJoker,
	game.CategoryTarot,
	game.CategoryPlanet,
	game.CategoryPlayingCard,
	game.CategorySpectral,
}

// shopType returns the slot of the rate window containing v*total, or -1.
func shopType(v float64, rates *[len(shopTypes)]float64) int {
	var total float64
	for _, r := range rates {
		total += r
	}
	v *= total
	check := 0.0
	for t, r := range rates {
		if v > check && v <= check+r {
			return t
		}
		check += r
	}
	return -1
}

func illusionEdition(v float64) game.Edition {
	switch {
	case v > 1-0.15:
		return game.EditionPolychrome
	case v > 0.5:
		return game.EditionHolographic
	default:
		return game.EditionFoil
	}
}

// blend copies the lanes m of src into dst.
func blend(dst *game.ItemVec, src game.ItemVec, m simd.Mask) {
	m.ForEach(func(l int) { dst[l] = src[l] })
}
