package sim

import (
	"github.com/hupe1980/seedscan/internal/game"
	"github.com/hupe1980/seedscan/internal/simd"
)

// soulChance is the threshold of the soul and black hole polls.
const soulChance = 0.997

// ConsumableStream draws tarot, planet or spectral cards for one source
// in one ante. Soulable streams poll for The Soul or Black Hole before
// the pool draw.
type ConsumableStream struct {
	kind     game.Category
	source   string
	ante     int
	enabled  bool
	soulable bool
	pool     lazyResample
	soul     *lazyStream
}

func (c *Context) consumableStream(kind game.Category, source string, ante int, enabled, soulable bool, soul *lazyStream) ConsumableStream {
	if soul == nil {
		soul = new(lazyStream)
	}
	return ConsumableStream{kind: kind, source: source, ante: ante, enabled: enabled, soulable: soulable, soul: soul}
}

// CreateShopTarotStream returns the shop tarot stream of ante.
func (c *Context) CreateShopTarotStream(ante int, enabled bool) ConsumableStream {
	return c.consumableStream(game.CategoryTarot, "sho", ante, enabled, false, nil)
}

// CreateShopPlanetStream returns the shop planet stream of ante.
func (c *Context) CreateShopPlanetStream(ante int, enabled bool) ConsumableStream {
	return c.consumableStream(game.CategoryPlanet, "sho", ante, enabled, false, nil)
}

// CreateShopSpectralStream returns the shop spectral stream of ante.
func (c *Context) CreateShopSpectralStream(ante int, enabled bool) ConsumableStream {
	return c.consumableStream(game.CategorySpectral, "sho", ante, enabled, false, nil)
}

// Excluded reports whether the stream was disabled.
func (s *ConsumableStream) Excluded() bool { return !s.enabled }

// NextTarot draws a tarot for the lanes in m. A soulable stream may force
// The Soul instead.
func (c *Context) NextTarot(s *ConsumableStream, set *VecItemSet, rs *VecRunState, m simd.Mask) game.ItemVec {
	return c.nextConsumable(s, set, rs, m, game.NumTarots, game.Tarot, nil, game.TheSoul)
}

// NextPlanet draws a planet for the lanes in m, resampling planets that are
// still locked. A soulable stream may force Black Hole instead.
func (c *Context) NextPlanet(s *ConsumableStream, set *VecItemSet, rs *VecRunState, m simd.Mask) game.ItemVec {
	return c.nextConsumable(s, set, rs, m, game.NumPlanets, game.Planet, game.PlanetLocked, game.BlackHole)
}

// NextSpectral draws a spectral for the lanes in m, resampling the hidden
// spectrals. A soulable stream polls for The Soul and then for Black Hole
// on the same stream; a Black Hole hit overrides The Soul.
func (c *Context) NextSpectral(s *ConsumableStream, set *VecItemSet, rs *VecRunState, m simd.Mask) game.ItemVec {
	return c.nextConsumable(s, set, rs, m, game.NumSpectrals, game.Spectral, game.SpectralHidden, game.TheSoul, game.BlackHole)
}

func (c *Context) nextConsumable(
	s *ConsumableStream,
	set *VecItemSet,
	rs *VecRunState,
	m simd.Mask,
	n int,
	item func(int) game.Item,
	unavailable func(int) bool,
	souls ...game.ItemType,
) game.ItemVec {
	out := game.ExcludedVec()
	m &= c.Valid()
	if !s.enabled || !m.Any() {
		return out
	}

	var forced simd.Mask
	if s.soulable {
		soul := c.open(s.soul, true, "soul_"+s.kind.String(), s.ante, "")
		for _, t := range souls {
			var polled simd.Mask
			m.ForEach(func(l int) {
				if rs[l].Showman || !set.Contains(l, t) {
					polled |= 1 << l
				}
			})
			if !polled.Any() {
				continue
			}
			v := soul.Random(polled)
			hit := simd.Gt(&v, soulChance) & polled
			hit.ForEach(func(l int) { out[l] = game.Item(t) })
			forced |= hit
		}
	}

	pending := m &^ forced
	if !pending.Any() {
		return out
	}
	pool := c.openResample(&s.pool, true, s.kind.String()+s.source, s.ante, "")
	idx := pool.Next(pending, n, func(l, j int) bool {
		if unavailable != nil && unavailable(j) {
			return true
		}
		return !rs[l].Showman && set.Contains(l, item(j).Type())
	})
	pending.ForEach(func(l int) { out[l] = item(idx[l]) })
	return out
}
