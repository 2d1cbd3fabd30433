package sim

import (
	"strconv"

	"github.com/hupe1980/seedscan/internal/game"
	"github.com/hupe1980/seedscan/internal/simd"
)

// JokerFlags selects the optional joker draws.
type JokerFlags uint8

const (
	// JokerEdition draws the edition.
	JokerEdition JokerFlags = 1 << iota
	// JokerStickers draws the stake stickers.
	JokerStickers
)

// JokerAll enables every joker draw.
const JokerAll = JokerEdition | JokerStickers

// JokerStream draws jokers for one source (shop or Buffoon packs) in one
// ante.
type JokerStream struct {
	ante    int
	source  string
	etKey   string
	rentKey string
	enabled bool
	flags   JokerFlags

	rarity  lazyStream
	pools   [3]lazyResample
	edition lazyStream
	etPer   lazyStream
	rental  lazyStream
}

// CreateShopJokerStream returns the joker stream of the ante's shop.
func (c *Context) CreateShopJokerStream(ante int, enabled bool, flags JokerFlags) JokerStream {
	return JokerStream{ante: ante, source: "sho", etKey: "etperpoll", rentKey: "ssjr", enabled: enabled, flags: flags}
}

// CreateBuffoonJokerStream returns the joker stream of the ante's Buffoon
// packs.
func (c *Context) CreateBuffoonJokerStream(ante int, enabled bool, flags JokerFlags) JokerStream {
	return JokerStream{ante: ante, source: "buf", etKey: "packetper", rentKey: "packssjr", enabled: enabled, flags: flags}
}

// Excluded reports whether the stream was disabled.
func (s *JokerStream) Excluded() bool { return !s.enabled }

// NextJoker draws a joker for the lanes in m: rarity, then the rarity pool
// (resampling locked jokers and jokers already in set), then edition and
// stickers when enabled. set may be nil.
func (c *Context) NextJoker(s *JokerStream, set *VecItemSet, rs *VecRunState, m simd.Mask) game.ItemVec {
	out := game.ExcludedVec()
	m &= c.Valid()
	if !s.enabled || !m.Any() {
		return out
	}

	poll := c.open(&s.rarity, true, "rarity", s.ante, s.source).Random(m)
	var byRarity [3]simd.Mask
	m.ForEach(func(l int) {
		r := game.RarityFromPoll(poll[l])
		byRarity[r-1] |= 1 << l
	})

	for i, rm := range byRarity {
		if !rm.Any() {
			continue
		}
		r := game.Rarity(i + 1)
		pool := c.openResample(&s.pools[i], true, "Joker"+strconv.Itoa(int(r))+s.source, s.ante, "")
		idx := pool.Next(rm, game.PoolSize(r), func(l, j int) bool {
			if game.JokerLocked(r, j) {
				return true
			}
			return !rs[l].Showman && set.Contains(l, game.Joker(r, j).Type())
		})
		rm.ForEach(func(l int) { out[l] = game.Joker(r, idx[l]) })
	}

	c.decorateJokers(s, &out, rs, m, "edi"+s.source)
	return out
}

// decorateJokers applies edition and stickers to the jokers in lanes m.
func (c *Context) decorateJokers(s *JokerStream, out *game.ItemVec, rs *VecRunState, m simd.Mask, editionPrefix string) {
	if s.flags&JokerEdition != 0 {
		v := c.open(&s.edition, true, editionPrefix, s.ante, "").Random(m)
		m.ForEach(func(l int) {
			out[l] = out[l].WithEdition(game.EditionFromPoll(v[l], rs[l].EditionRate(), 1, false))
		})
	}
	if s.flags&JokerStickers != 0 && c.stake.EternalsInShop() {
		et := c.open(&s.etPer, true, s.etKey, s.ante, "").Random(m)
		rental := simd.Broadcast(-1)
		if c.stake.RentalsInShop() {
			rental = c.open(&s.rental, true, s.rentKey, s.ante, "").Random(m)
		}
		m.ForEach(func(l int) {
			out[l] |= c.stake.Stickers(et[l], rental[l])
		})
	}
}

// SoulJokerStream draws the legendary jokers The Soul creates. The pool
// stream has no ante in its key and runs across the whole run; the
// edition stream is per ante.
type SoulJokerStream struct {
	enabled bool
	flags   JokerFlags
	pool    lazyResample
	ante    int
	edition lazyStream
}

// CreateSoulJokerStream returns the legendary joker stream of a run.
func (c *Context) CreateSoulJokerStream(enabled bool, flags JokerFlags) SoulJokerStream {
	return SoulJokerStream{enabled: enabled, flags: flags &^ JokerStickers}
}

// NextSoulJoker draws the legendary joker created by a Soul used in ante
// for the lanes in m.
func (c *Context) NextSoulJoker(s *SoulJokerStream, ante int, rs *VecRunState, m simd.Mask) game.ItemVec {
	out := game.ExcludedVec()
	m &= c.Valid()
	if !s.enabled || !m.Any() {
		return out
	}
	if s.ante != ante {
		s.ante = ante
		s.edition = lazyStream{}
	}

	pool := c.openResample(&s.pool, true, "Joker4", noAnte, "")
	idx := pool.Next(m, game.PoolSize(game.RarityLegendary), func(int, int) bool { return false })
	m.ForEach(func(l int) { out[l] = game.Joker(game.RarityLegendary, idx[l]) })

	if s.flags&JokerEdition != 0 {
		v := c.open(&s.edition, true, "edisou", ante, "").Random(m)
		m.ForEach(func(l int) {
			out[l] = out[l].WithEdition(game.EditionFromPoll(v[l], rs[l].EditionRate(), 1, false))
		})
	}
	return out
}
