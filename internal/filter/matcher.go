package filter

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/bits-and-blooms/bitset"

	"github.com/hupe1980/seedscan/internal/game"
	"github.com/hupe1980/seedscan/internal/simd"
)

const (
	// MaxAnte is the highest ante a clause can name.
	MaxAnte = 63

	// defaultShopSlots is the shop queue depth scanned when a clause names
	// no shop slots.
	defaultShopSlots = 6

	maxSlot = 63
)

// defaultAntes is antes 1 through 8.
const defaultAntes uint64 = 0b1_1111_1110

// source is where an occurrence came from.
type source uint8

const (
	sourceEvent source = iota
	sourceShop
	sourcePack
)

// occurrence is one drawn vector visited by a scan.
type occurrence struct {
	ante   int
	source source
	slot   int
	items  *game.ItemVec
	mask   simd.Mask
}

// matcher is one compiled clause.
type matcher struct {
	kind     Kind
	category game.Category
	values   *bitset.BitSet // nil matches any item of the category

	antes     uint64
	shopSlots uint64
	packSlots uint64
	shop      bool
	packs     bool
	tagSlot   int

	edition     game.Edition
	hasEdition  bool
	seal        game.Seal
	hasSeal     bool
	enhancement game.Enhancement
	hasEnh      bool
	rank        game.Rank
	hasRank     bool
	suit        game.Suit
	hasSuit     bool

	inverted bool
}

var kindCategory = map[Kind]game.Category{
	KindJoker:         game.CategoryJoker,
	KindSoulJoker:     game.CategoryJoker,
	KindVoucher:       game.CategoryVoucher,
	KindTarot:         game.CategoryTarot,
	KindPlanet:        game.CategoryPlanet,
	KindSpectral:      game.CategorySpectral,
	KindPlayingCard:   game.CategoryPlayingCard,
	KindBoss:          game.CategoryBoss,
	KindTag:           game.CategoryTag,
	KindSmallBlindTag: game.CategoryTag,
	KindBigBlindTag:   game.CategoryTag,
}

// valueError carries the offending value up to the ConfigError.
type valueError struct {
	value string
	err   error
}

func (e *valueError) Error() string { return e.err.Error() }
func (e *valueError) Unwrap() error { return e.err }

func newMatcher(kind Kind, c *Clause, inverted bool) (*matcher, error) {
	m := &matcher{
		kind:     kind,
		category: kindCategory[kind],
		inverted: inverted,
		tagSlot:  -1,
		shop:     true,
		packs:    true,
	}
	switch kind {
	case KindSmallBlindTag:
		m.tagSlot = 0
	case KindBigBlindTag:
		m.tagSlot = 1
	}

	if err := m.compileValues(c); err != nil {
		return nil, err
	}

	var err error
	if m.antes, err = bitmask(c.Antes, 1, MaxAnte, "ante"); err != nil {
		return nil, err
	}
	if m.antes == 0 {
		m.antes = defaultAntes
	}
	if m.packSlots, err = bitmask(c.PackSlots, 0, maxSlot, "pack slot"); err != nil {
		return nil, err
	}
	if m.packSlots == 0 {
		m.packSlots = ^uint64(0)
	}
	if m.shopSlots, err = bitmask(c.ShopSlots, 0, maxSlot, "shop slot"); err != nil {
		return nil, err
	}
	if m.shopSlots == 0 {
		m.shopSlots = 1<<defaultShopSlots - 1
	}

	if len(c.Sources) > 0 {
		m.shop, m.packs = false, false
		for _, s := range c.Sources {
			switch strings.ToLower(s) {
			case "shop":
				m.shop = true
			case "pack", "packs", "booster", "boosters":
				m.packs = true
			default:
				return nil, &valueError{value: s, err: fmt.Errorf("unknown source %q", s)}
			}
		}
	}

	if c.Edition != "" && !strings.EqualFold(c.Edition, "any") {
		if m.edition, err = game.ParseEdition(c.Edition); err != nil {
			return nil, &valueError{value: c.Edition, err: err}
		}
		m.hasEdition = true
	}
	if c.Seal != "" && !strings.EqualFold(c.Seal, "any") {
		if m.seal, err = game.ParseSeal(c.Seal); err != nil {
			return nil, &valueError{value: c.Seal, err: err}
		}
		m.hasSeal = true
	}
	if c.Enhancement != "" && !strings.EqualFold(c.Enhancement, "any") {
		if m.enhancement, err = game.ParseEnhancement(c.Enhancement); err != nil {
			return nil, &valueError{value: c.Enhancement, err: err}
		}
		m.hasEnh = true
	}
	if c.Rank != "" && !strings.EqualFold(c.Rank, "any") {
		if m.rank, err = game.ParseRank(c.Rank); err != nil {
			return nil, &valueError{value: c.Rank, err: err}
		}
		m.hasRank = true
	}
	if c.Suit != "" && !strings.EqualFold(c.Suit, "any") {
		if m.suit, err = game.ParseSuit(c.Suit); err != nil {
			return nil, &valueError{value: c.Suit, err: err}
		}
		m.hasSuit = true
	}
	return m, nil
}

func (m *matcher) compileValues(c *Clause) error {
	vs := c.values()
	if len(vs) == 0 {
		// Playing cards are usually described by rank, suit and the like.
		if m.kind == KindPlayingCard {
			return nil
		}
		return errMissingValue
	}
	for _, v := range vs {
		if strings.EqualFold(v, "any") {
			m.values = nil
			return nil
		}
	}
	m.values = bitset.New(uint(len(game.Names(m.category))))
	for _, v := range vs {
		t, err := game.LookupIn(m.category, v)
		if err != nil {
			return &valueError{value: v, err: err}
		}
		if m.kind == KindSoulJoker && game.JokerRarity(t) != game.RarityLegendary {
			return &valueError{value: v, err: fmt.Errorf("%s is not a legendary joker", t.Name())}
		}
		m.values.Set(uint(t.Index()))
	}
	return nil
}

// bitmask turns a list of small integers into a bit set.
func bitmask(list []int, lo, hi int, what string) (uint64, error) {
	var out uint64
	for _, v := range list {
		if v < lo || v > hi {
			return 0, &valueError{value: fmt.Sprint(v), err: fmt.Errorf("%s %d out of range [%d,%d]", what, v, lo, hi)}
		}
		out |= 1 << uint(v)
	}
	return out, nil
}

// maxAnte returns the highest ante of the matcher.
func (m *matcher) maxAnte() int { return 63 - bits.LeadingZeros64(m.antes) }

// admits reports whether the occurrence position is in range.
func (m *matcher) admits(o *occurrence) bool {
	if m.antes&(1<<uint(o.ante)) == 0 {
		return false
	}
	switch o.source {
	case sourceShop:
		return m.shop && m.shopSlots&(1<<uint(o.slot)) != 0
	case sourcePack:
		return m.packs && m.packSlots&(1<<uint(o.slot)) != 0
	default:
		return m.tagSlot < 0 || m.tagSlot == o.slot
	}
}

// matches reports whether it satisfies the clause.
func (m *matcher) matches(it game.Item) bool {
	if it.IsExcluded() || it.Category() != m.category {
		return false
	}
	if m.values != nil && !m.values.Test(uint(it.Index())) {
		return false
	}
	if m.hasEdition && it.Edition() != m.edition {
		return false
	}
	if m.category == game.CategoryPlayingCard {
		if m.hasSeal && it.Seal() != m.seal {
			return false
		}
		if m.hasEnh && it.Enhancement() != m.enhancement {
			return false
		}
		if m.hasRank && game.CardRank(it) != m.rank {
			return false
		}
		if m.hasSuit && game.CardSuit(it) != m.suit {
			return false
		}
	}
	return true
}

// hits returns the lanes of o that satisfy the clause.
func (m *matcher) hits(o *occurrence) simd.Mask {
	if !m.admits(o) {
		return simd.NoneTrue
	}
	var h simd.Mask
	o.mask.ForEach(func(l int) {
		if m.matches(o.items[l]) {
			h |= 1 << l
		}
	})
	return h
}
