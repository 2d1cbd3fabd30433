package game

import (
	"fmt"
	"strings"

	"github.com/hupe1980/seedscan/internal/simd"
)

// Category is the kind of an item.
type Category uint8

const (
	CategoryNone Category = iota
	CategoryJoker
	CategoryTarot
	CategoryPlanet
	CategorySpectral
	CategoryPlayingCard
	CategoryVoucher
	CategoryTag
	CategoryBoss
	CategoryBooster
)

func (c Category) String() string {
	switch c {
	case CategoryJoker:
		return "Joker"
	case CategoryTarot:
		return "Tarot"
	case CategoryPlanet:
		return "Planet"
	case CategorySpectral:
		return "Spectral"
	case CategoryPlayingCard:
		return "PlayingCard"
	case CategoryVoucher:
		return "Voucher"
	case CategoryTag:
		return "Tag"
	case CategoryBoss:
		return "Boss"
	case CategoryBooster:
		return "Booster"
	default:
		return "None"
	}
}

// Edition of a joker or playing card.
type Edition uint8

const (
	EditionNone Edition = iota
	EditionFoil
	EditionHolographic
	EditionPolychrome
	EditionNegative
)

var editionNames = [...]string{"None", "Foil", "Holographic", "Polychrome", "Negative"}

func (e Edition) String() string {
	if int(e) < len(editionNames) {
		return editionNames[e]
	}
	return "Unknown"
}

// ParseEdition resolves an edition name. "Holo" is accepted for Holographic.
func ParseEdition(s string) (Edition, error) {
	switch normalize(s) {
	case "", "none":
		return EditionNone, nil
	case "foil":
		return EditionFoil, nil
	case "holo", "holographic":
		return EditionHolographic, nil
	case "polychrome", "poly":
		return EditionPolychrome, nil
	case "negative":
		return EditionNegative, nil
	}
	return EditionNone, fmt.Errorf("unknown edition %q", s)
}

// Seal of a playing card.
type Seal uint8

const (
	SealNone Seal = iota
	SealGold
	SealRed
	SealBlue
	SealPurple
)

var sealNames = [...]string{"None", "Gold", "Red", "Blue", "Purple"}

func (s Seal) String() string {
	if int(s) < len(sealNames) {
		return sealNames[s]
	}
	return "Unknown"
}

// ParseSeal resolves a seal name; "Gold Seal" and "Gold" are both accepted.
func ParseSeal(s string) (Seal, error) {
	n := strings.TrimSuffix(normalize(s), "seal")
	for i, name := range sealNames {
		if normalize(name) == n {
			return Seal(i), nil
		}
	}
	return SealNone, fmt.Errorf("unknown seal %q", s)
}

// Enhancement of a playing card. The order after None is the game's
// Enhanced pool order.
type Enhancement uint8

const (
	EnhancementNone Enhancement = iota
	EnhancementBonus
	EnhancementMult
	EnhancementWild
	EnhancementGlass
	EnhancementSteel
	EnhancementStone
	EnhancementGold
	EnhancementLucky
)

var enhancementNames = [...]string{"None", "Bonus", "Mult", "Wild", "Glass", "Steel", "Stone", "Gold", "Lucky"}

func (e Enhancement) String() string {
	if int(e) < len(enhancementNames) {
		return enhancementNames[e]
	}
	return "Unknown"
}

// ParseEnhancement resolves an enhancement name; "Glass Card" is accepted.
func ParseEnhancement(s string) (Enhancement, error) {
	n := strings.TrimSuffix(normalize(s), "card")
	for i, name := range enhancementNames {
		if normalize(name) == n {
			return Enhancement(i), nil
		}
	}
	return EnhancementNone, fmt.Errorf("unknown enhancement %q", s)
}

// Item is a packed drawn item:
//
//	bits  0-7   index within category
//	bits  8-11  category
//	bits 12-14  edition
//	bits 15-17  seal
//	bits 18-21  enhancement
//	bit  22     eternal
//	bit  23     perishable
//	bit  24     rental
//	bit  31     excluded (the stream producing it was disabled)
//
// Items compare by value.
type Item uint32

// ItemType is the category and index part of an Item.
type ItemType uint16

const (
	itemIndexMask    = 0xFF
	itemTypeMask     = 0xFFF
	itemCategoryBits = 8
	itemEditionShift = 12
	itemSealShift    = 15
	itemEnhShift     = 18

	// FlagEternal marks an eternal joker.
	FlagEternal Item = 1 << 22
	// FlagPerishable marks a perishable joker.
	FlagPerishable Item = 1 << 23
	// FlagRental marks a rental joker.
	FlagRental Item = 1 << 24

	// ItemExcluded is returned by generators whose stream was disabled.
	ItemExcluded Item = 1 << 31
)

// NewItem packs a category and index.
func NewItem(c Category, index int) Item {
	return Item(uint32(c)<<itemCategoryBits | uint32(index)&itemIndexMask)
}

// MakeType packs a category and index into an ItemType.
func MakeType(c Category, index int) ItemType {
	return ItemType(NewItem(c, index))
}

// Type returns the category and index part.
func (it Item) Type() ItemType { return ItemType(it & itemTypeMask) }

// Category returns the item category.
func (it Item) Category() Category { return Category(it >> itemCategoryBits & 0xF) }

// Index returns the index within the category.
func (it Item) Index() int { return int(it & itemIndexMask) }

// Edition returns the item edition.
func (it Item) Edition() Edition { return Edition(it >> itemEditionShift & 0x7) }

// Seal returns the playing card seal.
func (it Item) Seal() Seal { return Seal(it >> itemSealShift & 0x7) }

// Enhancement returns the playing card enhancement.
func (it Item) Enhancement() Enhancement { return Enhancement(it >> itemEnhShift & 0xF) }

// IsExcluded reports whether the item is the excluded sentinel.
func (it Item) IsExcluded() bool { return it&ItemExcluded != 0 }

// Has reports whether all flag bits are set.
func (it Item) Has(flags Item) bool { return it&flags == flags }

// WithEdition returns the item with edition e.
func (it Item) WithEdition(e Edition) Item {
	return it&^(0x7<<itemEditionShift) | Item(e)<<itemEditionShift
}

// WithSeal returns the item with seal s.
func (it Item) WithSeal(s Seal) Item {
	return it&^(0x7<<itemSealShift) | Item(s)<<itemSealShift
}

// WithEnhancement returns the item with enhancement e.
func (it Item) WithEnhancement(e Enhancement) Item {
	return it&^(0xF<<itemEnhShift) | Item(e)<<itemEnhShift
}

// Name returns the display name of the item.
func (it Item) Name() string {
	if it.IsExcluded() {
		return "<excluded>"
	}
	return it.Type().Name()
}

func (it Item) String() string {
	if it.IsExcluded() {
		return "<excluded>"
	}
	var b strings.Builder
	if e := it.Edition(); e != EditionNone {
		b.WriteString(e.String())
		b.WriteByte(' ')
	}
	if it.Category() == CategoryPlayingCard {
		if en := it.Enhancement(); en != EnhancementNone {
			b.WriteString(en.String())
			b.WriteByte(' ')
		}
	}
	b.WriteString(it.Type().Name())
	if s := it.Seal(); s != SealNone {
		b.WriteString(" (" + s.String() + " Seal)")
	}
	if it.Has(FlagEternal) {
		b.WriteString(" [Eternal]")
	}
	if it.Has(FlagPerishable) {
		b.WriteString(" [Perishable]")
	}
	if it.Has(FlagRental) {
		b.WriteString(" [Rental]")
	}
	return b.String()
}

// Category returns the category of the type.
func (t ItemType) Category() Category { return Item(t).Category() }

// Index returns the index within the category.
func (t ItemType) Index() int { return Item(t).Index() }

// Name returns the display name of the type.
func (t ItemType) Name() string {
	names := namesOf(t.Category())
	if t.Index() < len(names) {
		return names[t.Index()]
	}
	return fmt.Sprintf("%s#%d", t.Category(), t.Index())
}

func (t ItemType) String() string { return t.Name() }

// ItemVec holds one item per lane.
type ItemVec [simd.Lanes]Item

// ExcludedVec returns a vector of excluded sentinels.
func ExcludedVec() ItemVec {
	var v ItemVec
	for i := range v {
		v[i] = ItemExcluded
	}
	return v
}

// TypeEq returns the lanes whose item type equals t.
func (v *ItemVec) TypeEq(t ItemType) simd.Mask {
	var m simd.Mask
	for l := 0; l < simd.Lanes; l++ {
		if v[l].Type() == t {
			m |= 1 << l
		}
	}
	return m
}

// CategoryEq returns the lanes whose item category equals c.
func (v *ItemVec) CategoryEq(c Category) simd.Mask {
	var m simd.Mask
	for l := 0; l < simd.Lanes; l++ {
		if !v[l].IsExcluded() && v[l].Category() == c {
			m |= 1 << l
		}
	}
	return m
}

func namesOf(c Category) []string {
	switch c {
	case CategoryJoker:
		return jokerNames
	case CategoryTarot:
		return tarotNames
	case CategoryPlanet:
		return planetNames
	case CategorySpectral:
		return spectralNames
	case CategoryPlayingCard:
		return cardNames
	case CategoryVoucher:
		return voucherNames
	case CategoryTag:
		return tagNames
	case CategoryBoss:
		return bossNames
	case CategoryBooster:
		return boosterNames
	default:
		return nil
	}
}
