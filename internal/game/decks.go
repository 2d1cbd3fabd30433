package game

import "fmt"

// Deck is a starting deck.
type Deck uint8

const (
	DeckRed Deck = iota
	DeckBlue
	DeckYellow
	DeckGreen
	DeckBlack
	DeckMagic
	DeckNebula
	DeckGhost
	DeckAbandoned
	DeckCheckered
	DeckZodiac
	DeckPainted
	DeckAnaglyph
	DeckPlasma
	DeckErratic
)

var deckNames = [...]string{
	"Red", "Blue", "Yellow", "Green", "Black", "Magic", "Nebula", "Ghost",
	"Abandoned", "Checkered", "Zodiac", "Painted", "Anaglyph", "Plasma", "Erratic",
}

func (d Deck) String() string {
	if int(d) < len(deckNames) {
		return deckNames[d] + " Deck"
	}
	return "Unknown Deck"
}

// ParseDeck resolves "Ghost" or "Ghost Deck".
func ParseDeck(s string) (Deck, error) {
	n := normalize(s)
	for i, name := range deckNames {
		ln := normalize(name)
		if n == ln || n == ln+"deck" {
			return Deck(i), nil
		}
	}
	return 0, fmt.Errorf("unknown deck %q", s)
}

// StartingVouchers returns the vouchers the deck redeems at run start.
func (d Deck) StartingVouchers() VoucherSet {
	var s VoucherSet
	switch d {
	case DeckMagic:
		s = s.With(VoucherCrystalBall)
	case DeckNebula:
		s = s.With(VoucherTelescope)
	case DeckZodiac:
		s = s.With(VoucherTarotMerchant).With(VoucherPlanetMerchant).With(VoucherOverstock)
	}
	return s
}

// SpectralRate returns the shop weight of spectral cards.
func (d Deck) SpectralRate() float64 {
	if d == DeckGhost {
		return 2
	}
	return 0
}

// Stake is a difficulty level; each stake includes all lower ones.
type Stake uint8

const (
	StakeWhite Stake = iota
	StakeRed
	StakeGreen
	StakeBlack
	StakeBlue
	StakePurple
	StakeOrange
	StakeGold
)

var stakeNames = [...]string{"White", "Red", "Green", "Black", "Blue", "Purple", "Orange", "Gold"}

func (s Stake) String() string {
	if int(s) < len(stakeNames) {
		return stakeNames[s] + " Stake"
	}
	return "Unknown Stake"
}

// ParseStake resolves "Gold" or "Gold Stake".
func ParseStake(s string) (Stake, error) {
	n := normalize(s)
	for i, name := range stakeNames {
		ln := normalize(name)
		if n == ln || n == ln+"stake" {
			return Stake(i), nil
		}
	}
	return 0, fmt.Errorf("unknown stake %q", s)
}

// EternalsInShop reports whether shop and pack jokers may be eternal.
func (s Stake) EternalsInShop() bool { return s >= StakeBlack }

// PerishablesInShop reports whether shop and pack jokers may be perishable.
func (s Stake) PerishablesInShop() bool { return s >= StakeOrange }

// RentalsInShop reports whether shop and pack jokers may be rental.
func (s Stake) RentalsInShop() bool { return s >= StakeGold }

// Stickers maps an eternal/perishable draw and a rental draw to sticker
// flags. Pass a negative value for a draw that was not taken.
func (s Stake) Stickers(etPer, rental float64) Item {
	var f Item
	switch {
	case s.EternalsInShop() && etPer > 0.7:
		f |= FlagEternal
	case s.PerishablesInShop() && etPer > 0.4 && etPer <= 0.7:
		f |= FlagPerishable
	}
	if s.RentalsInShop() && rental > 0.7 {
		f |= FlagRental
	}
	return f
}
