package game

import "fmt"

// Rank of a playing card.
type Rank uint8

const (
	RankTwo Rank = iota
	RankThree
	RankFour
	RankFive
	RankSix
	RankSeven
	RankEight
	RankNine
	RankTen
	RankJack
	RankQueen
	RankKing
	RankAce
)

var rankNames = [...]string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "Jack", "Queen", "King", "Ace"}

func (r Rank) String() string {
	if int(r) < len(rankNames) {
		return rankNames[r]
	}
	return "Unknown"
}

// IsFace reports whether r is a Jack, Queen or King.
func (r Rank) IsFace() bool { return r >= RankJack && r <= RankKing }

// ParseRank resolves a rank; digits, "T", "J", "Q", "K", "A" and full
// names are accepted.
func ParseRank(s string) (Rank, error) {
	switch normalize(s) {
	case "t", "ten", "10":
		return RankTen, nil
	case "j", "jack":
		return RankJack, nil
	case "q", "queen":
		return RankQueen, nil
	case "k", "king":
		return RankKing, nil
	case "a", "ace":
		return RankAce, nil
	}
	for i := RankTwo; i <= RankNine; i++ {
		if normalize(s) == rankNames[i] {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown rank %q", s)
}

// Suit of a playing card.
type Suit uint8

const (
	SuitClubs Suit = iota
	SuitDiamonds
	SuitHearts
	SuitSpades
)

var suitNames = [...]string{"Clubs", "Diamonds", "Hearts", "Spades"}

func (s Suit) String() string {
	if int(s) < len(suitNames) {
		return suitNames[s]
	}
	return "Unknown"
}

// ParseSuit resolves a suit by name or initial.
func ParseSuit(s string) (Suit, error) {
	n := normalize(s)
	for i, name := range suitNames {
		ln := normalize(name)
		if n == ln || n == ln[:1] || n+"s" == ln {
			return Suit(i), nil
		}
	}
	return 0, fmt.Errorf("unknown suit %q", s)
}

// Card tables follow the game's card keys ("C_2" ... "S_T") sorted as
// strings, which is the order the front draw indexes into.
var (
	sortedRanks = [...]Rank{
		RankTwo, RankThree, RankFour, RankFive, RankSix, RankSeven, RankEight, RankNine,
		RankAce, RankJack, RankKing, RankQueen, RankTen,
	}

	cardRanks, cardSuits, cardNames = buildCards()

	// allCards and noFaceCards are the front pools as card indices.
	allCards, noFaceCards = buildFrontPools()
)

func buildCards() (ranks [52]Rank, suits [52]Suit, names []string) {
	for s := 0; s < 4; s++ {
		for r, rank := range sortedRanks {
			i := s*len(sortedRanks) + r
			ranks[i] = rank
			suits[i] = Suit(s)
			names = append(names, rank.String()+" of "+Suit(s).String())
		}
	}
	return ranks, suits, names
}

func buildFrontPools() (all, noFace []int) {
	for i, r := range cardRanks {
		all = append(all, i)
		if !r.IsFace() {
			noFace = append(noFace, i)
		}
	}
	return all, noFace
}

// NumCards is the size of the full card pool.
const NumCards = 52

// Card returns the playing card with the given card index.
func Card(idx int) Item { return NewItem(CategoryPlayingCard, idx) }

// CardOf returns the playing card with rank r and suit s.
func CardOf(r Rank, s Suit) Item {
	for i := range cardRanks {
		if cardRanks[i] == r && cardSuits[i] == s {
			return Card(i)
		}
	}
	panic("game: invalid card")
}

// CardRank returns the rank of a playing card item.
func CardRank(it Item) Rank { return cardRanks[it.Index()%NumCards] }

// CardSuit returns the suit of a playing card item.
func CardSuit(it Item) Suit { return cardSuits[it.Index()%NumCards] }

// FrontPool returns the card indices a front draw chooses from.
func FrontPool(d Deck) []int {
	if d == DeckAbandoned {
		return noFaceCards
	}
	return allCards
}

// Enhanced returns the enhancement at idx in the Enhanced pool.
func Enhanced(idx int) Enhancement { return Enhancement(idx + 1) }

// NumEnhancements is the size of the Enhanced pool.
const NumEnhancements = 8

// SealFromPoll maps a seal type draw to a seal.
func SealFromPoll(v float64) Seal {
	switch {
	case v > 0.75:
		return SealRed
	case v > 0.5:
		return SealBlue
	case v > 0.25:
		return SealGold
	default:
		return SealPurple
	}
}
