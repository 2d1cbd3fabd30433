package game

// Rarity of a joker.
type Rarity uint8

const (
	RarityCommon Rarity = iota + 1
	RarityUncommon
	RarityRare
	RarityLegendary
)

func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityUncommon:
		return "Uncommon"
	case RarityRare:
		return "Rare"
	case RarityLegendary:
		return "Legendary"
	default:
		return "Unknown"
	}
}

// Joker pools in game order. The global joker index is the position in
// jokerNames; each rarity pool is a contiguous range of it.
var (
	commonJokers = []string{
		"Joker", "Greedy Joker", "Lusty Joker", "Wrathful Joker", "Gluttonous Joker",
		"Jolly Joker", "Zany Joker", "Mad Joker", "Crazy Joker", "Droll Joker",
		"Sly Joker", "Wily Joker", "Clever Joker", "Devious Joker", "Crafty Joker",
		"Half Joker", "Credit Card", "Banner", "Mystic Summit", "8 Ball",
		"Misprint", "Raised Fist", "Chaos the Clown", "Scary Face", "Abstract Joker",
		"Delayed Gratification", "Gros Michel", "Even Steven", "Odd Todd", "Scholar",
		"Business Card", "Supernova", "Ride the Bus", "Egg", "Runner",
		"Ice Cream", "Splash", "Blue Joker", "Faceless Joker", "Green Joker",
		"Superposition", "To Do List", "Cavendish", "Red Card", "Square Joker",
		"Riff-raff", "Photograph", "Reserved Parking", "Mail-In Rebate", "Hallucination",
		"Fortune Teller", "Juggler", "Drunkard", "Golden Joker", "Popcorn",
		"Walkie Talkie", "Smiley Face", "Golden Ticket", "Swashbuckler", "Hanging Chad",
		"Shoot the Moon",
	}
	uncommonJokers = []string{
		"Joker Stencil", "Four Fingers", "Mime", "Ceremonial Dagger", "Marble Joker",
		"Loyalty Card", "Dusk", "Fibonacci", "Steel Joker", "Hack",
		"Pareidolia", "Space Joker", "Burglar", "Blackboard", "Sixth Sense",
		"Constellation", "Hiker", "Card Sharp", "Madness", "Seance",
		"Vampire", "Shortcut", "Hologram", "Cloud 9", "Rocket",
		"Midas Mask", "Luchador", "Gift Card", "Turtle Bean", "Erosion",
		"To the Moon", "Stone Joker", "Lucky Cat", "Bull", "Diet Cola",
		"Trading Card", "Flash Card", "Spare Trousers", "Ramen", "Seltzer",
		"Castle", "Mr. Bones", "Acrobat", "Sock and Buskin", "Troubadour",
		"Certificate", "Smeared Joker", "Throwback", "Rough Gem", "Bloodstone",
		"Arrowhead", "Onyx Agate", "Glass Joker", "Showman", "Flower Pot",
		"Merry Andy", "Oops! All 6s", "The Idol", "Seeing Double", "Matador",
		"Satellite", "Cartomancer", "Astronomer", "Bootstraps",
	}
	rareJokers = []string{
		"DNA", "Vagabond", "Baron", "Obelisk", "Baseball Card",
		"Ancient Joker", "Campfire", "Blueprint", "Wee Joker", "Hit the Road",
		"The Duo", "The Trio", "The Family", "The Order", "The Tribe",
		"Stuntman", "Invisible Joker", "Brainstorm", "Driver's License", "Burnt Joker",
	}
	legendaryJokers = []string{
		"Canio", "Triboulet", "Yorick", "Chicot", "Perkeo",
	}

	jokerNames = concat(commonJokers, uncommonJokers, rareJokers, legendaryJokers)

	rarityOffset = [...]int{
		RarityCommon:    0,
		RarityUncommon:  len(commonJokers),
		RarityRare:      len(commonJokers) + len(uncommonJokers),
		RarityLegendary: len(commonJokers) + len(uncommonJokers) + len(rareJokers),
	}
	raritySize = [...]int{
		RarityCommon:    len(commonJokers),
		RarityUncommon:  len(uncommonJokers),
		RarityRare:      len(rareJokers),
		RarityLegendary: len(legendaryJokers),
	}
)

// NumJokers is the number of jokers across all rarities.
var NumJokers = len(jokerNames)

// PoolSize returns the size of the rarity's joker pool.
func PoolSize(r Rarity) int { return raritySize[r] }

// Joker returns the joker at idx within the rarity pool r.
func Joker(r Rarity, idx int) Item {
	return NewItem(CategoryJoker, rarityOffset[r]+idx)
}

// JokerRarity returns the rarity of a joker item type.
func JokerRarity(t ItemType) Rarity {
	i := t.Index()
	switch {
	case i < rarityOffset[RarityUncommon]:
		return RarityCommon
	case i < rarityOffset[RarityRare]:
		return RarityUncommon
	case i < rarityOffset[RarityLegendary]:
		return RarityRare
	default:
		return RarityLegendary
	}
}

// RarityFromPoll maps a rarity draw to a rarity.
func RarityFromPoll(v float64) Rarity {
	switch {
	case v > 0.95:
		return RarityRare
	case v > 0.7:
		return RarityUncommon
	default:
		return RarityCommon
	}
}

// Jokers that are unavailable at the start of a run: Cavendish waits for
// Gros Michel to go extinct, and the enhancement-gated jokers need a
// matching enhanced card in the deck.
var lockedJokers = func() map[int]bool {
	m := make(map[int]bool)
	for _, name := range []string{"Cavendish", "Golden Ticket", "Steel Joker", "Stone Joker", "Lucky Cat", "Glass Joker"} {
		m[indexOf(jokerNames, name)] = true
	}
	return m
}()

// JokerLocked reports whether the joker at idx in rarity pool r is
// unavailable in a fresh run.
func JokerLocked(r Rarity, idx int) bool {
	return lockedJokers[rarityOffset[r]+idx]
}

// EditionFromPoll maps an edition draw to an edition. rate is the edition
// rate multiplier (1 normally, 2 with Hone, 4 with Glow Up), mod scales
// the non-negative thresholds, and noNeg disables Negative.
func EditionFromPoll(v, rate, mod float64, noNeg bool) Edition {
	switch {
	case !noNeg && v > 1-0.003*mod:
		return EditionNegative
	case v > 1-0.006*rate*mod:
		return EditionPolychrome
	case v > 1-0.02*rate*mod:
		return EditionHolographic
	case v > 1-0.04*rate*mod:
		return EditionFoil
	default:
		return EditionNone
	}
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

func indexOf(list []string, name string) int {
	for i, n := range list {
		if n == name {
			return i
		}
	}
	panic("game: unknown name " + name)
}
