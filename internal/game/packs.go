package game

// PackKind is the content type of a booster pack.
type PackKind uint8

const (
	PackArcana PackKind = iota
	PackCelestial
	PackSpectral
	PackStandard
	PackBuffoon
)

var packKindNames = [...]string{"Arcana", "Celestial", "Spectral", "Standard", "Buffoon"}

func (k PackKind) String() string {
	if int(k) < len(packKindNames) {
		return packKindNames[k]
	}
	return "Unknown"
}

// PackSize is the size class of a booster pack.
type PackSize uint8

const (
	PackNormal PackSize = iota
	PackJumbo
	PackMega
)

var packSizeNames = [...]string{"Normal", "Jumbo", "Mega"}

func (s PackSize) String() string {
	if int(s) < len(packSizeNames) {
		return packSizeNames[s]
	}
	return "Unknown"
}

// Booster is one entry of the booster pool.
type Booster struct {
	Kind   PackKind
	Size   PackSize
	Cards  int
	Choose int
	Weight float64
}

// MaxPackCards is the largest number of cards any pack shows.
const MaxPackCards = 5

// boosters is the booster pool in game order. Art variants of the same
// pack are separate entries with their own weight.
var boosters = func() []Booster {
	var out []Booster
	add := func(k PackKind, s PackSize, n, cards, choose int, w float64) {
		for i := 0; i < n; i++ {
			out = append(out, Booster{Kind: k, Size: s, Cards: cards, Choose: choose, Weight: w})
		}
	}
	add(PackArcana, PackNormal, 4, 3, 1, 1)
	add(PackArcana, PackJumbo, 2, 5, 1, 1)
	add(PackArcana, PackMega, 2, 5, 2, 0.25)
	add(PackCelestial, PackNormal, 4, 3, 1, 1)
	add(PackCelestial, PackJumbo, 2, 5, 1, 1)
	add(PackCelestial, PackMega, 2, 5, 2, 0.25)
	add(PackSpectral, PackNormal, 2, 2, 1, 0.3)
	add(PackSpectral, PackJumbo, 1, 4, 1, 0.3)
	add(PackSpectral, PackMega, 1, 4, 2, 0.07)
	add(PackStandard, PackNormal, 4, 3, 1, 1)
	add(PackStandard, PackJumbo, 2, 5, 1, 1)
	add(PackStandard, PackMega, 2, 5, 2, 0.25)
	add(PackBuffoon, PackNormal, 2, 2, 1, 0.6)
	add(PackBuffoon, PackJumbo, 1, 4, 1, 0.6)
	add(PackBuffoon, PackMega, 1, 4, 2, 0.15)
	return out
}()

var boosterNames = func() []string {
	out := make([]string, len(boosters))
	for i, b := range boosters {
		out[i] = b.Name()
	}
	return out
}()

var boosterTotalWeight = func() float64 {
	var w float64
	for _, b := range boosters {
		w += b.Weight
	}
	return w
}()

// FirstBuffoon is the pack that always fills the first pack slot of a run.
var FirstBuffoon = indexOfBooster(PackBuffoon, PackNormal)

// Name returns the display name, e.g. "Jumbo Arcana Pack".
func (b Booster) Name() string {
	if b.Size == PackNormal {
		return b.Kind.String() + " Pack"
	}
	return b.Size.String() + " " + b.Kind.String() + " Pack"
}

// NumBoosters is the size of the booster pool.
var NumBoosters = len(boosters)

// BoosterAt returns the booster pool entry idx.
func BoosterAt(idx int) Booster { return boosters[idx] }

// BoosterItem returns the booster at idx as an item.
func BoosterItem(idx int) Item { return NewItem(CategoryBooster, idx) }

// BoosterFromPoll walks the cumulative weights the way the game does: the
// first entry whose weight window contains poll*total wins.
func BoosterFromPoll(v float64) int {
	poll := v * boosterTotalWeight
	var it float64
	for i, b := range boosters {
		it += b.Weight
		if it >= poll && it-b.Weight <= poll {
			return i
		}
	}
	return len(boosters) - 1
}

// PacksPerAnte returns the number of pack slots of ante: two per shop,
// with the first ante only visiting two shops before the boss.
func PacksPerAnte(ante int) int {
	if ante <= 1 {
		return 4
	}
	return 6
}

func indexOfBooster(k PackKind, s PackSize) int {
	for i, b := range boosters {
		if b.Kind == k && b.Size == s {
			return i
		}
	}
	panic("game: unknown booster")
}
