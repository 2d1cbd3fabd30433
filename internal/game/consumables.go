package game

var tarotNames = []string{
	"The Fool", "The Magician", "The High Priestess", "The Empress", "The Emperor",
	"The Hierophant", "The Lovers", "The Chariot", "Justice", "The Hermit",
	"The Wheel of Fortune", "Strength", "The Hanged Man", "Death", "Temperance",
	"The Devil", "The Tower", "The Star", "The Moon", "The Sun",
	"Judgement", "The World",
}

var planetNames = []string{
	"Mercury", "Venus", "Earth", "Mars", "Jupiter", "Saturn",
	"Uranus", "Neptune", "Pluto", "Planet X", "Ceres", "Eris",
}

var spectralNames = []string{
	"Familiar", "Grim", "Incantation", "Talisman", "Aura", "Wraith",
	"Sigil", "Ouija", "Ectoplasm", "Immolate", "Ankh", "Deja Vu",
	"Hex", "Trance", "Medium", "Cryptid", "The Soul", "Black Hole",
}

// Pool sizes.
var (
	NumTarots    = len(tarotNames)
	NumPlanets   = len(planetNames)
	NumSpectrals = len(spectralNames)
)

var (
	// TheSoul is drawn by the soul poll of Arcana and Spectral packs.
	TheSoul = MakeType(CategorySpectral, indexOf(spectralNames, "The Soul"))
	// BlackHole is drawn by the soul poll of Celestial and Spectral packs.
	BlackHole = MakeType(CategorySpectral, indexOf(spectralNames, "Black Hole"))

	planetXIndex = indexOf(planetNames, "Planet X")
)

// Tarot returns the tarot at idx.
func Tarot(idx int) Item { return NewItem(CategoryTarot, idx) }

// Planet returns the planet at idx.
func Planet(idx int) Item { return NewItem(CategoryPlanet, idx) }

// Spectral returns the spectral at idx.
func Spectral(idx int) Item { return NewItem(CategorySpectral, idx) }

// PlanetLocked reports whether the planet at idx is unavailable in a fresh
// run. Planet X, Ceres and Eris unlock once their poker hand is played.
func PlanetLocked(idx int) bool { return idx >= planetXIndex }

// SpectralHidden reports whether the spectral at idx never appears from
// the regular pool draw.
func SpectralHidden(idx int) bool {
	t := MakeType(CategorySpectral, idx)
	return t == TheSoul || t == BlackHole
}
