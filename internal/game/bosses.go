package game

// Boss blinds in the order of their game keys (bl_arm, bl_club, ...).
var bosses = []struct {
	name     string
	minAnte  int
	showdown bool
}{
	{"The Arm", 2, false},
	{"The Club", 1, false},
	{"The Eye", 3, false},
	{"Amber Acorn", 0, true},
	{"Cerulean Bell", 0, true},
	{"Crimson Heart", 0, true},
	{"Verdant Leaf", 0, true},
	{"Violet Vessel", 0, true},
	{"The Fish", 2, false},
	{"The Flint", 2, false},
	{"The Goad", 1, false},
	{"The Head", 1, false},
	{"The Hook", 1, false},
	{"The House", 2, false},
	{"The Manacle", 1, false},
	{"The Mark", 2, false},
	{"The Mouth", 2, false},
	{"The Needle", 2, false},
	{"The Ox", 6, false},
	{"The Pillar", 1, false},
	{"The Plant", 4, false},
	{"The Psychic", 1, false},
	{"The Serpent", 5, false},
	{"The Tooth", 3, false},
	{"The Wall", 2, false},
	{"The Water", 2, false},
	{"The Wheel", 2, false},
	{"The Window", 1, false},
}

var bossNames = func() []string {
	out := make([]string, len(bosses))
	for i, b := range bosses {
		out[i] = b.name
	}
	return out
}()

// NumBosses is the number of boss blinds.
var NumBosses = len(bosses)

// WinAnte is the ante of the first showdown boss.
const WinAnte = 8

// Boss returns the boss at idx.
func Boss(idx int) Item { return NewItem(CategoryBoss, idx) }

// IsShowdown reports whether ante has a showdown boss.
func IsShowdown(ante int) bool { return ante >= 2 && ante%WinAnte == 0 }

// BossEligible reports whether the boss at idx can appear in ante, before
// usage balancing.
func BossEligible(idx, ante int) bool {
	b := bosses[idx]
	if b.showdown {
		return IsShowdown(ante)
	}
	return b.minAnte <= max(1, ante) && !IsShowdown(ante)
}
