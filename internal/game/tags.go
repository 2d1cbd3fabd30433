package game

var tagNames = []string{
	"Uncommon Tag", "Rare Tag", "Negative Tag", "Foil Tag", "Holographic Tag",
	"Polychrome Tag", "Investment Tag", "Voucher Tag", "Boss Tag", "Standard Tag",
	"Charm Tag", "Meteor Tag", "Buffoon Tag", "Handy Tag", "Garbage Tag",
	"Ethereal Tag", "Coupon Tag", "Double Tag", "Juggle Tag", "D6 Tag",
	"Top-up Tag", "Speed Tag", "Orbital Tag", "Economy Tag",
}

// NumTags is the size of the tag pool.
var NumTags = len(tagNames)

var tagMinAnte = func() []int {
	m := make([]int, len(tagNames))
	for _, name := range []string{
		"Negative Tag", "Standard Tag", "Meteor Tag", "Buffoon Tag", "Handy Tag",
		"Garbage Tag", "Ethereal Tag", "Top-up Tag", "Orbital Tag",
	} {
		m[indexOf(tagNames, name)] = 2
	}
	return m
}()

// Tag returns the tag at idx.
func Tag(idx int) Item { return NewItem(CategoryTag, idx) }

// TagAvailable reports whether the tag at idx can be drawn in ante.
func TagAvailable(idx, ante int) bool { return tagMinAnte[idx] <= ante }
