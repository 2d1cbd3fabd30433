package game

import (
	"fmt"
	"strings"
	"unicode"
)

// normalize lowercases s and drops everything but letters and digits, so
// "Mr. Bones", "mr bones" and "MrBones" compare equal.
func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

var lookup = func() map[Category]map[string]int {
	out := make(map[Category]map[string]int)
	for _, c := range []Category{
		CategoryJoker, CategoryTarot, CategoryPlanet, CategorySpectral,
		CategoryPlayingCard, CategoryVoucher, CategoryTag, CategoryBoss,
	} {
		m := make(map[string]int)
		for i, name := range namesOf(c) {
			m[normalize(name)] = i
		}
		out[c] = m
	}
	// Tags are also accepted without the suffix.
	for i, name := range tagNames {
		out[CategoryTag][normalize(strings.TrimSuffix(name, " Tag"))] = i
	}
	return out
}()

// UnknownNameError is returned when a name does not resolve in a category.
type UnknownNameError struct {
	Category Category
	Name     string
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Category, e.Name)
}

// LookupIn resolves name within category c.
func LookupIn(c Category, name string) (ItemType, error) {
	m, ok := lookup[c]
	if ok {
		if i, ok := m[normalize(name)]; ok {
			return MakeType(c, i), nil
		}
	}
	return 0, &UnknownNameError{Category: c, Name: name}
}

// Lookup resolves name in the first category that knows it.
func Lookup(name string) (ItemType, error) {
	for _, c := range []Category{
		CategoryJoker, CategoryTarot, CategoryPlanet, CategorySpectral,
		CategoryVoucher, CategoryTag, CategoryBoss, CategoryPlayingCard,
	} {
		if t, err := LookupIn(c, name); err == nil {
			return t, nil
		}
	}
	return 0, &UnknownNameError{Category: CategoryNone, Name: name}
}

// Names returns the names of category c in pool order.
func Names(c Category) []string {
	return append([]string(nil), namesOf(c)...)
}
