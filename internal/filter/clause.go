package filter

import (
	"fmt"
	"strings"
)

// Clause is one query condition as the configuration layer hands it over.
type Clause struct {
	Type        string   `json:"type"`
	Value       string   `json:"value,omitempty"`
	Values      []string `json:"values,omitempty"`
	Antes       []int    `json:"antes,omitempty"`
	Edition     string   `json:"edition,omitempty"`
	PackSlots   []int    `json:"packSlots,omitempty"`
	ShopSlots   []int    `json:"shopSlots,omitempty"`
	Sources     []string `json:"sources,omitempty"`
	Seal        string   `json:"seal,omitempty"`
	Enhancement string   `json:"enhancement,omitempty"`
	Rank        string   `json:"rank,omitempty"`
	Suit        string   `json:"suit,omitempty"`
	Score       int      `json:"score,omitempty"`
	Label       string   `json:"label,omitempty"`
	Clauses     []Clause `json:"clauses,omitempty"`
	IsInverted  bool     `json:"isInverted,omitempty"`
}

// Query is a full search request.
type Query struct {
	Must    []Clause `json:"must,omitempty"`
	Should  []Clause `json:"should,omitempty"`
	MustNot []Clause `json:"mustNot,omitempty"`
	Deck    string   `json:"deck,omitempty"`
	Stake   string   `json:"stake,omitempty"`
}

// values returns Value and Values merged.
func (c *Clause) values() []string {
	var out []string
	if c.Value != "" {
		out = append(out, c.Value)
	}
	return append(out, c.Values...)
}

// label returns the display label of a clause.
func (c *Clause) label() string {
	if c.Label != "" {
		return c.Label
	}
	if vs := c.values(); len(vs) > 0 {
		return strings.Join(vs, "|")
	}
	return c.Type
}

// Kind is the category of a clause.
type Kind uint8

const (
	KindJoker Kind = iota
	KindSoulJoker
	KindVoucher
	KindTarot
	KindPlanet
	KindSpectral
	KindPlayingCard
	KindBoss
	KindTag
	KindSmallBlindTag
	KindBigBlindTag
	KindAnd
	KindOr
)

var kindNames = [...]string{
	KindJoker:         "Joker",
	KindSoulJoker:     "SoulJoker",
	KindVoucher:       "Voucher",
	KindTarot:         "TarotCard",
	KindPlanet:        "PlanetCard",
	KindSpectral:      "SpectralCard",
	KindPlayingCard:   "PlayingCard",
	KindBoss:          "Boss",
	KindTag:           "Tag",
	KindSmallBlindTag: "SmallBlindTag",
	KindBigBlindTag:   "BigBlindTag",
	KindAnd:           "And",
	KindOr:            "Or",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

var kindAliases = map[string]Kind{
	"tarot":        KindTarot,
	"planet":       KindPlanet,
	"spectral":     KindSpectral,
	"standardcard": KindPlayingCard,
	"card":         KindPlayingCard,
	"legendary":    KindSoulJoker,
	"bossblind":    KindBoss,
}

// ParseKind resolves a clause type, ignoring case.
func ParseKind(s string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	if n == "" {
		return 0, errMissingType
	}
	for k, name := range kindNames {
		if strings.ToLower(name) == n {
			return Kind(k), nil
		}
	}
	if k, ok := kindAliases[n]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("unknown clause type %q", s)
}

// isTag reports whether k is one of the tag kinds.
func (k Kind) isTag() bool {
	return k == KindTag || k == KindSmallBlindTag || k == KindBigBlindTag
}

// group returns the kind whose scanner serves k.
func (k Kind) group() Kind {
	if k.isTag() {
		return KindTag
	}
	return k
}
