package seedscan

import (
	"fmt"
	"io"
	"strings"

	"github.com/hupe1980/seedscan/internal/filter"
	"github.com/hupe1980/seedscan/internal/game"
	"github.com/hupe1980/seedscan/internal/seed"
	"github.com/hupe1980/seedscan/internal/sim"
)

const (
	// DefaultAnalyzeAntes is the number of antes Analyze replays by default.
	DefaultAnalyzeAntes = 8
	// DefaultShopSlots is the number of shop items Analyze lists per ante.
	DefaultShopSlots = 6
)

// PackReport is one booster pack and the cards it shows.
type PackReport struct {
	Pack  string
	Cards []string
}

// AnteReport lists the generated events of one ante.
type AnteReport struct {
	Ante    int
	Boss    string
	Voucher string
	Tags    [2]string
	Shop    []string
	Packs   []PackReport
}

// Report is the replay of one seed.
type Report struct {
	Seed  string
	Deck  string
	Stake string
	Antes []AnteReport
}

type analyzeOptions struct {
	deck      string
	stake     string
	antes     int
	shopSlots int
}

// AnalyzeOption configures Analyze.
type AnalyzeOption func(*analyzeOptions)

// WithDeck sets the deck by name ("Ghost" or "Ghost Deck"). Defaults to
// the Red deck.
func WithDeck(name string) AnalyzeOption {
	return func(o *analyzeOptions) { o.deck = name }
}

// WithStake sets the stake by name. Defaults to White.
func WithStake(name string) AnalyzeOption {
	return func(o *analyzeOptions) { o.stake = name }
}

// WithAntes sets how many antes to replay.
func WithAntes(n int) AnalyzeOption {
	return func(o *analyzeOptions) { o.antes = n }
}

// WithShopSlots sets how many shop items to list per ante.
func WithShopSlots(n int) AnalyzeOption {
	return func(o *analyzeOptions) { o.shopSlots = n }
}

// Analyze replays the first antes of a seed with the same generators the
// search uses: boss, voucher, both blind tags, the shop queue and every
// booster pack with its contents.
func Analyze(s string, optFns ...AnalyzeOption) (*Report, error) {
	o := analyzeOptions{antes: DefaultAnalyzeAntes, shopSlots: DefaultShopSlots}
	for _, fn := range optFns {
		fn(&o)
	}
	if o.antes < 1 || o.antes > filter.MaxAnte {
		return nil, &ErrInvalidOption{Option: "antes", Value: o.antes}
	}
	if o.shopSlots < 0 {
		return nil, &ErrInvalidOption{Option: "shop slots", Value: o.shopSlots}
	}

	sd, err := seed.Parse(s)
	if err != nil {
		return nil, err
	}
	deck, stake := game.DeckRed, game.StakeWhite
	if o.deck != "" {
		if deck, err = game.ParseDeck(o.deck); err != nil {
			return nil, &ConfigError{Section: "deck", Index: -1, Value: o.deck, Err: err}
		}
	}
	if o.stake != "" {
		if stake, err = game.ParseStake(o.stake); err != nil {
			return nil, &ConfigError{Section: "stake", Index: -1, Value: o.stake, Err: err}
		}
	}

	rep := sim.Analyze(sd, deck, stake, o.antes, o.shopSlots)
	out := &Report{
		Seed:  rep.Seed.String(),
		Deck:  rep.Deck.String(),
		Stake: rep.Stake.String(),
		Antes: make([]AnteReport, 0, len(rep.Antes)),
	}
	for _, a := range rep.Antes {
		ar := AnteReport{
			Ante:    a.Ante,
			Boss:    a.Boss.String(),
			Voucher: a.Voucher.String(),
			Tags:    [2]string{a.Tags[0].String(), a.Tags[1].String()},
			Shop:    itemNames(a.Shop),
		}
		for _, p := range a.Packs {
			ar.Packs = append(ar.Packs, PackReport{Pack: p.Pack.String(), Cards: itemNames(p.Cards)})
		}
		out.Antes = append(out.Antes, ar)
	}
	return out, nil
}

func itemNames(items []game.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.String()
	}
	return out
}

// WriteTo prints the report as indented text.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s, %s)\n", r.Seed, r.Deck, r.Stake)
	for _, a := range r.Antes {
		fmt.Fprintf(&b, "ante %d\n", a.Ante)
		fmt.Fprintf(&b, "  boss:    %s\n", a.Boss)
		fmt.Fprintf(&b, "  voucher: %s\n", a.Voucher)
		fmt.Fprintf(&b, "  tags:    %s, %s\n", a.Tags[0], a.Tags[1])
		if len(a.Shop) > 0 {
			fmt.Fprintf(&b, "  shop:    %s\n", strings.Join(a.Shop, ", "))
		}
		for _, p := range a.Packs {
			fmt.Fprintf(&b, "  %s: %s\n", p.Pack, strings.Join(p.Cards, ", "))
		}
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}
