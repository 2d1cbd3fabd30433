package sim

import (
	"github.com/hupe1980/seedscan/internal/game"
	"github.com/hupe1980/seedscan/internal/simd"
)

// RunState is the part of a run that changes what later draws produce.
// Voucher bits only ever get added.
type RunState struct {
	Vouchers game.VoucherSet

	// Showman lets duplicates appear in packs and shops.
	Showman bool

	// TelescopePlanet is the planet of the most played hand, which a
	// Celestial pack shows first once Telescope is redeemed. The zero value
	// means unknown: the forced card is reported as excluded.
	TelescopePlanet game.Item
}

// NewRunState returns the state at the start of a run on deck d.
func NewRunState(d game.Deck) RunState {
	return RunState{Vouchers: d.StartingVouchers()}
}

// Activate redeems voucher idx.
func (r *RunState) Activate(idx int) { r.Vouchers = r.Vouchers.With(idx) }

// Has reports whether voucher idx is redeemed.
func (r *RunState) Has(idx int) bool { return r.Vouchers.Has(idx) }

// TarotRate is the shop weight of tarot cards.
func (r *RunState) TarotRate() float64 {
	switch {
	case r.Has(game.VoucherTarotTycoon):
		return 32
	case r.Has(game.VoucherTarotMerchant):
		return 9.6
	default:
		return 4
	}
}

// PlanetRate is the shop weight of planet cards.
func (r *RunState) PlanetRate() float64 {
	switch {
	case r.Has(game.VoucherPlanetTycoon):
		return 32
	case r.Has(game.VoucherPlanetMerchant):
		return 9.6
	default:
		return 4
	}
}

// PlayingCardRate is the shop weight of playing cards.
func (r *RunState) PlayingCardRate() float64 {
	if r.Has(game.VoucherMagicTrick) {
		return 4
	}
	return 0
}

// EditionRate is the edition multiplier.
func (r *RunState) EditionRate() float64 {
	switch {
	case r.Has(game.VoucherGlowUp):
		return 4
	case r.Has(game.VoucherHone):
		return 2
	default:
		return 1
	}
}

// VecRunState holds one RunState per lane.
type VecRunState [simd.Lanes]RunState

// NewVecRunState returns the starting state on deck d for every lane.
func NewVecRunState(d game.Deck) VecRunState {
	var v VecRunState
	for l := range v {
		v[l] = NewRunState(d)
	}
	return v
}

// HasVoucher returns the lanes that redeemed voucher idx.
func (v *VecRunState) HasVoucher(idx int) simd.Mask {
	var m simd.Mask
	for l := range v {
		if v[l].Has(idx) {
			m |= 1 << l
		}
	}
	return m
}

// Activate redeems the voucher items in lanes m. Non-voucher and excluded
// items are ignored.
func (v *VecRunState) Activate(items *game.ItemVec, m simd.Mask) {
	m.ForEach(func(l int) {
		it := items[l]
		if !it.IsExcluded() && it.Category() == game.CategoryVoucher {
			v[l].Activate(it.Index())
		}
	})
}
