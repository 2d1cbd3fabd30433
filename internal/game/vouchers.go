package game

import "math/bits"

// Vouchers come in (base, upgrade) pairs: an even index is a base voucher
// and the next odd index is its upgrade.
var voucherNames = []string{
	"Overstock", "Overstock Plus",
	"Clearance Sale", "Liquidation",
	"Hone", "Glow Up",
	"Reroll Surplus", "Reroll Glut",
	"Crystal Ball", "Omen Globe",
	"Telescope", "Observatory",
	"Grabber", "Nacho Tong",
	"Wasteful", "Recyclomancy",
	"Tarot Merchant", "Tarot Tycoon",
	"Planet Merchant", "Planet Tycoon",
	"Seed Money", "Money Tree",
	"Blank", "Antimatter",
	"Magic Trick", "Illusion",
	"Hieroglyph", "Petroglyph",
	"Director's Cut", "Retcon",
	"Paint Brush", "Palette",
}

// NumVouchers is the size of the voucher pool.
var NumVouchers = len(voucherNames)

// Voucher indices used by generators.
var (
	VoucherOverstock      = indexOf(voucherNames, "Overstock")
	VoucherHone           = indexOf(voucherNames, "Hone")
	VoucherGlowUp         = indexOf(voucherNames, "Glow Up")
	VoucherCrystalBall    = indexOf(voucherNames, "Crystal Ball")
	VoucherOmenGlobe      = indexOf(voucherNames, "Omen Globe")
	VoucherTelescope      = indexOf(voucherNames, "Telescope")
	VoucherTarotMerchant  = indexOf(voucherNames, "Tarot Merchant")
	VoucherTarotTycoon    = indexOf(voucherNames, "Tarot Tycoon")
	VoucherPlanetMerchant = indexOf(voucherNames, "Planet Merchant")
	VoucherPlanetTycoon   = indexOf(voucherNames, "Planet Tycoon")
	VoucherMagicTrick     = indexOf(voucherNames, "Magic Trick")
	VoucherIllusion       = indexOf(voucherNames, "Illusion")
)

// Voucher returns the voucher at idx.
func Voucher(idx int) Item { return NewItem(CategoryVoucher, idx) }

// VoucherPrerequisite returns the voucher that must be redeemed before idx
// becomes available, or -1 for base vouchers.
func VoucherPrerequisite(idx int) int {
	if idx%2 == 1 {
		return idx - 1
	}
	return -1
}

// VoucherSet is a set of redeemed vouchers.
type VoucherSet uint32

// With returns the set including idx.
func (s VoucherSet) With(idx int) VoucherSet { return s | 1<<uint(idx) }

// Has reports whether idx is redeemed.
func (s VoucherSet) Has(idx int) bool { return s&(1<<uint(idx)) != 0 }

// Len returns the number of redeemed vouchers.
func (s VoucherSet) Len() int { return bits.OnesCount32(uint32(s)) }

// Available reports whether idx can appear in the shop: it is not redeemed
// and its prerequisite, if any, is.
func (s VoucherSet) Available(idx int) bool {
	if s.Has(idx) {
		return false
	}
	p := VoucherPrerequisite(idx)
	return p < 0 || s.Has(p)
}
