package sim

import (
	"github.com/hupe1980/seedscan/internal/game"
	"github.com/hupe1980/seedscan/internal/prng"
	"github.com/hupe1980/seedscan/internal/simd"
)

// CreateVoucherStream returns the voucher stream of ante.
func (c *Context) CreateVoucherStream(ante int, enabled bool) prng.VecResampleStream {
	return c.ResampleStream(streamKey("Voucher", ante, ""), enabled)
}

// NextVoucher draws the shop voucher for the lanes in m. Redeemed vouchers
// and upgrades whose base is not redeemed resample.
func (c *Context) NextVoucher(s *prng.VecResampleStream, rs *VecRunState, m simd.Mask) game.ItemVec {
	out := game.ExcludedVec()
	m &= c.Valid()
	if s.Invalid() || !m.Any() {
		return out
	}
	idx := s.Next(m, game.NumVouchers, func(l, j int) bool {
		return !rs[l].Vouchers.Available(j)
	})
	m.ForEach(func(l int) {
		if idx[l] >= 0 {
			out[l] = game.Voucher(idx[l])
		}
	})
	return out
}

// CreateTagStream returns the tag stream of ante. The small blind tag is
// its first draw and the big blind tag the second.
func (c *Context) CreateTagStream(ante int, enabled bool) prng.VecResampleStream {
	return c.ResampleStream(streamKey("Tag", ante, ""), enabled)
}

// NextTag draws a tag for the lanes in m, resampling tags gated to a later
// ante.
func (c *Context) NextTag(s *prng.VecResampleStream, ante int, m simd.Mask) game.ItemVec {
	out := game.ExcludedVec()
	m &= c.Valid()
	if s.Invalid() || !m.Any() {
		return out
	}
	idx := s.Next(m, game.NumTags, func(_, j int) bool {
		return !game.TagAvailable(j, ante)
	})
	m.ForEach(func(l int) { out[l] = game.Tag(idx[l]) })
	return out
}

// BossStream draws boss blinds. The game keeps one boss stream for the
// whole run and avoids bosses until every eligible one was used equally
// often, so the stream carries per-lane usage counts.
type BossStream struct {
	s    prng.VecStream
	used [simd.Lanes][]uint8
}

// CreateBossStream returns the boss stream of a run.
func (c *Context) CreateBossStream(enabled bool) BossStream {
	b := BossStream{s: c.Stream("boss", enabled)}
	for l := range b.used {
		b.used[l] = make([]uint8, game.NumBosses)
	}
	return b
}

// NextBoss draws the boss of ante for the lanes in m. Call it once per
// ante in ascending order; skipping an ante desynchronizes the stream.
func (c *Context) NextBoss(b *BossStream, ante int, m simd.Mask) game.ItemVec {
	out := game.ExcludedVec()
	m &= c.Valid()
	if b.s.Invalid || !m.Any() {
		return out
	}

	var eligible [simd.Lanes][]int
	var sizes [simd.Lanes]int
	m.ForEach(func(l int) {
		eligible[l] = eligibleBosses(b.used[l], ante)
		sizes[l] = len(eligible[l])
	})

	idx := b.s.IndexLanes(m, &sizes)
	m.ForEach(func(l int) {
		if idx[l] < 0 {
			return
		}
		boss := eligible[l][idx[l]]
		b.used[l][boss]++
		out[l] = game.Boss(boss)
	})
	return out
}

// eligibleBosses lists the bosses of ante that were used least often, in
// key order.
func eligibleBosses(used []uint8, ante int) []int {
	out := make([]int, 0, game.NumBosses)
	minUse := uint8(255)
	for i := 0; i < game.NumBosses; i++ {
		if game.BossEligible(i, ante) && used[i] < minUse {
			minUse = used[i]
		}
	}
	for i := 0; i < game.NumBosses; i++ {
		if game.BossEligible(i, ante) && used[i] == minUse {
			out = append(out, i)
		}
	}
	return out
}
