package sim

import (
	"strconv"

	"github.com/hupe1980/seedscan/internal/game"
	"github.com/hupe1980/seedscan/internal/prng"
	"github.com/hupe1980/seedscan/internal/seed"
	"github.com/hupe1980/seedscan/internal/simd"
)

// Context is the eight-lane view of one batch. It is built by the worker
// that owns the lanes and must not outlive the batch.
type Context struct {
	lanes *prng.Lanes
	deck  game.Deck
	stake game.Stake
}

// NewContext wraps lanes for a run on deck and stake.
func NewContext(lanes *prng.Lanes, deck game.Deck, stake game.Stake) Context {
	return Context{lanes: lanes, deck: deck, stake: stake}
}

// Valid returns the live lanes.
func (c *Context) Valid() simd.Mask { return c.lanes.Valid() }

// Deck returns the deck of the run.
func (c *Context) Deck() game.Deck { return c.deck }

// Stake returns the stake of the run.
func (c *Context) Stake() game.Stake { return c.stake }

// Seed returns the seed in lane l.
func (c *Context) Seed(l int) seed.Seed { return c.lanes.Seed(l) }

// NewRunState returns the starting run state for every lane.
func (c *Context) NewRunState() VecRunState { return NewVecRunState(c.deck) }

// Stream creates the stream for key, or an excluded one when disabled.
func (c *Context) Stream(key string, enabled bool) prng.VecStream {
	if !enabled {
		return prng.InvalidStream()
	}
	return c.lanes.Stream(key)
}

// ResampleStream creates the resampling stream for key, or an excluded one
// when disabled.
func (c *Context) ResampleStream(key string, enabled bool) prng.VecResampleStream {
	if !enabled {
		return prng.InvalidResampleStream()
	}
	return c.lanes.ResampleStream(key)
}

// noAnte marks keys the game builds without the ante number.
const noAnte = -1

// streamKey builds prefix+ante+suffix the way the game concatenates keys.
func streamKey(prefix string, ante int, suffix string) string {
	if ante == noAnte {
		return prefix + suffix
	}
	return prefix + strconv.Itoa(ante) + suffix
}

// lazyStream is a stream created on first use. Most streams of an ante are
// never touched for most batches, so creation is deferred.
type lazyStream struct {
	s     prng.VecStream
	ready bool
}

func (c *Context) open(l *lazyStream, enabled bool, prefix string, ante int, suffix string) *prng.VecStream {
	if !l.ready {
		if enabled {
			l.s = c.lanes.Stream(streamKey(prefix, ante, suffix))
		} else {
			l.s = prng.InvalidStream()
		}
		l.ready = true
	}
	return &l.s
}

type lazyResample struct {
	s     prng.VecResampleStream
	ready bool
}

func (c *Context) openResample(l *lazyResample, enabled bool, prefix string, ante int, suffix string) *prng.VecResampleStream {
	if !l.ready {
		if enabled {
			l.s = c.lanes.ResampleStream(streamKey(prefix, ante, suffix))
		} else {
			l.s = prng.InvalidResampleStream()
		}
		l.ready = true
	}
	return &l.s
}

var anteKeys = []struct{ prefix, suffix string }{
	{"cdt", ""}, {"rarity", "sho"}, {"Joker1sho", ""}, {"Joker2sho", ""}, {"Joker3sho", ""},
	{"edisho", ""}, {"etperpoll", ""}, {"ssjr", ""}, {"Tarotsho", ""}, {"Planetsho", ""},
	{"Spectralsho", ""}, {"frontsho", ""}, {"Enhancedsho", ""},
	{"Voucher", ""}, {"Tag", ""}, {"shop_pack", ""},
	{"Tarotar1", ""}, {"soul_Tarot", ""}, {"Spectralar2", ""}, {"soul_Spectral", ""},
	{"Planetpl1", ""}, {"soul_Planet", ""}, {"Spectralspe", ""},
	{"rarity", "buf"}, {"Joker1buf", ""}, {"Joker2buf", ""}, {"Joker3buf", ""},
	{"edibuf", ""}, {"packetper", ""}, {"packssjr", ""},
	{"stdset", ""}, {"frontsta", ""}, {"Enhancedsta", ""}, {"standard_edition", ""},
	{"stdseal", ""}, {"stdsealtype", ""}, {"edisou", ""},
}

var globalKeys = []string{"boss", "omen_globe", "Joker4", "illusion"}

// Keys returns every stream key the generators use in ante, including the
// keys without an ante number.
func Keys(ante int) []string {
	out := make([]string, 0, len(anteKeys)+len(globalKeys))
	for _, k := range anteKeys {
		out = append(out, streamKey(k.prefix, ante, k.suffix))
	}
	return append(out, globalKeys...)
}

// RunStreams holds the streams whose keys carry no ante number. They run
// across the whole simulated run, so one RunStreams must be shared by all
// ante streams of the same run.
type RunStreams struct {
	illusion  lazyStream
	omenGlobe lazyStream
}
