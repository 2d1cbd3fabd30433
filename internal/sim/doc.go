// Package sim replays the random events of a run for eight seeds at once.
//
// A Context wraps the lanes of one batch. Generators draw from streams the
// caller creates through the Context and return one item per lane; lanes
// outside the mask passed to a generator are left untouched, so a stream
// only advances for the seeds that actually reached that draw in the game.
//
// Streams whose output nobody observes can be disabled. A disabled stream
// never advances and its generator yields game.ItemExcluded.
package sim
