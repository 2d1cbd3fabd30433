// Package search runs a compiled query over a seed space on a fixed pool
// of workers.
//
// A Scheduler moves through Paused, Running and then Completed or
// Disposed. Workers claim batch indices from a shared counter, expand
// each batch into groups of eight lanes, and run the filter stages. Seeds
// that survive a stage are copied into a per-worker buffer for the next
// stage so that later stages run on full lanes. Results are handed to the
// caller from a single goroutine.
package search
