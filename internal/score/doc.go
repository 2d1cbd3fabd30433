// Package score turns the SHOULD clauses of a compiled query into per-seed
// tallies and gates results by a cutoff.
//
// A Provider is shared by every worker of a search. The auto cutoff it owns
// only ever rises, so the reported scores of one search never fall below
// the best score seen when they were produced.
package score
