// Package game holds the static game catalog: item pools in draw order,
// decks, stakes, vouchers, tags, boss blinds and booster packs, plus the
// packed Item representation generators return.
//
// Pool order matters. Every draw is an index into one of these tables, so
// an entry out of place shifts every result behind it.
package game
