// Package seedscan searches the seed space of a deterministic card-game run
// generator for seeds whose simulated runs match a query.
//
// A seed is up to eight characters from a 35-symbol alphabet. Together with
// a deck and a stake it fixes every random event of a run: shop items,
// booster packs and their contents, vouchers, blind tags and boss blinds.
// seedscan reproduces the game's pseudo-random functions bit for bit and
// evaluates them on eight seeds at a time.
//
// # Quick Start
//
//	q := &seedscan.Query{
//	    Must: []seedscan.Clause{
//	        {Type: "Voucher", Value: "Telescope", Antes: []int{1}},
//	    },
//	    Should: []seedscan.Clause{
//	        {Type: "Tag", Value: "Negative Tag", Antes: []int{1, 2, 3}, Score: 2},
//	    },
//	}
//
//	s, err := seedscan.New(q,
//	    seedscan.WithThreads(8),
//	    seedscan.WithResultHandler(func(r seedscan.Result) {
//	        fmt.Println(r.Seed, r.Score, r.Tallies)
//	    }),
//	)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	if err := s.Start(); err != nil {
//	    return err
//	}
//	return s.Wait()
//
// # Queries
//
// MUST clauses must all match, MUST-NOT clauses must not match and SHOULD
// clauses are counted: a seed's score is the sum of its SHOULD tallies
// times their weights. Every clause names a category (Joker, SoulJoker,
// Voucher, TarotCard, PlanetCard, SpectralCard, PlayingCard, Boss, Tag,
// SmallBlindTag, BigBlindTag) or nests clauses with And / Or, and is
// restricted to a set of antes. Invalid clauses are reported by New as a
// *ConfigError naming the section and index.
//
// # Seed sources
//
// By default the whole 8-character space is enumerated in batches of 35^n
// seeds (WithBatchChars). WithBatchRange selects a contiguous range of
// batches so a search can be split or resumed. WithSeeds, WithRandomSeeds
// and WithSingleSeed search a list, a reproducible random sample or one
// seed instead.
//
// # Lifecycle
//
// New starts the workers paused. Start runs them, Pause parks them after
// their current batch and Close stops the search. Results are delivered
// from a single goroutine, so the result handler never runs concurrently
// with itself.
//
// # Observability
//
// Searches log through a log/slog based Logger (WithLogger, WithLogLevel)
// tagged with a run id, and report batch, match and stage-buffer events to
// a MetricsCollector (WithMetricsCollector). metric/prometheus provides a
// Prometheus collector. LoadConfig reads SEEDSCAN_* environment variables.
package seedscan
