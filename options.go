package seedscan

import (
	"log/slog"
	"time"
)

const (
	// DefaultBatchChars is the number of seed characters enumerated inside
	// one sequential batch.
	DefaultBatchChars = 3

	defaultLogLevel = slog.LevelInfo
)

// mode is the seed source of a search.
type mode int

const (
	modeSequential mode = iota
	modeList
	modeRandom
	modeSingle
)

func (m mode) String() string {
	switch m {
	case modeList:
		return "list"
	case modeRandom:
		return "random"
	case modeSingle:
		return "single"
	default:
		return "sequential"
	}
}

type options struct {
	threads    int
	batchChars int
	startBatch uint64
	endBatch   uint64

	modes        int
	mode         mode
	seeds        []string
	randomCount  uint64
	randomSource uint64
	single       string

	cutoff     int
	autoCutoff bool
	chaining   bool

	onResult   func(Result)
	onProgress func(Progress)

	logger           *Logger
	logLevel         *slog.Level
	metricsCollector MetricsCollector

	memoryLimit  int64
	rateLimit    float64
	stageTimeout time.Duration
}

func defaultOptions() options {
	return options{
		batchChars:       DefaultBatchChars,
		chaining:         true,
		metricsCollector: NoopMetricsCollector{},
	}
}

// Option configures a Search.
type Option func(*options)

// WithThreads sets the number of worker goroutines.
// Zero or negative means runtime.NumCPU().
func WithThreads(n int) Option {
	return func(o *options) {
		o.threads = n
	}
}

// WithBatchChars sets how many seed characters a sequential batch
// enumerates (1-7). A batch covers 35^n seeds and there are 35^(8-n)
// batches.
func WithBatchChars(n int) Option {
	return func(o *options) {
		o.batchChars = n
	}
}

// WithBatchRange restricts a sequential search to the batches
// [start, end). An end of 0 runs to the last batch.
//
// Ranges partition the search space, so a search can be split across
// processes or resumed from the last completed batch.
func WithBatchRange(start, end uint64) Option {
	return func(o *options) {
		o.startBatch = start
		o.endBatch = end
	}
}

// WithSeeds searches the given seeds instead of enumerating the space.
// Duplicates are searched once.
func WithSeeds(seeds ...string) Option {
	return func(o *options) {
		o.modes++
		o.mode = modeList
		o.seeds = seeds
	}
}

// WithRandomSeeds searches count random 8-character seeds. The same
// source always yields the same seeds.
func WithRandomSeeds(count, source uint64) Option {
	return func(o *options) {
		o.modes++
		o.mode = modeRandom
		o.randomCount = count
		o.randomSource = source
	}
}

// WithSingleSeed searches exactly one seed.
func WithSingleSeed(s string) Option {
	return func(o *options) {
		o.modes++
		o.mode = modeSingle
		o.single = s
	}
}

// WithCutoff drops seeds whose score is below cutoff.
func WithCutoff(cutoff int) Option {
	return func(o *options) {
		o.cutoff = cutoff
		o.autoCutoff = false
	}
}

// WithAutoCutoff reports a seed only if its score is at least the best
// score seen so far. The cutoff starts at the given value.
func WithAutoCutoff(start int) Option {
	return func(o *options) {
		o.cutoff = start
		o.autoCutoff = true
	}
}

// WithChaining toggles one filter stage per MUST clause for
// single-category queries without exclusions (on by default). With
// chaining off every query compiles into one composite stage.
func WithChaining(enabled bool) Option {
	return func(o *options) {
		o.chaining = enabled
	}
}

// WithResultHandler sets the callback for reported seeds.
// Calls never overlap; the order across workers is unspecified. The
// handler may call Close to stop the search, but must not call Wait.
func WithResultHandler(fn func(Result)) Option {
	return func(o *options) {
		o.onResult = fn
	}
}

// WithProgressHandler sets the periodic progress callback.
func WithProgressHandler(fn func(Progress)) Option {
	return func(o *options) {
		o.onProgress = fn
	}
}

// WithLogger sets a custom structured logger for operational events.
//
// If nil is passed, logging is disabled (NoopLogger is used).
//
// Example:
//
//	logger := seedscan.NewJSONLogger(os.Stderr, slog.LevelDebug)
//	s, _ := seedscan.New(q, seedscan.WithLogger(logger))
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithLogLevel sets the level of the default text logger. It has no
// effect together with WithLogger.
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logLevel = &level
	}
}

// WithMetricsCollector sets a custom metrics collector for monitoring.
//
// If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithMemoryLimit bounds the worker scratch memory in bytes. New fails
// with ErrMemoryLimitExceeded if the workers do not fit.
// Zero means unlimited.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithRateLimit throttles the search to batchesPerSecond batches across
// all workers. Zero means unlimited.
func WithRateLimit(batchesPerSecond float64) Option {
	return func(o *options) {
		o.rateLimit = batchesPerSecond
	}
}

// WithStageTimeout sets how long a partially filled stage buffer may wait
// before it runs anyway. Defaults to one second.
func WithStageTimeout(d time.Duration) Option {
	return func(o *options) {
		o.stageTimeout = d
	}
}
