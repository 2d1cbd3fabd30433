package seedscan

import (
	"context"
	"fmt"

	"github.com/hupe1980/seedscan/internal/filter"
	"github.com/hupe1980/seedscan/internal/resource"
	"github.com/hupe1980/seedscan/internal/score"
	"github.com/hupe1980/seedscan/internal/search"
	"github.com/hupe1980/seedscan/internal/seed"
)

// Query is a set of MUST, SHOULD and MUST-NOT clauses plus the deck and
// stake of the simulated run. It decodes from JSON.
type Query = filter.Query

// Clause is one query clause.
type Clause = filter.Clause

// Status is the lifecycle state of a Search.
type Status = search.Status

const (
	StatusPaused    = search.StatusPaused
	StatusRunning   = search.StatusRunning
	StatusCompleted = search.StatusCompleted
	StatusDisposed  = search.StatusDisposed
)

// Progress is a periodic snapshot of a running search.
type Progress = search.Progress

// Stats are the counters of a search. They lag the workers by a few
// batches while the search runs.
type Stats = search.Stats

// Result is one reported seed. Tallies holds the SHOULD clause counts in
// query order; Score is their weighted sum.
type Result struct {
	Seed    string
	Score   int
	Tallies []int
}

// Search is one configured seed search. It is created paused; Start runs
// it and Close stops it.
type Search struct {
	pipeline *filter.Pipeline
	scorer   *score.Provider
	sched    *search.Scheduler
	logger   *Logger
	runID    string
	mode     mode
	logged   chan struct{}
}

// New compiles q, validates the options and starts the workers paused.
// A nil query is an empty query, which fails with ErrNoHashKeys.
func New(q *Query, optFns ...Option) (*Search, error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	if q == nil {
		q = &Query{}
	}

	logger := o.logger
	if logger == nil {
		level := defaultLogLevel
		if o.logLevel != nil {
			level = *o.logLevel
		}
		logger = NewTextLogger(nil, level)
	}
	runID := NewRunID()
	logger = logger.WithRunID(runID)

	pipeline, err := filter.Compile(q, filter.WithChaining(o.chaining))
	if err != nil {
		return nil, err
	}

	provider, err := o.provider()
	if err != nil {
		return nil, err
	}

	scorer := score.New(pipeline, score.Options{Cutoff: o.cutoff, Auto: o.autoCutoff})

	cfg := search.Config{
		Pipeline:     pipeline,
		Scorer:       scorer,
		Provider:     provider,
		Threads:      o.threads,
		StageTimeout: o.stageTimeout,
		Observer:     observer{metrics: o.metricsCollector, logger: logger},
		Resources: resource.NewController(resource.Config{
			MemoryLimitBytes: o.memoryLimit,
			BatchesPerSecond: o.rateLimit,
		}),
	}
	if fn := o.onResult; fn != nil {
		cfg.OnResult = func(r score.Result) {
			fn(Result{Seed: r.Seed.String(), Score: r.Score, Tallies: r.Tallies})
		}
	}
	if fn := o.onProgress; fn != nil {
		cfg.OnProgress = fn
	}

	sched, err := search.New(cfg)
	if err != nil {
		return nil, err
	}

	s := &Search{
		pipeline: pipeline,
		scorer:   scorer,
		sched:    sched,
		logger:   logger,
		runID:    runID,
		mode:     o.mode,
		logged:   make(chan struct{}),
	}
	logger.Debug("search created",
		"mode", o.mode.String(),
		"stages", len(pipeline.Stages),
		"composite", pipeline.Composite,
		"should", len(pipeline.Should),
		"max_ante", pipeline.MaxAnte(),
	)
	go s.logCompletion()
	return s, nil
}

func (o *options) provider() (search.Provider, error) {
	if o.modes > 1 {
		return nil, ErrConflictingModes
	}
	switch o.mode {
	case modeList:
		seeds := make([]seed.Seed, 0, len(o.seeds))
		for i, str := range o.seeds {
			sd, err := seed.Parse(str)
			if err != nil {
				return nil, fmt.Errorf("seedscan: seed %d: %w", i, err)
			}
			seeds = append(seeds, sd)
		}
		return search.NewList(seeds), nil
	case modeSingle:
		sd, err := seed.Parse(o.single)
		if err != nil {
			return nil, fmt.Errorf("seedscan: seed: %w", err)
		}
		return search.NewSingle(sd), nil
	case modeRandom:
		return search.NewRandom(o.randomCount, o.randomSource), nil
	}

	sp, err := seed.NewSpace(o.batchChars)
	if err != nil {
		return nil, &ErrInvalidOption{Option: "batch chars", Value: o.batchChars, cause: err}
	}
	p, err := search.NewSequential(sp, o.startBatch, o.endBatch)
	if err != nil {
		return nil, &ErrInvalidOption{Option: "batch range", Value: [2]uint64{o.startBatch, o.endBatch}, cause: err}
	}
	return p, nil
}

func (s *Search) logCompletion() {
	defer close(s.logged)
	<-s.sched.Done()
	s.logger.LogComplete(context.Background(), s.sched.Stats(), s.sched.Status(), s.sched.Wait())
}

// Start runs or resumes the search. It returns ErrAlreadyStarted on a
// running search and ErrClosed once the search finished.
func (s *Search) Start() error {
	if err := translateError(s.sched.Start()); err != nil {
		return err
	}
	p := s.sched.Progress()
	s.logger.LogStart(context.Background(), s.mode.String(), p.TotalBatches-p.BatchesCompleted, s.Threads(), Platform())
	return nil
}

// Pause stops the workers at their next group of eight seeds. Start
// resumes where they stopped.
func (s *Search) Pause() {
	if s.sched.Status() != StatusRunning {
		return
	}
	s.sched.Pause()
	st := s.sched.Stats()
	s.logger.LogPause(context.Background(), st.BatchesCompleted, st.TotalBatches)
}

// Wait blocks until the search completed or was closed and every result
// was delivered.
func (s *Search) Wait() error {
	err := s.sched.Wait()
	<-s.logged
	return err
}

// Done is closed when the search completed or was closed.
func (s *Search) Done() <-chan struct{} { return s.sched.Done() }

// Close stops the search and releases the workers. Seeds waiting in stage
// buffers run through the remaining stages and every result is delivered
// before Close returns. Called from the result handler, Close only stops
// the search; Wait from another goroutine observes the end. Close is
// idempotent.
func (s *Search) Close() error {
	s.sched.Dispose()
	if !s.sched.Dispatching() {
		<-s.logged
	}
	return nil
}

// Status returns the lifecycle state.
func (s *Search) Status() Status { return s.sched.Status() }

// Stats returns the search counters.
func (s *Search) Stats() Stats { return s.sched.Stats() }

// Progress returns a progress snapshot.
func (s *Search) Progress() Progress { return s.sched.Progress() }

// RunID returns the id attached to every log record of this search.
func (s *Search) RunID() string { return s.runID }

// Labels returns the SHOULD clause labels, the tally column names.
func (s *Search) Labels() []string { return append([]string(nil), s.pipeline.Labels...) }

// Cutoff returns the current score cutoff. With WithAutoCutoff it grows
// while the search runs.
func (s *Search) Cutoff() int { return s.scorer.Cutoff() }

// Threads returns the number of workers.
func (s *Search) Threads() int { return s.sched.Threads() }

// Run creates and starts a search and waits for it. Cancelling ctx closes
// the search and returns ctx.Err().
func Run(ctx context.Context, q *Query, opts ...Option) (Stats, error) {
	s, err := New(q, opts...)
	if err != nil {
		return Stats{}, err
	}
	if err := s.Start(); err != nil {
		_ = s.Close()
		return Stats{}, err
	}
	select {
	case <-s.Done():
	case <-ctx.Done():
		_ = s.Close()
		return s.Stats(), ctx.Err()
	}
	err = s.Wait()
	return s.Stats(), err
}
