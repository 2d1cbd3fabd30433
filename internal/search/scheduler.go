package search

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/seedscan/internal/filter"
	"github.com/hupe1980/seedscan/internal/pool"
	"github.com/hupe1980/seedscan/internal/prng"
	"github.com/hupe1980/seedscan/internal/resource"
	"github.com/hupe1980/seedscan/internal/score"
)

var (
	// ErrNoHashKeys is returned when the query touches no stream at all.
	ErrNoHashKeys = errors.New("search: no hash key lengths registered")
	// ErrAlreadyRunning is returned by Start on a running scheduler.
	ErrAlreadyRunning = errors.New("search: already running")
	// ErrFinished is returned by Start once the scheduler completed or was
	// disposed.
	ErrFinished = errors.New("search: finished")
)

const (
	// DefaultStageTimeout bounds how long a seed waits in a stage buffer.
	DefaultStageTimeout = time.Second
	// DefaultProgressInterval is the minimum time between progress reports.
	DefaultProgressInterval = 2 * time.Second

	// counterFlushBatches is how many batches a worker completes before it
	// publishes its local counters.
	counterFlushBatches = 16

	resultQueue = 256
)

// Status is the lifecycle state of a Scheduler.
type Status int32

const (
	StatusPaused Status = iota
	StatusRunning
	StatusCompleted
	StatusDisposed
)

func (s Status) String() string {
	switch s {
	case StatusPaused:
		return "paused"
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusDisposed:
		return "disposed"
	default:
		return fmt.Sprintf("Status(%d)", int32(s))
	}
}

// Progress is a periodic snapshot of a running search.
type Progress struct {
	BatchesCompleted    uint64
	TotalBatches        uint64
	SeedsSearched       uint64
	SeedsPerMillisecond float64
}

// Stats are the counters of a search.
type Stats struct {
	BatchesCompleted uint64
	TotalBatches     uint64
	SeedsSearched    uint64
	SeedsMatched     uint64
	Elapsed          time.Duration
}

// Observer receives scheduler events. Methods are called from worker
// goroutines and must be safe for concurrent use.
type Observer interface {
	OnBatch(seeds int, d time.Duration)
	OnMatch(score int)
	OnStageFlush(stage, size int, timedOut bool)
}

type noopObserver struct{}

func (noopObserver) OnBatch(int, time.Duration)  {}
func (noopObserver) OnMatch(int)                 {}
func (noopObserver) OnStageFlush(int, int, bool) {}

// Config configures a Scheduler.
type Config struct {
	Pipeline *filter.Pipeline
	Scorer   *score.Provider
	Provider Provider

	// Threads is the number of workers; 0 means runtime.NumCPU().
	Threads int
	// StageTimeout flushes stage buffers that waited this long.
	StageTimeout time.Duration
	// ProgressInterval is the period of OnProgress.
	ProgressInterval time.Duration

	// OnResult receives every reported seed. Calls never overlap. It may
	// call Dispose, which then returns without waiting.
	OnResult func(score.Result)
	// OnProgress receives periodic progress.
	OnProgress func(Progress)

	Observer  Observer
	Resources *resource.Controller
}

// Scheduler runs one search.
type Scheduler struct {
	cfg   Config
	keys  prng.KeyLengths
	total uint64

	mu     sync.Mutex
	cond   *sync.Cond
	status atomic.Int32

	next      atomic.Uint64
	completed atomic.Uint64
	searched  atomic.Uint64
	matched   atomic.Uint64

	started  atomic.Int64
	finished atomic.Int64

	workers     []*worker
	reserved    []*resource.Reservation
	results     chan score.Result
	dispatching atomic.Bool

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// New validates cfg, reserves worker scratch and starts the workers in
// the paused state.
func New(cfg Config) (*Scheduler, error) {
	if cfg.Pipeline == nil || cfg.Provider == nil {
		return nil, errors.New("search: pipeline and provider are required")
	}
	if cfg.Pipeline.Keys.Count() == 0 {
		return nil, ErrNoHashKeys
	}
	if cfg.Scorer == nil {
		cfg.Scorer = score.New(cfg.Pipeline, score.Options{})
	}
	if cfg.Threads <= 0 {
		cfg.Threads = runtime.NumCPU()
	}
	if cfg.StageTimeout <= 0 {
		cfg.StageTimeout = DefaultStageTimeout
	}
	if cfg.ProgressInterval <= 0 {
		cfg.ProgressInterval = DefaultProgressInterval
	}
	if cfg.Observer == nil {
		cfg.Observer = noopObserver{}
	}

	s := &Scheduler{
		cfg:     cfg,
		keys:    cfg.Pipeline.Keys,
		total:   cfg.Provider.Batches(),
		results: make(chan score.Result, resultQueue),
		done:    make(chan struct{}),
	}
	s.cond = sync.NewCond(&s.mu)
	s.ctx, s.cancel = context.WithCancel(context.Background())

	perWorker := pool.ScratchSize*int64(max(1, len(cfg.Pipeline.Stages))) +
		pool.BufferSize*int64(max(0, len(cfg.Pipeline.Stages)-1))
	for i := 0; i < cfg.Threads; i++ {
		res, err := cfg.Resources.Reserve(perWorker)
		if err != nil {
			s.release()
			s.cancel()
			return nil, fmt.Errorf("search: reserving worker %d: %w", i, err)
		}
		s.reserved = append(s.reserved, res)
		s.workers = append(s.workers, newWorker(s))
	}

	s.run()
	return s, nil
}

func (s *Scheduler) run() {
	var g errgroup.Group
	for _, w := range s.workers {
		g.Go(w.run)
	}

	dispatched := make(chan struct{})
	go func() {
		defer close(dispatched)
		for r := range s.results {
			if s.cfg.OnResult != nil {
				s.dispatching.Store(true)
				s.cfg.OnResult(r)
				s.dispatching.Store(false)
			}
		}
	}()

	stopProgress := make(chan struct{})
	progressDone := make(chan struct{})
	go s.reportProgress(stopProgress, progressDone)

	go func() {
		err := g.Wait()

		s.mu.Lock()
		if Status(s.status.Load()) != StatusDisposed {
			s.status.Store(int32(StatusCompleted))
		}
		s.finished.Store(time.Now().UnixNano())
		s.mu.Unlock()

		close(s.results)
		<-dispatched
		close(stopProgress)
		<-progressDone

		s.release()
		s.cancel()
		s.err = err
		close(s.done)
	}()
}

func (s *Scheduler) reportProgress(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	if s.cfg.OnProgress == nil {
		return
	}
	t := time.NewTicker(s.cfg.ProgressInterval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			if s.Status() == StatusRunning {
				s.cfg.OnProgress(s.Progress())
			}
		}
	}
}

func (s *Scheduler) release() {
	for _, w := range s.workers {
		w.release()
	}
	s.workers = nil
	for _, res := range s.reserved {
		res.Release()
	}
	s.reserved = nil
}

// await blocks while the scheduler is paused. It returns false once the
// scheduler stopped.
func (s *Scheduler) await() bool {
	if Status(s.status.Load()) == StatusRunning {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for Status(s.status.Load()) == StatusPaused {
		s.cond.Wait()
	}
	return Status(s.status.Load()) == StatusRunning
}

// Start resumes the workers.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch Status(s.status.Load()) {
	case StatusRunning:
		return ErrAlreadyRunning
	case StatusCompleted, StatusDisposed:
		return ErrFinished
	}
	s.started.CompareAndSwap(0, time.Now().UnixNano())
	s.status.Store(int32(StatusRunning))
	s.cond.Broadcast()
	return nil
}

// Pause stops the workers at their next group of eight seeds. A batch in
// progress continues where it stopped once Start is called again.
func (s *Scheduler) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if Status(s.status.Load()) == StatusRunning {
		s.status.Store(int32(StatusPaused))
	}
}

// Stop marks the search disposed and wakes the workers without waiting
// for them. A batch in progress is abandoned at its next group of eight
// seeds.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	switch Status(s.status.Load()) {
	case StatusPaused, StatusRunning:
		s.status.Store(int32(StatusDisposed))
		s.cond.Broadcast()
	}
	s.mu.Unlock()
	s.cancel()
}

// Dispose stops the search and waits for the workers to exit. Seeds
// waiting in stage buffers still run through the remaining stages, and
// every result is delivered before Dispose returns.
//
// While OnResult runs, Dispose only stops the search: the workers cannot
// finish before the handler returns. Use Wait or Done from another
// goroutine in that case. Dispose is idempotent.
func (s *Scheduler) Dispose() {
	s.Stop()
	if s.dispatching.Load() {
		return
	}
	<-s.done
}

// Dispatching reports whether OnResult is running.
func (s *Scheduler) Dispatching() bool { return s.dispatching.Load() }

// Wait blocks until the search completed or was disposed.
func (s *Scheduler) Wait() error {
	<-s.done
	return s.err
}

// Done is closed once every worker exited and every result was delivered.
func (s *Scheduler) Done() <-chan struct{} { return s.done }

// Threads returns the number of workers.
func (s *Scheduler) Threads() int { return s.cfg.Threads }

// Status returns the lifecycle state.
func (s *Scheduler) Status() Status { return Status(s.status.Load()) }

// Stats returns the published counters.
func (s *Scheduler) Stats() Stats {
	return Stats{
		BatchesCompleted: s.completed.Load(),
		TotalBatches:     s.total,
		SeedsSearched:    s.searched.Load(),
		SeedsMatched:     s.matched.Load(),
		Elapsed:          s.elapsed(),
	}
}

// Progress returns a progress snapshot.
func (s *Scheduler) Progress() Progress {
	p := Progress{
		BatchesCompleted: s.completed.Load(),
		TotalBatches:     s.total,
		SeedsSearched:    s.searched.Load(),
	}
	if ms := float64(s.elapsed()) / float64(time.Millisecond); ms > 0 {
		p.SeedsPerMillisecond = float64(p.SeedsSearched) / ms
	}
	return p
}

func (s *Scheduler) elapsed() time.Duration {
	start := s.started.Load()
	if start == 0 {
		return 0
	}
	end := s.finished.Load()
	if end == 0 {
		end = time.Now().UnixNano()
	}
	return time.Duration(end - start)
}
