package search

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/hupe1980/seedscan/internal/pool"
	"github.com/hupe1980/seedscan/internal/score"
	"github.com/hupe1980/seedscan/internal/sim"
	"github.com/hupe1980/seedscan/internal/simd"
)

// worker owns the scratch of one goroutine. Stage k runs on lanes[k];
// buffers[k] collects the seeds waiting for stage k, so buffers[0] is
// unused.
type worker struct {
	s       *Scheduler
	lanes   []*pool.Scratch
	buffers []*pool.Buffer
	scores  *score.Scratch

	stale      rate.Sometimes
	flushStale func()

	batches   uint64
	completed uint64
	searched  uint64
	matched   uint64
}

func newWorker(s *Scheduler) *worker {
	n := max(1, len(s.cfg.Pipeline.Stages))
	w := &worker{
		s:       s,
		lanes:   make([]*pool.Scratch, n),
		buffers: make([]*pool.Buffer, n),
		scores:  s.cfg.Scorer.NewScratch(),
		stale:   rate.Sometimes{Interval: s.cfg.StageTimeout / 4},
	}
	for k := range w.lanes {
		w.lanes[k] = pool.Get()
		if k > 0 {
			w.buffers[k] = pool.GetBuffer()
		}
	}
	w.flushStale = func() { w.flush(time.Now(), true) }
	return w
}

func (w *worker) release() {
	for k, sc := range w.lanes {
		pool.Put(sc)
		if b := w.buffers[k]; b != nil {
			pool.PutBuffer(b)
		}
	}
	w.lanes, w.buffers = nil, nil
}

func (w *worker) run() error {
	s := w.s
	defer w.publish()

	for {
		if !w.proceed() {
			w.flush(time.Now(), false)
			return nil
		}
		idx := s.next.Add(1) - 1
		if idx >= s.total {
			w.flush(time.Now(), false)
			return nil
		}
		if err := s.cfg.Resources.WaitBatch(s.ctx); err != nil {
			// Only cancellation makes the limiter fail.
			w.flush(time.Now(), false)
			return nil
		}

		start := time.Now()
		var seeds uint64
		stopped := false
		s.cfg.Provider.Batch(idx, s.keys, &w.lanes[0].Lanes, func() bool {
			n := uint64(w.lanes[0].Lanes.Valid().Count())
			seeds += n
			w.searched += n
			w.runStage(0)
			if len(w.buffers) > 1 {
				w.stale.Do(w.flushStale)
			}
			if !w.proceed() {
				stopped = true
				return false
			}
			return true
		})

		s.cfg.Observer.OnBatch(int(seeds), time.Since(start))
		if stopped {
			w.flush(time.Now(), false)
			return nil
		}
		w.completed++
		w.batches++
		if w.batches%counterFlushBatches == 0 {
			w.publish()
		}
	}
}

// proceed reports whether the worker may go on, blocking while the
// scheduler is paused. Counters are published before blocking so that a
// paused search reports the seeds it has searched.
func (w *worker) proceed() bool {
	if w.s.Status() == StatusRunning {
		return true
	}
	w.publish()
	return w.s.await()
}

// runStage filters lanes[k] with stage k and forwards the survivors.
func (w *worker) runStage(k int) {
	s := w.s
	lanes := &w.lanes[k].Lanes
	ctx := sim.NewContext(lanes, s.cfg.Pipeline.Deck, s.cfg.Pipeline.Stake)

	m := ctx.Valid()
	stages := s.cfg.Pipeline.Stages
	if len(stages) > 0 {
		m = m.And(stages[k].Filter(&ctx))
	}
	if !m.Any() {
		return
	}
	if k+1 >= len(stages) {
		w.report(&ctx, m)
		return
	}

	next := w.buffers[k+1]
	now := time.Now()
	m.ForEach(func(l int) {
		next.Push(lanes, l, s.keys, now)
		if next.Full() {
			w.runBuffered(k+1, false)
		}
	})
}

// runBuffered loads the buffered seeds of stage k and runs the stage.
func (w *worker) runBuffered(k int, timedOut bool) {
	b := w.buffers[k]
	size := b.Len()
	b.Load(&w.lanes[k].Lanes, w.s.keys)
	w.s.cfg.Observer.OnStageFlush(k, size, timedOut)
	w.runStage(k)
}

// flush runs every non-empty stage buffer, in stage order so that seeds
// forwarded by an early stage are picked up by the later ones. With
// staleOnly, only buffers older than the stage timeout run.
func (w *worker) flush(now time.Time, staleOnly bool) {
	for k := 1; k < len(w.buffers); k++ {
		b := w.buffers[k]
		if b.Len() == 0 {
			continue
		}
		if staleOnly && b.Age(now) < w.s.cfg.StageTimeout {
			continue
		}
		w.runBuffered(k, staleOnly)
	}
}

func (w *worker) report(ctx *sim.Context, m simd.Mask) {
	sc := w.lanes[0]
	sc.Results = w.s.cfg.Scorer.Score(ctx, m, w.scores, sc.Results[:0])
	for _, r := range sc.Results {
		w.matched++
		w.s.cfg.Observer.OnMatch(r.Score)
		w.s.results <- r
	}
	clear(sc.Results)
}

// publish adds the local counters to the scheduler's.
func (w *worker) publish() {
	s := w.s
	s.completed.Add(w.completed)
	s.searched.Add(w.searched)
	s.matched.Add(w.matched)
	w.completed, w.searched, w.matched = 0, 0, 0
}
