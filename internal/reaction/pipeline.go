package reaction

import (
	"runtime"
	"sync"
	"sync/atomic"

	"dotlab/internal/core"

	"golang.org/x/sync/errgroup"
)

// Config sizes the pipeline's queues and parallelism.
type Config struct {
	EventBuffer  int
	ResultBuffer int
	Lanes        int
	MaxBatch     int
}

// DefaultConfig returns queue sizes suited to a few thousand particles.
func DefaultConfig() Config {
	return Config{
		EventBuffer:  4096,
		ResultBuffer: 8192,
		Lanes:        runtime.NumCPU(),
		MaxBatch:     256,
	}
}

func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.EventBuffer <= 0 {
		c.EventBuffer = d.EventBuffer
	}
	if c.ResultBuffer <= 0 {
		c.ResultBuffer = d.ResultBuffer
	}
	if c.Lanes <= 0 {
		c.Lanes = d.Lanes
	}
	if c.MaxBatch <= 0 {
		c.MaxBatch = d.MaxBatch
	}
	return c
}

// Stats counts pipeline traffic.
type Stats struct {
	Submitted uint64
	Dropped   uint64
	Evaluated uint64
	Emitted   uint64
}

// Pipeline evaluates reaction events on a background worker. The worker never
// touches live particles: it receives copies and hands back results that the
// owner applies from its own goroutine.
type Pipeline struct {
	events  chan Event
	results chan Result
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup

	lanes    int
	maxBatch int
	log      core.Logger

	submitted atomic.Uint64
	dropped   atomic.Uint64
	evaluated atomic.Uint64
	emitted   atomic.Uint64
}

func newPipeline(cfg Config, log core.Logger) *Pipeline {
	cfg = cfg.normalized()
	if log == nil {
		log = core.NopLogger{}
	}
	return &Pipeline{
		events:   make(chan Event, cfg.EventBuffer),
		results:  make(chan Result, cfg.ResultBuffer),
		done:     make(chan struct{}),
		lanes:    cfg.Lanes,
		maxBatch: cfg.MaxBatch,
		log:      log,
	}
}

// Start launches the worker and returns the running pipeline.
func Start(cfg Config, log core.Logger) *Pipeline {
	p := newPipeline(cfg, log)
	p.wg.Add(1)
	go p.run()
	p.log.Infof("reaction pipeline started: %d lanes, batch %d", p.lanes, p.maxBatch)
	return p
}

// Submit queues ev without blocking. It reports false when the queue is full
// or the pipeline is closed; the event is dropped in that case.
func (p *Pipeline) Submit(ev Event) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	select {
	case p.events <- ev:
		p.submitted.Add(1)
		return true
	default:
		p.dropped.Add(1)
		return false
	}
}

// Drain appends every result that is ready right now to dst, in emission
// order, without blocking.
func (p *Pipeline) Drain(dst []Result) []Result {
	for {
		select {
		case r := <-p.results:
			dst = append(dst, r)
		default:
			return dst
		}
	}
}

// Close stops accepting events and waits for the worker to exit. Results not
// yet forwarded are discarded. Close is idempotent.
func (p *Pipeline) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.events)
	close(p.done)
	p.mu.Unlock()
	p.wg.Wait()
	p.log.Infof("reaction pipeline stopped: %d evaluated, %d dropped", p.evaluated.Load(), p.dropped.Load())
}

// Stats returns a snapshot of the pipeline counters.
func (p *Pipeline) Stats() Stats {
	return Stats{
		Submitted: p.submitted.Load(),
		Dropped:   p.dropped.Load(),
		Evaluated: p.evaluated.Load(),
		Emitted:   p.emitted.Load(),
	}
}

func (p *Pipeline) run() {
	defer p.wg.Done()
	batch := make([]Event, 0, p.maxBatch)
	for {
		ev, ok := <-p.events
		if !ok {
			return
		}
		batch = append(batch[:0], ev)
	fill:
		for len(batch) < p.maxBatch {
			select {
			case next, ok := <-p.events:
				if !ok {
					break fill
				}
				batch = append(batch, next)
			default:
				break fill
			}
		}

		for _, r := range p.evaluate(batch) {
			select {
			case p.results <- r:
				p.emitted.Add(1)
			case <-p.done:
				return
			}
		}
	}
}

// evaluate processes a batch across lanes and returns results in batch order.
func (p *Pipeline) evaluate(batch []Event) []Result {
	per := make([][]Result, len(batch))
	var g errgroup.Group
	g.SetLimit(p.lanes)
	for i, ev := range batch {
		g.Go(func() error {
			per[i] = Evaluate(ev, nil)
			return nil
		})
	}
	_ = g.Wait()
	p.evaluated.Add(uint64(len(batch)))

	var out []Result
	for _, rs := range per {
		out = append(out, rs...)
	}
	if len(batch) > 1 {
		p.log.Debugf("evaluated batch of %d events into %d results", len(batch), len(out))
	}
	return out
}
