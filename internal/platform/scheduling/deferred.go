// Package scheduling runs deferred continuations for the seeding pipeline.
// Each batch schedules exactly one follow-up per key, so an organization's
// chain executes serially no matter how many triggers fire.
package scheduling

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Deferrer schedules fn to run once after delay, keyed so that at most one
// continuation per key executes at a time. Scheduling a key whose timer is
// already armed is a no-op; scheduling a key whose continuation is running
// holds a single follow-up that is armed when it returns.
type Deferrer interface {
	Defer(key string, delay time.Duration, fn func(ctx context.Context))
	// Stop cancels pending continuations and waits for running ones.
	Stop()
}

// Runner is the in-process Deferrer. Continuations run on their own
// goroutine with a context that Stop cancels.
type Runner struct {
	mu      sync.Mutex
	pending map[string]*time.Timer
	running map[string]bool
	queued  map[string]followUp
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	stopped bool
	log     zerolog.Logger
}

// followUp is a Defer issued while the key's continuation was running,
// held until the continuation returns.
type followUp struct {
	delay time.Duration
	fn    func(ctx context.Context)
}

// NewRunner returns a started Runner.
func NewRunner(log zerolog.Logger) *Runner {
	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{
		pending: make(map[string]*time.Timer),
		running: make(map[string]bool),
		queued:  make(map[string]followUp),
		ctx:     ctx,
		cancel:  cancel,
		log:     log,
	}
}

// Defer schedules fn under key. While the key's timer is armed, further
// Defer calls are dropped. While the key's continuation is running, the
// first Defer is held and armed when it returns; this is how a continuation
// re-Defers itself to extend its own chain.
func (r *Runner) Defer(key string, delay time.Duration, fn func(ctx context.Context)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}
	if _, armed := r.pending[key]; armed {
		r.log.Debug().Str("key", key).Msg("continuation already pending, dropping")
		return
	}
	if r.running[key] {
		if _, held := r.queued[key]; !held {
			r.queued[key] = followUp{delay: delay, fn: fn}
		}
		return
	}
	r.arm(key, delay, fn)
}

// arm starts the timer for key. Callers must hold r.mu.
func (r *Runner) arm(key string, delay time.Duration, fn func(ctx context.Context)) {
	r.wg.Add(1)
	r.pending[key] = time.AfterFunc(delay, func() {
		defer r.wg.Done()

		r.mu.Lock()
		delete(r.pending, key)
		r.running[key] = true
		r.mu.Unlock()

		if r.ctx.Err() == nil {
			fn(r.ctx)
		}

		r.mu.Lock()
		delete(r.running, key)
		next, held := r.queued[key]
		delete(r.queued, key)
		if held && !r.stopped {
			r.arm(key, next.delay, next.fn)
		}
		r.mu.Unlock()
	})
}

// Stop cancels the runner's context, stops pending timers, and waits for
// in-flight continuations to return. Held follow-ups are discarded.
func (r *Runner) Stop() {
	r.mu.Lock()
	r.stopped = true
	r.cancel()
	for key, t := range r.pending {
		if t.Stop() {
			// Timer never fired; its AfterFunc will not run.
			r.wg.Done()
			delete(r.pending, key)
		}
	}
	r.mu.Unlock()
	r.wg.Wait()
}

// Inline is a Deferrer that runs continuations synchronously with no delay.
// Tests use it to drive seeding chains to completion deterministically.
type Inline struct {
	// MaxDepth caps recursive continuations to guard against runaway
	// chains; zero means no cap.
	MaxDepth int
	depth    int
	Calls    int
}

func (d *Inline) Defer(_ string, _ time.Duration, fn func(ctx context.Context)) {
	if d.MaxDepth > 0 && d.depth >= d.MaxDepth {
		return
	}
	d.depth++
	d.Calls++
	fn(context.Background())
	d.depth--
}

func (d *Inline) Stop() {}
