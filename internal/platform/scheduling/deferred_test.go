package scheduling

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestRunner_RunsContinuation(t *testing.T) {
	r := NewRunner(zerolog.Nop())
	defer r.Stop()

	done := make(chan struct{})
	r.Defer("org-a", time.Millisecond, func(context.Context) { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("continuation never ran")
	}
}

func TestRunner_ArmedKeyDropsDuplicates(t *testing.T) {
	r := NewRunner(zerolog.Nop())
	defer r.Stop()

	var runs int32
	var wg sync.WaitGroup
	wg.Add(1)

	r.Defer("org-a", 50*time.Millisecond, func(context.Context) {
		atomic.AddInt32(&runs, 1)
		wg.Done()
	})
	// The timer is armed but has not fired; duplicates are dropped outright.
	for i := 0; i < 5; i++ {
		r.Defer("org-a", 0, func(context.Context) { atomic.AddInt32(&runs, 1) })
	}
	wg.Wait()
	time.Sleep(20 * time.Millisecond)

	if n := atomic.LoadInt32(&runs); n != 1 {
		t.Fatalf("%d continuations ran for one key, want 1", n)
	}
}

func TestRunner_RunningKeyHoldsOneFollowUp(t *testing.T) {
	r := NewRunner(zerolog.Nop())
	defer r.Stop()

	var runs int32
	var wg sync.WaitGroup
	wg.Add(2)
	block := make(chan struct{})

	r.Defer("org-a", 0, func(context.Context) {
		atomic.AddInt32(&runs, 1)
		<-block
		wg.Done()
	})
	// Let the first continuation start, then pile on duplicates while it
	// runs. They collapse into a single held follow-up.
	time.Sleep(20 * time.Millisecond)
	for i := 0; i < 5; i++ {
		r.Defer("org-a", 0, func(context.Context) {
			atomic.AddInt32(&runs, 1)
			wg.Done()
		})
	}
	close(block)
	wg.Wait()
	time.Sleep(20 * time.Millisecond)

	if n := atomic.LoadInt32(&runs); n != 2 {
		t.Fatalf("%d continuations ran for one key, want 2", n)
	}
}

func TestRunner_ContinuationExtendsItsOwnChain(t *testing.T) {
	r := NewRunner(zerolog.Nop())
	defer r.Stop()

	const want = 5
	done := make(chan struct{})
	var runs int32
	var chain func(ctx context.Context)
	chain = func(ctx context.Context) {
		if atomic.AddInt32(&runs, 1) == want {
			close(done)
			return
		}
		// A batch with work remaining re-Defers itself under its own key
		// before returning, exactly like a seeding continuation.
		r.Defer("org-a", time.Millisecond, chain)
	}
	r.Defer("org-a", time.Millisecond, chain)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("chain stalled after %d run(s), want %d", atomic.LoadInt32(&runs), want)
	}
}

func TestRunner_DistinctKeysRunIndependently(t *testing.T) {
	r := NewRunner(zerolog.Nop())
	defer r.Stop()

	var runs int32
	var wg sync.WaitGroup
	for _, key := range []string{"org-a", "org-b", "org-c"} {
		wg.Add(1)
		r.Defer(key, 0, func(context.Context) {
			atomic.AddInt32(&runs, 1)
			wg.Done()
		})
	}
	wg.Wait()
	if n := atomic.LoadInt32(&runs); n != 3 {
		t.Fatalf("%d continuations ran, want 3", n)
	}
}

func TestRunner_StopCancelsPending(t *testing.T) {
	r := NewRunner(zerolog.Nop())

	var ran int32
	r.Defer("org-a", time.Hour, func(context.Context) { atomic.AddInt32(&ran, 1) })
	r.Stop()

	if atomic.LoadInt32(&ran) != 0 {
		t.Fatal("pending continuation ran after Stop")
	}
	// Defer after Stop is dropped.
	r.Defer("org-b", 0, func(context.Context) { atomic.AddInt32(&ran, 1) })
	time.Sleep(20 * time.Millisecond)
	if atomic.LoadInt32(&ran) != 0 {
		t.Fatal("continuation scheduled after Stop ran")
	}
}

func TestInline_RunsSynchronously(t *testing.T) {
	d := &Inline{MaxDepth: 3}

	depth := 0
	var chain func(ctx context.Context)
	chain = func(ctx context.Context) {
		depth++
		d.Defer("org-a", time.Minute, chain)
	}
	d.Defer("org-a", time.Minute, chain)

	if depth != 3 {
		t.Fatalf("chain depth = %d, want capped at 3", depth)
	}
}
