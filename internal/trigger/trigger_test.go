package trigger

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-logr/logr"
)

func TestDelayTriggerCoalescesBurst(t *testing.T) {
	var count atomic.Int64
	fired := make(chan struct{}, 8)
	dt := NewDelayTrigger(logr.Discard(), func() {
		count.Add(1)
		fired <- struct{}{}
	}, 150*time.Millisecond, "test")

	dt.Fire()
	time.Sleep(40 * time.Millisecond)
	dt.Fire()
	time.Sleep(40 * time.Millisecond)
	dt.Fire()
	lastFire := time.Now()

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatalf("callback never invoked")
	}
	if elapsed := time.Since(lastFire); elapsed < 100*time.Millisecond {
		t.Fatalf("callback fired %v after last fire, want >= timeout-ish window", elapsed)
	}

	// No duplicate invocation for the same burst.
	time.Sleep(300 * time.Millisecond)
	if got := count.Load(); got != 1 {
		t.Fatalf("callback invoked %d times, want 1", got)
	}
}

func TestDelayTriggerSeparateBursts(t *testing.T) {
	var count atomic.Int64
	fired := make(chan struct{}, 8)
	dt := NewDelayTrigger(logr.Discard(), func() {
		count.Add(1)
		fired <- struct{}{}
	}, 50*time.Millisecond, "")

	for i := 0; i < 3; i++ {
		dt.Fire()
		select {
		case <-fired:
		case <-time.After(2 * time.Second):
			t.Fatalf("burst %d: callback never invoked", i)
		}
	}
	if got := count.Load(); got != 3 {
		t.Fatalf("callback invoked %d times, want 3", got)
	}
}

func TestDelayTriggerFireNeverBlocks(t *testing.T) {
	dt := NewDelayTrigger(logr.Discard(), func() {}, time.Hour, "")
	var wg sync.WaitGroup
	done := make(chan struct{})
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				dt.Fire()
			}
		}()
	}
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("concurrent Fire calls blocked")
	}
}

func TestDelayTriggerSurvivesCallbackPanic(t *testing.T) {
	var count atomic.Int64
	fired := make(chan struct{}, 8)
	dt := NewDelayTrigger(logr.Discard(), func() {
		if count.Add(1) == 1 {
			fired <- struct{}{}
			panic("callback failure")
		}
		fired <- struct{}{}
	}, 30*time.Millisecond, "")

	dt.Fire()
	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatalf("first callback never invoked")
	}

	// Worker must return to idle and serve the next burst.
	time.Sleep(50 * time.Millisecond)
	dt.Fire()
	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatalf("worker died after callback panic")
	}
}

func TestPeriodicTriggerCadence(t *testing.T) {
	var count atomic.Int64
	NewPeriodicTrigger(logr.Discard(), func() { count.Add(1) }, 100*time.Millisecond, "tick")

	time.Sleep(350 * time.Millisecond)
	got := count.Load()
	if got < 2 || got > 4 {
		t.Fatalf("callback invoked %d times in 350ms at 100ms period, want 3 +/- 1", got)
	}
}

func TestPeriodicTriggerFireIsNoop(t *testing.T) {
	var count atomic.Int64
	pt := NewPeriodicTrigger(logr.Discard(), func() { count.Add(1) }, time.Hour, "")
	for i := 0; i < 100; i++ {
		pt.Fire()
	}
	time.Sleep(50 * time.Millisecond)
	if got := count.Load(); got != 0 {
		t.Fatalf("Fire triggered %d invocations, want 0", got)
	}
}
