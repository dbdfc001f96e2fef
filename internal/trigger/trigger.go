// Package trigger provides the change-notification primitives used to drive
// re-resolution of credential material: a debouncing trigger that collapses
// bursts of signals into one deferred callback, and a periodic trigger that
// fires on a fixed cadence.
//
// Both triggers spawn their worker goroutine at construction and run until
// process exit. No Stop or join is provided; hosts must tolerate no-cleanup
// shutdown.
package trigger

import (
	"time"

	"github.com/go-logr/logr"
)

// Trigger is the shared producer-facing surface of both notifier kinds.
type Trigger interface {
	// Fire signals that an upstream change was observed. Safe for
	// arbitrary concurrent use; never blocks the caller.
	Fire()
}

// DelayTrigger invokes its callback once per burst of Fire calls, after the
// burst has been quiet for the configured timeout.
type DelayTrigger struct {
	name    string
	onFired func()
	timeout time.Duration
	kick    chan struct{}
	log     logr.Logger
}

// NewDelayTrigger starts the debounce worker immediately. A fresh timeout
// window opens on the first Fire and is reset by every subsequent Fire; the
// callback runs synchronously on the worker once a window elapses untouched.
func NewDelayTrigger(log logr.Logger, onFired func(), timeout time.Duration, name string) *DelayTrigger {
	if name == "" {
		name = "delay-trigger"
	}
	t := &DelayTrigger{
		name:    name,
		onFired: onFired,
		timeout: timeout,
		kick:    make(chan struct{}, 1),
		log:     log.WithName(name),
	}
	go t.run()
	return t
}

// Fire hands a signal to the worker. The single-slot channel coalesces
// signals that arrive while one is already pending, so producers never wait.
func (t *DelayTrigger) Fire() {
	select {
	case t.kick <- struct{}{}:
	default:
	}
}

func (t *DelayTrigger) run() {
	for {
		// Idle: block until the first signal of a burst.
		<-t.kick

		// Armed: every further signal re-opens the quiescence window.
		// A signal landing between timer expiry and the next loop
		// iteration stays queued in the slot and starts a new burst,
		// so no fire is ever lost or double-counted.
		for armed := true; armed; {
			timer := time.NewTimer(t.timeout)
			select {
			case <-t.kick:
				timer.Stop()
			case <-timer.C:
				t.invoke()
				armed = false
			}
		}
	}
}

func (t *DelayTrigger) invoke() {
	defer func() {
		if r := recover(); r != nil {
			t.log.Error(nil, "trigger callback panicked", "panic", r)
		}
	}()
	t.onFired()
}

// PeriodicTrigger invokes its callback every period, forever, independent of
// any Fire calls.
type PeriodicTrigger struct {
	name    string
	onFired func()
	period  time.Duration
	log     logr.Logger
}

// NewPeriodicTrigger starts the cadence worker immediately. The first
// invocation happens one full period after construction.
func NewPeriodicTrigger(log logr.Logger, onFired func(), period time.Duration, name string) *PeriodicTrigger {
	if name == "" {
		name = "periodic-trigger"
	}
	t := &PeriodicTrigger{
		name:    name,
		onFired: onFired,
		period:  period,
		log:     log.WithName(name),
	}
	go t.run()
	return t
}

// Fire exists for interface symmetry with DelayTrigger and has no effect.
func (t *PeriodicTrigger) Fire() {}

func (t *PeriodicTrigger) run() {
	for {
		time.Sleep(t.period)
		t.invoke()
	}
}

func (t *PeriodicTrigger) invoke() {
	defer func() {
		if r := recover(); r != nil {
			t.log.Error(nil, "trigger callback panicked", "panic", r)
		}
	}()
	t.onFired()
}
