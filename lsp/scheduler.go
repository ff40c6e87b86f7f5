// Copyright © 2025 The cssls authors

package lsp

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// ValidationScheduler debounces validation triggers per document. A
// burst of triggers within the delay window collapses to a single run,
// always against the latest document state at fire time. At most one
// timer is pending per URI.
type ValidationScheduler struct {
	delay time.Duration
	clock clockwork.Clock
	run   func(uri string)

	mu       sync.Mutex
	pending  map[string]*pendingValidation
	disposed bool
}

// pendingValidation is one armed debounce timer. The callback compares
// map entries by identity so a timer that fired concurrently with its
// own replacement or cancellation can tell it no longer owns the URI.
type pendingValidation struct {
	timer clockwork.Timer
}

// NewValidationScheduler creates a scheduler that calls run after the
// delay elapses with no further trigger for the same URI.
func NewValidationScheduler(run func(uri string), delay time.Duration, clock clockwork.Clock) *ValidationScheduler {
	return &ValidationScheduler{
		delay:   delay,
		clock:   clock,
		run:     run,
		pending: make(map[string]*pendingValidation),
	}
}

// Trigger arms the debounce timer for a URI, cancelling any timer
// already pending for it.
func (v *ValidationScheduler) Trigger(uri string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.disposed {
		return
	}
	if p, ok := v.pending[uri]; ok {
		// Stop is a no-op when the timer already fired; the entry
		// swap below makes the stale callback bail out instead.
		p.timer.Stop()
	}
	entry := &pendingValidation{}
	entry.timer = v.clock.AfterFunc(v.delay, func() {
		v.mu.Lock()
		if v.pending[uri] != entry {
			// Replaced or cancelled after this timer fired.
			v.mu.Unlock()
			return
		}
		delete(v.pending, uri)
		v.mu.Unlock()
		v.run(uri)
	})
	v.pending[uri] = entry
}

// CleanPending cancels the pending timer for a URI without running the
// callback. Safe to call when nothing is pending. The didClose handler
// calls this before clearing diagnostics so no late validation fires
// for a closed document.
func (v *ValidationScheduler) CleanPending(uri string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if p, ok := v.pending[uri]; ok {
		p.timer.Stop()
		delete(v.pending, uri)
	}
}

// Dispose cancels every pending timer and rejects further triggers.
func (v *ValidationScheduler) Dispose() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.disposed = true
	for _, p := range v.pending {
		p.timer.Stop()
	}
	v.pending = make(map[string]*pendingValidation)
}
