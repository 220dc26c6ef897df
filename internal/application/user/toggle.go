package user

import (
	"fmt"
	"sync"
)

// toggleState models one favorite-toggle in flight. A second toggle on
// the same (user, recipe) pair is rejected until the first confirms or
// rolls back.
type toggleState int

const (
	toggleIdle toggleState = iota
	togglePending
	toggleConfirmed
	toggleRolledBack
)

// toggleTracker serializes favorite toggles per (user, recipe) pair.
// Terminal states (confirmed, rolled-back) are observable through the
// last-outcome map for tests and diagnostics; the pair itself returns to
// idle so the next toggle may begin.
type toggleTracker struct {
	mu          sync.Mutex
	pending     map[string]struct{}
	lastOutcome map[string]toggleState
}

func newToggleTracker() *toggleTracker {
	return &toggleTracker{
		pending:     make(map[string]struct{}),
		lastOutcome: make(map[string]toggleState),
	}
}

func toggleKey(uid string, recipeID int) string {
	return fmt.Sprintf("%s:%d", uid, recipeID)
}

// begin transitions idle → pending. It reports false when a toggle for
// the same pair is already pending.
func (t *toggleTracker) begin(uid string, recipeID int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	key := toggleKey(uid, recipeID)
	if _, inFlight := t.pending[key]; inFlight {
		return false
	}
	t.pending[key] = struct{}{}
	return true
}

// confirm transitions pending → confirmed → idle.
func (t *toggleTracker) confirm(uid string, recipeID int) {
	t.finish(uid, recipeID, toggleConfirmed)
}

// rollback transitions pending → rolled-back → idle.
func (t *toggleTracker) rollback(uid string, recipeID int) {
	t.finish(uid, recipeID, toggleRolledBack)
}

func (t *toggleTracker) finish(uid string, recipeID int, outcome toggleState) {
	t.mu.Lock()
	defer t.mu.Unlock()
	key := toggleKey(uid, recipeID)
	delete(t.pending, key)
	t.lastOutcome[key] = outcome
}

func (t *toggleTracker) outcome(uid string, recipeID int) toggleState {
	t.mu.Lock()
	defer t.mu.Unlock()
	key := toggleKey(uid, recipeID)
	if _, inFlight := t.pending[key]; inFlight {
		return togglePending
	}
	if outcome, ok := t.lastOutcome[key]; ok {
		return outcome
	}
	return toggleIdle
}
