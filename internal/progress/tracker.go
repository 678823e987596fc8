// Package progress tracks the steps of a multi-phase operation and renders
// them as a tree.
//
// A Tracker holds steps in insertion order. Steps move from pending through
// running to one of the terminal states done, error or skipped. Every
// accepted mutation invokes the attached RefreshFunc, which is how a live
// terminal display follows the tracker without the tracker knowing about it.
package progress

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Status is the state of a single step.
type Status string

const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusError   Status = "error"
	StatusSkipped Status = "skipped"
)

// Terminal reports whether no further transitions are accepted.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusError || s == StatusSkipped
}

// Step is one tracked unit of work.
type Step struct {
	Key    string
	Label  string
	Status Status
	Detail string
}

// RefreshFunc is called after every accepted mutation. Errors and panics
// raised by it are discarded.
type RefreshFunc func() error

// Tracker records steps in insertion order.
// It is not safe for concurrent use.
type Tracker struct {
	title   string
	steps   *orderedmap.OrderedMap[string, *Step]
	refresh RefreshFunc
}

// New creates an empty tracker.
func New(title string) *Tracker {
	return &Tracker{
		title: title,
		steps: orderedmap.New[string, *Step](),
	}
}

// Title returns the tracker title.
func (t *Tracker) Title() string {
	return t.title
}

// AttachRefresh sets the callback run after each mutation, replacing any
// previous one. A nil fn detaches.
func (t *Tracker) AttachRefresh(fn RefreshFunc) {
	t.refresh = fn
}

// Add appends a pending step. Adding an existing key does nothing.
func (t *Tracker) Add(key, label string) {
	if _, ok := t.steps.Get(key); ok {
		return
	}
	t.steps.Set(key, &Step{Key: key, Label: label, Status: StatusPending})
	t.notify()
}

// Start marks a step running.
func (t *Tracker) Start(key, detail string) {
	t.transition(key, StatusRunning, detail)
}

// Complete marks a step done.
func (t *Tracker) Complete(key, detail string) {
	t.transition(key, StatusDone, detail)
}

// Error marks a step failed.
func (t *Tracker) Error(key, detail string) {
	t.transition(key, StatusError, detail)
}

// Skip marks a step skipped.
func (t *Tracker) Skip(key, detail string) {
	t.transition(key, StatusSkipped, detail)
}

// transition moves key to status. Unknown keys are appended already in the
// target status, labelled with the key. Steps in a terminal state are left
// untouched.
func (t *Tracker) transition(key string, status Status, detail string) {
	step, ok := t.steps.Get(key)
	if !ok {
		t.steps.Set(key, &Step{Key: key, Label: key, Status: status, Detail: detail})
		t.notify()
		return
	}
	if step.Status.Terminal() {
		return
	}

	step.Status = status
	if detail != "" {
		step.Detail = detail
	}
	t.notify()
}

// notify runs the refresh callback. A failing display must never break the
// operation being tracked.
func (t *Tracker) notify() {
	if t.refresh == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	_ = t.refresh()
}

// Steps returns a copy of all steps in insertion order.
func (t *Tracker) Steps() []Step {
	steps := make([]Step, 0, t.steps.Len())
	for pair := t.steps.Oldest(); pair != nil; pair = pair.Next() {
		steps = append(steps, *pair.Value)
	}
	return steps
}

// Step returns a copy of the step with the given key.
func (t *Tracker) Step(key string) (Step, bool) {
	step, ok := t.steps.Get(key)
	if !ok {
		return Step{}, false
	}
	return *step, true
}

// Failed reports whether any step ended in error.
func (t *Tracker) Failed() bool {
	for pair := t.steps.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.Status == StatusError {
			return true
		}
	}
	return false
}
