// Package history records undo and redo steps for a live document.
//
// The engine keeps a committed baseline of the document, a pending baseline
// captured on the first edit after a commit, and bounded undo and redo
// stacks of whole-document snapshots. Edits are coalesced: Track restarts a
// debounce timer, and only when it fires is the pending baseline compared to
// the live state and, if different, pushed as one undo step.
//
// An Engine is not safe for concurrent use. Callers serialize access,
// including the debounce callbacks, which run through the Scheduler.
package history

import (
	"slices"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/zap"

	"tableflip.dev/postcard/pkg/model"
)

const (
	DefaultCapacity = 100
	DefaultDebounce = 300 * time.Millisecond
)

// State is one snapshot: the document and the editing focus.
type State struct {
	Document  *model.Document
	Selection model.Selection
}

func (s State) clone() State {
	out := State{Selection: s.Selection}
	if s.Document != nil {
		out.Document = s.Document.Clone()
	}
	return out
}

// Target is the live state the engine observes and rewinds.
type Target interface {
	// Capture returns a deep copy of the live state.
	Capture() State
	// Restore replaces the live state. The engine gives up ownership of s.
	Restore(s State)
}

// Timer is a pending scheduled call.
type Timer interface {
	Stop() bool
}

// Scheduler runs f after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(d time.Duration, f func()) Timer

func (fn SchedulerFunc) AfterFunc(d time.Duration, f func()) Timer {
	return fn(d, f)
}

// RealTime schedules on the runtime timer.
var RealTime Scheduler = SchedulerFunc(func(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
})

// Option configures an Engine.
type Option func(*Engine)

// WithCapacity bounds each stack. Non-positive values keep the default.
func WithCapacity(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.capacity = n
		}
	}
}

// WithDebounce sets the quiet period before a commit.
func WithDebounce(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.delay = d
		}
	}
}

// WithScheduler replaces the timer source.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) {
		if s != nil {
			e.sched = s
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// Engine is the undo/redo state machine.
type Engine struct {
	target   Target
	sched    Scheduler
	delay    time.Duration
	capacity int
	log      *zap.Logger

	current   State
	pending   *State
	undo      []State
	redo      []State
	restoring bool

	timer Timer
	// gen invalidates timers that fire after being superseded.
	gen uint64
}

// New returns an engine baselined on the target's present state.
func New(target Target, opts ...Option) *Engine {
	e := &Engine{
		target:   target,
		sched:    RealTime,
		delay:    DefaultDebounce,
		capacity: DefaultCapacity,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.current = target.Capture()
	return e
}

var equalOpts = cmp.Options{cmpopts.EquateEmpty()}

func sameContent(a, b State) bool {
	return cmp.Equal(a.Document, b.Document, equalOpts)
}

// Track records that the live state just changed. It is ignored while a
// snapshot is being restored.
func (e *Engine) Track() {
	if e.restoring {
		return
	}
	if e.pending == nil {
		base := e.current.clone()
		e.pending = &base
		e.redo = nil
	}
	e.schedule()
}

func (e *Engine) schedule() {
	e.cancel()
	gen := e.gen
	e.timer = e.sched.AfterFunc(e.delay, func() {
		if gen != e.gen {
			return
		}
		e.timer = nil
		e.commit()
	})
}

func (e *Engine) cancel() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.gen++
}

// commit turns the pending baseline into an undo step when the live state
// differs from it.
func (e *Engine) commit() bool {
	if e.pending == nil {
		return false
	}
	base := *e.pending
	e.pending = nil
	present := e.target.Capture()
	e.current = present
	if sameContent(base, present) {
		e.log.Debug("history: edits cancelled out")
		return false
	}
	e.undo = e.push(e.undo, base)
	e.log.Debug("history: committed", zap.Int("undo", len(e.undo)))
	return true
}

func (e *Engine) push(stack []State, s State) []State {
	stack = append(stack, s)
	if len(stack) > e.capacity {
		stack = slices.Delete(stack, 0, len(stack)-e.capacity)
	}
	return stack
}

// Flush commits pending edits now instead of waiting for the timer. It
// reports whether an undo step was added.
func (e *Engine) Flush() bool {
	e.cancel()
	return e.commit()
}

// Undo restores the state before the last step. It reports false, changing
// nothing, when there is nothing to undo.
func (e *Engine) Undo() bool {
	e.Flush()
	if len(e.undo) == 0 {
		return false
	}
	prev := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	e.redo = e.push(e.redo, e.target.Capture())
	e.restore(prev)
	return true
}

// Redo reapplies the last undone step.
func (e *Engine) Redo() bool {
	e.Flush()
	if len(e.redo) == 0 {
		return false
	}
	next := e.redo[len(e.redo)-1]
	e.redo = e.redo[:len(e.redo)-1]
	e.undo = e.push(e.undo, e.target.Capture())
	e.restore(next)
	return true
}

func (e *Engine) restore(s State) {
	e.restoring = true
	e.target.Restore(s.clone())
	e.restoring = false
	e.current = e.target.Capture()
}

// Reset drops every step and pending edit and baselines on the present state.
func (e *Engine) Reset() {
	e.cancel()
	e.pending = nil
	e.undo = nil
	e.redo = nil
	e.current = e.target.Capture()
}

// SyncSelection records a focus change without creating a step.
func (e *Engine) SyncSelection(sel model.Selection) {
	e.current.Selection = sel
}

// Restoring reports whether a snapshot is being applied.
func (e *Engine) Restoring() bool { return e.restoring }

// Pending reports whether edits await a commit.
func (e *Engine) Pending() bool { return e.pending != nil }

// CanUndo reports whether Undo would do anything, counting pending edits.
func (e *Engine) CanUndo() bool { return len(e.undo) > 0 || e.pending != nil }

// CanRedo reports whether Redo would do anything.
func (e *Engine) CanRedo() bool { return len(e.redo) > 0 }

// Depth returns the sizes of the undo and redo stacks.
func (e *Engine) Depth() (undo, redo int) { return len(e.undo), len(e.redo) }
