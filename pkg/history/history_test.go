package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/postcard/pkg/model"
)

type fakeTimer struct {
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// fakeScheduler only runs callbacks when told to.
type fakeScheduler struct {
	timers []*fakeTimer
	delays []time.Duration
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{f: f}
	s.timers = append(s.timers, t)
	s.delays = append(s.delays, d)
	return t
}

// elapse fires every live timer.
func (s *fakeScheduler) elapse() {
	timers := s.timers
	s.timers = nil
	for _, t := range timers {
		if !t.stopped && !t.fired {
			t.fired = true
			t.f()
		}
	}
}

type docTarget struct {
	doc *model.Document
	sel model.Selection
}

func (d *docTarget) Capture() State {
	return State{Document: d.doc.Clone(), Selection: d.sel}
}

func (d *docTarget) Restore(s State) {
	d.doc = s.Document
	d.sel = s.Selection
}

func newTarget() *docTarget {
	doc := model.NewDocument()
	doc.Components = append(doc.Components, model.NewInstance(model.NewBlock("Hero")))
	return &docTarget{doc: doc}
}

func (d *docTarget) label() string {
	return d.doc.Components[0].Block.Label
}

func (d *docTarget) setLabel(e *Engine, l string) {
	d.doc.Components[0].Block.Label = l
	e.Track()
}

func TestUndoEmpty(t *testing.T) {
	target := newTarget()
	before := target.doc.Clone()
	e := New(target, WithScheduler(&fakeScheduler{}))

	assert.False(t, e.Undo())
	assert.False(t, e.Redo())
	assert.Equal(t, before, target.doc)
}

func TestBurstCoalesces(t *testing.T) {
	target := newTarget()
	sched := &fakeScheduler{}
	e := New(target, WithScheduler(sched), WithDebounce(50*time.Millisecond))

	for i := 0; i < 10; i++ {
		target.setLabel(e, "Hero "+string(rune('a'+i)))
	}
	sched.elapse()

	undo, redo := e.Depth()
	require.Equal(t, 1, undo)
	assert.Equal(t, 0, redo)
	assert.Equal(t, 50*time.Millisecond, sched.delays[0])

	require.True(t, e.Undo())
	assert.Equal(t, "Hero", target.label())

	require.True(t, e.Redo())
	assert.Equal(t, "Hero j", target.label())
}

func TestSupersededTimerIgnored(t *testing.T) {
	target := newTarget()
	sched := &fakeScheduler{}
	e := New(target, WithScheduler(sched))

	target.setLabel(e, "one")
	stale := sched.timers[0]
	target.setLabel(e, "two")
	assert.True(t, stale.stopped)

	stale.f()
	undo, _ := e.Depth()
	assert.Equal(t, 0, undo, "a stale callback must not commit")
	assert.True(t, e.Pending())
}

func TestRoundTripEditIsDiscarded(t *testing.T) {
	target := newTarget()
	sched := &fakeScheduler{}
	e := New(target, WithScheduler(sched))

	target.setLabel(e, "Changed")
	target.setLabel(e, "Hero")
	sched.elapse()

	undo, _ := e.Depth()
	assert.Equal(t, 0, undo)
	assert.False(t, e.Pending())
}

func TestUndoFlushesPending(t *testing.T) {
	target := newTarget()
	e := New(target, WithScheduler(&fakeScheduler{}))

	target.setLabel(e, "Draft")
	assert.True(t, e.CanUndo())
	require.True(t, e.Undo())
	assert.Equal(t, "Hero", target.label())
	assert.True(t, e.CanRedo())
}

func TestNewEditClearsRedo(t *testing.T) {
	target := newTarget()
	sched := &fakeScheduler{}
	e := New(target, WithScheduler(sched))

	target.setLabel(e, "A")
	e.Flush()
	require.True(t, e.Undo())
	require.True(t, e.CanRedo())

	target.setLabel(e, "B")
	assert.False(t, e.CanRedo())
	sched.elapse()
	assert.False(t, e.Redo())
	assert.Equal(t, "B", target.label())
}

func TestRestoreIsNotTracked(t *testing.T) {
	target := newTarget()
	e := New(target, WithScheduler(&fakeScheduler{}))
	tracking := &trackingTarget{docTarget: target, engine: e}
	e.target = tracking

	target.setLabel(e, "A")
	e.Flush()
	require.True(t, e.Undo())
	assert.True(t, tracking.sawRestoring)
	assert.False(t, e.Pending())
}

// trackingTarget calls Track from Restore, as a store watcher would.
type trackingTarget struct {
	*docTarget
	engine       *Engine
	sawRestoring bool
}

func (t *trackingTarget) Restore(s State) {
	t.sawRestoring = t.engine.Restoring()
	t.docTarget.Restore(s)
	t.engine.Track()
}

func TestSelectionTravelsWithSteps(t *testing.T) {
	target := newTarget()
	e := New(target, WithScheduler(&fakeScheduler{}))
	block := target.doc.Components[0].Block

	sel := model.Selection{Level: model.LevelBlock, BlockID: block.ID}
	target.sel = sel
	e.SyncSelection(sel)

	target.setLabel(e, "A")
	target.sel = model.Selection{}
	e.SyncSelection(target.sel)
	e.Flush()

	undo, _ := e.Depth()
	require.Equal(t, 1, undo, "selection changes alone are not steps")

	require.True(t, e.Undo())
	assert.Equal(t, sel, target.sel)
}

func TestCapacityEvictsOldest(t *testing.T) {
	target := newTarget()
	e := New(target, WithScheduler(&fakeScheduler{}), WithCapacity(3))

	for _, l := range []string{"a", "b", "c", "d", "e"} {
		target.setLabel(e, l)
		e.Flush()
	}
	undo, _ := e.Depth()
	require.Equal(t, 3, undo)

	for e.Undo() {
	}
	assert.Equal(t, "b", target.label())
}

func TestReset(t *testing.T) {
	target := newTarget()
	e := New(target, WithScheduler(&fakeScheduler{}))

	target.setLabel(e, "A")
	e.Flush()
	target.setLabel(e, "B")
	e.Reset()

	assert.False(t, e.CanUndo())
	assert.False(t, e.Undo())
	assert.Equal(t, "B", target.label())
}
