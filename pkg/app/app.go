package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/postcard/pkg/history"
	"tableflip.dev/postcard/pkg/model"
	"tableflip.dev/postcard/pkg/store"
	"tableflip.dev/postcard/pkg/templateio"
)

// ErrNoPersistence is returned by library operations on a session opened
// without a store.
var ErrNoPersistence = errors.New("app: no persistence configured")

// Session is one editing session over a live document. It owns the
// document, the selection and the undo history, and writes every change
// through to persistence. UIs and CLIs share logic by driving a Session.
//
// Every exported method, and every debounced history commit, runs under the
// session lock, so callers may use a Session from several goroutines.
type Session struct {
	mu sync.Mutex

	doc *model.Document
	sel model.Selection

	hist  *history.Engine
	store store.Persistence
	log   *zap.Logger

	limits     templateio.Limits
	title      string
	appVersion string
	createdAt  time.Time
	now        func() time.Time

	sched    history.Scheduler
	capacity int
	debounce time.Duration
}

// Option configures a Session.
type Option func(*Session)

// WithPersistence writes the live template through to p.
func WithPersistence(p store.Persistence) Option {
	return func(s *Session) { s.store = p }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithLimits bounds imported payloads.
func WithLimits(l templateio.Limits) Option {
	return func(s *Session) { s.limits = l }
}

// WithHistory sizes the undo stacks and the commit debounce. Zero values
// keep the defaults.
func WithHistory(capacity int, debounce time.Duration) Option {
	return func(s *Session) {
		s.capacity = capacity
		s.debounce = debounce
	}
}

// WithScheduler replaces the timer behind history commits.
func WithScheduler(sched history.Scheduler) Option {
	return func(s *Session) {
		if sched != nil {
			s.sched = sched
		}
	}
}

// WithTitle sets the title written into exports.
func WithTitle(title string) Option {
	return func(s *Session) { s.title = title }
}

// WithAppVersion stamps exports with the application version.
func WithAppVersion(v string) Option {
	return func(s *Session) { s.appVersion = v }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// Open starts a session. When a persistence is configured the stored
// template is loaded; a missing template starts an empty document and an
// invalid one is logged and ignored.
func Open(ctx context.Context, opts ...Option) (*Session, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	s := &Session{
		doc:    model.NewDocument(),
		log:    zap.NewNop(),
		limits: templateio.DefaultLimits(),
		now:    time.Now,
		sched:  history.RealTime,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.createdAt = s.now()
	s.hydrate()

	hopts := []history.Option{
		history.WithCapacity(s.capacity),
		history.WithScheduler(s.locked(s.sched)),
		history.WithLogger(s.log),
	}
	if s.debounce > 0 {
		hopts = append(hopts, history.WithDebounce(s.debounce))
	}
	s.hist = history.New(target{s}, hopts...)
	return s, nil
}

func (s *Session) hydrate() {
	if s.store == nil {
		return
	}
	raw, err := s.store.LoadTemplate()
	if errors.Is(err, store.ErrNotFound) {
		return
	}
	if err != nil {
		s.log.Warn("app: load template", zap.Error(err))
		return
	}
	p, res := templateio.Decode(raw, s.limits)
	if !res.OK {
		s.log.Warn("app: stored template is invalid, starting empty", zap.Error(res.Err()))
		return
	}
	s.adopt(p)
}

// adopt takes the document and meta of p.
func (s *Session) adopt(p *model.Payload) {
	s.doc = p.Document()
	if p.Meta.Title != "" && p.Meta.Title != templateio.DefaultTitle {
		s.title = p.Meta.Title
	}
	if created, err := time.Parse(time.RFC3339, p.Meta.CreatedAt); err == nil {
		s.createdAt = created
	}
}

// locked wraps sched so that callbacks run under the session lock.
func (s *Session) locked(sched history.Scheduler) history.Scheduler {
	return history.SchedulerFunc(func(d time.Duration, f func()) history.Timer {
		return sched.AfterFunc(d, func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			f()
		})
	})
}

// target exposes the live state to the history engine.
type target struct{ s *Session }

func (t target) Capture() history.State {
	return history.State{Document: t.s.doc.Clone(), Selection: t.s.sel}
}

func (t target) Restore(st history.State) {
	t.s.doc = st.Document
	t.s.sel = st.Selection
	t.s.persist()
}

// changed records a content change with history and storage.
func (s *Session) changed() {
	s.hist.Track()
	s.persist()
}

func (s *Session) exportLocked() *model.Payload {
	return templateio.Export(s.doc, templateio.ExportOptions{
		Title:      s.title,
		CreatedAt:  s.createdAt,
		AppVersion: s.appVersion,
		Now:        s.now,
	})
}

// persist writes the live template. Failures are logged and dropped.
func (s *Session) persist() {
	if s.store == nil {
		return
	}
	data, err := templateio.Marshal(s.exportLocked())
	if err != nil {
		s.log.Warn("app: encode template", zap.Error(err))
		return
	}
	if err := s.store.SaveTemplate(data); err != nil {
		s.log.Warn("app: save template", zap.Error(err))
	}
}

// Document returns a copy of the live document.
func (s *Session) Document() *model.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Selection returns the editing focus.
func (s *Session) Selection() model.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel
}

// Title returns the export title.
func (s *Session) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title
}

// SetTitle renames the template.
func (s *Session) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.title = title
	s.persist()
}

// Select focuses the node identified by sel's target id, filling in its
// ancestors. A zero selection clears the focus. Unknown ids, or a level that
// does not match the node, leave the selection unchanged.
func (s *Session) Select(sel model.Selection) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sel.IsZero() {
		s.setSelection(model.Selection{})
		return true
	}
	ref, ok := s.doc.FindNode(sel.TargetID())
	if !ok || ref.Level != sel.Level {
		return false
	}
	s.setSelection(ref.Selection())
	return true
}

// SelectID focuses the node with the given id at whatever level it lives.
func (s *Session) SelectID(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ref, ok := s.doc.FindNode(id)
	if !ok {
		return false
	}
	s.setSelection(ref.Selection())
	return true
}

func (s *Session) setSelection(sel model.Selection) {
	s.sel = sel
	s.hist.SyncSelection(sel)
}

// Undo steps back. It reports false when there is nothing to undo.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.Undo()
}

// Redo reapplies an undone step.
func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.Redo()
}

// CanUndo reports whether Undo would change anything.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.CanUndo()
}

// CanRedo reports whether Redo would change anything.
func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.CanRedo()
}

// Flush commits pending edits to history now.
func (s *Session) Flush() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.Flush()
}

// ClearCanvas removes every component. The page settings stay, history is
// dropped.
func (s *Session) ClearCanvas() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Components = []*model.CanvasBlockInstance{}
	s.sel = model.Selection{}
	s.hist.Reset()
	s.persist()
}

// Close flushes pending history and writes the template one last time.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hist.Flush()
	s.persist()
	return nil
}
