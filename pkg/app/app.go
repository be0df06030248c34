package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"tableflip.dev/caddr/pkg/advisor"
	"tableflip.dev/caddr/pkg/analytics"
	"tableflip.dev/caddr/pkg/history"
	"tableflip.dev/caddr/pkg/logging"
	"tableflip.dev/caddr/pkg/overlay"
	"tableflip.dev/caddr/pkg/recurrence"
	"tableflip.dev/caddr/pkg/reminder"
	"tableflip.dev/caddr/pkg/routine"
	"tableflip.dev/caddr/pkg/store"
	"tableflip.dev/caddr/pkg/templates"
	"tableflip.dev/caddr/pkg/timeutil"
)

var (
	// ErrNoPersistence is returned when the service has no local store.
	ErrNoPersistence = errors.New("app: no persistence configured")
	// ErrNoEdit is returned when no template edit is in progress.
	ErrNoEdit = errors.New("app: no template edit in progress")
	// ErrEditInProgress is returned when a template edit is already open.
	ErrEditInProgress = errors.New("app: template edit already in progress")
)

// Store is the local key/value persistence the service needs: the routine
// document plus auxiliary keys for undo history and template sessions.
type Store interface {
	store.LocalStore
	Get(key string, v any) (bool, error)
	Put(key string, v any) error
	Erase(key string) error
}

// Options configures Open.
type Options struct {
	Store    Store
	Remote   store.RemoteStore
	User     string
	Debounce time.Duration
	Advisor  advisor.Advisor
	Log      *log.Logger
	// Now defaults to time.Now. It anchors "today" and the week and month
	// recurrence kinds.
	Now func() time.Time
}

// Service is the single owner of the routine document. Every action computes
// a new document, swaps it in and schedules a save.
type Service struct {
	mu       sync.Mutex
	data     routine.AppData
	history  *history.Stack
	session  *templates.Session
	origin   store.Origin
	store    Store
	syncer   *store.Syncer
	advisor  advisor.Advisor
	log      *log.Logger
	now      func() time.Time
	reminder reminder.Checker
}

// Open loads the starting document and the persisted undo history and
// template session.
func Open(ctx context.Context, opts Options) (*Service, error) {
	if opts.Store == nil {
		return nil, ErrNoPersistence
	}
	s := &Service{
		store:   opts.Store,
		history: history.New(history.DefaultDepth),
		advisor: opts.Advisor,
		log:     opts.Log,
		now:     opts.Now,
	}
	if s.log == nil {
		s.log = logging.Discard()
	}
	if s.advisor == nil {
		s.advisor = advisor.Nop{}
	}
	if s.now == nil {
		s.now = time.Now
	}

	loaded, err := store.LoadSession(ctx, opts.Store, opts.Remote, opts.User, s.log)
	if err != nil {
		return nil, err
	}
	s.data = routine.Normalize(loaded.Data)
	s.origin = loaded.Origin

	if _, err := opts.Store.Get(store.HistoryKey, s.history); err != nil {
		s.log.Warn("discarding unreadable undo history", "err", err)
		s.history = history.New(history.DefaultDepth)
	}
	var session templates.Session
	if ok, err := opts.Store.Get(store.SessionKey, &session); err != nil {
		s.log.Warn("discarding unreadable template session", "err", err)
	} else if ok {
		s.session = &session
	}

	s.syncer = store.NewSyncer(opts.Store, opts.Remote, opts.User, s.log)
	if opts.Debounce > 0 {
		s.syncer.Delay = opts.Debounce
	}
	s.syncer.Now = s.now
	if loaded.RemoteErr != nil {
		s.log.Warn("remote store unavailable", "err", loaded.RemoteErr)
	}
	return s, nil
}

// Origin reports where the starting document came from.
func (s *Service) Origin() store.Origin {
	return s.origin
}

// Flush writes the document, the undo history and any template session now.
func (s *Service) Flush(ctx context.Context) error {
	err := s.syncer.Flush(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if perr := s.store.Put(store.HistoryKey, s.history); perr != nil {
		err = errors.Join(err, perr)
	}
	if s.session != nil {
		if perr := s.store.Put(store.SessionKey, s.session); perr != nil {
			err = errors.Join(err, perr)
		}
	} else if perr := s.store.Erase(store.SessionKey); perr != nil {
		err = errors.Join(err, perr)
	}
	return err
}

// Close flushes and stops background saves.
func (s *Service) Close(ctx context.Context) error {
	err := s.Flush(ctx)
	if cerr := s.syncer.Close(ctx); cerr != nil {
		err = errors.Join(err, cerr)
	}
	return err
}

// SyncStatus reports the outcome of the last save.
func (s *Service) SyncStatus() store.Status {
	return s.syncer.Status()
}

// Today returns the current date key.
func (s *Service) Today() string {
	return timeutil.DateKey(s.now())
}

// Snapshot returns a deep copy of the document.
func (s *Service) Snapshot() routine.AppData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone()
}

// Reload replaces the in-memory document with the local copy, when one exists
// and nothing is waiting to be saved.
func (s *Service) Reload(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.syncer.Status().Pending {
		return false, nil
	}
	data, ok, err := s.store.Load(ctx)
	if err != nil || !ok {
		return false, err
	}
	s.data = data
	return true, nil
}

func (s *Service) resolver() overlay.Resolver {
	return overlay.New(recurrence.At(s.now()))
}

// update swaps in fn's result. checkpoint pushes the prior document on the
// undo stack first.
func (s *Service) update(checkpoint bool, fn func(routine.AppData, overlay.Resolver) routine.AppData) routine.AppData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateLocked(checkpoint, fn)
}

func (s *Service) updateLocked(checkpoint bool, fn func(routine.AppData, overlay.Resolver) routine.AppData) routine.AppData {
	if checkpoint {
		s.history.Push(s.data)
	}
	s.data = fn(s.data, s.resolver())
	s.syncer.Enqueue(s.data)
	return s.data
}

// Undo restores the most recent checkpoint.
func (s *Service) Undo() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, err := s.history.Pop()
	if err != nil {
		return err
	}
	s.data = prev
	s.syncer.Enqueue(s.data)
	return nil
}

// UndoDepth returns how many checkpoints are available.
func (s *Service) UndoDepth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Len()
}

// Day returns the resolved schedule, goal and journal of date.
func (s *Service) Day(date string) DayView {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.resolver()
	day := s.data.Day(date).Clone()
	return DayView{
		Date:     date,
		Blocks:   res.View(s.data, date),
		Goal:     res.GoalForDate(s.data, date),
		Reminder: res.ReminderForDate(s.data, date),
		Journal:  day,
		Detached: day.Detached(),
		Perf:     analytics.New(res).Day(s.data, date),
	}
}

// DayView is everything shown for one date.
type DayView struct {
	Date     string              `json:"date"`
	Blocks   []overlay.Scheduled `json:"blocks"`
	Goal     string              `json:"goal,omitempty"`
	Reminder string              `json:"reminderTime,omitempty"`
	Journal  routine.DayRoutine  `json:"journal"`
	Detached bool                `json:"detached"`
	Perf     analytics.DayPerf   `json:"performance"`
}

// Stats aggregates start..end inclusive.
func (s *Service) Stats(start, end string) (analytics.Stats, error) {
	if _, err := timeutil.ParseDateKey(start); err != nil {
		return analytics.Stats{}, fmt.Errorf("app: start date: %w", err)
	}
	if _, err := timeutil.ParseDateKey(end); err != nil {
		return analytics.Stats{}, fmt.Errorf("app: end date: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return analytics.New(s.resolver()).Compute(s.data, start, end, s.Today()), nil
}

// StatsFor aggregates a named timeframe ending today.
func (s *Service) StatsFor(tf analytics.Timeframe) (analytics.Stats, error) {
	start, end, err := analytics.Range(tf, s.now())
	if err != nil {
		return analytics.Stats{}, err
	}
	return s.Stats(start, end)
}

// CheckReminder returns the title to announce now, at most once per minute.
func (s *Service) CheckReminder() (string, bool) {
	now := s.now()
	return s.reminder.Check(now, s.Snapshot())
}
