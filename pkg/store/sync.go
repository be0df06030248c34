package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"tableflip.dev/caddr/pkg/routine"
)

// Status reports the syncer's last outcome.
type Status struct {
	LastSync time.Time
	Err      error
	Pending  bool
}

// Syncer debounces document saves. Every Enqueue restarts the delay; once it
// elapses the latest document is written locally and then remotely.
type Syncer struct {
	Local  LocalStore
	Remote RemoteStore
	User   string
	Delay  time.Duration
	Log    *log.Logger
	// Now stamps successful syncs.
	Now func() time.Time

	flushMu sync.Mutex

	mu      sync.Mutex
	timer   *time.Timer
	pending *routine.AppData
	// unsynced is the last document the remote rejected.
	unsynced *routine.AppData
	status   Status
	stopped  bool
}

// NewSyncer wires a syncer with the default delay.
func NewSyncer(local LocalStore, remote RemoteStore, user string, logger *log.Logger) *Syncer {
	return &Syncer{Local: local, Remote: remote, User: user, Delay: DefaultDebounce, Log: logger}
}

// Enqueue schedules data to be saved once changes settle.
func (s *Syncer) Enqueue(data routine.AppData) {
	snapshot := data.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.pending = &snapshot
	s.status.Pending = true
	if s.timer != nil {
		s.timer.Stop()
	}
	delay := s.Delay
	if delay <= 0 {
		delay = DefaultDebounce
	}
	s.timer = time.AfterFunc(delay, func() {
		if err := s.Flush(context.Background()); err != nil && s.Log != nil {
			s.Log.Error("sync failed", "err", err)
		}
	})
}

// Flush writes the pending document now. A document the remote rejected
// earlier is retried when nothing newer is pending.
func (s *Syncer) Flush(ctx context.Context) error {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	data := s.pending
	s.pending = nil
	if data == nil {
		data = s.unsynced
	}
	s.mu.Unlock()

	if data == nil {
		return nil
	}

	var errs []error
	if s.Local != nil {
		if err := s.Local.Save(ctx, *data); err != nil {
			errs = append(errs, err)
		}
	}
	remoteFailed := false
	if s.Remote != nil && s.User != "" {
		if err := s.Remote.Save(ctx, s.User, *data); err != nil {
			remoteFailed = true
			errs = append(errs, err)
		}
	}
	err := errors.Join(errs...)

	s.mu.Lock()
	if remoteFailed {
		s.unsynced = data
	} else {
		s.unsynced = nil
	}
	s.status.Err = err
	s.status.Pending = s.pending != nil || s.unsynced != nil
	if err == nil {
		s.status.LastSync = s.now()
	}
	s.mu.Unlock()

	if err == nil && s.Log != nil {
		s.Log.Debug("document synced", "user", s.User)
	}
	return err
}

// Close flushes whatever is pending and refuses further work.
func (s *Syncer) Close(ctx context.Context) error {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	return s.Flush(ctx)
}

// Status returns a copy of the current sync status.
func (s *Syncer) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Syncer) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
