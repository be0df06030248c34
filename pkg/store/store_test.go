package store

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"tableflip.dev/caddr/pkg/routine"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string         { return t.path }
func (t testConfig) RemotePath() string       { return filepath.Join(t.path, "remote.db") }
func (t testConfig) User() string             { return "tester" }
func (t testConfig) Debounce() time.Duration  { return 10 * time.Millisecond }
func (t testConfig) AdvisorCommand() []string { return nil }
func (t testConfig) LogLevel() string         { return "info" }

type fakeLocal struct {
	mu    sync.Mutex
	data  *routine.AppData
	saves int
	err   error
}

func (f *fakeLocal) Load(ctx context.Context) (routine.AppData, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return routine.AppData{}, false, f.err
	}
	if f.data == nil {
		return routine.AppData{}, false, nil
	}
	return *f.data, true, nil
}

func (f *fakeLocal) Save(ctx context.Context, data routine.AppData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.err != nil {
		return f.err
	}
	f.data = &data
	return nil
}

func (f *fakeLocal) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}

type fakeRemote struct {
	mu      sync.Mutex
	docs    map[string]routine.AppData
	saves   int
	loadErr error
	saveErr error
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{docs: map[string]routine.AppData{}}
}

func (f *fakeRemote) Load(ctx context.Context, user string) (routine.AppData, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return routine.AppData{}, false, f.loadErr
	}
	d, ok := f.docs[user]
	return d, ok, nil
}

func (f *fakeRemote) Save(ctx context.Context, user string, data routine.AppData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.docs[user] = data
	return nil
}

func (f *fakeRemote) setSaveErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveErr = err
}

func docWithBlock(title string) routine.AppData {
	d := routine.Empty()
	d.Blocks = []routine.Block{{ID: "b-" + title, Title: title, Tasks: []routine.Task{}}}
	return d
}

func TestLocalRoundTrip(t *testing.T) {
	l, err := OpenLocal(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("open local: %v", err)
	}
	ctx := context.Background()

	if _, ok, err := l.Load(ctx); err != nil || ok {
		t.Fatalf("expected empty store, got ok=%v err=%v", ok, err)
	}
	if err := l.Save(ctx, docWithBlock("Morning")); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := l.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if len(got.Blocks) != 1 || got.Blocks[0].Title != "Morning" {
		t.Fatalf("expected Morning block, got %+v", got.Blocks)
	}
	if got.Days == nil || got.InboxTasks == nil {
		t.Fatalf("expected normalized collections, got %+v", got)
	}
}

func TestLocalSeesWritesFromAnotherStore(t *testing.T) {
	dir := t.TempDir()
	a, err := OpenLocal(testConfig{path: dir})
	if err != nil {
		t.Fatalf("open local: %v", err)
	}
	b, err := OpenLocal(testConfig{path: dir})
	if err != nil {
		t.Fatalf("open local: %v", err)
	}
	ctx := context.Background()

	if err := a.Save(ctx, docWithBlock("first")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got, _, _ := a.Load(ctx); len(got.Blocks) != 1 || got.Blocks[0].Title != "first" {
		t.Fatalf("expected first block, got %+v", got.Blocks)
	}
	if err := b.Save(ctx, docWithBlock("second")); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := a.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if len(got.Blocks) != 1 || got.Blocks[0].Title != "second" {
		t.Fatalf("expected second block, got %+v", got.Blocks)
	}
}

func TestLocalKeys(t *testing.T) {
	l, err := OpenLocal(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("open local: %v", err)
	}
	if err := l.Put(SessionKey, map[string]string{"templateId": "t1"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	var v map[string]string
	ok, err := l.Get(SessionKey, &v)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if v["templateId"] != "t1" {
		t.Fatalf("expected t1, got %v", v)
	}
	if err := l.Erase(SessionKey); err != nil {
		t.Fatalf("erase: %v", err)
	}
	if err := l.Erase(SessionKey); err != nil {
		t.Fatalf("erase missing: %v", err)
	}
	if ok, _ := l.Get(SessionKey, &v); ok {
		t.Fatalf("expected key gone")
	}
}

func TestRemoteRoundTrip(t *testing.T) {
	r, err := OpenRemote(filepath.Join(t.TempDir(), "nested", "remote.db"))
	if err != nil {
		t.Fatalf("open remote: %v", err)
	}
	defer r.Close()
	ctx := context.Background()

	if _, ok, err := r.Load(ctx, "alice"); err != nil || ok {
		t.Fatalf("expected no document, got ok=%v err=%v", ok, err)
	}
	if err := r.Save(ctx, "alice", docWithBlock("One")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := r.Save(ctx, "alice", docWithBlock("Two")); err != nil {
		t.Fatalf("save again: %v", err)
	}
	got, ok, err := r.Load(ctx, "alice")
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if got.Blocks[0].Title != "Two" {
		t.Fatalf("expected latest document, got %q", got.Blocks[0].Title)
	}
	if _, ok, _ := r.Load(ctx, "bob"); ok {
		t.Fatalf("expected documents to be per user")
	}
	if err := r.Save(ctx, "", docWithBlock("x")); err == nil {
		t.Fatalf("expected error for empty user")
	}
}

func TestLoadSessionPrefersRemote(t *testing.T) {
	local := &fakeLocal{}
	localDoc := docWithBlock("local")
	local.data = &localDoc
	remote := newFakeRemote()
	remote.docs["u"] = docWithBlock("remote")

	got, err := LoadSession(context.Background(), local, remote, "u", nil)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if got.Origin != OriginRemote || got.Data.Blocks[0].Title != "remote" {
		t.Fatalf("expected remote document, got %s %+v", got.Origin, got.Data.Blocks)
	}
	if remote.saves != 0 {
		t.Fatalf("expected no mirror write, got %d", remote.saves)
	}
}

func TestLoadSessionMirrorsLocal(t *testing.T) {
	local := &fakeLocal{}
	localDoc := docWithBlock("local")
	local.data = &localDoc
	remote := newFakeRemote()

	got, err := LoadSession(context.Background(), local, remote, "u", nil)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if got.Origin != OriginLocal {
		t.Fatalf("expected local origin, got %s", got.Origin)
	}
	if _, ok := remote.docs["u"]; !ok {
		t.Fatalf("expected local document mirrored to remote")
	}
}

func TestLoadSessionFresh(t *testing.T) {
	got, err := LoadSession(context.Background(), &fakeLocal{}, newFakeRemote(), "u", nil)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if got.Origin != OriginFresh {
		t.Fatalf("expected fresh origin, got %s", got.Origin)
	}
	if got.Data.Profile().Level != 1 || len(got.Data.Blocks) != 0 {
		t.Fatalf("expected empty document, got %+v", got.Data)
	}
}

func TestLoadSessionRemoteFailureFallsBack(t *testing.T) {
	local := &fakeLocal{}
	localDoc := docWithBlock("local")
	local.data = &localDoc
	remote := newFakeRemote()
	remote.loadErr = errors.New("offline")

	got, err := LoadSession(context.Background(), local, remote, "u", nil)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if got.Origin != OriginLocal || got.RemoteErr == nil {
		t.Fatalf("expected local fallback with remote error, got %s %v", got.Origin, got.RemoteErr)
	}
	if remote.saves != 0 {
		t.Fatalf("expected no mirror after failed load, got %d", remote.saves)
	}
}

func TestLoadSessionWithoutUserSkipsRemote(t *testing.T) {
	remote := newFakeRemote()
	remote.docs[""] = docWithBlock("remote")
	got, err := LoadSession(context.Background(), &fakeLocal{}, remote, "", nil)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if got.Origin != OriginFresh {
		t.Fatalf("expected fresh origin, got %s", got.Origin)
	}
}

func TestSyncerDebounces(t *testing.T) {
	local := &fakeLocal{}
	remote := newFakeRemote()
	s := &Syncer{Local: local, Remote: remote, User: "u", Delay: 30 * time.Millisecond}

	s.Enqueue(docWithBlock("a"))
	s.Enqueue(docWithBlock("b"))
	s.Enqueue(docWithBlock("c"))
	if !s.Status().Pending {
		t.Fatalf("expected pending status")
	}

	deadline := time.Now().Add(2 * time.Second)
	for local.saveCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(60 * time.Millisecond)

	if n := local.saveCount(); n != 1 {
		t.Fatalf("expected 1 local save, got %d", n)
	}
	if local.data.Blocks[0].Title != "c" {
		t.Fatalf("expected latest document saved, got %q", local.data.Blocks[0].Title)
	}
	st := s.Status()
	if st.Pending || st.Err != nil || st.LastSync.IsZero() {
		t.Fatalf("expected clean status, got %+v", st)
	}
}

func TestSyncerRetriesRemote(t *testing.T) {
	local := &fakeLocal{}
	remote := newFakeRemote()
	remote.setSaveErr(errors.New("offline"))
	s := &Syncer{Local: local, Remote: remote, User: "u", Delay: time.Hour}
	ctx := context.Background()

	s.Enqueue(docWithBlock("a"))
	if err := s.Flush(ctx); err == nil {
		t.Fatalf("expected remote error")
	}
	if !s.Status().Pending {
		t.Fatalf("expected unsynced document to stay pending")
	}
	if local.saveCount() != 1 {
		t.Fatalf("expected local save despite remote failure")
	}

	remote.setSaveErr(nil)
	if err := s.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if _, ok := remote.docs["u"]; !ok {
		t.Fatalf("expected retried document on remote")
	}
	if s.Status().Pending {
		t.Fatalf("expected nothing pending")
	}
	if err := s.Flush(ctx); err != nil {
		t.Fatalf("idle flush: %v", err)
	}
}

func TestSyncerEnqueueCopies(t *testing.T) {
	local := &fakeLocal{}
	s := &Syncer{Local: local, Delay: time.Hour}
	doc := docWithBlock("a")
	s.Enqueue(doc)
	doc.Blocks[0].Title = "mutated"
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
	if local.data.Blocks[0].Title != "a" {
		t.Fatalf("expected snapshot, got %q", local.data.Blocks[0].Title)
	}
	s.Enqueue(docWithBlock("late"))
	if s.Status().Pending {
		t.Fatalf("expected closed syncer to ignore enqueue")
	}
}

func TestLocalWatchEmitsDocumentChanges(t *testing.T) {
	l, err := OpenLocal(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("open local: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := l.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	if err := l.Save(ctx, docWithBlock("x")); err != nil {
		t.Fatalf("save: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Key == DocumentKey {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for document change event")
		}
	}
}
