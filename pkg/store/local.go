package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/caddr/pkg/routine"
)

const (
	// DocumentKey is the fixed key of the routine document.
	DocumentKey = "caddr_routine_v6_timing"
	// HistoryKey holds the undo checkpoints between runs.
	HistoryKey = "caddr_history"
	// SessionKey holds an open template edit session between runs.
	SessionKey = "caddr_template_session"
)

// LocalStore is the on-device whole-document store.
type LocalStore interface {
	Load(ctx context.Context) (routine.AppData, bool, error)
	Save(ctx context.Context, data routine.AppData) error
}

// RemoteStore is the per-user whole-document store.
type RemoteStore interface {
	Load(ctx context.Context, user string) (routine.AppData, bool, error)
	Save(ctx context.Context, user string, data routine.AppData) error
}

// Local stores documents as files under a base path with diskv.
type Local struct {
	d        *diskv.Diskv
	basePath string
}

// OpenLocal creates a diskv-backed local store using the provided config.
func OpenLocal(cfg Config) (*Local, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &Local{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		// Other processes rewrite the same files, so nothing is cached.
		CacheSizeMax: 0,
	}), basePath: basePath}, nil
}

// BasePath is the directory the store writes to.
func (l *Local) BasePath() string {
	return l.basePath
}

// Load reads the routine document. The bool is false when none was saved yet.
func (l *Local) Load(ctx context.Context) (routine.AppData, bool, error) {
	var data routine.AppData
	ok, err := l.Get(DocumentKey, &data)
	if err != nil || !ok {
		return routine.AppData{}, ok, err
	}
	return routine.Normalize(data), true, nil
}

// Save replaces the routine document.
func (l *Local) Save(ctx context.Context, data routine.AppData) error {
	return l.Put(DocumentKey, data)
}

// Get decodes the value stored under key into v. It always reads the file.
func (l *Local) Get(key string, v any) (bool, error) {
	if !l.d.Has(key) {
		return false, nil
	}
	rc, err := l.d.ReadStream(key, true)
	if err != nil {
		return false, fmt.Errorf("store: read %s: %w", key, err)
	}
	defer rc.Close()
	raw, err := io.ReadAll(rc)
	if err != nil {
		return false, fmt.Errorf("store: read %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("store: decode %s: %w", key, err)
	}
	return true, nil
}

// Put encodes v under key.
func (l *Local) Put(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	if err := l.d.Write(key, raw); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

// Erase drops key. Missing keys are fine.
func (l *Local) Erase(key string) error {
	if !l.d.Has(key) {
		return nil
	}
	return l.d.Erase(key)
}

// Keys are stored flat, one file per key.
func keyToPathTransform(s string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: s,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}
