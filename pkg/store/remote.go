package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"tableflip.dev/caddr/pkg/routine"
)

// Remote keeps one routine document per user in a sqlite database.
type Remote struct {
	database *sql.DB
	dbPath   string
}

// OpenRemote opens, creating if needed, the document database at dbPath.
func OpenRemote(dbPath string) (*Remote, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("store: create db directory: %w", err)
	}
	database, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite db: %w", err)
	}
	database.SetMaxOpenConns(1)

	remote := &Remote{database: database, dbPath: dbPath}
	if err := remote.migrate(context.Background()); err != nil {
		_ = database.Close()
		return nil, err
	}
	return remote, nil
}

// Close releases the database.
func (r *Remote) Close() error {
	return r.database.Close()
}

func (r *Remote) migrate(ctx context.Context) error {
	statements := []string{
		`PRAGMA journal_mode = WAL;`,
		`CREATE TABLE IF NOT EXISTS documents (
			user_id TEXT PRIMARY KEY,
			app_data TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
	}
	for _, stmt := range statements {
		if _, err := r.database.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("store: migrate: %w", err)
		}
	}
	return nil
}

// Load reads the document of user. The bool is false when there is none.
func (r *Remote) Load(ctx context.Context, user string) (routine.AppData, bool, error) {
	if user == "" {
		return routine.AppData{}, false, errors.New("store: remote user required")
	}
	var raw string
	err := r.database.QueryRowContext(ctx, `SELECT app_data FROM documents WHERE user_id = ?`, user).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return routine.AppData{}, false, nil
	}
	if err != nil {
		return routine.AppData{}, false, fmt.Errorf("store: load remote document: %w", err)
	}
	var data routine.AppData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return routine.AppData{}, false, fmt.Errorf("store: decode remote document: %w", err)
	}
	return routine.Normalize(data), true, nil
}

// Save replaces the document of user.
func (r *Remote) Save(ctx context.Context, user string, data routine.AppData) error {
	if user == "" {
		return errors.New("store: remote user required")
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("store: encode remote document: %w", err)
	}
	_, err = r.database.ExecContext(ctx, `
		INSERT INTO documents (user_id, app_data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET app_data = excluded.app_data, updated_at = excluded.updated_at`,
		user, string(raw), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("store: save remote document: %w", err)
	}
	return nil
}
