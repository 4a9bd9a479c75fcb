package preset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SQLiteStore persists presets in a single SQLite table
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens or creates the database at path
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		path = "presets.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS presets (
		name TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create presets table: %w", err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// Path returns the database file path
func (s *SQLiteStore) Path() string {
	return s.path
}

// Save inserts or replaces the named preset
func (s *SQLiteStore) Save(ctx context.Context, name string, data []byte) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if data == nil {
		data = []byte{}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO presets (name, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		name, data, time.Now().UTC().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("save preset %q: %w", name, err)
	}
	return nil
}

// Load returns the named preset
func (s *SQLiteStore) Load(ctx context.Context, name string) (Preset, error) {
	var (
		data    []byte
		updated int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT payload, updated_at FROM presets WHERE name = ?`, name,
	).Scan(&data, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Preset{}, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	if err != nil {
		return Preset{}, fmt.Errorf("load preset %q: %w", name, err)
	}
	return Preset{
		Name:    name,
		Data:    data,
		Updated: time.Unix(0, updated).UTC(),
	}, nil
}

// List returns every preset sorted by name
func (s *SQLiteStore) List(ctx context.Context) (infos []Info, retErr error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, length(payload), updated_at FROM presets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil && retErr == nil {
			retErr = err
		}
	}()
	for rows.Next() {
		var (
			info    Info
			updated int64
		)
		if err := rows.Scan(&info.Name, &info.Size, &updated); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		info.Updated = time.Unix(0, updated).UTC()
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// Delete removes the named preset
func (s *SQLiteStore) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM presets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete preset %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete preset %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLiteStore)(nil)
