package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"strings"
	"time"

	"checklist-cli/internal/model"
	"checklist-cli/internal/tree"

	_ "modernc.org/sqlite"
)

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL lets the TUI, the web server and one-off CLI calls share the file.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS checked (
			checklist TEXT NOT NULL,
			item_id TEXT NOT NULL,
			checked_at_unixms INTEGER NOT NULL,
			PRIMARY KEY (checklist, item_id)
		);`,
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			checklist TEXT NOT NULL,
			slot TEXT NOT NULL,
			log_date TEXT NOT NULL,
			seconds INTEGER NOT NULL,
			rushed INTEGER NOT NULL DEFAULT 0,
			created_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS runs_checklist_idx ON runs(checklist, created_at_unixms);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Checked loads the checked-set of a checklist.
func (s Store) Checked(ctx context.Context, checklist string) (tree.Set, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT item_id FROM checked WHERE checklist = ?`, strings.TrimSpace(checklist))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := tree.NewSet()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out.Add(id)
	}
	return out, rows.Err()
}

// SetChecked adds or removes one identifier. Identifiers are not validated
// against the tree; stale ones are simply never matched.
func (s Store) SetChecked(ctx context.Context, checklist, id string, checked bool) error {
	checklist = strings.TrimSpace(checklist)
	if checklist == "" {
		return ErrInvalidName
	}
	if id == "" {
		return errors.New("store: missing item id")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if checked {
		_, err = db.ExecContext(ctx, `INSERT OR REPLACE INTO checked(checklist, item_id, checked_at_unixms) VALUES(?, ?, ?)`,
			checklist, id, time.Now().UTC().UnixMilli())
		return err
	}
	_, err = db.ExecContext(ctx, `DELETE FROM checked WHERE checklist = ? AND item_id = ?`, checklist, id)
	return err
}

// Toggle flips one identifier and returns its new state.
func (s Store) Toggle(ctx context.Context, checklist, id string) (bool, error) {
	set, err := s.Checked(ctx, checklist)
	if err != nil {
		return false, err
	}
	next := !set.Has(id)
	if err := s.SetChecked(ctx, checklist, id, next); err != nil {
		return false, err
	}
	return next, nil
}

// Reset clears the checked-set of a checklist.
func (s Store) Reset(ctx context.Context, checklist string) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = db.ExecContext(ctx, `DELETE FROM checked WHERE checklist = ?`, strings.TrimSpace(checklist))
	return err
}

// RecordRun appends to the run log and returns the stored row.
func (s Store) RecordRun(ctx context.Context, r model.Run) (model.Run, error) {
	r.Checklist = strings.TrimSpace(r.Checklist)
	if r.Checklist == "" {
		return model.Run{}, ErrInvalidName
	}
	if r.Seconds < 0 {
		return model.Run{}, errors.New("store: negative run duration")
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	r.CreatedAt = r.CreatedAt.UTC()
	r.Duration = FormatDuration(r.Seconds)

	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.Run{}, err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, `INSERT INTO runs(checklist, slot, log_date, seconds, rushed, created_at_unixms) VALUES(?, ?, ?, ?, ?, ?)`,
		r.Checklist, r.Slot, r.LogDate, r.Seconds, boolToInt(r.Rushed), r.CreatedAt.UnixMilli())
	if err != nil {
		return model.Run{}, err
	}
	if id, err := res.LastInsertId(); err == nil {
		r.ID = id
	}
	return r, nil
}

// Runs returns the most recent runs of a checklist, newest first.
func (s Store) Runs(ctx context.Context, checklist string, limit int) ([]model.Run, error) {
	if limit <= 0 {
		limit = 20
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT id, checklist, slot, log_date, seconds, rushed, created_at_unixms
		FROM runs WHERE checklist = ? ORDER BY created_at_unixms DESC, id DESC LIMIT ?`, strings.TrimSpace(checklist), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Run{}
	for rows.Next() {
		var r model.Run
		var rushed int
		var createdMs int64
		if err := rows.Scan(&r.ID, &r.Checklist, &r.Slot, &r.LogDate, &r.Seconds, &rushed, &createdMs); err != nil {
			return nil, err
		}
		r.Rushed = rushed != 0
		r.CreatedAt = time.UnixMilli(createdMs).UTC()
		r.Duration = FormatDuration(r.Seconds)
		out = append(out, r)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// StateModTime is the newest modification time of the state database files.
// Readers poll it to notice writes made by other processes.
func (s Store) StateModTime() time.Time {
	var latest time.Time
	for _, p := range []string{s.sqlitePath(), s.sqlitePath() + "-wal"} {
		st, err := os.Stat(p)
		if err != nil {
			continue
		}
		if st.ModTime().After(latest) {
			latest = st.ModTime()
		}
	}
	return latest
}
