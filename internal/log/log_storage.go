// log_storage.go implements SQLite-based persistent audit logging.
//
// Separated from log.go to isolate database concerns. log.go provides the
// fluent API for building entries, while this file handles persistence.
// The project field is a hash of the working directory so entries can be
// grouped per project without storing paths.
//
// Design: Errors during logging are reported to stderr and otherwise
// ignored. A filter dispatch succeeds even when its audit entry cannot be
// written.

package log

import (
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jpl-au/wphooks/internal/config"
	"golang.org/x/crypto/blake2b"
	_ "modernc.org/sqlite"
)

// Logger writes audit log entries to a SQLite database.
type Logger struct {
	db      *sql.DB
	project string
	run     string
}

func (l *Logger) log(e Entry) {
	var detail *string
	if len(e.Detail) > 0 {
		if b, err := json.Marshal(e.Detail); err == nil {
			s := string(b)
			detail = &s
		}
	}

	success := 0
	if e.Success {
		success = 1
	}

	_, err := l.db.Exec(`
		INSERT INTO log (start, end, project, run, source, action, tag, callbacks,
		                 success, error, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Start, e.End, l.project, l.run, e.Source, e.Action,
		nilIfEmpty(e.Tag), e.Callbacks,
		success, nilIfEmpty(e.Error), detail,
	)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "wphooks: audit log write failed: %v\n", err)
	}
}

// dbPathFunc is the function that returns the database path.
// Tests can override this to use a temp directory.
var dbPathFunc = defaultDBPath

func defaultDBPath() string {
	home := config.Home()
	if home == "" {
		// No home directory (some containers): log next to the project.
		return filepath.Join(config.DirName, "log", "wphooks-log.db")
	}
	return filepath.Join(home, "log", "wphooks-log.db")
}

func dbPath() string {
	return dbPathFunc()
}

// DBPath returns the path to the log database.
func DBPath() string {
	return dbPath()
}

// hash creates a project identifier from the directory path.
func hash(s string) string {
	h, err := blake2b.New(8, nil) // 64-bit = 16 hex chars
	if err != nil {
		panic("blake2b.New failed: " + err.Error())
	}
	h.Write([]byte(s))
	return hex.EncodeToString(h.Sum(nil))
}

// migrate creates the log table if it doesn't exist. Safe for concurrent access.
func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS log (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			start      INTEGER NOT NULL,
			end        INTEGER NOT NULL,
			project    TEXT NOT NULL,
			run        TEXT NOT NULL,
			source     TEXT NOT NULL,
			action     TEXT NOT NULL,
			tag        TEXT,
			callbacks  INTEGER NOT NULL DEFAULT 0,
			success    INTEGER NOT NULL,
			error      TEXT,
			detail     TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_log_start ON log(start);
		CREATE INDEX IF NOT EXISTS idx_log_project ON log(project);
		CREATE INDEX IF NOT EXISTS idx_log_run ON log(run);
		CREATE INDEX IF NOT EXISTS idx_log_tag ON log(tag);
	`)
	return err
}

// nilIfEmpty returns nil for empty strings so they are stored as NULL.
func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
