// Package log provides centralised audit logging for wphooks operations.
// Logs are stored in ~/.wphooks/log/wphooks-log.db and record every hook
// dispatch, listing and asset operation made through the CLI or MCP server,
// across projects.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("hooks:apply", "filter").
//		Tag(tag).
//		Callbacks(reg.Count(hook.NamespaceFilter, tag)).
//		Write(err)
//
//	log.Event("asset:enqueue", "enqueue").
//		Detail("handle", handle).
//		Detail("src", src).
//		Write(err)
//
// The source parameter follows the format "{extension}:{command}" for CLI
// commands or "mcp:{tool}" for MCP tools. Examples: "hooks:do",
// "asset:url", "mcp:wphooks_apply_filters".
//
// Every entry written by one process carries the same run id, so a single
// invocation that dispatches many tags can be reassembled afterwards.
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source    string `json:"source"`    // e.g., "hooks:apply", "mcp:wphooks_do_action"
	Action    string `json:"action"`    // verb: filter, action, list, enqueue, config, etc.
	Tag       string `json:"tag"`       // hook tag the operation targeted
	Callbacks int    `json:"callbacks"` // registered callbacks for Tag at dispatch time

	// Timing
	Start int64 `json:"start"` // unix milliseconds when Event() called
	End   int64 `json:"end"`   // unix milliseconds when Write() called

	Success bool           `json:"success"`          // whether operation succeeded
	Error   string         `json:"error,omitempty"`  // error message if failed
	Detail  map[string]any `json:"detail,omitempty"` // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write]
// to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The source identifies where the operation originated:
//   - CLI commands: "{extension}:{command}" (e.g., "hooks:apply")
//   - MCP tools: "mcp:{tool}" (e.g., "mcp:wphooks_list")
//
// The action describes what was done: "filter", "action", "list",
// "enqueue", "url", "version", "config".
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().UnixMilli(),
		},
	}
}

// Tag sets the hook tag this operation targets.
//
// Leave unset for operations that are not about a single tag (e.g., ls).
func (b *Builder) Tag(tag string) *Builder {
	b.entry.Tag = tag
	return b
}

// Callbacks records how many callbacks were registered for the tag.
func (b *Builder) Callbacks(n int) *Builder {
	b.entry.Callbacks = n
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
//
// Use for operation-specific data that doesn't fit standard fields:
// input values, results, script paths. Can be called multiple times.
//
// Example:
//
//	log.Event("hooks:do", "action").
//		Tag(tag).
//		Detail("did_action", n)
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure from err.
//
// If err is nil, the entry is logged as successful.
// If err is non-nil, the entry is logged as failed with the error message.
//
// Example:
//
//	out, err := rt.ApplyFilters(tag, value)
//	log.Event("hooks:apply", "filter").Tag(tag).Write(err)
//	if err != nil {
//		return err
//	}
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().UnixMilli()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db, run: uuid.NewString()}
	return nil
}

// SetProject sets the project identifier for subsequent log entries.
// The dir should be the absolute working directory.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// RunID returns the id stamped on this process's entries, or "" when the
// logger is not open.
func RunID() string {
	mu.Lock()
	defer mu.Unlock()
	if global == nil {
		return ""
	}
	return global.run
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
