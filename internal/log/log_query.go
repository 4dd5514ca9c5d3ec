// log_query.go reads and prunes the audit log.
//
// Separated from log_storage.go, which only writes. Queries run against the
// same connection as the writer so "wphooks log" sees entries from the
// current process.
//
// Design: Queries default to the current project. Entries are returned
// newest first, the order a user reading "what just happened" wants.

package log

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotOpen indicates the audit log has not been opened.
var ErrNotOpen = errors.New("audit log not open")

// Record is an Entry as read back from the database.
type Record struct {
	ID      int64  `json:"id"`
	Project string `json:"project"`
	Run     string `json:"run"`
	Entry
}

// Query selects audit log records.
type Query struct {
	Tag         string    // exact tag, empty for all
	Source      string    // source prefix, e.g. "mcp:" or "hooks:apply"
	Since       time.Time // zero for no lower bound
	Run         string    // restrict to one run id
	AllProjects bool      // include entries from other projects
	FailedOnly  bool      // only unsuccessful operations
	Limit       int       // 0 for no limit
}

// Find returns records matching q, newest first.
func Find(q Query) ([]Record, error) {
	l, err := open()
	if err != nil {
		return nil, err
	}

	where, args := q.where(l.project)
	stmt := `SELECT id, start, end, project, run, source, action, tag, callbacks,
	                success, error, detail
	         FROM log` + where + ` ORDER BY start DESC, id DESC`
	if q.Limit > 0 {
		stmt += fmt.Sprintf(" LIMIT %d", q.Limit)
	}

	rows, err := l.db.Query(stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query log: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			r       Record
			tag     sql.NullString
			errMsg  sql.NullString
			detail  sql.NullString
			success int
		)
		if err := rows.Scan(&r.ID, &r.Start, &r.End, &r.Project, &r.Run,
			&r.Source, &r.Action, &tag, &r.Callbacks, &success, &errMsg, &detail); err != nil {
			return nil, fmt.Errorf("scan log: %w", err)
		}
		r.Tag = tag.String
		r.Error = errMsg.String
		r.Success = success == 1
		if detail.Valid {
			_ = json.Unmarshal([]byte(detail.String), &r.Detail)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Prune deletes records that started before cutoff, across all projects,
// and returns how many went. With dryRun set nothing is deleted and the
// count is what would have been.
func Prune(cutoff time.Time, dryRun bool) (int64, error) {
	l, err := open()
	if err != nil {
		return 0, err
	}

	ms := cutoff.UnixMilli()
	if dryRun {
		var n int64
		err := l.db.QueryRow(`SELECT COUNT(*) FROM log WHERE start < ?`, ms).Scan(&n)
		if err != nil {
			return 0, fmt.Errorf("count log: %w", err)
		}
		return n, nil
	}

	res, err := l.db.Exec(`DELETE FROM log WHERE start < ?`, ms)
	if err != nil {
		return 0, fmt.Errorf("prune log: %w", err)
	}
	return res.RowsAffected()
}

func open() (*Logger, error) {
	mu.Lock()
	defer mu.Unlock()
	if global == nil {
		return nil, ErrNotOpen
	}
	return global, nil
}

func (q Query) where(project string) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if !q.AllProjects {
		conds = append(conds, "project = ?")
		args = append(args, project)
	}
	if q.Tag != "" {
		conds = append(conds, "tag = ?")
		args = append(args, q.Tag)
	}
	if q.Source != "" {
		conds = append(conds, "source LIKE ? ESCAPE '\\'")
		args = append(args, escapeLike(q.Source)+"%")
	}
	if !q.Since.IsZero() {
		conds = append(conds, "start >= ?")
		args = append(args, q.Since.UnixMilli())
	}
	if q.Run != "" {
		conds = append(conds, "run = ?")
		args = append(args, q.Run)
	}
	if q.FailedOnly {
		conds = append(conds, "success = 0")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
