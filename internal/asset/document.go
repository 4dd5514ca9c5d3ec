// document.go implements the per-page script queue.
//
// Separated from asset.go so the queue can be used for any script, not just
// the registry script.
//
// Design: The queue follows the host platform's rules. The first
// registration of a handle wins and later ones are ignored. Scripts print in
// queue order with dependencies first. A script whose dependency was never
// queued is not printed, and the render reports it. A footer script needed
// by a head script moves to the head.

package asset

import (
	"errors"
	"fmt"
	"html"
	"io"
	"strings"
	"sync"

	"github.com/jpl-au/wphooks/hook"
)

var (
	// ErrMissingDependency is returned when a queued script depends on a
	// handle that was never queued.
	ErrMissingDependency = errors.New("missing script dependency")
	// ErrDependencyCycle is returned when queued scripts depend on each
	// other in a loop.
	ErrDependencyCycle = errors.New("script dependency cycle")
)

// Script is one queued script.
type Script struct {
	Handle   string   `json:"handle"`
	Src      string   `json:"src"`
	Deps     []string `json:"deps,omitempty"`
	Version  string   `json:"version,omitempty"`
	InFooter bool     `json:"in_footer"`
}

// URL returns Src with the version query parameter appended.
func (s Script) URL() string {
	if s.Version == "" {
		return s.Src
	}
	sep := "?"
	if strings.Contains(s.Src, "?") {
		sep = "&"
	}
	return s.Src + sep + "ver=" + s.Version
}

// Document is a host page's script queue. Safe for concurrent use.
type Document struct {
	mu      sync.Mutex
	order   []string
	scripts map[string]Script
}

// NewDocument returns an empty queue.
func NewDocument() *Document {
	return &Document{scripts: make(map[string]Script)}
}

// Enqueue queues s. It reports false, leaving the queue unchanged, when the
// handle is already queued.
func (d *Document) Enqueue(s Script) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.scripts[s.Handle]; ok {
		return false
	}
	d.scripts[s.Handle] = s
	d.order = append(d.order, s.Handle)
	return true
}

// Queued returns the script queued under handle.
func (d *Document) Queued(handle string) (Script, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, ok := d.scripts[handle]
	return s, ok
}

// Scripts returns the scripts for one location (footer or head) in print
// order. Scripts that cannot be printed are reported in the error, joined;
// the returned slice still holds every printable script.
func (d *Document) Scripts(footer bool) ([]Script, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var (
		out    []Script
		errs   []error
		state  = make(map[string]int)   // 1 visiting, 2 done
		failed = make(map[string]error) // first error per handle
	)
	var visit func(handle string) error
	visit = func(handle string) error {
		if err, ok := failed[handle]; ok {
			return err
		}
		switch state[handle] {
		case 1:
			return fmt.Errorf("%w: %s", ErrDependencyCycle, handle)
		case 2:
			return nil
		}
		s, ok := d.scripts[handle]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingDependency, handle)
		}
		state[handle] = 1
		for _, dep := range s.Deps {
			if err := visit(dep); err != nil {
				err = fmt.Errorf("%s: %w", handle, err)
				failed[handle] = err
				return err
			}
		}
		state[handle] = 2
		out = append(out, s)
		return nil
	}
	for _, handle := range d.order {
		if err := visit(handle); err != nil && d.scripts[handle].InFooter == footer {
			errs = append(errs, err)
		}
	}

	// A head script pulls its dependencies into the head, even ones queued
	// for the footer. out lists dependencies before dependents, so walking
	// it backwards reaches every dependent before its dependencies.
	head := make(map[string]bool)
	for i := len(out) - 1; i >= 0; i-- {
		s := out[i]
		if !s.InFooter || head[s.Handle] {
			head[s.Handle] = true
			for _, dep := range s.Deps {
				head[dep] = true
			}
		}
	}
	var printable []Script
	for _, s := range out {
		if head[s.Handle] != footer {
			printable = append(printable, s)
		}
	}
	return printable, errors.Join(errs...)
}

// Render writes the <script> tags for one location. When reg is not nil,
// each tag passes through FilterScriptTag and a non-string result leaves
// the tag unchanged.
func (d *Document) Render(w io.Writer, footer bool, reg *hook.Registry) error {
	scripts, err := d.Scripts(footer)
	for _, s := range scripts {
		src := s.URL()
		tag := fmt.Sprintf(`<script id="%s-js" src="%s"></script>`,
			html.EscapeString(s.Handle), html.EscapeString(src))
		if reg != nil {
			if out, ok := reg.ApplyFilters(FilterScriptTag, tag, s.Handle, src).(string); ok {
				tag = out
			}
		}
		if _, werr := fmt.Fprintln(w, tag); werr != nil {
			return werr
		}
	}
	return err
}
