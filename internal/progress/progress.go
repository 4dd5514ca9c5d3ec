// Package progress provides CLI progress indicators. Output goes to stderr
// to keep stdout clean for piping, and nothing is drawn unless stderr is a
// terminal, so scripted runs see no control characters.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// minItems is the minimum number of items before showing progress.
// Loading two or three scripts is too quick to be worth a counter.
const minItems = 5

// Progress counts through a known number of items, such as hook scripts
// being loaded.
type Progress struct {
	w       io.Writer
	label   string
	total   int
	current int
	isTTY   bool
	width   int
}

// New creates a progress reporter that writes to stderr.
// If total is less than minItems, progress updates are suppressed.
func New(label string, total int) *Progress {
	return newProgress(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())), label, total)
}

func newProgress(w io.Writer, tty bool, label string, total int) *Progress {
	return &Progress{w: w, label: label, total: total, isTTY: tty}
}

// Step advances the counter by one and redraws the line.
func (p *Progress) Step(item string) {
	p.current++
	if !p.visible() {
		return
	}
	line := fmt.Sprintf("%s... %d/%d %s", p.label, p.current, p.total, item)
	fmt.Fprint(p.w, "\r"+line+p.pad(len(line)))
	p.width = len(line)
}

// Done clears the progress line to make way for final output.
func (p *Progress) Done() {
	if !p.visible() || p.width == 0 {
		return
	}
	fmt.Fprint(p.w, "\r"+strings.Repeat(" ", p.width)+"\r")
	p.width = 0
}

func (p *Progress) visible() bool {
	return p.isTTY && p.total >= minItems
}

// pad blanks out whatever the previous, longer line left behind.
func (p *Progress) pad(n int) string {
	if n >= p.width {
		return ""
	}
	return strings.Repeat(" ", p.width-n)
}

// Spinner shows that an operation of unknown length is running.
type Spinner struct {
	w       io.Writer
	label   string
	isTTY   bool
	running bool
}

// NewSpinner creates a spinner that writes to stderr.
func NewSpinner(label string) *Spinner {
	return &Spinner{
		w:     os.Stderr,
		label: label,
		isTTY: term.IsTerminal(int(os.Stderr.Fd())),
	}
}

// Start displays the spinner.
func (s *Spinner) Start() {
	if !s.isTTY {
		return
	}
	s.running = true
	fmt.Fprintf(s.w, "⠋ %s...", s.label)
}

// Stop clears the spinner line.
func (s *Spinner) Stop() {
	if !s.isTTY || !s.running {
		return
	}
	s.running = false
	fmt.Fprint(s.w, "\r"+strings.Repeat(" ", len(s.label)+6)+"\r")
}
