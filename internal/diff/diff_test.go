package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name    string
		old     string
		new     string
		want    string
		changed bool
	}{
		{
			name:    "replaced word",
			old:     "hello",
			new:     "HELLO!",
			want:    "- hello\n+ HELLO!\n",
			changed: true,
		},
		{
			name: "unchanged",
			old:  "same",
			new:  "same",
			want: "  same\n",
		},
		{
			name:    "appended line",
			old:     "a\n",
			new:     "a\nb\n",
			want:    "  a\n+ b\n",
			changed: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Compute(tt.old, tt.new, "before", "after")
			assert.Equal(t, tt.want, r.Diff)
			assert.Equal(t, tt.changed, r.Changed())
		})
	}
}

func TestComputeCollapsesContext(t *testing.T) {
	var lines []string
	for i := range 10 {
		lines = append(lines, strings.Repeat("x", i+1))
	}
	old := strings.Join(lines, "\n") + "\n"
	r := Compute(old, old+"tail\n", "a", "b")

	assert.Contains(t, r.Diff, "  ...\n")
	assert.Contains(t, r.Diff, "+ tail\n")
	assert.NotContains(t, r.Diff, "  xxxxx\n")
}

func TestFormat(t *testing.T) {
	r := Compute("hello", "HELLO!", "greet (input)", "greet (filtered)")

	plain := r.Format(false)
	assert.True(t, strings.HasPrefix(plain, "--- greet (input)\n+++ greet (filtered)\n"))
	assert.NotContains(t, plain, "\033[")

	coloured := r.Format(true)
	assert.Contains(t, coloured, "\033[31m- hello\033[0m")
	assert.Contains(t, coloured, "\033[32m+ HELLO!\033[0m")
}
