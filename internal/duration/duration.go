// Package duration parses the retention periods accepted by "wphooks log".
//
// Users write "12h", "7d", "4w" or "3m" rather than Go's time.Duration
// format, matching common CLI conventions for retention policies.
package duration

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// ErrInvalid indicates a string that is not a retention period.
var ErrInvalid = errors.New("invalid duration")

const day = 24 * time.Hour

var pattern = regexp.MustCompile(`^(\d+)([hdwm])$`)

// Parse parses Nh (hours), Nd (days), Nw (weeks) or Nm (months of 30 days).
func Parse(s string) (time.Duration, error) {
	matches := pattern.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("%w: %q (use 12h, 7d, 4w or 3m)", ErrInvalid, s)
	}

	num, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	unit := map[string]time.Duration{
		"h": time.Hour,
		"d": day,
		"w": 7 * day,
		"m": 30 * day,
	}[matches[2]]
	if num > math.MaxInt64/int64(unit) {
		return 0, fmt.Errorf("%w: %q is too long", ErrInvalid, s)
	}
	return time.Duration(num) * unit, nil
}

// Cutoff returns the instant s before now.
func Cutoff(now time.Time, s string) (time.Time, error) {
	d, err := Parse(s)
	if err != nil {
		return time.Time{}, err
	}
	return now.Add(-d), nil
}
