// script.go implements hook script path validation.

package validate

import (
	"fmt"
	"strings"
)

// ScriptPath validates a configured script path. Existence is checked when
// the script loads, so a path can be configured before the file is written.
func ScriptPath(p string) error {
	if strings.TrimSpace(p) == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidScript)
	}
	if strings.ContainsRune(p, 0) {
		return fmt.Errorf("%w: null byte in path", ErrInvalidScript)
	}
	return nil
}
