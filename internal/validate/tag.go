// tag.go implements hook tag validation.
//
// Separated from url.go because tags are free-form labels. WordPress tags
// contain dots, slashes and spaces in the wild, so only empty tags and null
// bytes are rejected.

package validate

import (
	"fmt"
	"strings"
)

// Tag validates a hook tag given by a user.
func Tag(t string) error {
	if t == "" {
		return fmt.Errorf("%w: empty tag", ErrInvalidTag)
	}
	if strings.ContainsRune(t, 0) {
		return fmt.Errorf("%w: null byte in tag", ErrInvalidTag)
	}
	return nil
}
