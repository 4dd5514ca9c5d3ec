// errors.go defines sentinel errors for validation failures.

package validate

import "errors"

var (
	ErrInvalidTag    = errors.New("invalid tag")
	ErrInvalidURL    = errors.New("invalid base URL")
	ErrInvalidScript = errors.New("invalid script path")
)
