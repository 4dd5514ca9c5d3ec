// url.go implements validation of the plugin base URL.

package validate

import (
	"fmt"
	"net/url"
	"strings"
)

// BaseURL validates the root URL the registry script is served under.
//
// Rules:
//   - empty is allowed (site-relative "/public/js/..." URLs)
//   - absolute URLs need an http or https scheme and a host
//   - relative URLs must start with "/"
//   - no query string or fragment, since the script path is appended
func BaseURL(s string) error {
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if u.RawQuery != "" || u.Fragment != "" || strings.ContainsAny(s, "?#") {
		return fmt.Errorf("%w: %q has a query or fragment", ErrInvalidURL, s)
	}
	switch {
	case u.Scheme == "" && u.Host == "":
		if !strings.HasPrefix(s, "/") {
			return fmt.Errorf("%w: %q must be absolute or start with /", ErrInvalidURL, s)
		}
	case u.Scheme != "http" && u.Scheme != "https":
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	case u.Host == "":
		return fmt.Errorf("%w: %q has no host", ErrInvalidURL, s)
	}
	return nil
}
