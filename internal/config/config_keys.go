// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic used by the config command and the MCP config tool, where
// settings are addressed by dotted keys such as "asset.base_url".
//
// Design: Pointers mark optional booleans so "not set" (nil) differs from
// "explicitly false". Defaults apply only when nothing was set.

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/jpl-au/wphooks/internal/validate"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"scripts.paths",
		"asset.base_url", "asset.minified", "asset.version", "asset.file",
		"script.timeout",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "scripts.paths":
		return strings.Join(c.Scripts.Paths, ","), nil
	case "asset.base_url":
		return c.Asset.BaseURL, nil
	case "asset.minified":
		return strconv.FormatBool(c.Minified()), nil
	case "asset.version":
		return c.Asset.Version, nil
	case "asset.file":
		return c.Asset.File, nil
	case "script.timeout":
		return c.ScriptTimeout().String(), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "scripts.paths":
		paths := SplitList(value)
		for _, p := range paths {
			if err := validate.ScriptPath(p); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidValue, err)
			}
		}
		c.Scripts.Paths = paths
	case "asset.base_url":
		if err := validate.BaseURL(value); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
		c.Asset.BaseURL = value
	case "asset.minified":
		v := strings.ToLower(value)
		if v != "true" && v != "false" {
			return fmt.Errorf("%w: asset.minified must be true or false", ErrInvalidValue)
		}
		b := v == "true"
		c.Asset.Minified = &b
	case "asset.version":
		c.Asset.Version = value
	case "asset.file":
		c.Asset.File = value
	case "script.timeout":
		d, err := time.ParseDuration(value)
		if err != nil || d < 0 {
			return fmt.Errorf("%w: script.timeout must be a non-negative duration such as 5s", ErrInvalidValue)
		}
		c.Script.Timeout = d.String()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	all := make(map[string]string, len(ValidKeys()))
	for _, k := range ValidKeys() {
		v, _ := c.Get(k)
		all[k] = v
	}
	return all
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "scripts.paths":
		return len(c.Scripts.Paths) > 0
	case "asset.base_url":
		return c.Asset.BaseURL != ""
	case "asset.minified":
		return c.Asset.Minified != nil
	case "asset.version":
		return c.Asset.Version != ""
	case "asset.file":
		return c.Asset.File != ""
	case "script.timeout":
		return c.Script.Timeout != ""
	default:
		return false
	}
}
