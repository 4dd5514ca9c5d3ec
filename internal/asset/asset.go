// Package asset delivers the browser-side hook registry script to host
// pages.
//
// The registry itself runs in the browser; the server's only job is to work
// out where the compiled script lives and to queue it on the page, once, in
// the footer, ahead of any script that registers hooks. Delivery is itself
// hookable: the script URL and every rendered tag pass through filters, and
// queuing fires an action, so scripts loaded into the same registry can
// rewrite or observe it.
package asset

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Handle is the queue handle the registry script is registered under.
const Handle = "actions-and-filters"

// Hook tags fired while delivering the script.
const (
	// ActionEnqueueScripts fires after the script is queued. Args: handle.
	ActionEnqueueScripts = "wphooks_enqueue_scripts"
	// FilterScriptSrc filters the script URL before queuing. Args: handle.
	FilterScriptSrc = "wphooks_script_src"
	// FilterScriptTag filters each rendered <script> tag. Args: handle, src.
	FilterScriptTag = "wphooks_script_tag"
)

// scriptPath is the location of the compiled script below the plugin root.
const scriptPath = "/public/js/actions-and-filters"

// ScriptURL returns the public URL of the registry script below baseURL.
// Trailing slashes and backslashes on baseURL are dropped; minified selects
// the .min.js build.
func ScriptURL(baseURL string, minified bool) string {
	base := strings.TrimRight(baseURL, "/\\")
	suffix := ""
	if minified {
		suffix = ".min"
	}
	return base + scriptPath + suffix + ".js"
}

// VersionToken returns a cache-busting token for the file at path: the
// BLAKE2b-64 hash of its contents as 16 hex characters.
func VersionToken(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("version token: %w", err)
	}
	defer f.Close()

	h, err := blake2b.New(8, nil)
	if err != nil {
		panic("blake2b.New failed: " + err.Error())
	}
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("version token: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
