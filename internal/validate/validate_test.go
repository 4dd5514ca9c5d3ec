package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTag(t *testing.T) {
	for _, tag := range []string{"init", "the_title", "woocommerce/cart.totals", "with space"} {
		assert.NoError(t, Tag(tag), tag)
	}
	assert.ErrorIs(t, Tag(""), ErrInvalidTag)
	assert.ErrorIs(t, Tag("a\x00b"), ErrInvalidTag)
}

func TestBaseURL(t *testing.T) {
	valid := []string{
		"",
		"/wp-content/plugins/site",
		"https://example.com/wp-content/plugins/site/",
		"http://localhost:8080",
	}
	for _, s := range valid {
		assert.NoError(t, BaseURL(s), s)
	}

	invalid := []string{
		"wp-content/plugins",
		"ftp://example.com/p",
		"https:///p",
		"https://example.com/p?x=1",
		"https://example.com/p#top",
		"/p?",
	}
	for _, s := range invalid {
		assert.ErrorIs(t, BaseURL(s), ErrInvalidURL, s)
	}
}

func TestScriptPath(t *testing.T) {
	assert.NoError(t, ScriptPath("hooks/site.lua"))
	assert.ErrorIs(t, ScriptPath(""), ErrInvalidScript)
	assert.ErrorIs(t, ScriptPath("  "), ErrInvalidScript)
	assert.ErrorIs(t, ScriptPath("a\x00.lua"), ErrInvalidScript)
}
