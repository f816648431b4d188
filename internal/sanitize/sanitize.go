// Package sanitize strips unsafe HTML from user-supplied text before it
// is stored. Comments are accepted without authentication, so everything
// that ends up on the public board goes through here.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// strictPolicy removes all HTML tags and attributes. Used for
	// titles, venues and comment text, which are plain text only.
	strictPolicy = bluemonday.StrictPolicy()

	// ugcPolicy allows safe basic formatting. Used for event and
	// notice descriptions.
	ugcPolicy = bluemonday.UGCPolicy()
)

// Text strips all HTML tags and surrounding whitespace.
func Text(input string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(input))
}

// HTML sanitizes a description, keeping safe formatting tags and
// removing scripts, iframes and event handlers.
func HTML(input string) string {
	return strings.TrimSpace(ugcPolicy.Sanitize(input))
}
