// Package sanitize strips markup from user-supplied note fields.
// Notes are plain text; pasted HTML is neutralized before storage so it
// can never reach another user's browser intact.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Text removes all HTML elements and attributes, keeping text content.
func Text(s string) string {
	return strings.TrimSpace(policy.Sanitize(s))
}
