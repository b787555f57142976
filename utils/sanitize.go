package utils

import "github.com/microcosm-cc/bluemonday"

var sanitizer = bluemonday.UGCPolicy()

// Sanitize cleans HTML content to prevent XSS attacks. Inline code fields
// are stored verbatim and must not be passed through this.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
