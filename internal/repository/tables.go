package repository

import "regexp"

var tablePlaceholder = regexp.MustCompile(`\{([a-z][a-z0-9_]*)\}`)

// withPrefix rewrites LMS-style {table} placeholders into prefixed table names.
func withPrefix(prefix, query string) string {
	return tablePlaceholder.ReplaceAllString(query, prefix+"${1}")
}
