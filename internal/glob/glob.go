// Package glob implements the wildcard matching used for skill selection
// and permission rules. The only metacharacter is '*' (zero or more of any
// character); everything else matches literally.
package glob

import (
	"regexp"
	"strings"
)

// IsPattern reports whether s contains a wildcard.
func IsPattern(s string) bool {
	return strings.Contains(s, "*")
}

// Compile translates a wildcard pattern into an anchored regular
// expression. Regex metacharacters other than '*' are escaped, so a
// pattern like "test.file" matches only the literal string.
func Compile(pattern string) (*regexp.Regexp, error) {
	expr := "^" + strings.ReplaceAll(regexp.QuoteMeta(pattern), `\*`, ".*") + "$"
	return regexp.Compile(expr)
}

// Match reports whether name matches the wildcard pattern.
// An invalid pattern matches nothing.
func Match(pattern, name string) bool {
	re, err := Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(name)
}
