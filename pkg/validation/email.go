// Package validation holds reusable, stateless input predicates.
package validation

import "regexp"

// emailPattern accepts a dotted local part of letters, digits, underscore,
// plus and hyphen, followed by dotted domain labels ending in an alphabetic
// top-level label of at least two characters. Purely syntactic: no DNS
// lookup, no trimming, no case normalization.
var emailPattern = regexp.MustCompile(
	`^[_A-Za-z0-9+-]+(\.[_A-Za-z0-9+-]+)*@[A-Za-z0-9-]+(\.[A-Za-z0-9]+)*(\.[A-Za-z]{2,})$`,
)

// IsValidEmail reports whether candidate matches the email grammar.
// Empty input is invalid, never an error.
func IsValidEmail(candidate string) bool {
	if candidate == "" {
		return false
	}
	return emailPattern.MatchString(candidate)
}
