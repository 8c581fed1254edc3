package cdk

import (
	"regexp"
	"strings"
)

// Six groups of four alphanumerics separated by hyphens.
var formatRe = regexp.MustCompile(`^[A-Za-z0-9]{4}(-[A-Za-z0-9]{4}){5}$`)

const (
	groupCount = 6
	groupLen   = 4
)

// IsValidFormat reports whether code has the XXXX-XXXX-XXXX-XXXX-XXXX-XXXX
// shape. The backend remains the authority on whether the code exists.
func IsValidFormat(code string) bool {
	if code == "" {
		return false
	}
	return formatRe.MatchString(code)
}

// Normalize trims surrounding whitespace and upper-cases the code so user
// input can be compared with issued codes.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
