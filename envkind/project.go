package envkind

import (
	"regexp"
	"strings"
)

// Project ids are 6-30 characters of lowercase letters, digits and hyphens,
// starting with a letter and not ending with a hyphen. Legacy domain-scoped
// ids carry a "domain.tld:" prefix.
var projectIDPattern = regexp.MustCompile(`^([a-z0-9][a-z0-9.-]*\.[a-z]{2,}:)?[a-z][a-z0-9-]{4,28}[a-z0-9]$`)

// ValidateProjectID returns the reason id is not a usable project id, or ""
// when it is. Environment labels are never project ids.
func ValidateProjectID(id string) string {
	switch {
	case strings.TrimSpace(id) == "":
		return "empty"
	case IsReservedLabel(id):
		return "environment labels are not project ids"
	case !projectIDPattern.MatchString(id):
		return "does not match the project id format"
	default:
		return ""
	}
}
