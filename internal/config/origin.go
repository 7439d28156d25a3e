package config

import "strings"

// OriginAllowed reports whether origin matches the allow-list. Entries are
// exact origins, "*.suffix" wildcards, or "*" which admits everything.
func OriginAllowed(allowed []string, origin string) bool {
	for _, entry := range allowed {
		entry = strings.TrimSpace(entry)
		switch {
		case entry == "*":
			return true
		case strings.HasPrefix(entry, "*."):
			if strings.HasSuffix(origin, entry[1:]) {
				return true
			}
		case entry == origin:
			return true
		}
	}
	return false
}
