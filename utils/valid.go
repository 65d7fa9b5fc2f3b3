// utils/valid.go
package utils

import (
	"strconv"
	"strings"
	"unicode"
)

// SanitizeInput trims surrounding space and removes control characters.
// HTML escaping is left to the templates.
func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, input)
}

// NormalizeEmail lowercases and trims an address so lookups match stored values.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// StringValue returns m[key] as text. Numbers are formatted; other types
// yield "".
func StringValue(m map[string]interface{}, key string) string {
	switch v := m[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
