package types

import (
	"math"
	"strings"
	"unicode/utf8"
)

// StringPtr converts a string to a pointer to a string
func StringPtr(s string) *string {
	return &s
}

// StringNilOrEmpty checks if a pointer to a string is nil or empty
func StringNilOrEmpty(s *string) bool {
	return s == nil || *s == ""
}

// SafeString returns a safe string from a pointer to a string
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Float64Ptr converts a float64 to a pointer to a float64
func Float64Ptr(f float64) *float64 {
	return &f
}

// IsFinite checks if f is neither NaN nor infinite
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Truncate shortens s to at most max bytes without splitting a rune
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// NormalizeKey lowercases and trims a lookup key
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParentSlug extracts the canonical slug of a "type#slug" parent reference
func ParentSlug(ref string) string {
	ref = strings.TrimSpace(ref)
	if i := strings.LastIndex(ref, "#"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}
