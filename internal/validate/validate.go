package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reQ      = regexp.MustCompile(`^[A-Za-z0-9 .,&/()_'\-]{1,80}$`)
	reID     = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reGrade  = regexp.MustCompile(`^(M|NM|VG\+|VG|G\+|G|F|P)$`)
	reFormat = regexp.MustCompile(`^(LP|EP|SINGLE|BOX)$`)
	reStatus = regexp.MustCompile(`^(CHECKED_IN|PRICED|SOLD)$`)
)

// Q validates a free-text field (artist, title, label, search query):
// trims, caps the length, and enforces a conservative character set.
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len(s) > 80 {
		s = s[:80]
	}
	return s, reQ.MatchString(s)
}

// ID validates a resource identifier (record/snapshot ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Grade validates a Goldmine-style record grade (M, NM, VG+, VG, G+, G, F, P).
func Grade(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	return s, s != "" && reGrade.MatchString(s)
}

// Format validates the pressing format enum.
func Format(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	return s, s != "" && reFormat.MatchString(s)
}

// Status validates the inventory status enum.
func Status(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	return s, s != "" && reStatus.MatchString(s)
}

// Limit parses a page-size query param, clamped to [1, 200].
func Limit(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 50
	}
	if n > 200 {
		return 200
	}
	return n
}

// ReleaseID parses an optional Discogs release id; 0 means not linked yet.
func ReleaseID(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
