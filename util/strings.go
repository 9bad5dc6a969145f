package util

import (
	"crypto/rand"
	"encoding/base64"
	"strconv"
	"strings"
)

// RandomString32 returns a 32 bytes long string with 24 bytes (192 bits) of entropy.
func RandomString32() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil // 24 bytes encode to exactly 32 characters
}

// Trunc truncates the input string to maxRunes runes and appends an ellipsis if something was cut.
// It is UTF8-safe, but does not care for HTML.
func Trunc(s string, maxRunes int) string {
	s = strings.TrimSpace(s)
	var runes = 0
	for i := range s {
		if runes == maxRunes {
			return strings.TrimSpace(s[:i]) + "…"
		}
		runes++
	}
	return s
}

// ParseID parses a positive decimal id. Only the canonical form is accepted, so "+1" and "01" are refused.
func ParseID(s string) (int, bool) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 || strconv.Itoa(id) != s {
		return 0, false
	}
	return id, true
}
