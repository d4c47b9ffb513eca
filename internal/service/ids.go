package service

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
)

var idPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

func newID() string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// IsValidID reports whether value has the shape of an id produced by
// newID. Malformed ids are rejected before touching the database.
func IsValidID(value string) bool {
	return idPattern.MatchString(value)
}
