package domain

import (
	"crypto/rand"
	"encoding/hex"
)

// IDLength is the length of an identity reference in hex characters.
const IDLength = 24

// NewID mints a fresh identity reference: 12 random bytes, hex encoded.
func NewID() string {
	buf := make([]byte, IDLength/2)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// IsValidID reports whether s is a syntactically valid identity reference.
// Validity is purely a format check; existence is a store concern.
func IsValidID(s string) bool {
	if len(s) != IDLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
