// Package mac computes and verifies HMAC-SHA256 authentication tags.
//
// Verification is constant-time with respect to the tag contents: a
// mismatch reveals nothing about how much of the candidate tag was correct.
package mac

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
)

// TagSize is the HMAC-SHA256 output length in bytes.
const TagSize = sha256.Size

// Sum computes the HMAC-SHA256 tag over the concatenation of parts.
// Accepting the authenticated data in parts lets callers tag
// iv ‖ ciphertext ‖ associated-data without assembling one buffer.
func Sum(key []byte, parts ...[]byte) []byte {
	h := hmac.New(sha256.New, key)
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}

// Verify recomputes the tag over parts and compares it against candidate
// in constant time. A candidate of the wrong length never matches.
func Verify(key, candidate []byte, parts ...[]byte) bool {
	if len(candidate) != TagSize {
		return false
	}
	expected := Sum(key, parts...)
	return subtle.ConstantTimeCompare(expected, candidate) == 1
}
