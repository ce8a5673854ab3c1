// Package digest provides one-shot hashing helpers over multiple inputs.
package digest

import (
	"crypto/sha256"
	"crypto/sha512"

	"golang.org/x/crypto/sha3"
)

// SHA256 hashes the concatenation of parts with SHA-256.
func SHA256(parts ...[]byte) [sha256.Size]byte {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	var out [sha256.Size]byte
	h.Sum(out[:0])
	return out
}

// SHA512 hashes the concatenation of parts with SHA-512.
func SHA512(parts ...[]byte) [sha512.Size]byte {
	h := sha512.New()
	for _, p := range parts {
		h.Write(p)
	}
	var out [sha512.Size]byte
	h.Sum(out[:0])
	return out
}

// Keccak256 hashes the concatenation of parts with legacy Keccak-256,
// the digest used for deriving addresses from public keys.
func Keccak256(parts ...[]byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	for _, p := range parts {
		h.Write(p)
	}
	var out [32]byte
	h.Sum(out[:0])
	return out
}
