// Package aesctr applies AES-128 in counter mode.
//
// Counter mode is a length-preserving keystream XOR: the same operation
// enciphers and deciphers, there is no padding, and there is no integrity
// protection of any kind. Callers must authenticate the ciphertext
// separately; this package never claims otherwise.
package aesctr

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"
)

const (
	// KeySize is the AES-128 key length in bytes.
	KeySize = 16

	// IVSize is the counter-mode initialization vector length in bytes.
	IVSize = 16
)

var (
	// ErrInvalidKeyLength is returned when the key is not KeySize bytes.
	ErrInvalidKeyLength = errors.New("aesctr: invalid key length")

	// ErrInvalidIVLength is returned when the IV is not IVSize bytes.
	ErrInvalidIVLength = errors.New("aesctr: invalid IV length")
)

// Encrypt enciphers plaintext under key and iv. The ciphertext has exactly
// the length of the plaintext.
func Encrypt(key, iv, plaintext []byte) ([]byte, error) {
	return apply(key, iv, plaintext)
}

// Decrypt deciphers ciphertext under key and iv. Counter mode is symmetric,
// so this is the same keystream application as Encrypt.
func Decrypt(key, iv, ciphertext []byte) ([]byte, error) {
	return apply(key, iv, ciphertext)
}

func apply(key, iv, data []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeyLength, len(key), KeySize)
	}
	if len(iv) != IVSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidIVLength, len(iv), IVSize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aesctr: %w", err)
	}

	out := make([]byte, len(data))
	cipher.NewCTR(block, iv).XORKeyStream(out, data)
	return out, nil
}
