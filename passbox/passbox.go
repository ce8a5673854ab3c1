// Package passbox encrypts secrets under a password.
//
// Encrypt stretches the password with a caller-chosen KDF, enciphers with
// AES-128-CTR, and authenticates with HMAC-SHA256. The envelope carries
// the salt and the exact derivation parameters, so Decrypt never guesses:
//
//	[salt: 32][kdf tag: 1 + params][iv: 16][ciphertext: N][tag: 32]
//
// A wrong password and a corrupted envelope are deliberately
// indistinguishable; both surface as ErrAuthenticationFailed.
package passbox

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/averlon/cryptobox/aesctr"
	"github.com/averlon/cryptobox/kdf"
	"github.com/averlon/cryptobox/mac"
)

const (
	// SaltSize is the derivation salt length in bytes.
	SaltSize = 32

	derivedLen = 2 * aesctr.KeySize

	kdfTagScrypt = 0x00
	kdfTagPBKDF2 = 0x01

	scryptParamsLen = 1 + 4 + 4
	pbkdf2ParamsLen = 4

	// minOverhead assumes the smaller parameter block.
	minOverhead = SaltSize + 1 + pbkdf2ParamsLen + aesctr.IVSize + mac.TagSize
)

var (
	// ErrInvalidMessage is returned when an envelope is too short or its
	// KDF tag is unknown.
	ErrInvalidMessage = errors.New("passbox: invalid message")

	// ErrAuthenticationFailed is returned when the tag does not verify.
	// Wrong password and tampering are indistinguishable.
	ErrAuthenticationFailed = errors.New("passbox: authentication failed")
)

// Encrypt seals plaintext under password. params selects and configures
// the password KDF; the choice travels inside the envelope so Decrypt can
// reproduce the derivation.
func Encrypt(password, plaintext []byte, params kdf.Params) ([]byte, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	paramsBlock, err := encodeParams(params)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function":       "Encrypt",
		"plaintext_size": len(plaintext),
	}).Debug("Sealing password envelope")

	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("passbox: generate salt: %w", err)
	}
	iv := make([]byte, aesctr.IVSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, fmt.Errorf("passbox: generate IV: %w", err)
	}

	derived, err := params.Derive(password, salt, derivedLen)
	if err != nil {
		return nil, err
	}
	defer derived.Destroy()
	encKey := derived.Bytes()[:aesctr.KeySize]
	macKey := derived.Bytes()[aesctr.KeySize:]

	ciphertext, err := aesctr.Encrypt(encKey, iv, plaintext)
	if err != nil {
		return nil, fmt.Errorf("passbox: encipher: %w", err)
	}

	tag := mac.Sum(macKey, iv, ciphertext)

	out := make([]byte, 0, SaltSize+len(paramsBlock)+len(iv)+len(ciphertext)+len(tag))
	out = append(out, salt...)
	out = append(out, paramsBlock...)
	out = append(out, iv...)
	out = append(out, ciphertext...)
	out = append(out, tag...)
	return out, nil
}

// Decrypt opens an envelope produced by Encrypt. The derivation parameters
// stored in the envelope are bounds-checked before any work is done, then
// the tag is verified before any deciphering.
func Decrypt(password, envelope []byte) ([]byte, error) {
	if len(envelope) < minOverhead {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrInvalidMessage, len(envelope), minOverhead)
	}

	salt := envelope[:SaltSize]
	params, paramsLen, err := parseParams(envelope[SaltSize:])
	if err != nil {
		return nil, err
	}

	rest := envelope[SaltSize+paramsLen:]
	if len(rest) < aesctr.IVSize+mac.TagSize {
		return nil, fmt.Errorf("%w: truncated after parameters", ErrInvalidMessage)
	}
	iv := rest[:aesctr.IVSize]
	tagStart := len(rest) - mac.TagSize
	ciphertext := rest[aesctr.IVSize:tagStart]
	tag := rest[tagStart:]

	// Validate stored cost parameters before deriving; a hostile envelope
	// must not be able to demand unbounded memory or time.
	if err := params.Validate(); err != nil {
		return nil, err
	}

	derived, err := params.Derive(password, salt, derivedLen)
	if err != nil {
		return nil, err
	}
	defer derived.Destroy()
	encKey := derived.Bytes()[:aesctr.KeySize]
	macKey := derived.Bytes()[aesctr.KeySize:]

	if !mac.Verify(macKey, tag, iv, ciphertext) {
		logrus.WithField("function", "Decrypt").Debug("Password envelope tag verification failed")
		return nil, ErrAuthenticationFailed
	}

	plaintext, err := aesctr.Decrypt(encKey, iv, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("passbox: decipher: %w", err)
	}
	return plaintext, nil
}

// encodeParams serializes the KDF selection and its cost settings.
func encodeParams(params kdf.Params) ([]byte, error) {
	switch p := params.(type) {
	case kdf.ScryptParams:
		out := make([]byte, 1+scryptParamsLen)
		out[0] = kdfTagScrypt
		out[1] = p.LogN
		binary.BigEndian.PutUint32(out[2:6], p.R)
		binary.BigEndian.PutUint32(out[6:10], p.P)
		return out, nil
	case kdf.PBKDF2Params:
		out := make([]byte, 1+pbkdf2ParamsLen)
		out[0] = kdfTagPBKDF2
		binary.BigEndian.PutUint32(out[1:5], p.Iterations)
		return out, nil
	default:
		return nil, fmt.Errorf("%w: unsupported KDF parameter type %T", kdf.ErrInvalidParams, params)
	}
}

// parseParams decodes the KDF tag and parameter block, returning the
// parameters and the number of bytes consumed.
func parseParams(b []byte) (kdf.Params, int, error) {
	if len(b) < 1 {
		return nil, 0, fmt.Errorf("%w: missing KDF tag", ErrInvalidMessage)
	}
	switch b[0] {
	case kdfTagScrypt:
		if len(b) < 1+scryptParamsLen {
			return nil, 0, fmt.Errorf("%w: truncated scrypt parameters", ErrInvalidMessage)
		}
		p := kdf.ScryptParams{
			LogN: b[1],
			R:    binary.BigEndian.Uint32(b[2:6]),
			P:    binary.BigEndian.Uint32(b[6:10]),
		}
		return p, 1 + scryptParamsLen, nil
	case kdfTagPBKDF2:
		if len(b) < 1+pbkdf2ParamsLen {
			return nil, 0, fmt.Errorf("%w: truncated pbkdf2 parameters", ErrInvalidMessage)
		}
		p := kdf.PBKDF2Params{Iterations: binary.BigEndian.Uint32(b[1:5])}
		return p, 1 + pbkdf2ParamsLen, nil
	default:
		return nil, 0, fmt.Errorf("%w: unknown KDF tag 0x%02x", ErrInvalidMessage, b[0])
	}
}
