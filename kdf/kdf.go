// Package kdf derives fixed-length key material from a password and salt.
//
// Two variants are provided: a memory-hard scrypt derivation for
// password-protected secrets at rest, and an iterative PBKDF2-HMAC-SHA256
// derivation for callers that need a cheaper, tunable work factor. Both are
// deterministic: identical (password, salt, params) inputs always produce
// identical output, which is what lets an envelope carry its own derivation
// parameters and be re-opened later.
package kdf

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"

	"github.com/averlon/cryptobox/securemem"
)

// MaxScryptMemory bounds the memory an scrypt derivation may require.
// Derivation parameters arrive inside attacker-controlled envelopes, so an
// unbounded cost factor would let a hostile file drive the process out of
// memory before the password is ever checked.
const MaxScryptMemory = 512 << 20

// ErrInvalidParams is returned when derivation parameters are outside the
// allowed bounds.
var ErrInvalidParams = errors.New("kdf: invalid derivation parameters")

// Params describes one password derivation variant with concrete cost
// settings. Implementations are small value types safe to copy.
type Params interface {
	// Validate reports whether the cost settings are within bounds.
	Validate() error

	// Derive stretches password and salt into length bytes of key
	// material. The caller owns the result and must Destroy it.
	Derive(password, salt []byte, length int) (*securemem.Bytes, error)
}

// ScryptParams configures the memory-hard variant. The CPU/memory cost is
// 2^LogN; R is the block-size factor and P the parallelism factor.
type ScryptParams struct {
	LogN uint8
	R    uint32
	P    uint32
}

// DefaultScryptParams returns the interactive-keystore cost settings
// (N=2^18, r=8, p=1, roughly 256 MiB and a fraction of a second).
func DefaultScryptParams() ScryptParams {
	return ScryptParams{LogN: 18, R: 8, P: 1}
}

// Validate rejects zero factors, cost exponents that overflow, and any
// combination whose implied memory exceeds MaxScryptMemory.
func (p ScryptParams) Validate() error {
	if p.LogN == 0 || p.LogN >= 31 {
		return fmt.Errorf("%w: scrypt logN %d out of range [1,30]", ErrInvalidParams, p.LogN)
	}
	if p.R == 0 || p.P == 0 {
		return fmt.Errorf("%w: scrypt r and p must be positive", ErrInvalidParams)
	}
	// Memory requirement is 128 * r * N bytes. Compared in divided form so
	// hostile parameters cannot overflow the product.
	if uint64(p.R) > (uint64(MaxScryptMemory)/128)>>p.LogN {
		return fmt.Errorf("%w: scrypt parameters exceed the %d byte memory limit", ErrInvalidParams, uint64(MaxScryptMemory))
	}
	// scrypt itself requires r*p < 2^30.
	if uint64(p.R)*uint64(p.P) >= 1<<30 {
		return fmt.Errorf("%w: scrypt r*p too large", ErrInvalidParams)
	}
	return nil
}

// Derive runs scrypt over password and salt, producing length bytes.
func (p ScryptParams) Derive(password, salt []byte, length int) (*securemem.Bytes, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if length <= 0 {
		return nil, fmt.Errorf("%w: output length must be positive", ErrInvalidParams)
	}

	dk, err := scrypt.Key(password, salt, 1<<p.LogN, int(p.R), int(p.P), length)
	if err != nil {
		return nil, fmt.Errorf("kdf: scrypt derivation failed: %w", err)
	}
	return securemem.From(dk), nil
}

// PBKDF2Params configures the iterative variant, PBKDF2 with HMAC-SHA256.
type PBKDF2Params struct {
	Iterations uint32
}

// DefaultPBKDF2Params returns 100000 iterations, the conventional floor
// for interactive use.
func DefaultPBKDF2Params() PBKDF2Params {
	return PBKDF2Params{Iterations: 100000}
}

// Validate rejects an iteration count of zero.
func (p PBKDF2Params) Validate() error {
	if p.Iterations == 0 {
		return fmt.Errorf("%w: pbkdf2 iterations must be >= 1", ErrInvalidParams)
	}
	return nil
}

// Derive runs PBKDF2-HMAC-SHA256 over password and salt, producing length
// bytes.
func (p PBKDF2Params) Derive(password, salt []byte, length int) (*securemem.Bytes, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if length <= 0 {
		return nil, fmt.Errorf("%w: output length must be positive", ErrInvalidParams)
	}

	dk := pbkdf2.Key(password, salt, int(p.Iterations), length, sha256.New)
	return securemem.From(dk), nil
}
