// Package securemem provides byte containers for key material that are
// overwritten with zeros when they are no longer needed.
//
// Every derived key, shared secret, and private scalar handled by this
// module travels through this package so that all exit paths, including
// error paths, leave no secret bytes behind in reachable memory.
package securemem

import (
	"crypto/subtle"
	"errors"
	"runtime"
)

// Wipe securely erases the contents of a byte slice containing sensitive
// data. It returns an error if the byte slice is nil.
func Wipe(data []byte) error {
	if data == nil {
		return errors.New("cannot wipe nil data")
	}

	// Overwrite the data with zeros. The ConstantTimeCompare call touches
	// every byte, which keeps the compiler from proving the slice dead and
	// eliding the overwrite.
	zeros := make([]byte, len(data))
	subtle.ConstantTimeCompare(data, zeros)
	copy(data, zeros)

	runtime.KeepAlive(data)
	runtime.KeepAlive(zeros)

	return nil
}

// ZeroBytes erases the contents of a byte slice containing sensitive data.
// This is a convenience function that ignores the error from Wipe.
func ZeroBytes(data []byte) {
	_ = Wipe(data)
}

// Bytes is an exclusively owned secret buffer. Callers obtain the raw
// slice through Bytes and must call Destroy exactly when the secret is no
// longer needed; Destroy zeroizes the buffer and is safe to call more than
// once, which makes it suitable for a defer covering every return path.
type Bytes struct {
	buf []byte
}

// New allocates a zeroed secret buffer of n bytes.
func New(n int) *Bytes {
	return &Bytes{buf: make([]byte, n)}
}

// From wraps an existing slice as a secret buffer. Ownership of the slice
// transfers to the returned value; the caller must not retain b.
func From(b []byte) *Bytes {
	return &Bytes{buf: b}
}

// Bytes returns the underlying slice. The slice is invalid after Destroy.
func (s *Bytes) Bytes() []byte {
	return s.buf
}

// Len returns the length of the buffer, or 0 after Destroy.
func (s *Bytes) Len() int {
	return len(s.buf)
}

// Destroy zeroizes the buffer and releases it. Idempotent.
func (s *Bytes) Destroy() {
	if s == nil || s.buf == nil {
		return
	}
	ZeroBytes(s.buf)
	s.buf = nil
}
