// Package keystore stores named secrets on disk, each sealed in a
// password envelope.
//
// Every entry is an independent passbox envelope, so a store directory can
// be copied or synced file by file, and corrupting one entry never affects
// the others. Writes are atomic (temp file + rename) and files are created
// with owner-only permissions.
package keystore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/averlon/cryptobox/kdf"
	"github.com/averlon/cryptobox/passbox"
	"github.com/averlon/cryptobox/securemem"
)

// ErrClosed is returned when a store is used after Close.
var ErrClosed = errors.New("keystore: store is closed")

// ErrInvalidName is returned for entry names that are empty or contain
// path separators.
var ErrInvalidName = errors.New("keystore: invalid entry name")

// Store is a directory of password-sealed entries.
type Store struct {
	dir      string
	password *securemem.Bytes
	params   kdf.Params
}

// Open prepares a store rooted at dir, creating the directory if needed.
// The password is copied; the caller may wipe its own copy immediately.
// params selects the KDF cost for newly written entries; existing entries
// decrypt with whatever parameters their envelopes carry.
func Open(dir string, password []byte, params kdf.Params) (*Store, error) {
	if len(password) == 0 {
		return nil, errors.New("keystore: password cannot be empty")
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("keystore: create directory: %w", err)
	}

	pw := securemem.New(len(password))
	copy(pw.Bytes(), password)

	return &Store{dir: dir, password: pw, params: params}, nil
}

// Put seals plaintext under the store password and writes it atomically.
func (s *Store) Put(name string, plaintext []byte) error {
	path, err := s.entryPath(name)
	if err != nil {
		return err
	}

	envelope, err := passbox.Encrypt(s.password.Bytes(), plaintext, s.params)
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, envelope, 0o600); err != nil {
		return fmt.Errorf("keystore: write temporary file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("keystore: rename: %w", err)
	}
	return nil
}

// Get reads and opens an entry. A wrong store password or a corrupted
// entry surfaces as passbox.ErrAuthenticationFailed.
func (s *Store) Get(name string) ([]byte, error) {
	path, err := s.entryPath(name)
	if err != nil {
		return nil, err
	}

	envelope, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("keystore: read entry: %w", err)
	}
	return passbox.Decrypt(s.password.Bytes(), envelope)
}

// Delete removes an entry, overwriting it with zeros first as best-effort
// secure deletion. Deleting a missing entry is not an error.
func (s *Store) Delete(name string) error {
	path, err := s.entryPath(name)
	if err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("keystore: stat entry: %w", err)
	}

	zeros := make([]byte, info.Size())
	if err := os.WriteFile(path, zeros, 0o600); err != nil {
		return os.Remove(path)
	}
	return os.Remove(path)
}

// Close wipes the held password. The store must not be used afterwards.
func (s *Store) Close() error {
	s.password.Destroy()
	return nil
}

func (s *Store) entryPath(name string) (string, error) {
	if s.password.Len() == 0 {
		return "", ErrClosed
	}
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.dir, name), nil
}
