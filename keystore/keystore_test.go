package keystore

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/averlon/cryptobox/kdf"
	"github.com/averlon/cryptobox/passbox"
)

var testParams = kdf.PBKDF2Params{Iterations: 64}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir(), []byte("store-password"), testParams)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenRejectsEmptyPassword(t *testing.T) {
	if _, err := Open(t.TempDir(), nil, testParams); err == nil {
		t.Fatal("Open with empty password expected error")
	}
}

func TestOpenRejectsInvalidParams(t *testing.T) {
	if _, err := Open(t.TempDir(), []byte("pw"), kdf.PBKDF2Params{Iterations: 0}); !errors.Is(err, kdf.ErrInvalidParams) {
		t.Fatalf("Open error = %v, want ErrInvalidParams", err)
	}
}

func TestPutGet(t *testing.T) {
	store := openTestStore(t)
	secret := []byte("sensitive key material 12345")

	if err := store.Put("identity.key", secret); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	recovered, err := store.Get("identity.key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !bytes.Equal(recovered, secret) {
		t.Errorf("Get returned %q, want %q", recovered, secret)
	}
}

func TestPutOverwrites(t *testing.T) {
	store := openTestStore(t)

	if err := store.Put("entry", []byte("first")); err != nil {
		t.Fatal(err)
	}
	if err := store.Put("entry", []byte("second")); err != nil {
		t.Fatal(err)
	}

	recovered, err := store.Get("entry")
	if err != nil {
		t.Fatal(err)
	}
	if string(recovered) != "second" {
		t.Errorf("Get returned %q, want %q", recovered, "second")
	}
}

func TestEntriesAreEncryptedOnDisk(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir, []byte("store-password"), testParams)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	secret := []byte("plaintext-should-not-appear-on-disk")
	if err := store.Put("entry", secret); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "entry"))
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(raw, secret) {
		t.Error("plaintext found in stored file")
	}
	if len(raw) != len(secret)+32+1+4+16+32 {
		t.Errorf("stored envelope length = %d", len(raw))
	}
}

func TestWrongPassword(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir, []byte("right password"), testParams)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Put("entry", []byte("secret")); err != nil {
		t.Fatal(err)
	}
	store.Close()

	other, err := Open(dir, []byte("wrong password"), testParams)
	if err != nil {
		t.Fatal(err)
	}
	defer other.Close()

	if _, err := other.Get("entry"); !errors.Is(err, passbox.ErrAuthenticationFailed) {
		t.Errorf("Get with wrong password: got %v, want ErrAuthenticationFailed", err)
	}
}

func TestDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir, []byte("pw"), testParams)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if err := store.Put("entry", []byte("secret")); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete("entry"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "entry")); !os.IsNotExist(err) {
		t.Error("entry file still exists after Delete")
	}

	// Deleting a missing entry is not an error.
	if err := store.Delete("entry"); err != nil {
		t.Errorf("Delete of missing entry: %v", err)
	}
}

func TestInvalidNames(t *testing.T) {
	store := openTestStore(t)

	for _, name := range []string{"", ".", "..", "a/b", `a\b`, "../escape"} {
		if err := store.Put(name, []byte("x")); !errors.Is(err, ErrInvalidName) {
			t.Errorf("Put(%q) error = %v, want ErrInvalidName", name, err)
		}
		if _, err := store.Get(name); !errors.Is(err, ErrInvalidName) {
			t.Errorf("Get(%q) error = %v, want ErrInvalidName", name, err)
		}
	}
}

func TestClose(t *testing.T) {
	store := openTestStore(t)

	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if err := store.Put("entry", []byte("x")); !errors.Is(err, ErrClosed) {
		t.Errorf("Put after Close: got %v, want ErrClosed", err)
	}
	if _, err := store.Get("entry"); !errors.Is(err, ErrClosed) {
		t.Errorf("Get after Close: got %v, want ErrClosed", err)
	}

	// Close is idempotent.
	if err := store.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestReopenReadsExistingEntries(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir, []byte("pw"), testParams)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Put("entry", []byte("persistent secret")); err != nil {
		t.Fatal(err)
	}
	store.Close()

	// Reopen with different write-side parameters; existing envelopes
	// carry their own.
	reopened, err := Open(dir, []byte("pw"), kdf.ScryptParams{LogN: 4, R: 8, P: 1})
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	recovered, err := reopened.Get("entry")
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if string(recovered) != "persistent secret" {
		t.Errorf("recovered %q", recovered)
	}
}
