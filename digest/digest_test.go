package digest

import (
	"encoding/hex"
	"testing"
)

func TestSHA256(t *testing.T) {
	got := SHA256([]byte("abc"))
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if hex.EncodeToString(got[:]) != want {
		t.Errorf("SHA256(\"abc\") = %x, want %s", got, want)
	}

	// Multi-part input hashes the concatenation.
	split := SHA256([]byte("a"), []byte("bc"))
	if split != got {
		t.Error("split input produced a different digest")
	}
}

func TestSHA512(t *testing.T) {
	got := SHA512([]byte("abc"))
	want := "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a" +
		"2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"
	if hex.EncodeToString(got[:]) != want {
		t.Errorf("SHA512(\"abc\") = %x, want %s", got, want)
	}
}

func TestKeccak256(t *testing.T) {
	// Keccak-256 of the empty input, distinct from standardized SHA3-256.
	got := Keccak256()
	want := "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"
	if hex.EncodeToString(got[:]) != want {
		t.Errorf("Keccak256() = %x, want %s", got, want)
	}
}
