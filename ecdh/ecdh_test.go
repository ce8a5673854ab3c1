package ecdh

import (
	"bytes"
	"testing"

	"github.com/averlon/cryptobox/keypair"
)

func TestAgreeSymmetry(t *testing.T) {
	alice, err := keypair.Generate()
	if err != nil {
		t.Fatalf("Failed to generate key pair: %v", err)
	}
	defer alice.Wipe()

	bob, err := keypair.Generate()
	if err != nil {
		t.Fatalf("Failed to generate key pair: %v", err)
	}
	defer bob.Wipe()

	ab, err := Agree(alice.Private(), bob.Public())
	if err != nil {
		t.Fatalf("Agree(alice, bob) failed: %v", err)
	}
	defer ab.Destroy()

	ba, err := Agree(bob.Private(), alice.Public())
	if err != nil {
		t.Fatalf("Agree(bob, alice) failed: %v", err)
	}
	defer ba.Destroy()

	if !bytes.Equal(ab.Bytes(), ba.Bytes()) {
		t.Error("shared secrets disagree between the two sides")
	}
	if ab.Len() != SecretSize {
		t.Errorf("shared secret length = %d, want %d", ab.Len(), SecretSize)
	}
}

func TestAgreeDeterminism(t *testing.T) {
	alice, err := keypair.Generate()
	if err != nil {
		t.Fatal(err)
	}
	defer alice.Wipe()
	bob, err := keypair.Generate()
	if err != nil {
		t.Fatal(err)
	}
	defer bob.Wipe()

	first, err := Agree(alice.Private(), bob.Public())
	if err != nil {
		t.Fatal(err)
	}
	defer first.Destroy()
	second, err := Agree(alice.Private(), bob.Public())
	if err != nil {
		t.Fatal(err)
	}
	defer second.Destroy()

	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("repeated agreement produced different secrets")
	}
}

func TestAgreeDistinctPeers(t *testing.T) {
	alice, err := keypair.Generate()
	if err != nil {
		t.Fatal(err)
	}
	defer alice.Wipe()
	bob, err := keypair.Generate()
	if err != nil {
		t.Fatal(err)
	}
	defer bob.Wipe()
	carol, err := keypair.Generate()
	if err != nil {
		t.Fatal(err)
	}
	defer carol.Wipe()

	withBob, err := Agree(alice.Private(), bob.Public())
	if err != nil {
		t.Fatal(err)
	}
	defer withBob.Destroy()
	withCarol, err := Agree(alice.Private(), carol.Public())
	if err != nil {
		t.Fatal(err)
	}
	defer withCarol.Destroy()

	if bytes.Equal(withBob.Bytes(), withCarol.Bytes()) {
		t.Error("different peers produced the same shared secret")
	}
}

func TestAgreeNilInputs(t *testing.T) {
	pair, err := keypair.Generate()
	if err != nil {
		t.Fatal(err)
	}
	defer pair.Wipe()

	if _, err := Agree(nil, pair.Public()); err == nil {
		t.Error("Agree with nil private key expected error")
	}
	if _, err := Agree(pair.Private(), nil); err == nil {
		t.Error("Agree with nil public key expected error")
	}
}
