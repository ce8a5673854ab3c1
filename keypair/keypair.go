// Package keypair manages secp256k1 key pairs.
//
// Public keys travel on the wire in the 65-byte uncompressed encoding
// (0x04 ‖ X ‖ Y). Private scalars are validated to lie in [1, n) and can
// be wiped in place once a pair is no longer needed.
//
// Example:
//
//	pair, err := keypair.Generate()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pair.Wipe()
//	fmt.Printf("public: %x\n", pair.PublicBytes())
package keypair

import (
	"errors"
	"fmt"

	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/averlon/cryptobox/digest"
)

const (
	// SecretSize is the private scalar length in bytes.
	SecretSize = 32

	// PublicSize is the uncompressed public point encoding length.
	PublicSize = 65

	// AddressSize is the derived address length in bytes.
	AddressSize = 20
)

var (
	// ErrInvalidSecret is returned when a secret is not a valid scalar in
	// the curve order.
	ErrInvalidSecret = errors.New("keypair: invalid secret scalar")

	// ErrInvalidPublicKey is returned when a public key encoding does not
	// describe a point on the curve.
	ErrInvalidPublicKey = errors.New("keypair: invalid public key")
)

// KeyPair holds a secp256k1 private scalar and its public point.
type KeyPair struct {
	priv *secp256k1.PrivateKey
	pub  *secp256k1.PublicKey
}

// Generate creates a new random key pair.
func Generate() (*KeyPair, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("keypair: generate: %w", err)
	}
	return &KeyPair{priv: priv, pub: priv.PubKey()}, nil
}

// FromSecret builds a key pair from a 32-byte secret. The secret must be a
// scalar in [1, n) where n is the curve order.
func FromSecret(secret []byte) (*KeyPair, error) {
	if len(secret) != SecretSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidSecret, len(secret), SecretSize)
	}

	var scalar secp256k1.ModNScalar
	overflow := scalar.SetByteSlice(secret)
	if overflow || scalar.IsZero() {
		scalar.Zero()
		return nil, ErrInvalidSecret
	}

	priv := secp256k1.NewPrivateKey(&scalar)
	scalar.Zero()
	return &KeyPair{priv: priv, pub: priv.PubKey()}, nil
}

// ParsePublic decodes a 65-byte uncompressed public key and verifies the
// point lies on the curve.
func ParsePublic(b []byte) (*secp256k1.PublicKey, error) {
	if len(b) != PublicSize || b[0] != 0x04 {
		return nil, ErrInvalidPublicKey
	}
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return pub, nil
}

// MarshalPublic encodes a public key in the 65-byte uncompressed form.
func MarshalPublic(pub *secp256k1.PublicKey) []byte {
	return pub.SerializeUncompressed()
}

// Private returns the private part of the pair.
func (k *KeyPair) Private() *secp256k1.PrivateKey {
	return k.priv
}

// Public returns the public part of the pair.
func (k *KeyPair) Public() *secp256k1.PublicKey {
	return k.pub
}

// SecretBytes returns the 32-byte big-endian private scalar. The caller is
// responsible for wiping the returned slice.
func (k *KeyPair) SecretBytes() []byte {
	return k.priv.Serialize()
}

// PublicBytes returns the uncompressed public key encoding.
func (k *KeyPair) PublicBytes() []byte {
	return k.pub.SerializeUncompressed()
}

// Address derives the 20-byte address of the public key: the trailing
// 20 bytes of the Keccak-256 digest of the 64 coordinate bytes.
func (k *KeyPair) Address() [AddressSize]byte {
	return AddressOf(k.pub)
}

// AddressOf derives the address of an arbitrary public key.
func AddressOf(pub *secp256k1.PublicKey) [AddressSize]byte {
	hash := digest.Keccak256(pub.SerializeUncompressed()[1:])
	var addr [AddressSize]byte
	copy(addr[:], hash[32-AddressSize:])
	return addr
}

// Wipe zeroizes the private scalar. The pair must not be used afterwards.
func (k *KeyPair) Wipe() {
	if k == nil || k.priv == nil {
		return
	}
	k.priv.Zero()
}
