// Package ecies implements the Elliptic Curve Integrated Encryption Scheme
// over secp256k1.
//
// Each message is encrypted under a fresh ephemeral key pair: ECDH against
// the recipient's public key produces a shared secret, a single-round
// SHA-256 concatenation KDF expands it into AES-128-CTR and HMAC-SHA256
// sub-keys, and the tag covers iv ‖ ciphertext ‖ shared-MAC-data. The
// envelope is self-contained:
//
//	[ephemeral public key: 65][iv: 16][ciphertext: N][tag: 32]
//
// Only the holder of the matching private key can recompute the shared
// secret; everyone else fails authentication before any deciphering
// happens.
package ecies

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/sirupsen/logrus"

	"github.com/averlon/cryptobox/aesctr"
	"github.com/averlon/cryptobox/digest"
	"github.com/averlon/cryptobox/ecdh"
	"github.com/averlon/cryptobox/keypair"
	"github.com/averlon/cryptobox/mac"
	"github.com/averlon/cryptobox/securemem"
)

const (
	// Overhead is the number of envelope bytes added on top of the
	// plaintext: ephemeral public key, IV, and tag.
	Overhead = keypair.PublicSize + aesctr.IVSize + mac.TagSize

	cipherKeyLen = aesctr.KeySize
	derivedLen   = 2 * cipherKeyLen
)

var (
	// ErrInvalidMessage is returned when an envelope is shorter than the
	// fixed overhead or its ephemeral key field is malformed.
	ErrInvalidMessage = errors.New("ecies: invalid message")

	// ErrInvalidPublicKey is returned when a recipient or embedded
	// ephemeral public key is not a usable curve point.
	ErrInvalidPublicKey = ecdh.ErrInvalidPublicKey

	// ErrAuthenticationFailed is returned when the envelope tag does not
	// verify. Tampering and a mismatched private key are indistinguishable.
	ErrAuthenticationFailed = errors.New("ecies: authentication failed")

	// ErrInvalidPrivateKey is returned when Decrypt is handed a nil
	// private key.
	ErrInvalidPrivateKey = errors.New("ecies: invalid private key")
)

// Encrypt encrypts plaintext for the holder of the private key matching
// pub. sharedMACData is authenticated but not encrypted or transmitted;
// both sides must supply the same value.
func Encrypt(pub *secp256k1.PublicKey, sharedMACData, plaintext []byte) ([]byte, error) {
	if pub == nil {
		return nil, ErrInvalidPublicKey
	}

	logrus.WithFields(logrus.Fields{
		"function":       "Encrypt",
		"plaintext_size": len(plaintext),
	}).Debug("Encrypting ECIES envelope")

	ephemeral, err := keypair.Generate()
	if err != nil {
		return nil, fmt.Errorf("ecies: ephemeral key generation: %w", err)
	}
	defer ephemeral.Wipe()

	shared, err := ecdh.Agree(ephemeral.Private(), pub)
	if err != nil {
		return nil, err
	}
	defer shared.Destroy()

	derived := deriveKeys(shared.Bytes())
	defer derived.Destroy()
	encKey, macKey := splitKeys(derived)
	defer securemem.ZeroBytes(macKey)

	iv := make([]byte, aesctr.IVSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, fmt.Errorf("ecies: generate IV: %w", err)
	}

	ciphertext, err := aesctr.Encrypt(encKey, iv, plaintext)
	if err != nil {
		return nil, fmt.Errorf("ecies: encipher: %w", err)
	}

	tag := mac.Sum(macKey, iv, ciphertext, sharedMACData)

	out := make([]byte, 0, keypair.PublicSize+len(iv)+len(ciphertext)+len(tag))
	out = append(out, ephemeral.PublicBytes()...)
	out = append(out, iv...)
	out = append(out, ciphertext...)
	out = append(out, tag...)
	return out, nil
}

// Decrypt opens an envelope produced by Encrypt using the recipient's
// private key. The tag is verified before any deciphering; on mismatch no
// plaintext, partial or otherwise, is returned.
func Decrypt(priv *secp256k1.PrivateKey, sharedMACData, envelope []byte) ([]byte, error) {
	if priv == nil {
		return nil, ErrInvalidPrivateKey
	}
	if len(envelope) < Overhead {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrInvalidMessage, len(envelope), Overhead)
	}

	ephPub, err := keypair.ParsePublic(envelope[:keypair.PublicSize])
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Decrypt",
			"error":    err.Error(),
		}).Debug("Rejecting envelope with malformed ephemeral key")
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}

	iv := envelope[keypair.PublicSize : keypair.PublicSize+aesctr.IVSize]
	tagStart := len(envelope) - mac.TagSize
	ciphertext := envelope[keypair.PublicSize+aesctr.IVSize : tagStart]
	tag := envelope[tagStart:]

	shared, err := ecdh.Agree(priv, ephPub)
	if err != nil {
		return nil, err
	}
	defer shared.Destroy()

	derived := deriveKeys(shared.Bytes())
	defer derived.Destroy()
	encKey, macKey := splitKeys(derived)
	defer securemem.ZeroBytes(macKey)

	if !mac.Verify(macKey, tag, iv, ciphertext, sharedMACData) {
		logrus.WithField("function", "Decrypt").Debug("Envelope tag verification failed")
		return nil, ErrAuthenticationFailed
	}

	plaintext, err := aesctr.Decrypt(encKey, iv, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("ecies: decipher: %w", err)
	}
	return plaintext, nil
}

// EncryptTo is a convenience wrapper accepting the recipient public key in
// its 65-byte uncompressed encoding.
func EncryptTo(pub []byte, sharedMACData, plaintext []byte) ([]byte, error) {
	point, err := keypair.ParsePublic(pub)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return Encrypt(point, sharedMACData, plaintext)
}

// deriveKeys expands the shared secret with a NIST concatenation KDF
// truncated to a single round: SHA-256(counter=1 ‖ secret).
func deriveKeys(shared []byte) *securemem.Bytes {
	sum := digest.SHA256([]byte{0x00, 0x00, 0x00, 0x01}, shared)
	derived := securemem.New(derivedLen)
	copy(derived.Bytes(), sum[:derivedLen])
	securemem.ZeroBytes(sum[:])
	return derived
}

// splitKeys carves the derived material into the cipher key and the MAC
// key. The MAC half is hashed once more before use; the wire format
// depends on this. The returned macKey is a fresh allocation the caller
// must wipe; encKey aliases derived.
func splitKeys(derived *securemem.Bytes) (encKey, macKey []byte) {
	d := derived.Bytes()
	encKey = d[:cipherKeyLen]
	sum := digest.SHA256(d[cipherKeyLen:])
	macKey = make([]byte, len(sum))
	copy(macKey, sum[:])
	securemem.ZeroBytes(sum[:])
	return encKey, macKey
}
