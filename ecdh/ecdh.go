// Package ecdh computes secp256k1 Diffie-Hellman shared secrets.
//
// The shared secret is the 32-byte big-endian x-coordinate of the product
// of the local private scalar and the remote public point, never the full
// point.
package ecdh

import (
	"errors"
	"fmt"

	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/sirupsen/logrus"

	"github.com/averlon/cryptobox/securemem"
)

// SecretSize is the shared secret length in bytes.
const SecretSize = 32

// ErrInvalidPublicKey is returned when the remote point is invalid for
// agreement, including the point at infinity.
var ErrInvalidPublicKey = errors.New("ecdh: invalid public key")

// Agree computes the shared secret between a local private key and a
// remote public key. The caller owns the result and must Destroy it.
func Agree(priv *secp256k1.PrivateKey, pub *secp256k1.PublicKey) (*securemem.Bytes, error) {
	if priv == nil || pub == nil {
		return nil, ErrInvalidPublicKey
	}

	logrus.WithFields(logrus.Fields{
		"function":        "Agree",
		"peer_key_prefix": fmt.Sprintf("%x", pub.SerializeCompressed()[:8]),
	}).Debug("Computing shared secret over secp256k1")

	var point, product secp256k1.JacobianPoint
	pub.AsJacobian(&point)
	secp256k1.ScalarMultNonConst(&priv.Key, &point, &product)

	// A zero Z coordinate marks the point at infinity. ParsePublic refuses
	// off-curve points, so this only triggers for a degenerate scalar.
	if product.Z.Normalize().IsZero() {
		logrus.WithField("function", "Agree").Warn("Agreement produced the point at infinity")
		return nil, fmt.Errorf("%w: agreement yields point at infinity", ErrInvalidPublicKey)
	}

	product.ToAffine()
	x := product.X.Bytes()

	secret := securemem.New(SecretSize)
	copy(secret.Bytes(), x[:])

	// Scrub the stack copies of the product coordinates.
	product.X.Zero()
	product.Y.Zero()
	product.Z.Zero()
	securemem.ZeroBytes(x[:])

	return secret, nil
}
