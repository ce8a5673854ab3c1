package cryptobox

import (
	"errors"

	"github.com/averlon/cryptobox/ecies"
	"github.com/averlon/cryptobox/kdf"
	"github.com/averlon/cryptobox/keypair"
	"github.com/averlon/cryptobox/passbox"
	"github.com/averlon/cryptobox/securemem"
)

// ErrInvalidParams is re-exported for callers that only import the facade.
var ErrInvalidParams = kdf.ErrInvalidParams

// AuthenticationFailed reports whether err is a tag mismatch from either
// engine. Both engines keep their own sentinel so that neither package
// depends on the other; facade callers use this helper instead of
// comparing against a single value.
func AuthenticationFailed(err error) bool {
	return errors.Is(err, passbox.ErrAuthenticationFailed) ||
		errors.Is(err, ecies.ErrAuthenticationFailed)
}

// InvalidMessage reports whether err marks an envelope too short or
// structurally malformed for either engine.
func InvalidMessage(err error) bool {
	return errors.Is(err, passbox.ErrInvalidMessage) ||
		errors.Is(err, ecies.ErrInvalidMessage)
}

// SealWithPassword seals plaintext under a password using the default
// scrypt cost. Use passbox.Encrypt directly to choose other parameters.
func SealWithPassword(password, plaintext []byte) ([]byte, error) {
	return passbox.Encrypt(password, plaintext, kdf.DefaultScryptParams())
}

// OpenWithPassword opens an envelope produced by SealWithPassword (or by
// passbox.Encrypt with any parameters; the envelope is self-describing).
func OpenWithPassword(password, envelope []byte) ([]byte, error) {
	return passbox.Decrypt(password, envelope)
}

// SealForPublic encrypts plaintext to the holder of the private key
// matching the 65-byte uncompressed public key. sharedMACData is
// authenticated but not transmitted; both sides must supply the same
// value, or nil.
func SealForPublic(public, sharedMACData, plaintext []byte) ([]byte, error) {
	return ecies.EncryptTo(public, sharedMACData, plaintext)
}

// OpenWithSecret decrypts an ECIES envelope with a 32-byte private scalar.
func OpenWithSecret(secret, sharedMACData, envelope []byte) ([]byte, error) {
	pair, err := keypair.FromSecret(secret)
	if err != nil {
		return nil, err
	}
	defer pair.Wipe()
	return ecies.Decrypt(pair.Private(), sharedMACData, envelope)
}

// DeriveKey exposes raw password derivation for callers, such as keystore
// formats, that need the stretched key itself rather than a sealed
// envelope. The caller owns the result and must Destroy it.
func DeriveKey(password, salt []byte, params kdf.Params, length int) (*securemem.Bytes, error) {
	return params.Derive(password, salt, length)
}
