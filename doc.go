// Package cryptobox composes low-level cryptographic primitives into two
// authenticated encryption protocols: password-sealed secrets for keystore
// use, and ECIES over secp256k1 for peer-to-peer transport encryption.
//
// Both protocols share the same skeleton (key derivation, counter-mode
// encipherment, then message authentication) with byte-exact envelope
// layouts and constant-time tag verification. The underlying primitives
// (AES, SHA-256, secp256k1 arithmetic) come from external libraries; this
// module owns only their composition.
//
// # Getting Started
//
// Sealing a secret under a password:
//
//	envelope, err := cryptobox.SealWithPassword([]byte("passphrase"), secret)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	plaintext, err := cryptobox.OpenWithPassword([]byte("passphrase"), envelope)
//	if errors.Is(err, passbox.ErrAuthenticationFailed) {
//	    // wrong password or tampered envelope; the two are indistinguishable
//	}
//
// Encrypting to a peer's public key:
//
//	pair, err := keypair.Generate()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pair.Wipe()
//
//	envelope, err := cryptobox.SealForPublic(pair.PublicBytes(), nil, message)
//	plaintext, err := cryptobox.OpenWithSecret(pair.SecretBytes(), nil, envelope)
//
// # Subpackages
//
// The root package is a thin facade with conservative defaults. Callers
// that need explicit KDF parameters, raw key derivation, or direct access
// to the agreement and cipher layers use the subpackages:
//
//   - [github.com/averlon/cryptobox/passbox]: password-secret engine
//   - [github.com/averlon/cryptobox/ecies]: integrated asymmetric engine
//   - [github.com/averlon/cryptobox/kdf]: scrypt and PBKDF2 derivation
//   - [github.com/averlon/cryptobox/keypair]: secp256k1 key pairs
//   - [github.com/averlon/cryptobox/ecdh]: raw curve agreement
//   - [github.com/averlon/cryptobox/keystore]: encrypted file store
//
// The password-secret engine has no dependency on the asymmetric packages;
// builds that only seal secrets never link the curve arithmetic.
package cryptobox
