package ecies

import (
	"crypto/rand"
	"testing"

	"github.com/averlon/cryptobox/keypair"
)

// BenchmarkEncrypt measures ECIES encryption of a 1 KiB payload.
func BenchmarkEncrypt(b *testing.B) {
	recipient, err := keypair.Generate()
	if err != nil {
		b.Fatal(err)
	}
	defer recipient.Wipe()

	plaintext := make([]byte, 1024)
	rand.Read(plaintext)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Encrypt(recipient.Public(), nil, plaintext); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkDecrypt measures ECIES decryption of a 1 KiB payload.
func BenchmarkDecrypt(b *testing.B) {
	recipient, err := keypair.Generate()
	if err != nil {
		b.Fatal(err)
	}
	defer recipient.Wipe()

	plaintext := make([]byte, 1024)
	rand.Read(plaintext)
	envelope, err := Encrypt(recipient.Public(), nil, plaintext)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Decrypt(recipient.Private(), nil, envelope); err != nil {
			b.Fatal(err)
		}
	}
}
