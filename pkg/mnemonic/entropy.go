package mnemonic

import (
	"crypto/rand"
	"fmt"

	"github.com/Klingon-tech/klingnet-mnemonic/pkg/wordlist"
)

// NewEntropy returns bits/8 bytes from the system CSPRNG.
// bits must be 128, 160, 192, 224 or 256.
func NewEntropy(bits int) ([]byte, error) {
	if bits%8 != 0 {
		return nil, fmt.Errorf("%w: %d bits", ErrInvalidEntropyLength, bits)
	}
	if _, err := ChecksumBits(bits / 8); err != nil {
		return nil, err
	}
	entropy := make([]byte, bits/8)
	if _, err := rand.Read(entropy); err != nil {
		return nil, fmt.Errorf("read entropy: %w", err)
	}
	return entropy, nil
}

// Generate creates a fresh mnemonic with the given entropy strength.
func Generate(w *wordlist.Wordlist, bits int) (string, error) {
	entropy, err := NewEntropy(bits)
	if err != nil {
		return "", err
	}
	defer wipe(entropy)
	return Encode(w, entropy)
}
