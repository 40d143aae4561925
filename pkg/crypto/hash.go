// Package crypto provides hashing helpers used around the mnemonic core.
package crypto

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// HashSize is the length of a BLAKE3-256 digest.
const HashSize = 32

// FingerprintSize is the number of hash bytes kept in a seed fingerprint.
const FingerprintSize = 4

// Hash computes a BLAKE3-256 hash of the input data.
func Hash(data []byte) [HashSize]byte {
	return blake3.Sum256(data)
}

// SeedFingerprint returns a short hex tag identifying a seed.
// It lets a user confirm that a mnemonic and passphrase were re-entered
// correctly without displaying the seed itself.
func SeedFingerprint(seed []byte) string {
	h := Hash(seed)
	fp := hex.EncodeToString(h[:FingerprintSize])
	clear(h[:])
	return fp
}
