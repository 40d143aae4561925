package mnemonic

import (
	"fmt"

	"github.com/minio/sha256-simd"
)

// Supported entropy sizes in bytes.
const (
	EntropySize128 = 16
	EntropySize160 = 20
	EntropySize192 = 24
	EntropySize224 = 28
	EntropySize256 = 32

	MinEntropySize = EntropySize128
	MaxEntropySize = EntropySize256
)

// Checksum returns the SHA-256 digest of entropy. Only the leading
// ChecksumBits(len(entropy)) bits of the first byte are embedded in a mnemonic.
func Checksum(entropy []byte) [sha256.Size]byte {
	return sha256.Sum256(entropy)
}

// ChecksumBits returns the number of checksum bits carried by a mnemonic for
// entropy of the given byte length (entropy bits / 32). It doubles as the
// entropy length validator.
func ChecksumBits(entropyLen int) (int, error) {
	switch entropyLen {
	case EntropySize128, EntropySize160, EntropySize192, EntropySize224, EntropySize256:
		return entropyLen / 4, nil
	}
	return 0, fmt.Errorf("%w: %d bytes (want 16, 20, 24, 28 or 32)", ErrInvalidEntropyLength, entropyLen)
}

// checksumMask keeps the leading n bits of a byte.
func checksumMask(n int) byte {
	return byte(0xff << (8 - n))
}
