package mnemonic

import (
	"crypto/sha512"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/unicode/norm"
)

// Seed derivation parameters. These are protocol constants.
const (
	SeedSize       = 64
	SeedIterations = 2048

	saltPrefix = "mnemonic"
)

// NewSeed stretches a mnemonic phrase and optional passphrase into a 64-byte
// seed using PBKDF2-HMAC-SHA512 with salt "mnemonic"+passphrase.
//
// Both strings are NFKD-normalized first. The phrase is not validated:
// any text yields a deterministic seed, checksum or not.
func NewSeed(mnemonic, passphrase string) []byte {
	password := []byte(norm.NFKD.String(mnemonic))
	defer wipe(password)

	salt := make([]byte, 0, len(saltPrefix)+len(passphrase)*3)
	salt = append(salt, saltPrefix...)
	salt = norm.NFKD.AppendString(salt, passphrase)
	defer wipe(salt)

	return pbkdf2.Key(password, salt, SeedIterations, SeedSize, sha512.New)
}
