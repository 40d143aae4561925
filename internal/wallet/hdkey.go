// Package wallet turns a mnemonic seed into a BIP-32 master key.
//
// Only the master key is exposed; derivation paths belong to the wallet
// software consuming the seed.
package wallet

import (
	"fmt"

	"github.com/Klingon-tech/klingnet-mnemonic/pkg/mnemonic"
	"github.com/tyler-smith/go-bip32"
)

// HDKey represents a hierarchical deterministic key (BIP-32).
type HDKey struct {
	key *bip32.Key
}

// NewMasterKey creates a master HD key from a 64-byte seed.
func NewMasterKey(seed []byte) (*HDKey, error) {
	if len(seed) != mnemonic.SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes, got %d", mnemonic.SeedSize, len(seed))
	}
	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("create master key: %w", err)
	}
	return &HDKey{key: master}, nil
}

// PublicKeyBytes returns the compressed 33-byte public key.
func (k *HDKey) PublicKeyBytes() []byte {
	return k.key.PublicKey().Key
}

// ExtendedPublicKey returns the base58 "xpub" serialization of the key.
func (k *HDKey) ExtendedPublicKey() string {
	return k.key.PublicKey().String()
}

// IsPrivate returns true if this key contains a private key.
func (k *HDKey) IsPrivate() bool {
	return k.key.IsPrivate
}

// Depth returns the derivation depth (0 for master).
func (k *HDKey) Depth() uint8 {
	return k.key.Depth
}

// Neuter returns a public-key-only copy (for watch-only wallets).
func (k *HDKey) Neuter() *HDKey {
	return &HDKey{key: k.key.PublicKey()}
}

// Wipe zeroes the key and chain code in place. The key is unusable afterwards.
func (k *HDKey) Wipe() {
	clear(k.key.Key)
	clear(k.key.ChainCode)
}
