package config

import (
	"fmt"

	"github.com/Klingon-tech/klingnet-mnemonic/internal/log"
	"github.com/Klingon-tech/klingnet-mnemonic/pkg/wordlist"
)

// Validate checks config for operator mistakes. Language aliases are
// rewritten to their canonical code.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.DataDir == "" {
		return fmt.Errorf("datadir must not be empty")
	}

	wl, ok := wordlist.Default().Lookup(cfg.Language)
	if !ok {
		return fmt.Errorf("language %q is not one of %v", cfg.Language, wordlist.Default().Languages())
	}
	cfg.Language = wl.Language()

	if err := cfg.Vault.EncryptionParams().Validate(); err != nil {
		return fmt.Errorf("vault.kdf: %w", err)
	}

	if !log.ValidLevel(cfg.Log.Level) {
		return fmt.Errorf("log.level must be debug, info, warn, or error")
	}
	return nil
}
