package config

import (
	"github.com/Klingon-tech/klingnet-mnemonic/internal/keystore"
	"github.com/Klingon-tech/klingnet-mnemonic/pkg/wordlist"
)

// Default returns the built-in configuration.
func Default() *Config {
	kdf := keystore.DefaultParams()
	return &Config{
		DataDir:  DefaultDataDir(),
		Language: wordlist.English,
		Vault: VaultConfig{
			KDFMemory:      kdf.Memory,
			KDFIterations:  kdf.Iterations,
			KDFParallelism: kdf.Parallelism,
		},
		Log: LogConfig{
			Level: "warn",
			JSON:  false,
		},
	}
}
