// Package config handles mnemonic-cli configuration.
//
// Settings are layered: built-in defaults, then the .conf file in the data
// directory, then command-line flags.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/Klingon-tech/klingnet-mnemonic/internal/keystore"
)

// Config holds runtime configuration.
type Config struct {
	DataDir string `conf:"datadir"`

	// Language is the wordlist used when a command is not given --lang.
	Language string `conf:"language"`

	// Vault encryption cost for newly saved entries.
	Vault VaultConfig

	// Logging
	Log LogConfig
}

// VaultConfig holds the Argon2id cost parameters used by "vault save".
// Existing entries carry their own parameters and are unaffected.
type VaultConfig struct {
	KDFMemory      uint32 `conf:"vault.kdf.memory"` // KiB
	KDFIterations  uint32 `conf:"vault.kdf.iterations"`
	KDFParallelism uint8  `conf:"vault.kdf.parallelism"`
}

// EncryptionParams converts the settings into keystore parameters.
func (v VaultConfig) EncryptionParams() keystore.EncryptionParams {
	return keystore.EncryptionParams{
		Memory:      v.KDFMemory,
		Iterations:  v.KDFIterations,
		Parallelism: v.KDFParallelism,
	}
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	File  string `conf:"log.file"`
	JSON  bool   `conf:"log.json"`
}

// DefaultDataDir returns the platform-specific default data directory.
//
//	Linux:   ~/.klingnet-mnemonic
//	macOS:   ~/Library/Application Support/Klingnet Mnemonic
//	Windows: %APPDATA%\Klingnet Mnemonic
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".klingnet-mnemonic"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Klingnet Mnemonic")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, "Klingnet Mnemonic")
		}
		return filepath.Join(home, "AppData", "Roaming", "Klingnet Mnemonic")
	default:
		return filepath.Join(home, ".klingnet-mnemonic")
	}
}

// VaultDir returns the Badger directory holding the vault.
func (c *Config) VaultDir() string {
	return filepath.Join(c.DataDir, "vault")
}

// ConfigFile returns the config file path.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "mnemonic.conf")
}
