package keystore

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Klingon-tech/klingnet-mnemonic/internal/log"
	"github.com/Klingon-tech/klingnet-mnemonic/internal/storage"
	"github.com/Klingon-tech/klingnet-mnemonic/pkg/mnemonic"
	"github.com/Klingon-tech/klingnet-mnemonic/pkg/wordlist"
)

const (
	recordVersion = 1
	maxNameLen    = 64
)

// Vault errors.
var (
	ErrExists      = errors.New("vault entry already exists")
	ErrNoEntry     = errors.New("vault entry not found")
	ErrInvalidName = errors.New("invalid vault entry name")
)

// vaultPrefix namespaces vault records inside the shared database.
var vaultPrefix = []byte("vault/")

// record is the stored JSON format for one encrypted entropy.
type record struct {
	Version          int       `json:"version"`
	CreatedAt        time.Time `json:"created_at"`
	Language         string    `json:"language"`
	Words            int       `json:"words"`
	EncryptedEntropy []byte    `json:"encrypted_entropy"`
}

// Entry is the public metadata of a stored mnemonic. Reading it needs no password.
type Entry struct {
	Name      string
	Language  string
	Words     int
	CreatedAt time.Time
}

// Vault stores mnemonic entropy encrypted under a password.
// Seeds and passphrases are never stored.
type Vault struct {
	mu sync.Mutex // serializes Save/Delete existence checks
	db storage.DB
}

// NewVault returns a vault keeping its records under the "vault/" prefix of db.
func NewVault(db storage.DB) *Vault {
	return &Vault{db: storage.NewPrefixDB(db, vaultPrefix)}
}

// validName accepts 1..64 characters from [A-Za-z0-9._-].
func validName(name string) error {
	if name == "" || len(name) > maxNameLen {
		return fmt.Errorf("%w: must be 1-%d characters", ErrInvalidName, maxNameLen)
	}
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '.' || c == '_' || c == '-':
		default:
			return fmt.Errorf("%w: %q not allowed", ErrInvalidName, c)
		}
	}
	return nil
}

// Save encrypts entropy and stores it under name together with the language
// its mnemonic is written in.
func (v *Vault) Save(name, lang string, entropy, password []byte, params EncryptionParams) error {
	if err := validName(name); err != nil {
		return err
	}
	words, err := mnemonic.WordCount(len(entropy))
	if err != nil {
		return err
	}
	wl, ok := wordlist.Default().Lookup(lang)
	if !ok {
		return fmt.Errorf("unknown language %q", lang)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	exists, err := v.db.Has([]byte(name))
	if err != nil {
		return fmt.Errorf("check entry: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrExists, name)
	}

	done := log.Benchmark("vault.encrypt")
	encrypted, err := Encrypt(entropy, password, params)
	done()
	if err != nil {
		return fmt.Errorf("encrypt entropy: %w", err)
	}

	data, err := json.Marshal(&record{
		Version:          recordVersion,
		CreatedAt:        time.Now().UTC(),
		Language:         wl.Language(),
		Words:            words,
		EncryptedEntropy: encrypted,
	})
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if err := v.db.Put([]byte(name), data); err != nil {
		return fmt.Errorf("store entry: %w", err)
	}

	log.Vault.Info().
		Str("name", name).
		Str("language", wl.Language()).
		Int("words", words).
		Msg("Mnemonic saved")
	return nil
}

// Load decrypts the entry stored under name and returns its language and
// entropy. The caller owns the returned entropy and should wipe it.
func (v *Vault) Load(name string, password []byte) (string, []byte, error) {
	rec, err := v.read(name)
	if err != nil {
		return "", nil, err
	}

	entropy, err := Decrypt(rec.EncryptedEntropy, password)
	if err != nil {
		log.Vault.Warn().Str("name", name).Msg("Decryption failed")
		return "", nil, fmt.Errorf("decrypt %s: %w", name, err)
	}
	if n, err := mnemonic.WordCount(len(entropy)); err != nil || n != rec.Words {
		clear(entropy)
		return "", nil, fmt.Errorf("entry %s: stored entropy does not match record", name)
	}

	log.Vault.Debug().Str("name", name).Msg("Mnemonic loaded")
	return rec.Language, entropy, nil
}

// Info returns the metadata of the entry stored under name.
func (v *Vault) Info(name string) (Entry, error) {
	rec, err := v.read(name)
	if err != nil {
		return Entry{}, err
	}
	return entryOf(name, rec), nil
}

// List returns the metadata of every entry, ordered by name.
func (v *Vault) List() ([]Entry, error) {
	var entries []Entry
	err := v.db.ForEach(nil, func(key, value []byte) error {
		var rec record
		if err := json.Unmarshal(value, &rec); err != nil {
			return fmt.Errorf("entry %s: %w", key, err)
		}
		entries = append(entries, entryOf(string(key), &rec))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// Has reports whether an entry named name exists.
func (v *Vault) Has(name string) (bool, error) {
	return v.db.Has([]byte(name))
}

// Delete removes the entry stored under name.
func (v *Vault) Delete(name string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	exists, err := v.db.Has([]byte(name))
	if err != nil {
		return fmt.Errorf("check entry: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrNoEntry, name)
	}
	if err := v.db.Delete([]byte(name)); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	log.Vault.Info().Str("name", name).Msg("Mnemonic deleted")
	return nil
}

func (v *Vault) read(name string) (*record, error) {
	data, err := v.db.Get([]byte(name))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNoEntry, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read entry: %w", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse entry %s: %w", name, err)
	}
	if rec.Version != recordVersion {
		return nil, fmt.Errorf("entry %s: unsupported version %d", name, rec.Version)
	}
	return &rec, nil
}

func entryOf(name string, rec *record) Entry {
	return Entry{
		Name:      name,
		Language:  rec.Language,
		Words:     rec.Words,
		CreatedAt: rec.CreatedAt,
	}
}
