package keystore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/Klingon-tech/klingnet-mnemonic/internal/storage"
	"github.com/Klingon-tech/klingnet-mnemonic/pkg/mnemonic"
)

var testEntropy = bytes.Repeat([]byte{0x7f}, 16)

func newTestVault(t *testing.T) (*Vault, storage.DB) {
	t.Helper()
	db := storage.NewMemory()
	t.Cleanup(func() { db.Close() })
	return NewVault(db), db
}

func TestVault_SaveLoad(t *testing.T) {
	v, _ := newTestVault(t)
	password := []byte("hunter2")

	if err := v.Save("main", "en", testEntropy, password, fastParams()); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	lang, entropy, err := v.Load("main", password)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if lang != "en" {
		t.Errorf("language = %q, want en", lang)
	}
	if !bytes.Equal(entropy, testEntropy) {
		t.Errorf("entropy = %x, want %x", entropy, testEntropy)
	}

	m, err := mnemonic.Encode(nil, entropy)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	want := "legal winner thank year wave sausage worth useful legal winner thank yellow"
	if m != want {
		t.Errorf("mnemonic = %q, want %q", m, want)
	}
}

func TestVault_CanonicalLanguage(t *testing.T) {
	v, _ := newTestVault(t)
	if err := v.Save("cn", "zh", testEntropy, []byte("p"), fastParams()); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	lang, _, err := v.Load("cn", []byte("p"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if lang != "zhs" {
		t.Errorf("language = %q, want zhs", lang)
	}
}

func TestVault_SaveRejects(t *testing.T) {
	v, _ := newTestVault(t)
	if err := v.Save("taken", "en", testEntropy, []byte("p"), fastParams()); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	tests := []struct {
		name    string
		entry   string
		lang    string
		entropy []byte
		params  EncryptionParams
		wantErr error
	}{
		{"empty name", "", "en", testEntropy, fastParams(), ErrInvalidName},
		{"slash in name", "a/b", "en", testEntropy, fastParams(), ErrInvalidName},
		{"long name", string(bytes.Repeat([]byte("x"), 65)), "en", testEntropy, fastParams(), ErrInvalidName},
		{"duplicate", "taken", "en", testEntropy, fastParams(), ErrExists},
		{"short entropy", "short", "en", make([]byte, 15), fastParams(), mnemonic.ErrInvalidEntropyLength},
		{"long entropy", "long", "en", make([]byte, 33), fastParams(), mnemonic.ErrInvalidEntropyLength},
		{"unknown language", "lang", "xx", testEntropy, fastParams(), nil},
		{"bad params", "params", "en", testEntropy, EncryptionParams{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Save(tt.entry, tt.lang, tt.entropy, []byte("p"), tt.params)
			if err == nil {
				t.Fatal("Save() should fail")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Save() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	// Only the first entry was stored.
	entries, err := v.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("List() = %d entries, want 1", len(entries))
	}
}

func TestVault_LoadErrors(t *testing.T) {
	v, _ := newTestVault(t)
	if err := v.Save("main", "en", testEntropy, []byte("right"), fastParams()); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	if _, _, err := v.Load("main", []byte("wrong")); !errors.Is(err, ErrDecrypt) {
		t.Errorf("Load() wrong password error = %v, want ErrDecrypt", err)
	}
	if _, _, err := v.Load("missing", []byte("right")); !errors.Is(err, ErrNoEntry) {
		t.Errorf("Load() missing error = %v, want ErrNoEntry", err)
	}
}

func TestVault_RecordFormat(t *testing.T) {
	v, db := newTestVault(t)
	if err := v.Save("main", "fr", testEntropy, []byte("p"), fastParams()); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	data, err := db.Get([]byte("vault/main"))
	if err != nil {
		t.Fatalf("raw Get() error: %v", err)
	}
	var rec map[string]any
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("unmarshal record: %v", err)
	}
	for _, field := range []string{"version", "created_at", "language", "words", "encrypted_entropy"} {
		if _, ok := rec[field]; !ok {
			t.Errorf("record missing field %q", field)
		}
	}
	if rec["language"] != "fr" {
		t.Errorf("language = %v, want fr", rec["language"])
	}
	if rec["words"] != float64(12) {
		t.Errorf("words = %v, want 12", rec["words"])
	}
	if bytes.Contains(data, testEntropy) {
		t.Error("record should not contain plaintext entropy")
	}
}

func TestVault_ListInfoDelete(t *testing.T) {
	v, _ := newTestVault(t)
	for _, tc := range []struct {
		name string
		size int
	}{{"beta", 32}, {"alpha", 16}, {"gamma", 20}} {
		if err := v.Save(tc.name, "en", make([]byte, tc.size), []byte("p"), fastParams()); err != nil {
			t.Fatalf("Save(%s) error: %v", tc.name, err)
		}
	}

	entries, err := v.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	var got []string
	for _, e := range entries {
		got = append(got, fmt.Sprintf("%s:%d", e.Name, e.Words))
	}
	want := []string{"alpha:12", "beta:24", "gamma:15"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("List() = %v, want %v", got, want)
	}

	info, err := v.Info("beta")
	if err != nil {
		t.Fatalf("Info() error: %v", err)
	}
	if info.Language != "en" || info.Words != 24 || info.CreatedAt.IsZero() {
		t.Errorf("Info() = %+v", info)
	}

	if err := v.Delete("beta"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if ok, _ := v.Has("beta"); ok {
		t.Error("Has() = true after Delete()")
	}
	if err := v.Delete("beta"); !errors.Is(err, ErrNoEntry) {
		t.Errorf("second Delete() error = %v, want ErrNoEntry", err)
	}
	if _, err := v.Info("beta"); !errors.Is(err, ErrNoEntry) {
		t.Errorf("Info() after Delete() error = %v, want ErrNoEntry", err)
	}
}

func TestVault_ConcurrentSaveSameName(t *testing.T) {
	v, _ := newTestVault(t)

	var wg sync.WaitGroup
	results := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- v.Save("race", "en", testEntropy, []byte("p"), fastParams())
		}()
	}
	wg.Wait()
	close(results)

	var ok, exists int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrExists):
			exists++
		default:
			t.Errorf("Save() unexpected error: %v", err)
		}
	}
	if ok != 1 || exists != 3 {
		t.Errorf("successes = %d, duplicates = %d, want 1 and 3", ok, exists)
	}
}

func TestVault_Badger(t *testing.T) {
	dir := t.TempDir()
	db, err := storage.NewBadger(dir)
	if err != nil {
		t.Fatalf("NewBadger() error: %v", err)
	}
	if err := NewVault(db).Save("disk", "ko", testEntropy, []byte("p"), fastParams()); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	db.Close()

	db, err = storage.NewBadger(dir)
	if err != nil {
		t.Fatalf("NewBadger() reopen error: %v", err)
	}
	defer db.Close()

	lang, entropy, err := NewVault(db).Load("disk", []byte("p"))
	if err != nil {
		t.Fatalf("Load() after reopen error: %v", err)
	}
	if lang != "ko" || !bytes.Equal(entropy, testEntropy) {
		t.Errorf("Load() = %s %x, want ko %x", lang, entropy, testEntropy)
	}
}
