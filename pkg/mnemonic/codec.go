// Package mnemonic implements the BIP-39 mnemonic code: entropy is packed
// into 11-bit word indices with an appended SHA-256 checksum, and a 64-byte
// seed is stretched from the phrase text with PBKDF2-HMAC-SHA512.
//
// All functions are pure and safe for concurrent use. Scratch buffers holding
// entropy or checksum material are wiped before returning.
package mnemonic

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/Klingon-tech/klingnet-mnemonic/pkg/wordlist"
	"golang.org/x/text/unicode/norm"
)

const (
	// BitsPerWord is the number of bits encoded by each mnemonic word.
	BitsPerWord = 11

	// MaxWords is the word count of a 256-bit mnemonic.
	MaxWords = (MaxEntropySize*8 + MaxEntropySize/4) / BitsPerWord

	wordMask = 1<<BitsPerWord - 1
)

// WordCount returns the number of words for entropy of the given byte length.
func WordCount(entropyLen int) (int, error) {
	cs, err := ChecksumBits(entropyLen)
	if err != nil {
		return 0, err
	}
	return (entropyLen*8 + cs) / BitsPerWord, nil
}

// entropyLenForWords maps a word count back to its entropy byte length.
func entropyLenForWords(n int) (int, bool) {
	switch n {
	case 12, 15, 18, 21, 24:
		return n * BitsPerWord * 32 / 33 / 8, true
	}
	return 0, false
}

// resolve applies the nil-means-English default and checks the bit width.
func resolve(w *wordlist.Wordlist) (*wordlist.Wordlist, error) {
	if w == nil {
		w = wordlist.Default().Get(wordlist.English)
	}
	if w.Bits() != BitsPerWord {
		return nil, fmt.Errorf("%w: %q encodes %d bits per word", ErrInvalidWordlist, w.Language(), w.Bits())
	}
	return w, nil
}

// Encode converts entropy into a mnemonic phrase using the given wordlist.
// A nil wordlist selects English. Words are separated by single ASCII spaces.
func Encode(w *wordlist.Wordlist, entropy []byte) (string, error) {
	w, err := resolve(w)
	if err != nil {
		return "", err
	}
	cs, err := ChecksumBits(len(entropy))
	if err != nil {
		return "", err
	}

	var buf [MaxEntropySize + 1]byte
	var indices [MaxWords]uint16
	defer wipe(buf[:])
	defer wipeIndices(indices[:])

	n := copy(buf[:], entropy)
	digest := Checksum(entropy)
	buf[n] = digest[0]
	wipe(digest[:])

	count := (n*8 + cs) / BitsPerWord
	var (
		acc  uint32
		accN uint
		k    int
	)
	for _, b := range buf[:n+1] {
		acc = acc<<8 | uint32(b)
		accN += 8
		for accN >= BitsPerWord && k < count {
			accN -= BitsPerWord
			indices[k] = uint16(acc >> accN & wordMask)
			k++
		}
		acc &= 1<<accN - 1
	}

	var sb strings.Builder
	for i, idx := range indices[:count] {
		word, _ := w.Word(int(idx))
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(word)
	}
	return sb.String(), nil
}

// Decode converts a mnemonic phrase back into its entropy, verifying the
// embedded checksum. A nil wordlist selects English. The phrase is
// NFKD-normalized, matching the form of the shipped tables, and words may be
// separated by any Unicode whitespace. No entropy is returned on failure.
func Decode(w *wordlist.Wordlist, mnemonic string) ([]byte, error) {
	w, err := resolve(w)
	if err != nil {
		return nil, err
	}

	var indices [MaxWords]uint16
	defer wipeIndices(indices[:])

	words := strings.Fields(norm.NFKD.String(mnemonic))
	for i, word := range words {
		idx, ok := w.Index(word)
		if !ok {
			return nil, fmt.Errorf("%w: position %d", ErrInvalidWord, i+1)
		}
		if i < MaxWords {
			indices[i] = uint16(idx)
		}
	}

	entropyLen, ok := entropyLenForWords(len(words))
	if !ok {
		return nil, fmt.Errorf("%w: %d words (want 12, 15, 18, 21 or 24)", ErrInvalidMnemonicLength, len(words))
	}
	cs := entropyLen / 4

	var buf [MaxEntropySize + 1]byte
	defer wipe(buf[:])

	var (
		acc  uint32
		accN uint
		k    int
	)
	for _, idx := range indices[:len(words)] {
		acc = acc<<BitsPerWord | uint32(idx)
		accN += BitsPerWord
		for accN >= 8 {
			accN -= 8
			buf[k] = byte(acc >> accN)
			k++
		}
		acc &= 1<<accN - 1
	}
	if accN > 0 {
		buf[k] = byte(acc << (8 - accN))
	}

	digest := Checksum(buf[:entropyLen])
	mask := checksumMask(cs)
	match := subtle.ConstantTimeByteEq(buf[entropyLen]&mask, digest[0]&mask)
	wipe(digest[:])
	if match != 1 {
		return nil, ErrChecksumMismatch
	}

	entropy := make([]byte, entropyLen)
	copy(entropy, buf[:entropyLen])
	return entropy, nil
}

// IsValid reports whether mnemonic decodes under w with a correct checksum.
func IsValid(w *wordlist.Wordlist, mnemonic string) bool {
	entropy, err := Decode(w, mnemonic)
	if err != nil {
		return false
	}
	wipe(entropy)
	return true
}

func wipe(b []byte) {
	clear(b)
}

func wipeIndices(v []uint16) {
	clear(v)
}
