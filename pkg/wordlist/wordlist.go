// Package wordlist provides the fixed word tables used to spell entropy as a
// mnemonic phrase.
package wordlist

import (
	"fmt"
	"math/bits"
)

// Wordlist size limits. Every shipped list is 2048 words (11 bits per word);
// other power-of-two sizes are representable so that callers can reject them.
const (
	MinSize = 2
	MaxSize = 1 << 16
)

// Wordlist is an ordered, bijective index <-> word table for one language.
// It is immutable after construction and safe for concurrent use.
type Wordlist struct {
	lang  string
	bits  uint
	words []string
	index map[string]uint16
}

// New builds a wordlist from an ordered slice of words. The slice length must
// be a power of two and every entry must be unique and non-empty.
// The input slice is copied.
func New(lang string, words []string) (*Wordlist, error) {
	n := len(words)
	if n < MinSize || n > MaxSize || n&(n-1) != 0 {
		return nil, fmt.Errorf("wordlist %q: size %d is not a power of two in [%d, %d]", lang, n, MinSize, MaxSize)
	}

	w := &Wordlist{
		lang:  lang,
		bits:  uint(bits.TrailingZeros(uint(n))),
		words: make([]string, n),
		index: make(map[string]uint16, n),
	}
	for i, word := range words {
		if word == "" {
			return nil, fmt.Errorf("wordlist %q: empty word at index %d", lang, i)
		}
		if prev, ok := w.index[word]; ok {
			return nil, fmt.Errorf("wordlist %q: duplicate word at index %d (first at %d)", lang, i, prev)
		}
		w.words[i] = word
		w.index[word] = uint16(i)
	}
	return w, nil
}

// Language returns the language code the list was registered under.
func (w *Wordlist) Language() string {
	return w.lang
}

// Bits returns the number of bits each word encodes (log2 of the list size).
func (w *Wordlist) Bits() uint {
	return w.bits
}

// Len returns the number of words in the list.
func (w *Wordlist) Len() int {
	return len(w.words)
}

// Word returns the word at index i.
func (w *Wordlist) Word(i int) (string, bool) {
	if i < 0 || i >= len(w.words) {
		return "", false
	}
	return w.words[i], true
}

// Index returns the position of word in the list. Matching is exact.
func (w *Wordlist) Index(word string) (int, bool) {
	i, ok := w.index[word]
	return int(i), ok
}

// Words returns a copy of the full table in index order.
func (w *Wordlist) Words() []string {
	out := make([]string, len(w.words))
	copy(out, w.words)
	return out
}
