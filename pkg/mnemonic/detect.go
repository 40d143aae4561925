package mnemonic

import "github.com/Klingon-tech/klingnet-mnemonic/pkg/wordlist"

// DetectLanguages returns, in registry order, every language whose wordlist
// decodes mnemonic with a valid checksum.
//
// The shipped wordlists share words, so more than one code can be returned.
// Choosing between them is left to the caller.
func DetectLanguages(r *wordlist.Registry, mnemonic string) []string {
	var matches []string
	for _, lang := range r.Languages() {
		w, ok := r.Lookup(lang)
		if !ok {
			continue
		}
		if IsValid(w, mnemonic) {
			matches = append(matches, lang)
		}
	}
	return matches
}
