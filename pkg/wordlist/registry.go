package wordlist

import (
	"fmt"
	"sync"

	"github.com/tyler-smith/go-bip39/wordlists"
)

// Language codes of the shipped wordlists.
const (
	English            = "en"
	Spanish            = "es"
	French             = "fr"
	Italian            = "it"
	Japanese           = "jp"
	ChineseSimplified  = "zhs"
	ChineseTraditional = "zht"
	Czech              = "cs"
	Korean             = "ko"
)

// Registry is a read-only table of wordlists keyed by language code.
//
// The shipped lists overlap, so a phrase can be valid under more than one of
// them. The registry never guesses a language from word content; callers that
// want detection must try each code from Languages and decide themselves.
type Registry struct {
	order    []string
	lists    map[string]*Wordlist
	aliases  map[string]string
	fallback *Wordlist
}

// NewRegistry builds a registry from the given lists. The fallback code must
// name one of the lists; Get returns it for unknown or empty codes.
// Aliases map an extra code onto a registered one.
func NewRegistry(fallback string, lists []*Wordlist, aliases map[string]string) (*Registry, error) {
	r := &Registry{
		order:   make([]string, 0, len(lists)),
		lists:   make(map[string]*Wordlist, len(lists)),
		aliases: make(map[string]string, len(aliases)),
	}
	for _, w := range lists {
		if w == nil {
			return nil, fmt.Errorf("nil wordlist")
		}
		if _, ok := r.lists[w.lang]; ok {
			return nil, fmt.Errorf("duplicate language %q", w.lang)
		}
		r.order = append(r.order, w.lang)
		r.lists[w.lang] = w
	}
	for alias, target := range aliases {
		if _, ok := r.lists[alias]; ok {
			return nil, fmt.Errorf("alias %q shadows a registered language", alias)
		}
		if _, ok := r.lists[target]; !ok {
			return nil, fmt.Errorf("alias %q targets unknown language %q", alias, target)
		}
		r.aliases[alias] = target
	}
	fb, ok := r.lists[fallback]
	if !ok {
		return nil, fmt.Errorf("fallback language %q not registered", fallback)
	}
	r.fallback = fb
	return r, nil
}

// Get returns the wordlist for an exact, case-sensitive code match.
// An empty or unrecognised code returns the fallback list (English for the
// default registry).
func (r *Registry) Get(lang string) *Wordlist {
	if w, ok := r.Lookup(lang); ok {
		return w
	}
	return r.fallback
}

// Lookup is like Get but reports whether the code was recognised instead of
// falling back.
func (r *Registry) Lookup(lang string) (*Wordlist, bool) {
	if target, ok := r.aliases[lang]; ok {
		lang = target
	}
	w, ok := r.lists[lang]
	return w, ok
}

// Languages returns the registered codes in registration order.
// Aliases are not included.
func (r *Registry) Languages() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Default returns the process-wide registry of compiled-in wordlists.
// It is built on first use and never modified afterwards.
//
// The generic code "zh" is an alias for simplified Chinese ("zhs").
var Default = sync.OnceValue(func() *Registry {
	tables := []struct {
		lang  string
		words []string
	}{
		{English, wordlists.English},
		{Spanish, wordlists.Spanish},
		{French, wordlists.French},
		{Italian, wordlists.Italian},
		{Japanese, wordlists.Japanese},
		{ChineseSimplified, wordlists.ChineseSimplified},
		{ChineseTraditional, wordlists.ChineseTraditional},
		{Czech, wordlists.Czech},
		{Korean, wordlists.Korean},
	}

	lists := make([]*Wordlist, 0, len(tables))
	for _, t := range tables {
		w, err := New(t.lang, t.words)
		if err != nil {
			panic(fmt.Sprintf("compiled-in wordlist: %v", err))
		}
		lists = append(lists, w)
	}

	r, err := NewRegistry(English, lists, map[string]string{"zh": ChineseSimplified})
	if err != nil {
		panic(fmt.Sprintf("compiled-in registry: %v", err))
	}
	return r
})
