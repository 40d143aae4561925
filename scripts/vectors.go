// vectors.go prints BIP-39 test vectors (entropy, mnemonic, seed, xpub) as JSON.
// Usage: go run scripts/vectors.go [lang] [passphrase]
package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/Klingon-tech/klingnet-mnemonic/internal/wallet"
	"github.com/Klingon-tech/klingnet-mnemonic/pkg/mnemonic"
	"github.com/Klingon-tech/klingnet-mnemonic/pkg/wordlist"
)

type vector struct {
	Language string `json:"language"`
	Entropy  string `json:"entropy"`
	Mnemonic string `json:"mnemonic"`
	Seed     string `json:"seed"`
	XPub     string `json:"xpub"`
}

func main() {
	lang := wordlist.English
	if len(os.Args) > 1 {
		lang = os.Args[1]
	}
	passphrase := "TREZOR"
	if len(os.Args) > 2 {
		passphrase = os.Args[2]
	}

	wl, ok := wordlist.Default().Lookup(lang)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown language %q\n", lang)
		os.Exit(1)
	}

	var out []vector
	for _, size := range []int{16, 20, 24, 28, 32} {
		for _, fill := range []byte{0x00, 0x7f, 0x80, 0xff} {
			entropy := bytes.Repeat([]byte{fill}, size)
			m, err := mnemonic.Encode(wl, entropy)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			seed := mnemonic.NewSeed(m, passphrase)
			master, err := wallet.NewMasterKey(seed)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			out = append(out, vector{
				Language: wl.Language(),
				Entropy:  hex.EncodeToString(entropy),
				Mnemonic: m,
				Seed:     hex.EncodeToString(seed),
				XPub:     master.ExtendedPublicKey(),
			})
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
