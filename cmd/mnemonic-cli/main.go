// mnemonic-cli converts between entropy, mnemonic phrases and seeds, and
// keeps mnemonics in an encrypted local vault.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Klingon-tech/klingnet-mnemonic/config"
	"github.com/Klingon-tech/klingnet-mnemonic/internal/log"
	"github.com/Klingon-tech/klingnet-mnemonic/internal/wallet"
	"github.com/Klingon-tech/klingnet-mnemonic/pkg/crypto"
	"github.com/Klingon-tech/klingnet-mnemonic/pkg/mnemonic"
	"github.com/Klingon-tech/klingnet-mnemonic/pkg/wordlist"
)

const version = "0.1.0"

func main() {
	flags, err := config.ParseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		usage()
		os.Exit(2)
	}
	if flags.Help {
		usage()
		return
	}
	if flags.Version {
		fmt.Printf("mnemonic-cli version %s\n", version)
		return
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fatal("%v", err)
	}
	if err := log.Init(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File); err != nil {
		fatal("init logging: %v", err)
	}

	args := flags.Args
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	wl, ok := wordlist.Default().Lookup(cfg.Language)
	if !ok {
		fatal("unknown language %q", cfg.Language)
	}
	log.CLI.Debug().Str("command", args[0]).Str("language", wl.Language()).Msg("Dispatch")

	cmd := args[0]
	cmdArgs := args[1:]

	switch cmd {
	case "languages":
		cmdLanguages(cfg.Language)
	case "generate":
		cmdGenerate(cmdArgs, wl)
	case "encode":
		cmdEncode(cmdArgs, wl)
	case "decode":
		cmdDecode(cmdArgs, wl)
	case "validate":
		cmdValidate(cmdArgs, wl)
	case "detect":
		cmdDetect(cmdArgs)
	case "seed":
		cmdSeed(cmdArgs)
	case "vault":
		cmdVault(cmdArgs, cfg, wl)
	case "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: mnemonic-cli [global flags] <command> [flags]

Global flags:
  --datadir <path>    Data directory (default: %s)
  --config, -c <file> Config file (default: <datadir>/mnemonic.conf)
  --lang <code>       Wordlist language (default: en)
  --log-level <lvl>   debug, info, warn (default) or error
  --log-file <path>   Also write JSON logs to a file
  --log-json          Log as JSON
  --version           Show version information

Commands:
  languages                       List wordlist languages
  generate [--bits 128..256]      Generate a new mnemonic
  encode <hex>                    Encode hex entropy as a mnemonic
  decode [words...]               Decode a mnemonic to hex entropy
  validate [words...]             Check words and checksum
  detect [words...]               List languages the mnemonic is valid in
  seed [--passphrase] [--fingerprint] [--xpub] [words...]
                                  Derive the 64-byte seed

  vault save --name <n> [words...]
                                  Encrypt and store a mnemonic
  vault reveal --name <n>         Decrypt and print a stored mnemonic
  vault list                      List stored mnemonics
  vault delete --name <n>         Remove a stored mnemonic

Commands taking [words...] read the phrase from stdin when none are given,
with hidden input on a terminal.
`, config.DefaultDataDir())
}

// ── languages ───────────────────────────────────────────────────────────

func cmdLanguages(current string) {
	for _, lang := range wordlist.Default().Languages() {
		marker := " "
		if lang == current {
			marker = "*"
		}
		fmt.Printf("%s %s\n", marker, lang)
	}
}

// ── generate / encode ───────────────────────────────────────────────────

func cmdGenerate(args []string, wl *wordlist.Wordlist) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	bits := fs.Int("bits", 128, "Entropy strength: 128, 160, 192, 224 or 256")
	fs.Parse(args)

	m, err := mnemonic.Generate(wl, *bits)
	if err != nil {
		fatal("generate mnemonic: %v", err)
	}
	fmt.Println(m)
}

func cmdEncode(args []string, wl *wordlist.Wordlist) {
	if len(args) != 1 {
		fatal("Usage: mnemonic-cli encode <hex>")
	}
	entropy, err := parseEntropyHex(args[0])
	if err != nil {
		fatal("%v", err)
	}
	defer clear(entropy)

	m, err := mnemonic.Encode(wl, entropy)
	if err != nil {
		fatal("encode: %v", err)
	}
	fmt.Println(m)
}

// ── decode / validate / detect ──────────────────────────────────────────

func cmdDecode(args []string, wl *wordlist.Wordlist) {
	phrase := readPhrase(args)
	entropy, err := mnemonic.Decode(wl, phrase)
	if err != nil {
		fatal("decode: %v", err)
	}
	defer clear(entropy)
	fmt.Println(hex.EncodeToString(entropy))
}

func cmdValidate(args []string, wl *wordlist.Wordlist) {
	phrase := readPhrase(args)
	entropy, err := mnemonic.Decode(wl, phrase)
	if err != nil {
		fmt.Printf("invalid (%s): %v\n", wl.Language(), err)
		os.Exit(1)
	}
	clear(entropy)
	fmt.Printf("valid (%s, %d words)\n", wl.Language(), len(strings.Fields(phrase)))
}

func cmdDetect(args []string) {
	langs := mnemonic.DetectLanguages(wordlist.Default(), readPhrase(args))
	if len(langs) == 0 {
		fmt.Println("No matching language.")
		os.Exit(1)
	}
	for _, lang := range langs {
		fmt.Println(lang)
	}
	if len(langs) > 1 {
		fmt.Fprintln(os.Stderr, "Warning: mnemonic is valid in several languages; pass --lang to pick one.")
	}
}

// ── seed ────────────────────────────────────────────────────────────────

func cmdSeed(args []string) {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	askPass := fs.Bool("passphrase", false, "Prompt for a BIP-39 passphrase")
	fingerprint := fs.Bool("fingerprint", false, "Print the seed fingerprint instead of the seed")
	xpub := fs.Bool("xpub", false, "Print the BIP-32 master public key instead of the seed")
	fs.Parse(args)

	phrase := readPhrase(fs.Args())

	var passphrase string
	if *askPass {
		p, err := readPassword("Passphrase: ")
		if err != nil {
			fatal("read passphrase: %v", err)
		}
		passphrase = string(p)
		clear(p)
	}

	seed := mnemonic.NewSeed(phrase, passphrase)
	defer clear(seed)

	if !*fingerprint && !*xpub {
		fmt.Println(hex.EncodeToString(seed))
		return
	}
	if *fingerprint {
		fmt.Printf("Fingerprint: %s\n", crypto.SeedFingerprint(seed))
	}
	if *xpub {
		master, err := wallet.NewMasterKey(seed)
		if err != nil {
			fatal("derive master key: %v", err)
		}
		defer master.Wipe()
		fmt.Printf("Master xpub: %s\n", master.ExtendedPublicKey())
	}
}

// ── Error helper ────────────────────────────────────────────────────────

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
