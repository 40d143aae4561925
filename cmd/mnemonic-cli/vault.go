package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/Klingon-tech/klingnet-mnemonic/config"
	"github.com/Klingon-tech/klingnet-mnemonic/internal/keystore"
	"github.com/Klingon-tech/klingnet-mnemonic/internal/storage"
	"github.com/Klingon-tech/klingnet-mnemonic/pkg/mnemonic"
	"github.com/Klingon-tech/klingnet-mnemonic/pkg/wordlist"
)

const vaultUsage = "Usage: mnemonic-cli vault <save|reveal|list|delete> [flags]"

func cmdVault(args []string, cfg *config.Config, wl *wordlist.Wordlist) {
	if len(args) < 1 {
		fatal(vaultUsage)
	}

	if err := config.EnsureDataDirs(cfg); err != nil {
		fatal("%v", err)
	}
	db, err := storage.NewBadger(cfg.VaultDir())
	if err != nil {
		fatal("open vault: %v", err)
	}
	defer db.Close()
	v := keystore.NewVault(db)

	switch args[0] {
	case "save":
		cmdVaultSave(args[1:], v, wl, cfg.Vault.EncryptionParams())
	case "reveal":
		cmdVaultReveal(args[1:], v)
	case "list":
		cmdVaultList(v)
	case "delete":
		cmdVaultDelete(args[1:], v)
	default:
		db.Close()
		fatal("Unknown vault command: %s\n%s", args[0], vaultUsage)
	}
}

func cmdVaultSave(args []string, v *keystore.Vault, wl *wordlist.Wordlist, params keystore.EncryptionParams) {
	fs := flag.NewFlagSet("vault save", flag.ExitOnError)
	name := fs.String("name", "", "Entry name")
	fs.Parse(args)

	if *name == "" {
		fatal("Usage: mnemonic-cli vault save --name <name> [words...]")
	}
	if ok, err := v.Has(*name); err != nil {
		fatal("%v", err)
	} else if ok {
		fatal("entry %q already exists", *name)
	}

	entropy, err := mnemonic.Decode(wl, readPhrase(fs.Args()))
	if err != nil {
		fatal("invalid mnemonic (%s): %v", wl.Language(), err)
	}
	defer clear(entropy)

	password := readNewPassword()
	defer clear(password)

	if err := v.Save(*name, wl.Language(), entropy, password, params); err != nil {
		fatal("save: %v", err)
	}
	fmt.Printf("Saved: %s\n", *name)
}

func cmdVaultReveal(args []string, v *keystore.Vault) {
	fs := flag.NewFlagSet("vault reveal", flag.ExitOnError)
	name := fs.String("name", "", "Entry name")
	fs.Parse(args)

	if *name == "" {
		fatal("Usage: mnemonic-cli vault reveal --name <name>")
	}

	password, err := readPassword("Password: ")
	if err != nil {
		fatal("read password: %v", err)
	}
	defer clear(password)

	lang, entropy, err := v.Load(*name, password)
	if err != nil {
		fatal("%v", err)
	}
	defer clear(entropy)

	m, err := mnemonic.Encode(wordlist.Default().Get(lang), entropy)
	if err != nil {
		fatal("encode: %v", err)
	}
	fmt.Println(m)
}

func cmdVaultList(v *keystore.Vault) {
	entries, err := v.List()
	if err != nil {
		fatal("%v", err)
	}
	if len(entries) == 0 {
		fmt.Println("Vault is empty.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tLANG\tWORDS\tCREATED")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", e.Name, e.Language, e.Words, e.CreatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
}

func cmdVaultDelete(args []string, v *keystore.Vault) {
	fs := flag.NewFlagSet("vault delete", flag.ExitOnError)
	name := fs.String("name", "", "Entry name")
	fs.Parse(args)

	if *name == "" {
		fatal("Usage: mnemonic-cli vault delete --name <name>")
	}
	if err := v.Delete(*name); err != nil {
		fatal("%v", err)
	}
	fmt.Printf("Deleted: %s\n", *name)
}
