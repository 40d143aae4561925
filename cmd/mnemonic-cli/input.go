package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/Klingon-tech/klingnet-mnemonic/pkg/mnemonic"
)

// maxPhraseInput bounds what is read from a non-terminal stdin.
const maxPhraseInput = 4096

// readPhrase returns the mnemonic given as arguments, or reads it from stdin.
func readPhrase(args []string) string {
	if len(args) > 0 {
		return strings.Join(args, " ")
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		p, err := readPassword("Mnemonic: ")
		if err != nil {
			fatal("read mnemonic: %v", err)
		}
		defer clear(p)
		return string(p)
	}
	phrase, err := scanPhrase(os.Stdin)
	if err != nil {
		fatal("read mnemonic: %v", err)
	}
	return phrase
}

// scanPhrase reads the first non-empty line from r.
func scanPhrase(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(io.LimitReader(r, maxPhraseInput))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			return line, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("no mnemonic on stdin")
}

// parseEntropyHex decodes hex entropy and checks its length.
func parseEntropyHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	entropy, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("entropy must be hex: %w", err)
	}
	if _, err := mnemonic.WordCount(len(entropy)); err != nil {
		clear(entropy)
		return nil, err
	}
	return entropy, nil
}

// ── Password helpers ────────────────────────────────────────────────────

func readPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr) // newline after hidden input
	if err != nil {
		return nil, err
	}
	return password, nil
}

// readNewPassword prompts twice and requires both entries to match.
func readNewPassword() []byte {
	password, err := readPassword("Enter password: ")
	if err != nil {
		fatal("read password: %v", err)
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		fatal("read password: %v", err)
	}
	defer clear(confirm)
	if err := checkNewPassword(password, confirm); err != nil {
		clear(password)
		fatal("%v", err)
	}
	return password
}

func checkNewPassword(password, confirm []byte) error {
	if len(password) == 0 {
		return fmt.Errorf("password must not be empty")
	}
	if string(password) != string(confirm) {
		return fmt.Errorf("passwords do not match")
	}
	return nil
}
