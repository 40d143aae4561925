package mnemonic

import "errors"

var (
	// ErrInvalidWordlist is returned when the wordlist does not encode
	// exactly 11 bits per word. It indicates a configuration defect.
	ErrInvalidWordlist = errors.New("wordlist must have 2048 words")

	// ErrInvalidEntropyLength is returned for entropy that is not
	// 16, 20, 24, 28 or 32 bytes.
	ErrInvalidEntropyLength = errors.New("invalid entropy length")

	// ErrInvalidWord is returned when a mnemonic word is not in the wordlist.
	ErrInvalidWord = errors.New("word not in wordlist")

	// ErrInvalidMnemonicLength is returned when the word count does not
	// correspond to a supported entropy size.
	ErrInvalidMnemonicLength = errors.New("invalid mnemonic length")

	// ErrChecksumMismatch is returned when the embedded checksum does not
	// match the recovered entropy.
	ErrChecksumMismatch = errors.New("mnemonic checksum mismatch")
)
