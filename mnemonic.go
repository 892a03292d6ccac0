// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package noir

import (
	"errors"
	"io"
	"strings"

	"github.com/tyler-smith/go-bip39"
	"golang.org/x/text/unicode/norm"
)

const (
	// MinStrength and MaxStrength bound the entropy size in bits.
	MinStrength = 128
	MaxStrength = 256

	// DefaultStrength yields a 24-word phrase.
	DefaultStrength = 256

	// SeedSize is the length of a BIP39 seed in bytes.
	SeedSize = 64

	bitsPerWord = 11
)

// Mnemonic is a validated BIP39 phrase together with the entropy it encodes.
type Mnemonic struct {
	words   []string
	entropy []byte
	list    *Wordlist
}

// Seed is the 512-bit output of the BIP39 key stretching function.
type Seed [SeedSize]byte

// Bytes returns the seed as a slice backed by s.
func (s *Seed) Bytes() []byte { return s[:] }

// Wipe overwrites the seed with zeros.
func (s *Seed) Wipe() {
	for i := range s {
		s[i] = 0
	}
}

// NewMnemonic draws strength bits from rand and encodes them as a phrase.
// strength must be a multiple of 32 between 128 and 256, otherwise the error
// is KindInvalidStrength. A failing or short read from rand aborts with a
// KindEntropy error; it never falls back to a weaker source.
func NewMnemonic(rand io.Reader, strength int, list *Wordlist) (*Mnemonic, error) {
	if err := checkStrength(strength); err != nil {
		return nil, err
	}
	if rand == nil {
		return nil, newError(KindEntropy, "no randomness source configured")
	}
	entropy := make([]byte, strength/8)
	if _, err := io.ReadFull(rand, entropy); err != nil {
		return nil, wrapError(KindEntropy, err, "could not read %d bytes of entropy", len(entropy))
	}
	return MnemonicFromEntropy(entropy, list)
}

// MnemonicFromEntropy encodes caller-supplied entropy as a phrase.
//
// go-bip39 does the bit packing and checksum on its default English list;
// the word indices are then carried over to list.
func MnemonicFromEntropy(entropy []byte, list *Wordlist) (*Mnemonic, error) {
	if err := checkStrength(len(entropy) * 8); err != nil {
		return nil, err
	}
	if list == nil {
		list = English
	}

	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, wrapError(KindInvalidStrength, err, "could not encode %d bytes of entropy", len(entropy))
	}
	words := strings.Fields(phrase)
	for i, w := range words {
		idx, ok := English.Index(w)
		if !ok {
			return nil, newError(KindInvalidMnemonic, "word %q is not in the english wordlist", w)
		}
		words[i] = list.Word(idx)
	}

	ent := make([]byte, len(entropy))
	copy(ent, entropy)
	return &Mnemonic{words: words, entropy: ent, list: list}, nil
}

// ParseMnemonic validates phrase against list: word count, dictionary
// membership and checksum. Words may be separated by any Unicode whitespace.
func ParseMnemonic(phrase string, list *Wordlist) (*Mnemonic, error) {
	if list == nil {
		list = English
	}
	words := strings.Fields(norm.NFKD.String(phrase))

	if _, ok := strengthForWords(len(words)); !ok {
		return nil, newError(KindInvalidMnemonic, "got %d words, want 12, 15, 18, 21 or 24", len(words))
	}

	english := make([]string, len(words))
	canonical := make([]string, len(words))
	for i, w := range words {
		idx, ok := list.Index(w)
		if !ok {
			return nil, newError(KindInvalidMnemonic, "word %d is not in the %s wordlist", i+1, list.Name())
		}
		english[i] = English.Word(idx)
		canonical[i] = list.Word(idx)
	}

	entropy, err := bip39.EntropyFromMnemonic(strings.Join(english, " "))
	if err != nil {
		if errors.Is(err, bip39.ErrChecksumIncorrect) {
			return nil, newError(KindInvalidMnemonic, "checksum mismatch")
		}
		return nil, wrapError(KindInvalidMnemonic, err, "could not decode phrase")
	}
	return &Mnemonic{words: canonical, entropy: entropy, list: list}, nil
}

// Words returns a copy of the phrase's words.
func (m *Mnemonic) Words() []string {
	out := make([]string, len(m.words))
	copy(out, m.words)
	return out
}

// Entropy returns a copy of the encoded entropy.
func (m *Mnemonic) Entropy() []byte {
	out := make([]byte, len(m.entropy))
	copy(out, m.entropy)
	return out
}

// Wordlist returns the dictionary the phrase was encoded with.
func (m *Mnemonic) Wordlist() *Wordlist { return m.list }

// String joins the words with the wordlist's separator.
func (m *Mnemonic) String() string {
	return strings.Join(m.words, m.list.Separator())
}

// Seed stretches the phrase and an optional passphrase into a 64-byte seed
// (PBKDF2-HMAC-SHA512, 2048 iterations, salt "mnemonic"+passphrase). Both
// inputs are NFKD-normalized first.
func (m *Mnemonic) Seed(passphrase string) *Seed {
	phrase := norm.NFKD.String(strings.Join(m.words, " "))
	raw := bip39.NewSeed(phrase, norm.NFKD.String(passphrase))
	var s Seed
	copy(s[:], raw)
	for i := range raw {
		raw[i] = 0
	}
	return &s
}

func checkStrength(bits int) error {
	if bits < MinStrength || bits > MaxStrength || bits%32 != 0 {
		return newError(KindInvalidStrength, "%d bits (must be a multiple of 32 between %d and %d)", bits, MinStrength, MaxStrength)
	}
	return nil
}

func wordCount(strength int) int {
	return (strength + strength/32) / bitsPerWord
}

func strengthForWords(n int) (int, bool) {
	switch n {
	case 12, 15, 18, 21, 24:
		return n * bitsPerWord * 32 / 33, true
	}
	return 0, false
}
