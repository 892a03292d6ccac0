// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package noir

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/binary"
)

// combineSeedPassphrase XORs SHA256(seedPassphrase) into the key seed so the
// same SSH key yields a different phrase per passphrase.
func combineSeedPassphrase(keySeed []byte, seedPassphrase string) []byte {
	passphraseHash := sha256.Sum256([]byte(seedPassphrase))

	combined := make([]byte, len(keySeed))
	for i := range keySeed {
		combined[i] = keySeed[i] ^ passphraseHash[i%len(passphraseHash)]
	}
	return combined
}

// EntropyFromKey derives strength bits of deterministic entropy from an
// ed25519 private key, e.g. an SSH identity. Feed the result to
// MnemonicFromEntropy, or to an Engine through WithRandom, to get a phrase
// that can be recreated from the key alone. The key cannot be recovered
// from the phrase.
//
// If seedPassphrase is non-empty it is mixed into the key seed first.
//
// For 256 bits the (combined) 32-byte key seed is used as is. Shorter
// strengths hash the seed prefixed with the big-endian uint16 word count, so
// a 12-word phrase is not a truncation of the 24-word one.
func EntropyFromKey(key ed25519.PrivateKey, strength int, seedPassphrase string) ([]byte, error) {
	if err := checkStrength(strength); err != nil {
		return nil, err
	}
	if len(key) != ed25519.PrivateKeySize {
		return nil, newError(KindEntropy, "ed25519 key has %d bytes, want %d", len(key), ed25519.PrivateKeySize)
	}

	seed := key.Seed()
	if seedPassphrase != "" {
		seed = combineSeedPassphrase(seed, seedPassphrase)
	}

	if strength == MaxStrength {
		return seed, nil
	}

	prefixed := make([]byte, 2+len(seed))
	binary.BigEndian.PutUint16(prefixed, uint16(wordCount(strength)))
	copy(prefixed[2:], seed)

	hash := sha256.Sum256(prefixed)
	entropy := make([]byte, strength/8)
	copy(entropy, hash[:])
	return entropy, nil
}
