// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package noir

import (
	"encoding/hex"
	"encoding/json"

	"github.com/btcsuite/btcd/btcec/v2"
)

// Public key encodings accepted by the address encoders.
const (
	CompressedPubKeySize = btcec.PubKeyBytesLenCompressed
	RawPubKeySize        = 64
	// UncompressedPubKeySize is 0x04 || x || y.
	UncompressedPubKeySize = 1 + RawPubKeySize
)

// KeyPair is a secp256k1 private scalar and its public point. It never signs
// anything; it only hands out the public key bytes the address encoders
// hash.
//
// When marshaled to JSON the private scalar is included only if the pair
// was marked revealable (see Engine's WithPrivateKeys option).
type KeyPair struct {
	priv   *btcec.PrivateKey
	pub    *btcec.PublicKey
	reveal bool
}

func newKeyPair(priv *btcec.PrivateKey) *KeyPair {
	return &KeyPair{priv: priv, pub: priv.PubKey()}
}

// KeyPairFromMnemonic validates phrase and returns the master keypair of its
// seed, i.e. the key at path "m".
func KeyPairFromMnemonic(phrase, passphrase string, list *Wordlist) (*KeyPair, error) {
	m, err := ParseMnemonic(phrase, list)
	if err != nil {
		return nil, err
	}
	seed := m.Seed(passphrase)
	defer seed.Wipe()

	master, err := NewMasterKey(seed.Bytes(), nil)
	if err != nil {
		return nil, err
	}
	return master.KeyPair()
}

// PublicKey returns the 33-byte compressed public key.
func (kp *KeyPair) PublicKey() []byte { return kp.pub.SerializeCompressed() }

// UncompressedPublicKey returns the 65-byte 0x04||x||y public key.
func (kp *KeyPair) UncompressedPublicKey() []byte { return kp.pub.SerializeUncompressed() }

// RawPublicKey returns the 64-byte x||y public key.
func (kp *KeyPair) RawPublicKey() []byte { return kp.pub.SerializeUncompressed()[1:] }

// PrivateKey returns the 32-byte private scalar. The caller owns the copy.
func (kp *KeyPair) PrivateKey() []byte { return kp.priv.Serialize() }

// Revealable reports whether MarshalJSON includes the private scalar.
func (kp *KeyPair) Revealable() bool { return kp.reveal }

// Wipe zeroes the private scalar. The public key stays usable.
func (kp *KeyPair) Wipe() {
	if kp.priv != nil {
		kp.priv.Zero()
	}
}

type keyPairJSON struct {
	Public  string `json:"public"`
	Private string `json:"private,omitempty"`
}

// MarshalJSON renders the public key, and the private key if revealable, as
// hex.
func (kp *KeyPair) MarshalJSON() ([]byte, error) {
	out := keyPairJSON{Public: hex.EncodeToString(kp.PublicKey())}
	if kp.reveal {
		out.Private = hex.EncodeToString(kp.PrivateKey())
	}
	return json.Marshal(out)
}

// parsePublicKey accepts the compressed, raw and uncompressed encodings and
// checks that the point is on the curve.
func parsePublicKey(pub []byte) (*btcec.PublicKey, error) {
	switch len(pub) {
	case CompressedPubKeySize, UncompressedPubKeySize:
	case RawPubKeySize:
		full := make([]byte, UncompressedPubKeySize)
		full[0] = 0x04
		copy(full[1:], pub)
		pub = full
	default:
		return nil, newError(KindInvalidPublicKey, "public key has %d bytes, want %d, %d or %d",
			len(pub), CompressedPubKeySize, RawPubKeySize, UncompressedPubKeySize)
	}
	key, err := btcec.ParsePubKey(pub)
	if err != nil {
		return nil, wrapError(KindInvalidPublicKey, err, "could not parse public key")
	}
	return key, nil
}
