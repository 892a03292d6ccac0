// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package noir

import (
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/bech32"
)

const (
	// maxHRPLength is the bech32 limit on the human-readable part.
	maxHRPLength = 83
	// maxAddressLength bounds the whole address: hrp, separator, data and
	// the 6-character checksum.
	maxAddressLength = 90
	checksumLength   = 6
)

// CosmosAddress returns the bech32 account address of pub under hrp, with
// hash160 of the compressed public key as payload.
func CosmosAddress(pub []byte, hrp string) (string, error) {
	key, err := parsePublicKey(pub)
	if err != nil {
		return "", err
	}
	return encodeBech32(hrp, btcutil.Hash160(key.SerializeCompressed()))
}

// EvmosAddress returns the bech32 account address of pub under hrp, with the
// Ethereum address bytes (keccak256(x||y)[12:]) as payload. Decoding it gives
// back exactly the bytes behind EthereumAddress, not the hash160 used by
// CosmosAddress.
func EvmosAddress(pub []byte, hrp string) (string, error) {
	payload, err := ethereumPayload(pub)
	if err != nil {
		return "", err
	}
	return encodeBech32(hrp, payload)
}

func encodeBech32(hrp string, payload []byte) (string, error) {
	hrp, err := normalizeHRP(hrp)
	if err != nil {
		return "", err
	}
	data, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", wrapError(KindInvalidPublicKey, err, "could not regroup %d-byte payload", len(payload))
	}
	if n := len(hrp) + 1 + len(data) + checksumLength; n > maxAddressLength {
		return "", newError(KindInvalidHRP, "prefix %q makes a %d-character address, max %d", hrp, n, maxAddressLength)
	}
	addr, err := bech32.Encode(hrp, data)
	if err != nil {
		return "", wrapError(KindInvalidHRP, err, "could not encode bech32 address")
	}
	return addr, nil
}

// normalizeHRP checks a human-readable prefix against the bech32 rules and
// returns it lower-cased.
func normalizeHRP(hrp string) (string, error) {
	if hrp == "" {
		return "", newError(KindInvalidHRP, "prefix is empty")
	}
	if len(hrp) > maxHRPLength {
		return "", newError(KindInvalidHRP, "prefix has %d characters, max %d", len(hrp), maxHRPLength)
	}
	var hasLower, hasUpper bool
	for i := 0; i < len(hrp); i++ {
		c := hrp[i]
		if c < 33 || c > 126 {
			return "", newError(KindInvalidHRP, "prefix has invalid character %q at position %d", c, i)
		}
		hasLower = hasLower || (c >= 'a' && c <= 'z')
		hasUpper = hasUpper || (c >= 'A' && c <= 'Z')
	}
	if hasLower && hasUpper {
		return "", newError(KindInvalidHRP, "prefix %q mixes upper and lower case", hrp)
	}
	return strings.ToLower(hrp), nil
}
