// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package noir

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/mr-tron/base58"
)

// BitcoinAddress returns the legacy P2PKH address of pub: base58 of
// version || hash160(compressed pub) || checksum, where the checksum is the
// first four bytes of double SHA256 over the preceding 21 bytes. The version
// byte comes from net (0x00 on mainnet, 0x6f on testnet); a nil net means
// mainnet.
//
// Uncompressed and raw inputs are re-serialized in compressed form first, so
// every encoding of the same point yields the same address.
func BitcoinAddress(pub []byte, net *chaincfg.Params) (string, error) {
	key, err := parsePublicKey(pub)
	if err != nil {
		return "", err
	}
	if net == nil {
		net = &chaincfg.MainNetParams
	}

	hash := btcutil.Hash160(key.SerializeCompressed())

	payload := make([]byte, 0, 1+len(hash)+4)
	payload = append(payload, net.PubKeyHashAddrID)
	payload = append(payload, hash...)
	checksum := chainhash.DoubleHashB(payload)
	payload = append(payload, checksum[:4]...)

	return base58.Encode(payload), nil
}
