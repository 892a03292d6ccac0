// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package noir

import (
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

// EthereumAddressLength is the byte length of an Ethereum account address.
const EthereumAddressLength = 20

func keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}

// ethereumPayload is the last 20 bytes of keccak256 over the 64-byte x||y
// public key. Both the Ethereum and the Evmos encodings use it.
func ethereumPayload(pub []byte) ([]byte, error) {
	key, err := parsePublicKey(pub)
	if err != nil {
		return nil, err
	}
	hash := keccak256(key.SerializeUncompressed()[1:])
	return hash[len(hash)-EthereumAddressLength:], nil
}

// EthereumAddress returns the 0x-prefixed, EIP-55 checksummed address of
// pub.
func EthereumAddress(pub []byte) (string, error) {
	payload, err := ethereumPayload(pub)
	if err != nil {
		return "", err
	}
	return common.BytesToAddress(payload).Hex(), nil
}
