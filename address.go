// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package noir

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
)

// Chain selects one of the four address encodings. The set is closed.
type Chain int

const (
	// ChainBitcoin is a base58check P2PKH address over hash160(pubkey).
	ChainBitcoin Chain = iota
	// ChainEthereum is an EIP-55 hex address over keccak256(x||y)[12:].
	ChainEthereum
	// ChainCosmos is a bech32 address over hash160(pubkey).
	ChainCosmos
	// ChainEvmos is a bech32 address over keccak256(x||y)[12:].
	ChainEvmos
)

// Chains lists every supported chain in output order.
var Chains = []Chain{ChainBitcoin, ChainEthereum, ChainCosmos, ChainEvmos}

func (c Chain) String() string {
	switch c {
	case ChainBitcoin:
		return "bitcoin"
	case ChainEthereum:
		return "ethereum"
	case ChainCosmos:
		return "cosmos"
	case ChainEvmos:
		return "evmos"
	}
	return fmt.Sprintf("Chain(%d)", int(c))
}

// AddressParams carries the per-call inputs of the encoders that need any.
// Net defaults to Bitcoin mainnet.
type AddressParams struct {
	Net       *chaincfg.Params
	CosmosHRP string
	EvmosHRP  string
}

// Encode renders pub as an address for c.
func (c Chain) Encode(pub []byte, p AddressParams) (string, error) {
	switch c {
	case ChainBitcoin:
		return BitcoinAddress(pub, p.Net)
	case ChainEthereum:
		return EthereumAddress(pub)
	case ChainCosmos:
		return CosmosAddress(pub, p.CosmosHRP)
	case ChainEvmos:
		return EvmosAddress(pub, p.EvmosHRP)
	}
	return "", fmt.Errorf("unknown chain %d", int(c))
}
