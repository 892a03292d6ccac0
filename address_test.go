// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package noir

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/matryer/is"
	"github.com/mr-tron/base58"
)

func pubFromPriv(t *testing.T, privHex string) []byte {
	t.Helper()
	b, err := hex.DecodeString(privHex)
	if err != nil {
		t.Fatal(err)
	}
	_, pub := btcec.PrivKeyFromBytes(b)
	return pub.SerializeCompressed()
}

const (
	privOne     = "0000000000000000000000000000000000000000000000000000000000000001"
	privHardhat = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
)

func TestBitcoinAddress_Vectors(t *testing.T) {
	is := is.New(t)

	pub := pubFromPriv(t, privOne)
	addr, err := BitcoinAddress(pub, nil)
	is.NoErr(err)
	is.Equal(addr, "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH")

	// Every encoding of the point gives the compressed-key address.
	key, err := parsePublicKey(pub)
	is.NoErr(err)
	for _, enc := range [][]byte{key.SerializeUncompressed(), key.SerializeUncompressed()[1:]} {
		other, err := BitcoinAddress(enc, &chaincfg.MainNetParams)
		is.NoErr(err)
		is.Equal(other, addr)
	}

	test, err := BitcoinAddress(pub, &chaincfg.TestNet3Params)
	is.NoErr(err)
	is.True(strings.HasPrefix(test, "m") || strings.HasPrefix(test, "n"))
}

func TestBitcoinAddress_Format(t *testing.T) {
	is := is.New(t)

	pub := pubFromPriv(t, privHardhat)
	addr, err := BitcoinAddress(pub, nil)
	is.NoErr(err)

	for _, r := range addr {
		is.True(strings.ContainsRune("123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz", r))
	}

	raw, err := base58.Decode(addr)
	is.NoErr(err)
	is.Equal(len(raw), 25)
	is.Equal(raw[0], chaincfg.MainNetParams.PubKeyHashAddrID)
	is.Equal(raw[1:21], btcutil.Hash160(pub))

	decoded, err := btcutil.DecodeAddress(addr, &chaincfg.MainNetParams)
	is.NoErr(err)
	pkh, ok := decoded.(*btcutil.AddressPubKeyHash)
	is.True(ok)
	is.Equal(pkh.ScriptAddress(), btcutil.Hash160(pub))
}

func TestEthereumAddress_Vectors(t *testing.T) {
	cases := map[string]string{
		privOne:     "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf",
		privHardhat: "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
	}
	for priv, want := range cases {
		t.Run(want, func(t *testing.T) {
			is := is.New(t)
			pub := pubFromPriv(t, priv)

			addr, err := EthereumAddress(pub)
			is.NoErr(err)
			is.Equal(addr, want)
			is.Equal(len(addr), 42)
			is.Equal(addr, common.HexToAddress(addr).Hex())
		})
	}
}

func TestEthereumAddress_ChecksumCasing(t *testing.T) {
	is := is.New(t)

	pub := pubFromPriv(t, privHardhat)
	addr, err := EthereumAddress(pub)
	is.NoErr(err)

	lower := strings.ToLower(addr[2:])
	hash := keccak256([]byte(lower))
	for i, c := range addr[2:] {
		nibble := hash[i/2] >> 4
		if i%2 == 1 {
			nibble = hash[i/2] & 0x0f
		}
		switch {
		case c >= '0' && c <= '9':
		case nibble >= 8:
			is.True(c >= 'A' && c <= 'F')
		default:
			is.True(c >= 'a' && c <= 'f')
		}
	}
}

// TestEthereumAddress_MatchesGoEthereum compares random keys against
// go-ethereum's own pubkey to address path.
func TestEthereumAddress_MatchesGoEthereum(t *testing.T) {
	is := is.New(t)

	for i := 0; i < 200; i++ {
		seed := make([]byte, 32)
		_, err := rand.Read(seed)
		is.NoErr(err)
		priv, pub := btcec.PrivKeyFromBytes(seed)

		want := crypto.PubkeyToAddress(*priv.PubKey().ToECDSA()).Hex()
		got, err := EthereumAddress(pub.SerializeCompressed())
		is.NoErr(err)
		is.Equal(got, want)

		evmos, err := EvmosAddress(pub.SerializeUncompressed(), "evmos")
		is.NoErr(err)
		_, data, err := bech32.Decode(evmos)
		is.NoErr(err)
		payload, err := bech32.ConvertBits(data, 5, 8, false)
		is.NoErr(err)
		is.Equal(common.BytesToAddress(payload).Hex(), want)
	}
}

func TestBech32Addresses_Payloads(t *testing.T) {
	is := is.New(t)

	pub := pubFromPriv(t, privHardhat)

	cosmos, err := CosmosAddress(pub, "cosmos")
	is.NoErr(err)
	evmos, err := EvmosAddress(pub, "evmos")
	is.NoErr(err)
	eth, err := EthereumAddress(pub)
	is.NoErr(err)

	is.True(strings.HasPrefix(cosmos, "cosmos1"))
	is.True(strings.HasPrefix(evmos, "evmos1"))

	hrp, data, err := bech32.Decode(cosmos)
	is.NoErr(err)
	is.Equal(hrp, "cosmos")
	cosmosPayload, err := bech32.ConvertBits(data, 5, 8, false)
	is.NoErr(err)
	is.Equal(cosmosPayload, btcutil.Hash160(pub))

	hrp, data, err = bech32.Decode(evmos)
	is.NoErr(err)
	is.Equal(hrp, "evmos")
	evmosPayload, err := bech32.ConvertBits(data, 5, 8, false)
	is.NoErr(err)
	is.Equal(evmosPayload, common.HexToAddress(eth).Bytes())
	is.True(string(evmosPayload) != string(cosmosPayload))
}

func TestBech32Addresses_SameHRPDifferentPayload(t *testing.T) {
	is := is.New(t)

	pub := pubFromPriv(t, privOne)
	cosmos, err := CosmosAddress(pub, "evmos")
	is.NoErr(err)
	evmos, err := EvmosAddress(pub, "evmos")
	is.NoErr(err)
	is.True(cosmos != evmos)
}

func TestBech32Addresses_HRP(t *testing.T) {
	pub := pubFromPriv(t, privOne)

	t.Run("upper case is normalized", func(t *testing.T) {
		is := is.New(t)
		upper, err := CosmosAddress(pub, "COSMOS")
		is.NoErr(err)
		lower, err := CosmosAddress(pub, "cosmos")
		is.NoErr(err)
		is.Equal(upper, lower)
	})

	invalid := map[string]string{
		"empty":     "",
		"space":     "cos mos",
		"mixed":     "CosMos",
		"non-ascii": "cösmos",
		"control":   "cos\x7fmos",
		"too long":  strings.Repeat("a", maxHRPLength+1),
	}
	for name, hrp := range invalid {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)
			_, err := CosmosAddress(pub, hrp)
			is.True(errors.Is(err, ErrInvalidHRP))
			_, err = EvmosAddress(pub, hrp)
			is.True(errors.Is(err, ErrInvalidHRP))
		})
	}
}

// TestBech32Addresses_LengthLimit keeps every address decodable: a 20-byte
// payload leaves room for at most 51 prefix characters.
func TestBech32Addresses_LengthLimit(t *testing.T) {
	is := is.New(t)

	pub := pubFromPriv(t, privHardhat)

	longest := strings.Repeat("a", 51)
	for _, encode := range []func([]byte, string) (string, error){CosmosAddress, EvmosAddress} {
		addr, err := encode(pub, longest)
		is.NoErr(err)
		is.Equal(len(addr), 90)
		hrp, _, err := bech32.Decode(addr)
		is.NoErr(err)
		is.Equal(hrp, longest)

		for _, n := range []int{52, maxHRPLength} {
			_, err = encode(pub, strings.Repeat("a", n))
			is.Equal(KindOf(err), KindInvalidHRP)
		}
	}
}

func TestChain_Encode(t *testing.T) {
	is := is.New(t)

	pub := pubFromPriv(t, privHardhat)
	p := AddressParams{CosmosHRP: "cosmos", EvmosHRP: "evmos"}

	btc, _ := BitcoinAddress(pub, nil)
	eth, _ := EthereumAddress(pub)
	cosmos, _ := CosmosAddress(pub, "cosmos")
	evmos, _ := EvmosAddress(pub, "evmos")
	want := map[Chain]string{ChainBitcoin: btc, ChainEthereum: eth, ChainCosmos: cosmos, ChainEvmos: evmos}

	for _, c := range Chains {
		got, err := c.Encode(pub, p)
		is.NoErr(err)
		is.Equal(got, want[c])
	}

	_, err := Chain(42).Encode(pub, p)
	is.True(err != nil)
	is.Equal(Chain(42).String(), "Chain(42)")
	is.Equal(ChainEvmos.String(), "evmos")
}

func TestEncoders_InvalidPublicKey(t *testing.T) {
	is := is.New(t)

	p := AddressParams{CosmosHRP: "cosmos", EvmosHRP: "evmos"}
	for _, pub := range [][]byte{nil, make([]byte, 20), make([]byte, 33), make([]byte, 65)} {
		for _, c := range Chains {
			_, err := c.Encode(pub, p)
			is.Equal(KindOf(err), KindInvalidPublicKey)
		}
	}
}
