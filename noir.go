// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

// Package noir derives multi-chain wallet addresses from a BIP39 mnemonic.
//
// A phrase is stretched into a seed, the seed into a BIP32 master key, and
// the master key is walked down a derivation path to a secp256k1 keypair.
// The keypair's public key is then rendered in four address formats:
// Bitcoin P2PKH, Ethereum (EIP-55), and two bech32 formats that share a
// human-readable prefix but differ in payload (hash160 for Cosmos, the
// Ethereum address bytes for Evmos).
//
// Nothing is signed, broadcast or stored. Every call is independent and an
// Engine can be shared between goroutines.
package noir

import (
	"crypto/rand"
	"io"

	"github.com/btcsuite/btcd/chaincfg"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Engine generates phrases and derives addresses. Configure it with New;
// it is immutable afterwards.
type Engine struct {
	rand       io.Reader
	wordlist   *Wordlist
	strength   int
	net        *chaincfg.Params
	passphrase string
	reveal     bool
	log        *log.Entry
}

// Option configures an Engine.
type Option func(*Engine)

// WithRandom sets the entropy source used by Generate. The default is
// crypto/rand.Reader.
func WithRandom(r io.Reader) Option {
	return func(e *Engine) { e.rand = r }
}

// WithWordlist sets the dictionary for generated and parsed phrases.
func WithWordlist(wl *Wordlist) Option {
	return func(e *Engine) {
		if wl != nil {
			e.wordlist = wl
		}
	}
}

// WithStrength sets the entropy size in bits for Generate.
func WithStrength(bits int) Option {
	return func(e *Engine) { e.strength = bits }
}

// WithNetwork sets the Bitcoin network used for the P2PKH version byte and
// the extended key serialization.
func WithNetwork(net *chaincfg.Params) Option {
	return func(e *Engine) {
		if net != nil {
			e.net = net
		}
	}
}

// WithPassphrase sets the optional BIP39 passphrase mixed into the seed.
func WithPassphrase(passphrase string) Option {
	return func(e *Engine) { e.passphrase = passphrase }
}

// WithPrivateKeys marks derived keypairs as revealable, so their private
// scalar is included when a Derivation is marshaled. Without it only public
// material leaves the process through JSON.
func WithPrivateKeys() Option {
	return func(e *Engine) { e.reveal = true }
}

// WithLogger sets the logger for stage-level debug messages. Phrases,
// seeds and keys are never logged.
func WithLogger(l *log.Entry) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New returns an Engine using crypto/rand, the English wordlist, 256-bit
// phrases and Bitcoin mainnet unless overridden.
func New(opts ...Option) *Engine {
	e := &Engine{
		rand:     rand.Reader,
		wordlist: English,
		strength: DefaultStrength,
		net:      &chaincfg.MainNetParams,
		log:      log.NewEntry(log.StandardLogger()),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Generate returns a fresh phrase from the engine's entropy source.
func (e *Engine) Generate() (*Mnemonic, error) {
	m, err := NewMnemonic(e.rand, e.strength, e.wordlist)
	if err != nil {
		return nil, err
	}
	e.log.WithField("words", len(m.words)).Debug("generated mnemonic")
	return m, nil
}

// Request is a derivation with separate bech32 prefixes for the Cosmos and
// Evmos encodings. An empty EvmosHRP falls back to CosmosHRP.
type Request struct {
	Mnemonic  string
	Path      string
	CosmosHRP string
	EvmosHRP  string
}

// Derivation is the result of a successful derive: the keypair at Path and
// its four addresses.
type Derivation struct {
	Path     DerivationPath `json:"path"`
	KeyPair  *KeyPair       `json:"keypair"`
	Bitcoin  string         `json:"bitcoin"`
	Ethereum string         `json:"ethereum"`
	Cosmos   string         `json:"cosmos"`
	Evmos    string         `json:"evmos"`
}

// Address returns the address for c.
func (d *Derivation) Address(c Chain) string {
	switch c {
	case ChainBitcoin:
		return d.Bitcoin
	case ChainEthereum:
		return d.Ethereum
	case ChainCosmos:
		return d.Cosmos
	case ChainEvmos:
		return d.Evmos
	}
	return ""
}

// Wipe zeroes the private scalar held by the derivation.
func (d *Derivation) Wipe() {
	if d != nil && d.KeyPair != nil {
		d.KeyPair.Wipe()
	}
}

// Derive validates mnemonic, derives the keypair at path and encodes it for
// all four chains, using hrp for both bech32 encodings. It either returns a
// complete Derivation or an *Error from the first stage that failed.
func (e *Engine) Derive(mnemonic, path, hrp string) (*Derivation, error) {
	return e.DeriveRequest(Request{Mnemonic: mnemonic, Path: path, CosmosHRP: hrp})
}

// DeriveRequest is Derive with independent bech32 prefixes.
func (e *Engine) DeriveRequest(req Request) (*Derivation, error) {
	m, err := ParseMnemonic(req.Mnemonic, e.wordlist)
	if err != nil {
		return nil, err
	}
	dp, err := ParsePath(req.Path)
	if err != nil {
		return nil, err
	}
	logger := e.log.WithField("path", dp.String())

	seed := m.Seed(e.passphrase)
	defer seed.Wipe()

	master, err := NewMasterKey(seed.Bytes(), e.net)
	if err != nil {
		return nil, err
	}
	node, err := master.DerivePath(dp)
	if err != nil {
		return nil, err
	}
	kp, err := node.KeyPair()
	if err != nil {
		return nil, err
	}
	kp.reveal = e.reveal
	logger.WithField("depth", node.Depth()).Debug("derived keypair")

	evmosHRP := req.EvmosHRP
	if evmosHRP == "" {
		evmosHRP = req.CosmosHRP
	}
	addrs, err := encodeAll(kp.PublicKey(), AddressParams{
		Net:       e.net,
		CosmosHRP: req.CosmosHRP,
		EvmosHRP:  evmosHRP,
	})
	if err != nil {
		kp.Wipe()
		return nil, err
	}
	logger.Debug("encoded addresses")

	return &Derivation{
		Path:     dp,
		KeyPair:  kp,
		Bitcoin:  addrs[ChainBitcoin],
		Ethereum: addrs[ChainEthereum],
		Cosmos:   addrs[ChainCosmos],
		Evmos:    addrs[ChainEvmos],
	}, nil
}

// encodeAll runs every encoder concurrently. Each goroutine writes only its
// own slot; on error the partial results are dropped.
func encodeAll(pub []byte, p AddressParams) ([]string, error) {
	out := make([]string, len(Chains))
	var eg errgroup.Group
	for _, c := range Chains {
		c := c
		eg.Go(func() error {
			addr, err := c.Encode(pub, p)
			if err != nil {
				return err
			}
			out[c] = addr
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Generate returns a 24-word English phrase from crypto/rand.
func Generate() (*Mnemonic, error) {
	return New().Generate()
}

// Derive runs Engine.Derive on a default engine.
func Derive(mnemonic, path, hrp string) (*Derivation, error) {
	return New().Derive(mnemonic, path, hrp)
}
