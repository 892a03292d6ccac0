// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package noir

import (
	"errors"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

// ExtendedKey is a node of the BIP32 tree: a private key, its chain code,
// and the depth, parent fingerprint and index that place it in the tree.
type ExtendedKey struct {
	key *hdkeychain.ExtendedKey
	net *chaincfg.Params
}

// NewMasterKey derives the root of the tree from a seed using
// HMAC-SHA512 keyed with "Bitcoin seed". net only selects the version bytes
// of the xprv/xpub serialization; derivation is network independent.
//
// A seed whose left half is zero or not below the curve order is rejected
// with a KindDerivation error.
func NewMasterKey(seed []byte, net *chaincfg.Params) (*ExtendedKey, error) {
	if net == nil {
		net = &chaincfg.MainNetParams
	}
	master, err := hdkeychain.NewMaster(seed, net)
	if err != nil {
		if errors.Is(err, hdkeychain.ErrUnusableSeed) {
			return nil, wrapError(KindDerivation, err, "seed produces an invalid master key")
		}
		return nil, wrapError(KindDerivation, err, "could not create master key")
	}
	return &ExtendedKey{key: master, net: net}, nil
}

// DeriveChild derives the private child for step. Hardened steps hash
// 0x00||k||index, normal steps hash the compressed parent public key and the
// index. A child scalar that is zero or not below the curve order is
// reported as a KindDerivation error; the next index is not tried instead.
func (k *ExtendedKey) DeriveChild(step PathStep) (*ExtendedKey, error) {
	if step.Index > MaxIndex {
		return nil, newError(KindInvalidPath, "index %d out of range (max %d)", step.Index, MaxIndex)
	}
	child, err := k.key.Derive(step.ChildIndex())
	if err != nil {
		switch {
		case errors.Is(err, hdkeychain.ErrInvalidChild):
			return nil, wrapError(KindDerivation, err, "child %s is invalid", step)
		case errors.Is(err, hdkeychain.ErrDeriveHardFromPublic):
			return nil, wrapError(KindDerivation, err, "child %s needs a private parent", step)
		case errors.Is(err, hdkeychain.ErrDeriveBeyondMaxDepth):
			return nil, wrapError(KindDerivation, err, "child %s exceeds the maximum depth", step)
		}
		return nil, wrapError(KindDerivation, err, "could not derive child %s", step)
	}
	return &ExtendedKey{key: child, net: k.net}, nil
}

// DerivePath walks path from k. The first failing step aborts the walk and
// the returned *Error carries its 1-based position in Step.
func (k *ExtendedKey) DerivePath(path DerivationPath) (*ExtendedKey, error) {
	current := k
	for i, step := range path {
		child, err := current.DeriveChild(step)
		if err != nil {
			var e *Error
			if errors.As(err, &e) {
				e.Step = i + 1
			}
			return nil, err
		}
		current = child
	}
	return current, nil
}

// Depth is 0 for the master key and grows by one per derived level.
func (k *ExtendedKey) Depth() uint8 { return k.key.Depth() }

// ParentFingerprint is the first four bytes of hash160 of the parent's
// public key, or 0 for the master key.
func (k *ExtendedKey) ParentFingerprint() uint32 { return k.key.ParentFingerprint() }

// ChildIndex is the index (hardened bit included) this key was derived at.
func (k *ExtendedKey) ChildIndex() uint32 { return k.key.ChildIndex() }

// ChainCode returns a copy of the 32-byte chain code.
func (k *ExtendedKey) ChainCode() []byte {
	cc := k.key.ChainCode()
	out := make([]byte, len(cc))
	copy(out, cc)
	return out
}

// KeyPair returns the secp256k1 keypair held by this node.
func (k *ExtendedKey) KeyPair() (*KeyPair, error) {
	priv, err := k.key.ECPrivKey()
	if err != nil {
		return nil, wrapError(KindDerivation, err, "extended key has no private key")
	}
	return newKeyPair(priv), nil
}

// ExtendedPrivate serializes the node as an xprv (tprv on test networks).
func (k *ExtendedKey) ExtendedPrivate() string { return k.key.String() }

// ExtendedPublic serializes the public half of the node as an xpub.
func (k *ExtendedKey) ExtendedPublic() (string, error) {
	pub, err := k.key.Neuter()
	if err != nil {
		return "", wrapError(KindDerivation, err, "could not neuter extended key")
	}
	return pub.String(), nil
}
