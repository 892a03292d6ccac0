// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package noir

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/matryer/is"
)

func testMaster(t *testing.T, net *chaincfg.Params) *ExtendedKey {
	t.Helper()
	m, err := ParseMnemonic(abandonAbout, English)
	if err != nil {
		t.Fatal(err)
	}
	master, err := NewMasterKey(m.Seed("").Bytes(), net)
	if err != nil {
		t.Fatal(err)
	}
	return master
}

func TestNewMasterKey(t *testing.T) {
	is := is.New(t)

	master := testMaster(t, nil)
	is.Equal(master.Depth(), uint8(0))
	is.Equal(master.ParentFingerprint(), uint32(0))
	is.Equal(len(master.ChainCode()), 32)
	is.True(strings.HasPrefix(master.ExtendedPrivate(), "xprv"))

	xpub, err := master.ExtendedPublic()
	is.NoErr(err)
	is.True(strings.HasPrefix(xpub, "xpub"))

	testnet := testMaster(t, &chaincfg.TestNet3Params)
	is.True(strings.HasPrefix(testnet.ExtendedPrivate(), "tprv"))
	// The network only changes the serialization, not the key.
	kpMain, err := master.KeyPair()
	is.NoErr(err)
	kpTest, err := testnet.KeyPair()
	is.NoErr(err)
	is.Equal(kpMain.PublicKey(), kpTest.PublicKey())
}

func TestNewMasterKey_BadSeed(t *testing.T) {
	is := is.New(t)

	_, err := NewMasterKey([]byte{1, 2, 3}, nil)
	is.True(errors.Is(err, ErrDerivation))
}

func TestDeriveChild_Deterministic(t *testing.T) {
	is := is.New(t)

	master := testMaster(t, nil)
	for _, step := range []PathStep{{0, false}, {0, true}, {MaxIndex, false}, {MaxIndex, true}} {
		a, err := master.DeriveChild(step)
		is.NoErr(err)
		b, err := master.DeriveChild(step)
		is.NoErr(err)
		is.Equal(a.ExtendedPrivate(), b.ExtendedPrivate())
		is.Equal(a.ChildIndex(), step.ChildIndex())
		is.Equal(a.Depth(), uint8(1))
	}
}

func TestDeriveChild_HardenedDiverges(t *testing.T) {
	is := is.New(t)

	master := testMaster(t, nil)
	for _, i := range []uint32{0, 1, 44, 1 << 20} {
		normal, err := master.DeriveChild(PathStep{Index: i})
		is.NoErr(err)
		hardened, err := master.DeriveChild(PathStep{Index: i, Hardened: true})
		is.NoErr(err)

		kpN, err := normal.KeyPair()
		is.NoErr(err)
		kpH, err := hardened.KeyPair()
		is.NoErr(err)
		is.True(!bytes.Equal(kpN.PrivateKey(), kpH.PrivateKey()))
		is.True(!bytes.Equal(normal.ChainCode(), hardened.ChainCode()))
	}
}

func TestDeriveChild_IndexOutOfRange(t *testing.T) {
	is := is.New(t)

	master := testMaster(t, nil)
	_, err := master.DeriveChild(PathStep{Index: MaxIndex + 1})
	is.True(errors.Is(err, ErrInvalidPath))
}

func TestDerivePath_FoldsChildren(t *testing.T) {
	is := is.New(t)

	master := testMaster(t, nil)
	path, err := ParsePath("m/44'/60'/0'/0/3")
	is.NoErr(err)

	viaPath, err := master.DerivePath(path)
	is.NoErr(err)

	step := master
	for _, s := range path {
		step, err = step.DeriveChild(s)
		is.NoErr(err)
	}
	is.Equal(viaPath.ExtendedPrivate(), step.ExtendedPrivate())
	is.Equal(viaPath.Depth(), uint8(5))

	// The parent fingerprint links the child to its parent's public key.
	parent, err := master.DerivePath(path[:4])
	is.NoErr(err)
	parentKP, err := parent.KeyPair()
	is.NoErr(err)
	fp := btcutil.Hash160(parentKP.PublicKey())[:4]
	is.Equal(viaPath.ParentFingerprint(), uint32(fp[0])<<24|uint32(fp[1])<<16|uint32(fp[2])<<8|uint32(fp[3]))

	// The empty path is the master itself.
	same, err := master.DerivePath(DerivationPath{})
	is.NoErr(err)
	is.Equal(same.ExtendedPrivate(), master.ExtendedPrivate())
}

func TestDerivePath_ReportsFailingStep(t *testing.T) {
	is := is.New(t)

	master := testMaster(t, nil)
	_, err := master.DerivePath(DerivationPath{{44, true}, {0, false}, {MaxIndex + 5, false}})

	var e *Error
	is.True(errors.As(err, &e))
	is.Equal(e.Step, 3)
	is.True(strings.Contains(err.Error(), "step 3"))
}

func TestDerivePath_PathSensitivity(t *testing.T) {
	is := is.New(t)

	master := testMaster(t, nil)
	seen := map[string]string{}
	for _, p := range []string{
		"m/0", "m/1", "m/0'", "m/1'", "m/0/0", "m/0/1", "m/1/0",
		"m/44'/0'/0'/0/0", "m/44'/60'/0'/0/0", "m/44'/118'/0'/0/0", "m/44'/60'/0'/0/1",
	} {
		path, err := ParsePath(p)
		is.NoErr(err)
		node, err := master.DerivePath(path)
		is.NoErr(err)
		kp, err := node.KeyPair()
		is.NoErr(err)

		pub := string(kp.PublicKey())
		other, dup := seen[pub]
		is.True(!dup) // two paths share a key
		if dup {
			t.Logf("%s collides with %s", p, other)
		}
		seen[pub] = p
	}
}
