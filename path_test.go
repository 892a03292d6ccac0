// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package noir

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestParsePath_Valid(t *testing.T) {
	bip44 := DerivationPath{{44, true}, {60, true}, {0, true}, {0, false}, {0, false}}

	cases := []struct {
		in   string
		want DerivationPath
	}{
		{"m", DerivationPath{}},
		{"M", DerivationPath{}},
		{"m/0", DerivationPath{{0, false}}},
		{"m/44'/60'/0'/0/0", bip44},
		{"44'/60'/0'/0/0", bip44},
		{"m/44h/60h/0h/0/0", bip44},
		{"m/44H/60H/0H/0/0", bip44},
		{"m/44’/60’/0’/0/0", bip44},
		{"m/44′/60′/0′/0/0", bip44},
		{"44'.60'.0'.0.0", bip44},
		{"m.44'.60'.0'.0.0", bip44},
		{"44.60.0.0.0", DerivationPath{{44, false}, {60, false}, {0, false}, {0, false}, {0, false}}},
		{"  m/2147483647'  ", DerivationPath{{MaxIndex, true}}},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			is := is.New(t)
			got, err := ParsePath(c.in)
			is.NoErr(err)
			is.Equal(len(got), len(c.want))
			for i := range got {
				is.Equal(got[i], c.want[i])
			}
		})
	}
}

func TestParsePath_Invalid(t *testing.T) {
	cases := []struct {
		in   string
		step int
	}{
		{"", 0},
		{"m/", 1},
		{"m//0", 1},
		{"m/44'/x/0", 2},
		{"m/-1", 1},
		{"m/+1", 1},
		{"m/1.5", 0},
		{"m/44'/2147483648", 2},
		{"m/99999999999999999999", 1},
		{"m/0''", 1},
		{"m/'", 1},
		{"44.60.", 3},
		{"m/0/0 /0", 2},
		{"m/0/0/ 0", 3},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			is := is.New(t)
			_, err := ParsePath(c.in)
			is.True(errors.Is(err, ErrInvalidPath))

			var e *Error
			is.True(errors.As(err, &e))
			is.Equal(e.Step, c.step)
		})
	}
}

func TestDerivationPath_String(t *testing.T) {
	is := is.New(t)

	p, err := ParsePath("44h.118h.0h.0.7")
	is.NoErr(err)
	is.Equal(p.String(), "m/44'/118'/0'/0/7")

	text, err := p.MarshalText()
	is.NoErr(err)
	is.Equal(string(text), "m/44'/118'/0'/0/7")

	is.Equal(DerivationPath{}.String(), "m")

	round, err := ParsePath(p.String())
	is.NoErr(err)
	is.Equal(round, p)
}

func TestPathStep_ChildIndex(t *testing.T) {
	is := is.New(t)
	is.Equal(PathStep{Index: 44, Hardened: true}.ChildIndex(), uint32(0x8000002c))
	is.Equal(PathStep{Index: 7}.ChildIndex(), uint32(7))
}
