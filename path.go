// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package noir

import (
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// MaxIndex is the largest child index a path step may carry; the top bit of
// the 32-bit BIP32 index is reserved for the hardened flag.
const MaxIndex = hdkeychain.HardenedKeyStart - 1

// PathStep is one level of a derivation path.
type PathStep struct {
	Index    uint32
	Hardened bool
}

// ChildIndex is the BIP32 index with the hardened bit applied.
func (s PathStep) ChildIndex() uint32 {
	if s.Hardened {
		return s.Index + hdkeychain.HardenedKeyStart
	}
	return s.Index
}

func (s PathStep) String() string {
	if s.Hardened {
		return strconv.FormatUint(uint64(s.Index), 10) + "'"
	}
	return strconv.FormatUint(uint64(s.Index), 10)
}

// DerivationPath is an ordered list of steps from the master key. The empty
// path is the master key itself.
type DerivationPath []PathStep

// String renders the path in the conventional m/44'/60'/0'/0/0 form.
func (p DerivationPath) String() string {
	var b strings.Builder
	b.WriteString("m")
	for _, s := range p {
		b.WriteByte('/')
		b.WriteString(s.String())
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler.
func (p DerivationPath) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// hardenedMarkers are the suffixes accepted for a hardened step. The
// typographic variants show up when paths are pasted from documents.
var hardenedMarkers = []string{"'", "h", "H", "’", "′"}

// ParsePath parses a derivation path. Steps are separated by "/" or ".",
// never both, and an optional leading "m" names the master key:
//
//	m/44'/60'/0'/0/0
//	44'.118'.0'.0.0
//	m/84h/0h/0h
//	m
//
// A step is a decimal index below 2^31 followed by an optional hardened
// marker (', h, H, ’ or ′).
func ParsePath(s string) (DerivationPath, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, newError(KindInvalidPath, "empty path")
	}

	hasSlash := strings.Contains(s, "/")
	hasDot := strings.Contains(s, ".")
	if hasSlash && hasDot {
		return nil, newError(KindInvalidPath, "path %q mixes '/' and '.' separators", s)
	}
	sep := "/"
	if hasDot {
		sep = "."
	}

	segments := strings.Split(s, sep)
	if segments[0] == "m" || segments[0] == "M" {
		segments = segments[1:]
	}

	path := make(DerivationPath, 0, len(segments))
	for i, seg := range segments {
		step, err := parseStep(seg)
		if err != nil {
			err.Step = i + 1
			return nil, err
		}
		path = append(path, step)
	}
	return path, nil
}

func parseStep(seg string) (PathStep, *Error) {
	var step PathStep
	for _, marker := range hardenedMarkers {
		if strings.HasSuffix(seg, marker) {
			seg = strings.TrimSuffix(seg, marker)
			step.Hardened = true
			break
		}
	}
	if seg == "" {
		return step, newError(KindInvalidPath, "empty index")
	}
	for _, r := range seg {
		if r < '0' || r > '9' {
			return step, newError(KindInvalidPath, "index %q is not a decimal number", seg)
		}
	}
	n, err := strconv.ParseUint(seg, 10, 32)
	if err != nil || n > MaxIndex {
		return step, newError(KindInvalidPath, "index %s out of range (max %d)", seg, MaxIndex)
	}
	step.Index = uint32(n)
	return step, nil
}
