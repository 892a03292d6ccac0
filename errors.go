// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package noir

import (
	"errors"
	"fmt"
)

// Kind classifies a failure by the pipeline stage that produced it.
type Kind int

// Failure kinds. KindUnknown is never produced by this package; it is what
// KindOf reports for foreign errors.
const (
	KindUnknown Kind = iota
	KindEntropy
	KindInvalidMnemonic
	KindInvalidPath
	KindDerivation
	KindInvalidPublicKey
	KindInvalidHRP
	KindInvalidStrength
)

var kindNames = map[Kind]string{
	KindUnknown:          "Unknown",
	KindEntropy:          "EntropyUnavailable",
	KindInvalidMnemonic:  "InvalidMnemonic",
	KindInvalidPath:      "InvalidPath",
	KindDerivation:       "DerivationFailure",
	KindInvalidPublicKey: "InvalidPublicKey",
	KindInvalidHRP:       "InvalidHrp",
	KindInvalidStrength:  "InvalidStrength",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Sentinels for errors.Is. Every *Error matches the sentinel of its kind.
var (
	ErrEntropy          = errors.New("entropy unavailable")
	ErrInvalidMnemonic  = errors.New("invalid mnemonic")
	ErrInvalidPath      = errors.New("invalid derivation path")
	ErrDerivation       = errors.New("key derivation failed")
	ErrInvalidPublicKey = errors.New("invalid public key")
	ErrInvalidHRP       = errors.New("invalid human-readable prefix")
	ErrInvalidStrength  = errors.New("invalid entropy strength")
)

var sentinels = map[Kind]error{
	KindEntropy:          ErrEntropy,
	KindInvalidMnemonic:  ErrInvalidMnemonic,
	KindInvalidPath:      ErrInvalidPath,
	KindDerivation:       ErrDerivation,
	KindInvalidPublicKey: ErrInvalidPublicKey,
	KindInvalidHRP:       ErrInvalidHRP,
	KindInvalidStrength:  ErrInvalidStrength,
}

// Error is the typed failure returned by every stage of the pipeline.
//
// Step is the 1-based position of the failing path step for KindInvalidPath
// and KindDerivation errors, and 0 otherwise.
type Error struct {
	Kind Kind
	Step int
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := sentinels[e.Kind]
	prefix := e.Kind.String()
	if msg != nil {
		prefix = msg.Error()
	}
	if e.Step > 0 {
		prefix = fmt.Sprintf("%s at step %d", prefix, e.Step)
	}
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", prefix, e.Msg, e.Err)
	case e.Msg != "":
		return fmt.Sprintf("%s: %s", prefix, e.Msg)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", prefix, e.Err)
	}
	return prefix
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	s, ok := sentinels[e.Kind]
	return ok && s == target
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func wrapError(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}
