// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package noir

import (
	"fmt"

	"github.com/tyler-smith/go-bip39/wordlists"
	"golang.org/x/text/unicode/norm"
)

// Wordlist is an immutable 2048-word BIP39 dictionary.
type Wordlist struct {
	name      string
	words     []string
	separator string
	index     map[string]int
}

// Predefined wordlists. They are built once at package init and never
// modified afterwards, so they are safe to share between goroutines.
var (
	English            = mustWordlist("english", wordlists.English, " ")
	Japanese           = mustWordlist("japanese", wordlists.Japanese, "　")
	Spanish            = mustWordlist("spanish", wordlists.Spanish, " ")
	French             = mustWordlist("french", wordlists.French, " ")
	Italian            = mustWordlist("italian", wordlists.Italian, " ")
	Korean             = mustWordlist("korean", wordlists.Korean, " ")
	Czech              = mustWordlist("czech", wordlists.Czech, " ")
	ChineseSimplified  = mustWordlist("chinese_simplified", wordlists.ChineseSimplified, " ")
	ChineseTraditional = mustWordlist("chinese_traditional", wordlists.ChineseTraditional, " ")
)

// NewWordlist builds a wordlist from 2048 unique words. Words are compared
// in NFKD form, so accented and composed inputs match either way.
func NewWordlist(name string, words []string, separator string) (*Wordlist, error) {
	if len(words) != 2048 {
		return nil, fmt.Errorf("wordlist %q has %d words, want 2048", name, len(words))
	}
	if separator == "" {
		separator = " "
	}
	index := make(map[string]int, len(words))
	for i, w := range words {
		key := norm.NFKD.String(w)
		if _, dup := index[key]; dup {
			return nil, fmt.Errorf("wordlist %q has duplicate word %q", name, w)
		}
		index[key] = i
	}
	list := make([]string, len(words))
	copy(list, words)
	return &Wordlist{name: name, words: list, separator: separator, index: index}, nil
}

func mustWordlist(name string, words []string, separator string) *Wordlist {
	wl, err := NewWordlist(name, words, separator)
	if err != nil {
		panic(err)
	}
	return wl
}

// Name returns the wordlist's language name.
func (wl *Wordlist) Name() string { return wl.name }

// Separator is the string placed between words when a phrase is rendered.
func (wl *Wordlist) Separator() string { return wl.separator }

// Word returns the word at index i.
func (wl *Wordlist) Word(i int) string { return wl.words[i] }

// Index returns the position of word in the list.
func (wl *Wordlist) Index(word string) (int, bool) {
	i, ok := wl.index[norm.NFKD.String(word)]
	return i, ok
}
