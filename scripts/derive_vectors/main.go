// derive_vectors prints the addresses of a BIP39 mnemonic at the common
// BIP44 paths, for comparing against other wallets.
//
// Usage:
//
//	go run ./scripts/derive_vectors "your 24 word seed phrase here"
//
// Or with stdin:
//
//	echo "your 24 word seed phrase" | go run ./scripts/derive_vectors
//
// Note: Bitcoin wallets use coin type 0, Ethereum and Evmos wallets 60 and
// Cosmos Hub wallets 118. Every path prints all four encodings of its key,
// so only the row matching the wallet's coin type will agree with it.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/complex-gh/noir"
)

var paths = []struct {
	path string
	hrp  string
}{
	{"m/44'/0'/0'/0/0", "cosmos"},
	{"m/44'/60'/0'/0/0", "evmos"},
	{"m/44'/118'/0'/0/0", "cosmos"},
}

func main() {
	var mnemonic string

	if len(os.Args) > 1 {
		mnemonic = strings.Join(os.Args[1:], " ")
	} else {
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			mnemonic = strings.TrimSpace(scanner.Text())
		}
	}

	if mnemonic == "" {
		fmt.Fprintln(os.Stderr, "Usage: derive_vectors \"24 word seed phrase\"")
		fmt.Fprintln(os.Stderr, "   or: echo \"seed phrase\" | derive_vectors")
		os.Exit(1)
	}

	for _, p := range paths {
		d, err := noir.Derive(mnemonic, p.path, p.hrp)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(d.Path)
		for _, c := range noir.Chains {
			fmt.Printf("  %-8s %s\n", c, d.Address(c))
		}
		d.Wipe()
	}
}
