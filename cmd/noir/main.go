// Package main provides the noir CLI for generating mnemonics and deriving
// multi-chain addresses from them.
package main

import (
	"bufio"
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/complex-gh/noir"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-tty"
	mcobra "github.com/muesli/mango-cobra"
	"github.com/muesli/roff"
	"github.com/muesli/termenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh"
	"golang.org/x/term"
	lang "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

const (
	maxWidth = 72
)

var (
	baseStyle  = lipgloss.NewStyle().Margin(0, 0, 1, 2) //nolint:mnd
	red        = lipgloss.Color(completeColor("#FF4444", "196", "9"))
	errorStyle = baseStyle.
			Foreground(red).
			Background(lipgloss.AdaptiveColor{Light: completeColor("#FFEBEB", "255", "7"), Dark: completeColor("#2B1A1A", "235", "8")}).
			Padding(1, 2) //nolint:mnd

	fromKey        string
	seedPassphrase string
	askPassphrase  bool
	revealPrivate  bool
	jsonOutput     bool

	rootCmd = &cobra.Command{
		Use:   "noir",
		Short: "Derive Bitcoin, Ethereum, Cosmos and Evmos addresses from a seed phrase",
		Long: `Generate BIP39 seed phrases and derive addresses from them.

One phrase and one derivation path give one keypair, shown as a Bitcoin
P2PKH address, an Ethereum address, and two bech32 addresses (Cosmos and
Evmos style) sharing the same prefix.

SECURITY TIP: Add a space before the command to prevent it from being
saved in your shell history, or pipe the phrase in on stdin.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogger()
		},
	}

	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate a new seed phrase",
		Long: `Generate a new BIP39 seed phrase.

Valid word counts are: 12, 15, 18, 21, or 24.

With --from-key the phrase is derived deterministically from an ed25519
SSH key instead of fresh randomness. The key cannot be recovered from
the phrase.`,
		Example: `  noir generate
  noir generate --words 12
  noir generate --language japanese
  noir generate --from-key ~/.ssh/id_ed25519 --words 12
  noir generate --from-key ~/.ssh/id_ed25519 --seed-passphrase "my-passphrase"`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			wl, err := wordlistFor(vip.GetString(LanguageKey))
			if err != nil {
				return err
			}
			strength, err := wordCountToStrength(vip.GetInt(WordsKey))
			if err != nil {
				return err
			}

			opts := []noir.Option{
				noir.WithWordlist(wl),
				noir.WithStrength(strength),
				noir.WithLogger(log.WithField("cmd", "generate")),
			}
			if fromKey != "" {
				entropy, err := entropyFromKeyFile(fromKey, strength, seedPassphrase)
				if err != nil {
					if strings.Contains(err.Error(), "key is not password-protected") {
						return formatError(err)
					}
					return err
				}
				opts = append(opts, noir.WithRandom(bytes.NewReader(entropy)))
			}

			m, err := noir.New(opts...).Generate()
			if err != nil {
				return formatError(fmt.Errorf("could not generate seed phrase: %w", err))
			}
			fmt.Println(m.String())
			return nil
		},
	}

	deriveCmd = &cobra.Command{
		Use:   "derive [seed phrase words...]",
		Short: "Derive the keypair and addresses at a path",
		Long: `Derive the keypair at a BIP32 path and print its four addresses.

The phrase is read from the arguments, from stdin when piped, or from a
hidden prompt on the terminal.

Paths use "/" or "." between steps and ', h or H to mark hardened steps:
    m/44'/60'/0'/0/0
    44'.118'.0'.0.0

The bech32 prefix (--hrp) is used for both the Cosmos and the Evmos address
unless --evmos-hrp is given.`,
		Example: `  noir derive --path "m/44'/0'/0'/0/0"
  echo "abandon ... about" | noir derive --path 44h.118h.0h.0.0 --hrp cosmos
  noir derive --hrp evmos --json
  noir derive --hrp cosmos --evmos-hrp evmos --passphrase`,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, args []string) error {
			wl, err := wordlistFor(vip.GetString(LanguageKey))
			if err != nil {
				return err
			}
			net, err := networkParams(vip.GetString(NetworkKey))
			if err != nil {
				return err
			}

			phrase, err := readMnemonic(args)
			if err != nil {
				return err
			}

			var passphrase string
			if askPassphrase {
				pass, err := readPassword("Enter the BIP39 passphrase: ")
				_, _ = fmt.Fprintln(os.Stderr)
				if err != nil {
					return err
				}
				passphrase = string(pass)
			}

			opts := []noir.Option{
				noir.WithWordlist(wl),
				noir.WithNetwork(net),
				noir.WithPassphrase(passphrase),
				noir.WithLogger(log.WithField("cmd", "derive")),
			}
			if revealPrivate {
				opts = append(opts, noir.WithPrivateKeys())
			}

			d, err := noir.New(opts...).DeriveRequest(noir.Request{
				Mnemonic:  phrase,
				Path:      vip.GetString(PathKey),
				CosmosHRP: vip.GetString(HRPKey),
				EvmosHRP:  vip.GetString(EvmosHRPKey),
			})
			defer d.Wipe()

			if jsonOutput {
				return printResponse(os.Stdout, noir.NewResponse(d, err))
			}
			if err != nil {
				return formatError(err)
			}
			printDerivation(os.Stdout, d)
			return nil
		},
	}

	manCmd = &cobra.Command{
		Use:          "man",
		Args:         cobra.NoArgs,
		Short:        "generate man pages",
		Hidden:       true,
		SilenceUsage: true,
		RunE: func(*cobra.Command, []string) error {
			manPage, err := mcobra.NewManPage(1, rootCmd)
			if err != nil {
				//nolint: wrapcheck
				return err
			}
			manPage = manPage.WithSection("Copyright", "(C) 2025-2026 complex.\n"+
				"Released under MIT license.")
			fmt.Println(manPage.Build(roff.NewDocument()))
			return nil
		},
	}

	// completionCmd generates shell completion scripts for bash, zsh, fish, and powershell.
	completionCmd = &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion script",
		Long: `Generate shell completion script for noir.

To load completions:

Bash:
  $ source <(noir completion bash)

Zsh:
  $ noir completion zsh > "${fpath[1]}/_noir"

Fish:
  $ noir completion fish | source

PowerShell:
  PS> noir completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		SilenceUsage:          true,
		RunE: func(_ *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(os.Stdout)
			case "zsh":
				return rootCmd.GenZshCompletion(os.Stdout)
			case "fish":
				return rootCmd.GenFishCompletion(os.Stdout, true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unknown shell: %s", args[0])
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringP("language", "l", "en", "Wordlist language")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	_ = vip.BindPFlag(LanguageKey, rootCmd.PersistentFlags().Lookup("language"))
	_ = vip.BindPFlag(LogLevelKey, rootCmd.PersistentFlags().Lookup("log-level"))

	generateCmd.Flags().IntP("words", "w", 24, "Number of words (12, 15, 18, 21 or 24)") //nolint:mnd
	generateCmd.Flags().StringVar(&fromKey, "from-key", "", "Derive the phrase from an ed25519 SSH key instead of randomness")
	generateCmd.Flags().StringVar(&seedPassphrase, "seed-passphrase", "", "Passphrase to combine with the SSH key seed")
	_ = vip.BindPFlag(WordsKey, generateCmd.Flags().Lookup("words"))

	deriveCmd.Flags().String("path", "m/44'/60'/0'/0/0", "Derivation path")
	deriveCmd.Flags().String("hrp", "cosmos", "Bech32 prefix for the Cosmos and Evmos addresses")
	deriveCmd.Flags().String("evmos-hrp", "", "Bech32 prefix for the Evmos address only")
	deriveCmd.Flags().String("network", "mainnet", "Bitcoin network (mainnet, testnet, signet, regtest)")
	deriveCmd.Flags().BoolVar(&askPassphrase, "passphrase", false, "Prompt for a BIP39 passphrase")
	deriveCmd.Flags().BoolVar(&revealPrivate, "reveal-private", false, "Include the private key in the output")
	deriveCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print a {success, result, message} JSON envelope")
	_ = vip.BindPFlag(PathKey, deriveCmd.Flags().Lookup("path"))
	_ = vip.BindPFlag(HRPKey, deriveCmd.Flags().Lookup("hrp"))
	_ = vip.BindPFlag(EvmosHRPKey, deriveCmd.Flags().Lookup("evmos-hrp"))
	_ = vip.BindPFlag(NetworkKey, deriveCmd.Flags().Lookup("network"))

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(deriveCmd)
	rootCmd.AddCommand(manCmd)
	rootCmd.AddCommand(completionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// readMnemonic takes the phrase from args, a piped stdin, or a hidden prompt.
func readMnemonic(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("could not read seed phrase: %w", err)
		}
		return strings.TrimSpace(line), nil
	}
	phrase, err := readPassword("Enter the seed phrase: ")
	_, _ = fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(phrase), nil
}

func printDerivation(w io.Writer, d *noir.Derivation) {
	_, _ = fmt.Fprintf(w, "[addresses at %s]\n\n", d.Path)
	for _, c := range noir.Chains {
		_, _ = fmt.Fprintf(w, "%s (%s)\n", d.Address(c), c)
	}
	_, _ = fmt.Fprintf(w, "\n[public key at %s]\n\n%s\n", d.Path, hex.EncodeToString(d.KeyPair.PublicKey()))
	if d.KeyPair.Revealable() {
		_, _ = fmt.Fprintf(w, "\n[private key at %s]\n\n%s\n", d.Path, hex.EncodeToString(d.KeyPair.PrivateKey()))
	}
}

func printResponse(w io.Writer, resp noir.Response) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		return fmt.Errorf("could not encode response: %w", err)
	}
	if !resp.Success {
		return errors.New(resp.Message)
	}
	return nil
}

// getDefaultSSHDir returns the default SSH directory for the current platform.
func getDefaultSSHDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".ssh"), nil
}

// resolveKeyPath returns path if it exists, otherwise a key of the same
// name in the default SSH directory when path is a bare file name.
func resolveKeyPath(path string) (string, error) {
	if path == "-" {
		return path, nil
	}
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	cleanedPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanedPath); dir != "." && dir != "" {
		return "", fmt.Errorf("could not open %s: %w", path, os.ErrNotExist)
	}

	sshDir, err := getDefaultSSHDir()
	if err != nil {
		return "", fmt.Errorf("could not determine SSH directory: %w", err)
	}
	defaultPath := filepath.Join(sshDir, filepath.Base(cleanedPath))
	if _, err := os.Stat(defaultPath); err == nil {
		return defaultPath, nil
	}
	return "", fmt.Errorf("could not open %s: file not found in current directory or %s", path, sshDir)
}

func openFileOrStdin(path string) (*os.File, error) {
	if path == "-" {
		return os.Stdin, nil
	}

	resolvedPath, err := resolveKeyPath(path)
	if err != nil {
		return nil, err
	}

	// G304: resolvedPath is user-provided input, which is expected for a CLI tool
	f, err := os.Open(resolvedPath) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", resolvedPath, err)
	}
	return f, nil
}

func parsePrivateKey(bts, pass []byte) (interface{}, error) {
	if len(pass) == 0 {
		//nolint: wrapcheck
		return ssh.ParseRawPrivateKey(bts)
	}
	//nolint: wrapcheck
	return ssh.ParseRawPrivateKeyWithPassphrase(bts, pass)
}

func isPasswordError(err error) bool {
	var kerr *ssh.PassphraseMissingError
	return errors.As(err, &kerr)
}

// entropyFromKeyFile reads a password-protected ed25519 SSH key and turns
// it into phrase entropy.
func entropyFromKeyFile(path string, strength int, seedPassphrase string) ([]byte, error) {
	f, err := openFileOrStdin(path)
	if err != nil {
		return nil, fmt.Errorf("could not read key: %w", err)
	}
	defer f.Close() //nolint:errcheck
	bts, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("could not read key: %w", err)
	}

	key, err := parsePrivateKey(bts, nil)
	switch {
	case err == nil:
		return nil, fmt.Errorf("key is not password-protected: keys are required to be password-protected")
	case isPasswordError(err):
		pass, err := askKeyPassphrase(path)
		if err != nil {
			return nil, err
		}
		key, err = parsePrivateKey(bts, pass)
		if err != nil {
			return nil, fmt.Errorf("could not parse key with passphrase: %w", err)
		}
	default:
		return nil, fmt.Errorf("could not parse key: %w", err)
	}

	edKey, ok := key.(*ed25519.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("unknown key type: %T", key)
	}
	log.WithField("strength", strength).Debug("deriving entropy from ssh key")
	return noir.EntropyFromKey(*edKey, strength, seedPassphrase) //nolint:wrapcheck
}

func askKeyPassphrase(path string) ([]byte, error) {
	defer fmt.Fprintf(os.Stderr, "\n")
	return readPassword(fmt.Sprintf("Enter the passphrase to unlock %q: ", path))
}

func readPassword(msg string) ([]byte, error) {
	_, _ = fmt.Fprint(os.Stderr, msg)
	t, err := tty.Open()
	if err != nil {
		return nil, fmt.Errorf("could not open tty: %w", err)
	}
	defer t.Close()                                     //nolint: errcheck
	pass, err := term.ReadPassword(int(t.Input().Fd())) //nolint: gosec
	if err != nil {
		return nil, fmt.Errorf("could not read passphrase: %w", err)
	}
	return pass, nil
}

func getWidth(maxw int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd())) //nolint: gosec
	if err != nil || w > maxw {
		return maxWidth
	}
	return w
}

func renderBlock(w io.Writer, s lipgloss.Style, width int, str string) {
	_, _ = io.WriteString(w, s.Width(width).Render(str))
	_, _ = io.WriteString(w, "\n")
}

// formatError shows err in a styled block when stdout is a terminal and
// returns it so the command exits non-zero.
func formatError(err error) error {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		b := strings.Builder{}
		w := getWidth(maxWidth)

		b.WriteRune('\n')
		renderBlock(&b, errorStyle, w, err.Error())
		b.WriteRune('\n')

		fmt.Print(b.String())
	}
	return err
}

func completeColor(truecolor, ansi256, ansi string) string {
	//nolint: exhaustive
	switch lipgloss.ColorProfile() {
	case termenv.TrueColor:
		return truecolor
	case termenv.ANSI256:
		return ansi256
	}
	return ansi
}

func sanitizeLang(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}

var wordLists = map[lang.Tag]*noir.Wordlist{
	lang.Chinese:              noir.ChineseSimplified,
	lang.SimplifiedChinese:    noir.ChineseSimplified,
	lang.TraditionalChinese:   noir.ChineseTraditional,
	lang.Czech:                noir.Czech,
	lang.AmericanEnglish:      noir.English,
	lang.BritishEnglish:       noir.English,
	lang.English:              noir.English,
	lang.French:               noir.French,
	lang.Italian:              noir.Italian,
	lang.Japanese:             noir.Japanese,
	lang.Korean:               noir.Korean,
	lang.Spanish:              noir.Spanish,
	lang.EuropeanSpanish:      noir.Spanish,
	lang.LatinAmericanSpanish: noir.Spanish,
}

// wordlistFor matches a language tag ("ja") or English name ("japanese").
func wordlistFor(language string) (*noir.Wordlist, error) {
	language = sanitizeLang(language)
	tag, _ := lang.Parse(language)
	en := display.English.Languages() // default language name matcher
	for t := range wordLists {
		if sanitizeLang(en.Name(t)) == language {
			tag = t
			break
		}
	}
	if tag == lang.Und { // Unknown language
		return nil, fmt.Errorf("language %q is not supported", language)
	}
	if wl := wordLists[tag]; wl != nil {
		return wl, nil
	}
	base, _ := tag.Base()
	if wl := wordLists[lang.Make(base.String())]; wl != nil {
		return wl, nil
	}
	return nil, fmt.Errorf("language %q is not supported", language)
}
