package main

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// PathKey is the derivation path used when --path is not given
	PathKey = "PATH"
	// HRPKey is the bech32 prefix for both bech32 addresses
	HRPKey = "HRP"
	// EvmosHRPKey overrides the prefix of the Evmos address only
	EvmosHRPKey = "EVMOS_HRP"
	// LanguageKey selects the BIP39 wordlist
	LanguageKey = "LANGUAGE"
	// WordsKey is the length of generated phrases
	WordsKey = "WORDS"
	// NetworkKey is the Bitcoin network: mainnet, testnet, signet or regtest
	NetworkKey = "NETWORK"
	// LogLevelKey is a logrus level name. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
)

var vip *viper.Viper

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("NOIR")
	vip.AutomaticEnv()

	vip.SetDefault(PathKey, "m/44'/60'/0'/0/0")
	vip.SetDefault(HRPKey, "cosmos")
	vip.SetDefault(EvmosHRPKey, "")
	vip.SetDefault(LanguageKey, "en")
	vip.SetDefault(WordsKey, 24)
	vip.SetDefault(NetworkKey, "mainnet")
	vip.SetDefault(LogLevelKey, "warn")
}

var networks = map[string]*chaincfg.Params{
	"mainnet": &chaincfg.MainNetParams,
	"testnet": &chaincfg.TestNet3Params,
	"signet":  &chaincfg.SigNetParams,
	"regtest": &chaincfg.RegressionNetParams,
}

func networkParams(name string) (*chaincfg.Params, error) {
	net, ok := networks[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown network %q (must be mainnet, testnet, signet or regtest)", name)
	}
	return net, nil
}

// wordCountToStrength maps a phrase length to its entropy size in bits.
func wordCountToStrength(words int) (int, error) {
	switch words {
	case 12, 15, 18, 21, 24:
		return words * 11 * 32 / 33, nil //nolint:mnd
	}
	return 0, fmt.Errorf("invalid word count: %d (must be 12, 15, 18, 21, or 24)", words)
}

func setupLogger() error {
	level, err := log.ParseLevel(vip.GetString(LogLevelKey))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	return nil
}
