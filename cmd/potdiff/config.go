// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
	"github.com/potcoin-dev/potd/chaincfg"
)

const (
	defaultConfigFilename = "potdiff.conf"
	defaultLogFilename    = "potdiff.log"
	defaultNetwork        = "main"
)

var (
	potdiffHomeDir    = appHomeDir()
	defaultConfigFile = filepath.Join(potdiffHomeDir, defaultConfigFilename)
	defaultLogFile    = filepath.Join(potdiffHomeDir, defaultLogFilename)
)

// config defines the configuration options for potdiff, populated from
// command-line flags in the same jessevdk/go-flags style this lineage's
// node and wallet binaries use for their own option structs.
type config struct {
	ConfigFile string `short:"C" long:"configfile" description:"Path to configuration file"`
	LogFile    string `long:"logfile" description:"Path to output log file"`
	Network    string `short:"n" long:"network" description:"Network to select parameters for (main, test, regtest)"`
	HeaderFile string `short:"f" long:"headerfile" description:"Path to a JSON-encoded header dump to compute the next work required for"`
	Debug      bool   `short:"d" long:"debug" description:"Enable debug-level logging of retarget decisions"`
}

// appHomeDir returns the default application data directory for potdiff.
func appHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".potdiff")
}

// loadConfig parses command-line flags into a config, applying defaults for
// any unset fields, and validates the selected network name.
func loadConfig() (*config, []string, error) {
	cfg := config{
		ConfigFile: defaultConfigFile,
		LogFile:    defaultLogFile,
		Network:    defaultNetwork,
	}

	parser := flags.NewParser(&cfg, flags.Default)
	remainingArgs, err := parser.Parse()
	if err != nil {
		var flagsErr *flags.Error
		if ok := asFlagsError(err, &flagsErr); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return nil, nil, err
	}

	if _, err := chaincfg.NetworkFromString(cfg.Network); err != nil {
		return nil, nil, fmt.Errorf("invalid network %q: %w", cfg.Network, err)
	}

	return &cfg, remainingArgs, nil
}

// asFlagsError reports whether err, as returned by flags.Parser.Parse, is a
// *flags.Error and, if so, stores it in target. It uses a direct type
// assertion, so a wrapped *flags.Error is not recognized.
func asFlagsError(err error, target **flags.Error) bool {
	fe, ok := err.(*flags.Error)
	if !ok {
		return false
	}
	*target = fe
	return true
}
