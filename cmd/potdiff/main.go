// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// potdiff is a small command-line front end over the difficulty retargeting
// engine. Given a JSON dump of a header chain, it selects network
// parameters, computes the compact difficulty a candidate block built on top
// of the dump's tip must satisfy, and prints it.
package main

import (
	"fmt"
	"os"

	"github.com/potcoin-dev/potd/blockchain"
	"github.com/potcoin-dev/potd/chaincfg"
)

func main() {
	if err := realMain(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func realMain() error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	if err := initLogRotator(cfg.LogFile); err != nil {
		return fmt.Errorf("initializing log rotator: %w", err)
	}
	level := "info"
	if cfg.Debug {
		level = "debug"
	}
	setLogLevels(level)

	network, err := chaincfg.NetworkFromString(cfg.Network)
	if err != nil {
		return err
	}
	params, err := paramsForFlag(network)
	if err != nil {
		return err
	}
	if err := chaincfg.SelectParams(network); err != nil {
		return fmt.Errorf("selecting network parameters: %w", err)
	}

	chain, err := loadHeaderChain(cfg.HeaderFile)
	if err != nil {
		return fmt.Errorf("loading header dump: %w", err)
	}
	tip := &chain[len(chain)-1]

	candidateTime := tip.Timestamp() + params.BitcoinTargetSpacing
	bits, err := blockchain.NextWorkRequired(tip, candidateTime, params)
	if err != nil {
		return fmt.Errorf("computing next work required: %w", err)
	}

	log.Infof("tip height %d, next required bits %08x", tip.Height(), uint32(bits))
	fmt.Printf("%08x\n", uint32(bits))
	return nil
}

// paramsForFlag resolves the chaincfg.ConsensusParams for the network named
// on the command line by calling the per-network constructor directly
// rather than reading the process-wide latch. realMain still calls
// chaincfg.SelectParams afterwards, so a second realMain in the same process
// fails with chaincfg.ErrParamsAlreadySet.
func paramsForFlag(network chaincfg.Network) (*chaincfg.ConsensusParams, error) {
	switch network {
	case chaincfg.Main:
		return chaincfg.MainNetParams(), nil
	case chaincfg.Test:
		return chaincfg.TestNetParams(), nil
	case chaincfg.Regtest:
		return chaincfg.RegNetParams(), nil
	default:
		return nil, chaincfg.ErrUnknownNetwork
	}
}
