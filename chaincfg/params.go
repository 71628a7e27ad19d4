// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg defines the chain parameters consumed by the difficulty
// retargeting engine and the process-wide, write-once selection of one of
// them, in the same style as the teacher's own chaincfg package: a tagged
// Network plus one data-only ConsensusParams value per network rather than
// the source chain's inheritance hierarchy of parameter classes.
package chaincfg

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/potcoin-dev/potd/blockchain/standalone"
)

// Network identifies one of the three chains the engine knows how to
// produce parameters for.
type Network uint8

// Available networks.
const (
	Main Network = iota
	Test
	Regtest
)

// String returns the canonical lowercase network name used by select_params.
func (n Network) String() string {
	switch n {
	case Main:
		return "main"
	case Test:
		return "test"
	case Regtest:
		return "regtest"
	default:
		return fmt.Sprintf("Network(%d)", uint8(n))
	}
}

// NetworkFromString maps a network name to its Network value. It accepts
// exactly the three names the engine supports; anything else is
// ErrUnknownNetwork.
func NetworkFromString(name string) (Network, error) {
	switch name {
	case "main":
		return Main, nil
	case "test":
		return Test, nil
	case "regtest":
		return Regtest, nil
	default:
		return 0, ErrUnknownNetwork
	}
}

// Sentinel errors for the params latch (spec §7: ParamsUninitialized,
// ParamsAlreadySet, UnknownNetwork). These are params-layer conditions, not
// per-block consensus errors, so they are plain sentinels rather than the
// blockchain package's RuleError.
var (
	// ErrParamsUninitialized is returned by Params when SelectParams has
	// never been called.
	ErrParamsUninitialized = errors.New("chaincfg: params accessed before SelectParams")

	// ErrParamsAlreadySet is returned by SelectParams on any call after the
	// first; the latch is write-once for the lifetime of the process.
	ErrParamsAlreadySet = errors.New("chaincfg: SelectParams called more than once")

	// ErrUnknownNetwork is returned when a network name or value does not
	// name one of the three supported networks.
	ErrUnknownNetwork = errors.New("chaincfg: unknown network")
)

// ConsensusParams is the immutable, per-network value object the
// difficulty engine reads. It is constructed once (by one of the
// *Params constructors below) and never mutated afterward.
type ConsensusParams struct {
	// Net and Name identify which network these parameters describe.
	Net  Network
	Name string

	// GenesisBits and GenesisTimestamp are metadata carried alongside the
	// retargeting fields for consumers such as cmd/potdiff that want to
	// print or verify against the genesis header; the algorithms
	// themselves never read them.
	GenesisBits      standalone.CompactBits
	GenesisTimestamp int64

	// PowLimit and PosLimit are the loosest (easiest) allowed targets for
	// proof-of-work and proof-of-stake blocks respectively.
	PowLimit standalone.Target
	PosLimit standalone.Target

	// Bitcoin-era classic retarget parameters.
	BitcoinStartHeight    int64
	BitcoinTargetTimespan int64
	BitcoinTargetSpacing  int64

	// Kimoto Gravity Well v1 parameters.
	KGWv1StartHeight    int64
	KGWv1TargetTimespan int64
	KGWv1TargetSpacing  int64

	// Kimoto Gravity Well v2 parameters.
	KGWv2StartHeight    int64
	KGWv2TargetTimespan int64
	KGWv2TargetSpacing  int64

	// DigiShield parameters.
	DigiShieldStartHeight    int64
	DigiShieldTargetTimespan int64
	DigiShieldTargetSpacing  int64

	// PoS (PPCoin-style) parameters.
	PosStartHeight    int64
	PosTargetTimespan int64
	PosTargetSpacing  int64
	LastPowBlock      int64

	// AllowMinDifficultyBlocks and NoRetargeting are per-network toggles;
	// regression test networks set NoRetargeting so mining never blocks on
	// retarget timing.
	AllowMinDifficultyBlocks bool
	NoRetargeting            bool
}

// activeParams is the process-wide params latch. It is an atomic.Pointer so
// concurrent readers of Params never observe a torn write, and so the
// write-once check in SelectParams needs no separate mutex.
var activeParams atomic.Pointer[ConsensusParams]

// SelectParams initializes the process-wide parameter latch for network. It
// may be called exactly once per process; subsequent calls return
// ErrParamsAlreadySet, mirroring the write-once global selection the source
// chain does via a bare package-level pointer, but made safe for concurrent
// callers.
func SelectParams(network Network) error {
	params, err := paramsForNetwork(network)
	if err != nil {
		return err
	}
	if !activeParams.CompareAndSwap(nil, params) {
		return ErrParamsAlreadySet
	}
	return nil
}

// Params returns the process-wide parameters selected by SelectParams. It
// returns ErrParamsUninitialized if SelectParams has not yet been called.
func Params() (*ConsensusParams, error) {
	p := activeParams.Load()
	if p == nil {
		return nil, ErrParamsUninitialized
	}
	return p, nil
}

// paramsForNetwork dispatches to the constructor for network.
func paramsForNetwork(network Network) (*ConsensusParams, error) {
	switch network {
	case Main:
		return MainNetParams(), nil
	case Test:
		return TestNetParams(), nil
	case Regtest:
		return RegNetParams(), nil
	default:
		return nil, ErrUnknownNetwork
	}
}

// powLimitBits is the compact encoding shared by every network's PoW and PoS
// limit: 0x0ffff0 * 256^27, which has the top 20 bits clear. It equals the
// mainnet genesis nBits, so encoding the limit reproduces 0x1e0ffff0. The
// value sits just below ~0 >> 20, whose own compact encoding is 0x1e0fffff.
var powLimitBits = standalone.CompactBits(0x1e0ffff0)

func powLimitTarget() standalone.Target {
	t, _, _ := standalone.Decode(powLimitBits)
	return t
}

// MainNetParams returns the consensus parameters for the production
// potcoin-lineage network. Values are the literal constants from the
// source chain's CMainParams constructor.
func MainNetParams() *ConsensusParams {
	return &ConsensusParams{
		Net:  Main,
		Name: "main",

		GenesisBits:      0x1e0ffff0,
		GenesisTimestamp: 1389688315,

		PowLimit: powLimitTarget(),
		PosLimit: powLimitTarget(),

		BitcoinStartHeight:    0,
		BitcoinTargetTimespan: 108 * 40,
		BitcoinTargetSpacing:  40,

		KGWv1StartHeight:    61798,
		KGWv1TargetTimespan: 108 * 40,
		KGWv1TargetSpacing:  40,

		KGWv2StartHeight:    158000,
		KGWv2TargetTimespan: 108 * 40,
		KGWv2TargetSpacing:  40,

		DigiShieldStartHeight:    280000,
		DigiShieldTargetTimespan: 40,
		DigiShieldTargetSpacing:  40,

		PosStartHeight:    974999,
		PosTargetTimespan: 40,
		PosTargetSpacing:  40,
		LastPowBlock:      974999,

		AllowMinDifficultyBlocks: false,
		NoRetargeting:            false,
	}
}

// TestNetParams returns the consensus parameters for the public test
// network. Values are the literal constants from the source chain's
// CTestNetParams constructor; note the heights and timespans mirror
// mainnet's exactly, as they do in the source.
func TestNetParams() *ConsensusParams {
	return &ConsensusParams{
		Net:  Test,
		Name: "test",

		GenesisBits:      0x1f00ffff,
		GenesisTimestamp: 1498944188,

		PowLimit: powLimitTarget(),
		PosLimit: powLimitTarget(),

		BitcoinStartHeight:    0,
		BitcoinTargetTimespan: 108 * 40,
		BitcoinTargetSpacing:  40,

		KGWv1StartHeight:    61798,
		KGWv1TargetTimespan: 108 * 40,
		KGWv1TargetSpacing:  40,

		KGWv2StartHeight:    158000,
		KGWv2TargetTimespan: 108 * 40,
		KGWv2TargetSpacing:  40,

		DigiShieldStartHeight:    280000,
		DigiShieldTargetTimespan: 40,
		DigiShieldTargetSpacing:  40,

		PosStartHeight:    974999,
		PosTargetTimespan: 40,
		PosTargetSpacing:  40,
		LastPowBlock:      974999,

		AllowMinDifficultyBlocks: false,
		NoRetargeting:            false,
	}
}

// RegNetParams returns the consensus parameters for the local regression
// test network. Values are the literal constants from the source chain's
// CRegTestParams constructor; NoRetargeting is set, matching
// fPowNoRetargeting = true in the source, so miners never stall waiting for
// a retarget boundary.
func RegNetParams() *ConsensusParams {
	return &ConsensusParams{
		Net:  Regtest,
		Name: "regtest",

		GenesisBits:      0x1e0fffff,
		GenesisTimestamp: 1411111111,

		PowLimit: powLimitTarget(),
		PosLimit: powLimitTarget(),

		BitcoinStartHeight:    0,
		BitcoinTargetTimespan: 108 * 40,
		BitcoinTargetSpacing:  40,

		KGWv1StartHeight:    61798,
		KGWv1TargetTimespan: 108 * 40,
		KGWv1TargetSpacing:  40,

		KGWv2StartHeight:    158000,
		KGWv2TargetTimespan: 108 * 40,
		KGWv2TargetSpacing:  40,

		DigiShieldStartHeight:    280000,
		DigiShieldTargetTimespan: 40,
		DigiShieldTargetSpacing:  40,

		PosStartHeight:    974999,
		PosTargetTimespan: 40,
		PosTargetSpacing:  40,
		LastPowBlock:      974999,

		AllowMinDifficultyBlocks: true,
		NoRetargeting:            true,
	}
}
