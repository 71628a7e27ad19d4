// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/potcoin-dev/potd/blockchain"
	"github.com/potcoin-dev/potd/blockchain/standalone"
)

// jsonHeader is the on-disk representation of a single header in a header
// dump file, genesis first. It intentionally carries only the fields the
// retargeting engine reads through blockchain.HeaderCtx.
type jsonHeader struct {
	Height int64  `json:"height"`
	Time   int64  `json:"time"`
	Bits   string `json:"bits"`
	Pos    bool   `json:"pos"`
	Hash   string `json:"hash,omitempty"`
}

// chainHeader is a blockchain.HeaderCtx backed by a slice position, so the
// whole dump can be loaded and linked without per-node heap allocation of
// parent pointers.
type chainHeader struct {
	height int64
	time   int64
	bits   standalone.CompactBits
	pos    bool
	hash   string
	chain  []chainHeader
	index  int
}

func (h *chainHeader) Height() int64               { return h.height }
func (h *chainHeader) Timestamp() int64            { return h.time }
func (h *chainHeader) Bits() standalone.CompactBits { return h.bits }
func (h *chainHeader) IsProofOfStake() bool         { return h.pos }

// Parent returns the preceding header in the dump, or nil if h is genesis.
func (h *chainHeader) Parent() blockchain.HeaderCtx {
	if h.index == 0 {
		return nil
	}
	return &h.chain[h.index-1]
}

// loadHeaderChain reads a JSON header dump from path and returns the fully
// linked chain; its last element is the tip. The file must list headers in
// ascending height order starting from genesis.
func loadHeaderChain(path string) ([]chainHeader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var raw []jsonHeader
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing header dump: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("header dump %q is empty", path)
	}

	chain := make([]chainHeader, len(raw))
	for i, jh := range raw {
		bits, err := strconv.ParseUint(jh.Bits, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("header at index %d: invalid bits %q: %w", i, jh.Bits, err)
		}
		chain[i] = chainHeader{
			height: jh.Height,
			time:   jh.Time,
			bits:   standalone.CompactBits(bits),
			pos:    jh.Pos,
			hash:   jh.Hash,
			index:  i,
		}
	}
	// Give every entry access to the full backing slice so Parent can
	// index into it; this must happen after the slice stops growing.
	for i := range chain {
		chain[i].chain = chain
	}
	return chain, nil
}
