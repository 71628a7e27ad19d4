// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import "github.com/potcoin-dev/potd/blockchain/standalone"

// HeaderCtx is a read-only view of one indexed block header plus a way to
// reach its predecessor. The engine walks chains exclusively through this
// interface rather than holding direct references into a host node's block
// index, mirroring the predecessor-pointer walks the source performs over
// CBlockIndex but without requiring the engine to own or construct that
// index itself.
//
// Parent returns nil once the walk reaches the header before genesis.
type HeaderCtx interface {
	// Height is the header's height in the chain, with genesis at 0.
	Height() int64

	// Timestamp is the header's timestamp, in seconds since the Unix
	// epoch. It is not guaranteed to be greater than the parent's
	// timestamp.
	Timestamp() int64

	// Bits is the header's compact-encoded difficulty target.
	Bits() standalone.CompactBits

	// IsProofOfStake reports whether the header was produced under
	// proof-of-stake rules.
	IsProofOfStake() bool

	// Parent returns the preceding header, or nil if this header is the
	// genesis block.
	Parent() HeaderCtx
}

// walkBack returns the HeaderCtx n steps behind from, or nil along with
// false if the walk runs off the front of the chain before n steps are
// taken.
func walkBack(from HeaderCtx, n int64) (HeaderCtx, bool) {
	h := from
	for i := int64(0); i < n; i++ {
		if h == nil {
			return nil, false
		}
		h = h.Parent()
	}
	return h, h != nil
}

// lastBlockOfKind walks backward from tip (inclusive) to the nearest header
// for which isPOS matches wantPOS. It returns nil if no such header exists
// before the walk runs off the front of the chain. This is the engine's
// equivalent of the source's GetLastBlockIndex helper used by the PoS
// retarget to locate the most recent proof-of-stake ancestor.
func lastBlockOfKind(tip HeaderCtx, wantPOS bool) HeaderCtx {
	for h := tip; h != nil; h = h.Parent() {
		if h.IsProofOfStake() == wantPOS {
			return h
		}
	}
	return nil
}
