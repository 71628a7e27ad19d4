// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainhash provides the 32-byte block/hash type shared across the
// engine. It is trimmed to the subset the difficulty retargeting engine
// needs (proof-of-work verification against a candidate block hash); the
// rest of the teacher's chainhash package (double-SHA256 helpers, HMAC
// utilities used for wire serialization) belongs to the networking and
// serialization surface this module does not implement.
package chainhash

import (
	"encoding/hex"
	"fmt"
)

// HashSize is the size, in bytes, of a hash used by this engine.
const HashSize = 32

// ErrHashStrSize describes an error that indicates the caller specified a
// hash string that does not have the right number of characters.
var ErrHashStrSize = fmt.Errorf("max hash string length is %v bytes", HashSize*2)

// Hash is used to hold the 256-bit hash of a candidate block.
type Hash [HashSize]byte

// String returns the Hash as the hexadecimal string of the byte-reversed
// hash, matching the convention used to display block hashes.
func (h Hash) String() string {
	var reversed Hash
	for i, b := range h[:HashSize/2] {
		reversed[i], reversed[HashSize-1-i] = h[HashSize-1-i], b
	}
	return hex.EncodeToString(reversed[:])
}

// IsEqual returns true if target is the same as the hash.
func (h *Hash) IsEqual(target *Hash) bool {
	if h == nil && target == nil {
		return true
	}
	if h == nil || target == nil {
		return false
	}
	return *h == *target
}

// SetBytes sets the bytes which represent the hash. An error is returned if
// the number of bytes passed in is not HashSize.
func (h *Hash) SetBytes(newHash []byte) error {
	if len(newHash) != HashSize {
		return fmt.Errorf("invalid hash length of %v, want %v", len(newHash),
			HashSize)
	}
	copy(h[:], newHash)
	return nil
}

// NewHash returns a new Hash from a byte slice.
func NewHash(newHash []byte) (*Hash, error) {
	var h Hash
	if err := h.SetBytes(newHash); err != nil {
		return nil, err
	}
	return &h, nil
}

// NewHashFromStr creates a Hash from a hash string. The string should be the
// hexadecimal string of a byte-reversed hash, but any missing characters
// result in zero padding at the end of the Hash.
func NewHashFromStr(hash string) (*Hash, error) {
	ret := new(Hash)
	err := Decode(ret, hash)
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// Decode decodes the byte-reversed hexadecimal string encoding of a Hash to
// a destination.
func Decode(dst *Hash, src string) error {
	if len(src) > HashSize*2 {
		return ErrHashStrSize
	}

	srcBytes, err := hex.DecodeString(src)
	if err != nil {
		return err
	}

	var reversedHash Hash
	copy(reversedHash[HashSize-len(srcBytes):], srcBytes)

	for i, b := range reversedHash[:HashSize/2] {
		dst[i], dst[HashSize-1-i] = reversedHash[HashSize-1-i], b
	}
	return nil
}
