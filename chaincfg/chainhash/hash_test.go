// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainhash

import (
	"bytes"
	"strings"
	"testing"
)

func TestHashString(t *testing.T) {
	var hash Hash
	hash[0] = 0x01

	// hash is stored internally as little-endian; the reversed string form
	// should put that single byte at the end.
	want := strings.Repeat("00", HashSize-1) + "01"
	if got := hash.String(); got != want {
		t.Fatalf("unexpected String: got %v, want %v", got, want)
	}
}

func TestHashFromStrRoundTrip(t *testing.T) {
	const s = "0102030000000000000000000000000000000000000000000000000000000000"
	h, err := NewHashFromStr(s)
	if err != nil {
		t.Fatalf("NewHashFromStr: %v", err)
	}
	if h.String() != s {
		t.Fatalf("round trip mismatch: got %v, want %v", h.String(), s)
	}
}

func TestNewHashBadLength(t *testing.T) {
	_, err := NewHash([]byte{0x01, 0x02})
	if err == nil {
		t.Fatal("expected error for short byte slice")
	}
}

func TestSetBytes(t *testing.T) {
	buf := bytes.Repeat([]byte{0xab}, HashSize)
	var h Hash
	if err := h.SetBytes(buf); err != nil {
		t.Fatalf("SetBytes: %v", err)
	}
	if !bytes.Equal(h[:], buf) {
		t.Fatal("SetBytes did not copy bytes verbatim")
	}
}

func TestIsEqual(t *testing.T) {
	a := Hash{0x01}
	b := Hash{0x01}
	c := Hash{0x02}
	if !a.IsEqual(&b) {
		t.Fatal("expected a == b")
	}
	if a.IsEqual(&c) {
		t.Fatal("expected a != c")
	}
	var nilHash *Hash
	if !nilHash.IsEqual(nil) {
		t.Fatal("expected nil == nil")
	}
	if nilHash.IsEqual(&a) {
		t.Fatal("expected nil != a")
	}
}
