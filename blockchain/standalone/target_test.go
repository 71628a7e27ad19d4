// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package standalone

import (
	"math/big"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

// TestCompactRoundTrip exercises the codec round-trip invariant (spec
// invariant 1): for every value representable without loss in compact
// form, encoding then decoding reproduces the original value. The negative
// and overflow flags are covered by TestCompactToBigWithFlagsOverflow.
func TestCompactRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		bits CompactBits
	}{
		{"genesis pow_limit", 0x1e0ffff0},
		{"zero", 0},
		{"small value", 0x03123456},
		{"block 1 target", 0x1b0404cb},
	}
	for _, test := range tests {
		n := CompactToBig(test.bits)
		got := BigToCompact(n)

		// BigToCompact is only required to round-trip values that were
		// already in canonical minimal form; re-decode and compare the
		// resulting big.Int rather than the raw bits, since some inputs
		// have more than one encoding.
		gotN := CompactToBig(got)
		if gotN.Cmp(n) != 0 {
			t.Errorf("%s: round trip mismatch: got %s, want %s",
				test.name, spew.Sdump(gotN), spew.Sdump(n))
		}
	}
}

func TestCompactToBigWithFlagsOverflow(t *testing.T) {
	tests := []struct {
		name         string
		bits         CompactBits
		wantOverflow bool
		wantNegative bool
	}{
		{"genesis is in range", 0x1e0ffff0, false, false},
		{"zero mantissa never overflows", 0xff000000, false, false},
		{"exponent 35 overflows", 0x23123456, true, false},
		{"sign bit set with nonzero mantissa is negative", 0x01800001, false, true},
	}
	for _, test := range tests {
		_, negative, overflow := CompactToBigWithFlags(test.bits)
		if negative != test.wantNegative {
			t.Errorf("%s: negative = %v, want %v", test.name, negative, test.wantNegative)
		}
		if overflow != test.wantOverflow {
			t.Errorf("%s: overflow = %v, want %v", test.name, overflow, test.wantOverflow)
		}
	}
}

func TestTargetArithmetic(t *testing.T) {
	a := TargetFromUint64(100)
	b := TargetFromUint64(40)

	if got := a.MulInt64(3).DivInt64(2); got.Int().Cmp(big.NewInt(150)) != 0 {
		t.Errorf("MulInt64/DivInt64: got %s, want 150", spew.Sdump(got.Int()))
	}
	if a.Cmp(b) <= 0 {
		t.Errorf("expected a > b")
	}
	if got := a.Min(b); got.Cmp(b) != 0 {
		t.Errorf("Min: got %s, want %s", spew.Sdump(got.Int()), spew.Sdump(b.Int()))
	}
}

func TestHashToBig(t *testing.T) {
	var hash [32]byte
	hash[0] = 0x01 // little-endian lowest byte

	got := HashToBig(hash)
	if got.Int().Cmp(big.NewInt(1)) != 0 {
		t.Errorf("HashToBig: got %s, want 1", spew.Sdump(got.Int()))
	}
}
