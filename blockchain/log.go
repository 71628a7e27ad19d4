// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import "github.com/decred/slog"

// log is the package-level logger used throughout this package. It defaults
// to a disabled backend so importing this package has no logging side
// effects until a caller wires one in with UseLogger, matching the rest of
// this lineage's packages.
var log = slog.Disabled

// UseLogger uses a specified Logger to output package logging info.
func UseLogger(logger slog.Logger) {
	log = logger
}
