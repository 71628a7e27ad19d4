// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/decred/slog"
	"github.com/jrick/logrotate/rotator"
	"github.com/potcoin-dev/potd/blockchain"
)

// logRotator rotates potdiff's log file once it exceeds a threshold size,
// the same way this lineage's node and wallet daemons rotate their logs.
var logRotator *rotator.Rotator

// logWriter implements io.Writer so that outputted logs can be written to
// both standard output and the log rotator.
type logWriter struct{}

// Write satisfies io.Writer.
func (logWriter) Write(p []byte) (n int, err error) {
	os.Stdout.Write(p)
	logRotator.Write(p)
	return len(p), nil
}

// backendLog is the logging backend used to create all subsystem loggers.
var backendLog = slog.NewBackend(logWriter{})

// log is potdiff's own subsystem logger.
var log = backendLog.Logger("PDIF")

// initLogRotator initializes the logging rotator to write logs to logFile
// and create roll files in the same directory. It must be called before
// the package-level log rotator variable is used.
func initLogRotator(logFile string) error {
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		return err
	}
	logRotator = r
	return nil
}

// setLogLevels wires the blockchain package's own logger to this backend at
// the requested level, mirroring UseLogger callers elsewhere in this
// lineage's daemons.
func setLogLevels(levelStr string) {
	level, ok := slog.LevelFromString(levelStr)
	if !ok {
		level = slog.LevelInfo
	}
	log.SetLevel(level)

	diffLog := backendLog.Logger("DIFF")
	diffLog.SetLevel(level)
	blockchain.UseLogger(diffLog)
}
