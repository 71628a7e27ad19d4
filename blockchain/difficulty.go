// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"math"
	"math/big"

	"github.com/potcoin-dev/potd/blockchain/standalone"
	"github.com/potcoin-dev/potd/chaincfg"
	"github.com/potcoin-dev/potd/chaincfg/chainhash"
)

// Constants bounding the Kimoto Gravity Well's variable lookback window.
// PastSecondsMin and PastSecondsMax are expressed in seconds (0.01 and 0.14
// of a day) and converted to a block count via the active target spacing.
const (
	kgwPastSecondsMin = 864
	kgwPastSecondsMax = 12096
)

// posSwitchoverWindow is the number of blocks after last_pow_block during
// which the PoS retarget is pinned to pos_limit rather than computed.
const posSwitchoverWindow = 50

// posSpacingFloor and posSpacingCeil bound the observed spacing between
// consecutive proof-of-stake blocks before it feeds the PoS retarget.
const (
	posSpacingFloor = 1
	posSpacingCeil  = 2200
)

// NextWorkRequired is the engine's dispatcher: given the tip of the chain
// (nil if no block has been mined yet) and the timestamp of the candidate
// next block, it selects one of the five retargeting algorithms by the
// candidate height and returns the compact difficulty target that block
// must satisfy.
func NextWorkRequired(tip HeaderCtx, candidateTime int64, params *chaincfg.ConsensusParams) (standalone.CompactBits, error) {
	if tip == nil {
		return standalone.Encode(params.PowLimit), nil
	}

	height := tip.Height() + 1
	switch {
	case height > params.BitcoinStartHeight && height < params.KGWv1StartHeight:
		return bitcoinNextWork(tip, candidateTime, params)
	case height >= params.KGWv1StartHeight && height < params.KGWv2StartHeight:
		return kimotoGravityWell(tip, params, false)
	case height >= params.KGWv2StartHeight && height < params.DigiShieldStartHeight:
		return kimotoGravityWell(tip, params, true)
	case height >= params.DigiShieldStartHeight && height < params.PosStartHeight:
		return digiShieldNextWork(tip, candidateTime, params)
	default:
		return posNextWork(tip, params)
	}
}

// applyRetarget folds an already-clamped actual timespan into the shared
// linear retarget: new = decode(lastBits).value * actualTimespan /
// targetTimespan, saturated at limit, then re-encoded. This is the mul-then-
// div core the Bitcoin and DigiShield paths bottom out in (spec §4.4 step
// 2-4); the PoS retarget uses its own spacing-based formula.
func applyRetarget(lastBits standalone.CompactBits, actualTimespan, targetTimespan int64, limit standalone.Target) standalone.CompactBits {
	last, _, _ := standalone.Decode(lastBits)
	next := last.MulInt64(actualTimespan).DivInt64(targetTimespan)
	next = next.Min(limit)
	return standalone.Encode(next)
}

// clampSymmetric clamps actual into [target/divisor, target*multiplier],
// the Bitcoin-path clamp (divisor=4, multiplier=4 per spec §4.5).
func clampSymmetric(actual, target, divisor, multiplier int64) int64 {
	lo := target / divisor
	hi := target * multiplier
	switch {
	case actual < lo:
		return lo
	case actual > hi:
		return hi
	default:
		return actual
	}
}

// clampDigiShield applies DigiShield's asymmetric smoothed clamp (spec
// §4.6): dampen the deviation by a factor of 8, then floor it at 75% of
// target and cap it at 150%.
func clampDigiShield(actual, target int64) int64 {
	smoothed := target + (actual-target)/8
	lo := target - target/4
	hi := target + target/2
	switch {
	case smoothed < lo:
		return lo
	case smoothed > hi:
		return hi
	default:
		return smoothed
	}
}

// CalculateNextWorkRequired exposes the shared Bitcoin-path retarget for
// direct testing: given the tip of the just-closed window and the
// timestamp of the first block in that window, it computes the clamped
// linear retarget using the Bitcoin parameters.
func CalculateNextWorkRequired(tip HeaderCtx, firstBlockTime int64, params *chaincfg.ConsensusParams) standalone.CompactBits {
	actual := tip.Timestamp() - firstBlockTime
	actual = clampSymmetric(actual, params.BitcoinTargetTimespan, 4, 4)
	return applyRetarget(tip.Bits(), actual, params.BitcoinTargetTimespan, params.PowLimit)
}

// bitcoinNextWork implements the classic Bitcoin linear retarget (spec
// §4.5): difficulty only changes at interval boundaries; off-boundary
// blocks either repeat the tip's bits or, under allow_min_difficulty_blocks,
// may fall back to pow_limit.
func bitcoinNextWork(tip HeaderCtx, candidateTime int64, params *chaincfg.ConsensusParams) (standalone.CompactBits, error) {
	if params.NoRetargeting {
		return tip.Bits(), nil
	}

	interval := params.BitcoinTargetTimespan / params.BitcoinTargetSpacing
	height := tip.Height() + 1

	if height%interval != 0 {
		if params.AllowMinDifficultyBlocks {
			if candidateTime > tip.Timestamp()+2*params.BitcoinTargetSpacing {
				return standalone.Encode(params.PowLimit), nil
			}
			powLimitBits := standalone.Encode(params.PowLimit)
			h := tip
			for h.Parent() != nil && h.Height()%interval != 0 && h.Bits() == powLimitBits {
				h = h.Parent()
			}
			return h.Bits(), nil
		}
		return tip.Bits(), nil
	}

	depth := interval
	if height == interval {
		depth = interval - 1
	}
	first, ok := walkBack(tip, depth)
	if !ok {
		return 0, ruleError(ErrChainWalkTruncated,
			"bitcoin retarget: chain walk truncated before reaching the first block of the retarget window")
	}
	log.Debugf("Difficulty retarget at block height %d", height)
	return CalculateNextWorkRequired(tip, first.Timestamp(), params), nil
}

// digiShieldNextWork implements the DigiShield retarget (spec §4.6): same
// boundary/fallback structure as Bitcoin, but its own interval and an
// asymmetric smoothed clamp on the observed timespan.
func digiShieldNextWork(tip HeaderCtx, candidateTime int64, params *chaincfg.ConsensusParams) (standalone.CompactBits, error) {
	if params.NoRetargeting {
		return tip.Bits(), nil
	}

	interval := params.DigiShieldTargetTimespan / params.DigiShieldTargetSpacing
	height := tip.Height() + 1

	if height%interval != 0 {
		if params.AllowMinDifficultyBlocks {
			if candidateTime > tip.Timestamp()+2*params.DigiShieldTargetSpacing {
				return standalone.Encode(params.PowLimit), nil
			}
			powLimitBits := standalone.Encode(params.PowLimit)
			h := tip
			for h.Parent() != nil && h.Height()%interval != 0 && h.Bits() == powLimitBits {
				h = h.Parent()
			}
			return h.Bits(), nil
		}
		return tip.Bits(), nil
	}

	depth := interval
	if height == interval {
		depth = interval - 1
	}
	first, ok := walkBack(tip, depth)
	if !ok {
		return 0, ruleError(ErrChainWalkTruncated,
			"digishield retarget: chain walk truncated before reaching the first block of the retarget window")
	}

	actual := tip.Timestamp() - first.Timestamp()
	actual = clampDigiShield(actual, params.DigiShieldTargetTimespan)
	log.Debugf("Difficulty retarget at block height %d", height)
	return applyRetarget(tip.Bits(), actual, params.DigiShieldTargetTimespan, params.PowLimit), nil
}

// kimotoGravityWell implements both versions of the Kimoto Gravity Well
// variable-window weighted-average retarget (spec §4.7). The only
// behavioral difference between v1 and v2 is whether the running "latest"
// timestamp is monotonized against each visited ancestor (v2 only) and
// whether a non-positive observed timespan floors to zero (v1) or one
// (v2); both are preserved bit-for-bit here rather than unified away.
func kimotoGravityWell(tip HeaderCtx, params *chaincfg.ConsensusParams, v2 bool) (standalone.CompactBits, error) {
	if params.NoRetargeting {
		return tip.Bits(), nil
	}

	targetSpacing := params.KGWv1TargetSpacing
	if v2 {
		targetSpacing = params.KGWv2TargetSpacing
	}
	pastBlocksMin := int64(kgwPastSecondsMin) / targetSpacing
	pastBlocksMax := int64(kgwPastSecondsMax) / targetSpacing

	if tip.Height() == 0 || tip.Height() < pastBlocksMin {
		return standalone.Encode(params.PowLimit), nil
	}

	latest := tip.Timestamp()
	reading := tip
	var mass int64
	var avg, prevAvg standalone.Target
	var actual, target int64

	for i := int64(1); i <= pastBlocksMax; i++ {
		mass = i

		readingTarget, _, _ := standalone.Decode(reading.Bits())
		if i == 1 {
			avg = readingTarget
		} else {
			delta := new(big.Int).Sub(readingTarget.Int(), prevAvg.Int())
			delta.Div(delta, big.NewInt(i))
			avg = standalone.NewTarget(new(big.Int).Add(delta, prevAvg.Int()))
		}
		prevAvg = avg

		if v2 && latest < reading.Timestamp() {
			latest = reading.Timestamp()
		}

		actual = latest - reading.Timestamp()
		if v2 {
			if actual < 1 {
				actual = 1
			}
		} else {
			if actual < 0 {
				actual = 0
			}
		}

		target = targetSpacing * mass

		ratio := 1.0
		if actual != 0 && target != 0 {
			ratio = float64(target) / float64(actual)
		}
		fast := 1 + 0.7084*math.Pow(float64(mass)/144, -1.228)
		slow := 1 / fast

		if mass >= pastBlocksMin && (ratio <= slow || ratio >= fast) {
			break
		}
		if reading.Parent() == nil {
			break
		}
		reading = reading.Parent()
	}

	next := avg
	if actual != 0 && target != 0 {
		next = avg.MulInt64(actual).DivInt64(target)
	}
	next = next.Min(params.PowLimit)
	return standalone.Encode(next), nil
}

// posNextWork implements the PPCoin-style proof-of-stake retarget (spec
// §4.8). For the first posSwitchoverWindow blocks after last_pow_block it
// pins difficulty to pos_limit; afterward it walks back to the two most
// recent proof-of-stake ancestors and applies a fixed-point weighted
// retarget over their observed spacing.
func posNextWork(tip HeaderCtx, params *chaincfg.ConsensusParams) (standalone.CompactBits, error) {
	if tip.Height() < params.LastPowBlock+posSwitchoverWindow {
		return standalone.Encode(params.PosLimit), nil
	}

	lastPOS := lastBlockOfKind(tip, true)
	if lastPOS == nil {
		return standalone.Encode(params.PosLimit), nil
	}

	var prevPOS HeaderCtx
	if parent := lastPOS.Parent(); parent != nil {
		prevPOS = lastBlockOfKind(parent, true)
	}
	if prevPOS == nil {
		return standalone.Encode(params.PosLimit), nil
	}

	actualSpacing := lastPOS.Timestamp() - prevPOS.Timestamp()
	switch {
	case actualSpacing < posSpacingFloor:
		actualSpacing = posSpacingFloor
	case actualSpacing > posSpacingCeil:
		actualSpacing = posSpacingCeil
	}

	interval := params.PosTargetTimespan / params.PosTargetSpacing
	spacing := params.PosTargetSpacing

	last, _, _ := standalone.Decode(lastPOS.Bits())
	numerator := last.MulInt64((interval-1)*spacing + 2*actualSpacing)
	next := numerator.DivInt64((interval + 1) * spacing)
	next = next.Min(params.PosLimit)
	return standalone.Encode(next), nil
}

// CheckProofOfWork reports whether hash, interpreted as a 256-bit integer,
// satisfies the difficulty target encoded by bits. Unlike the debug stub
// this engine was distilled from, this implementation performs the
// intended verification: a decode that reports negative or overflow is
// rejected outright, as is a target of zero or one exceeding pow_limit;
// only then is the hash compared against the target.
func CheckProofOfWork(hash chainhash.Hash, bits standalone.CompactBits, params *chaincfg.ConsensusParams) bool {
	target, negative, overflow := standalone.Decode(bits)
	if negative || overflow || target.IsZero() {
		return false
	}
	if target.Cmp(params.PowLimit) > 0 {
		return false
	}
	return standalone.HashToBig(hash).Cmp(target) <= 0
}
