package simhash

import (
	simerrors "github.com/ChenghaoMou/simhash/errors"
)

// Summarize collapses a sequence of 64-bit feature hashes into a single
// fingerprint by per-bit majority vote: bit i of the result is 1 iff more
// features have bit i set than clear. Ties resolve to 0, so a single
// zero-valued feature and a balanced vote produce the same bit.
//
// The order of features does not affect the result. An empty sequence
// returns ErrNoFeatures.
func Summarize(features []uint64) (uint64, error) {
	if len(features) == 0 {
		return 0, simerrors.ErrNoFeatures
	}

	// Signed counters; int64 cannot overflow before the feature slice
	// itself exceeds addressable memory.
	var counts [64]int64
	for _, f := range features {
		for i := 0; i < 64; i++ {
			if f&1 == 1 {
				counts[i]++
			} else {
				counts[i]--
			}
			f >>= 1
		}
	}

	var result uint64
	for i, c := range counts {
		if c > 0 {
			result |= uint64(1) << i
		}
	}
	return result, nil
}
