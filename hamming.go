package simhash

import "math/bits"

// Hamming returns the number of bit positions in which a and b differ.
// The result is symmetric, zero iff a == b, and never exceeds 64.
func Hamming(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}
