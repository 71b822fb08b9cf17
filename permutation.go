package simhash

import (
	"math/bits"

	simerrors "github.com/ChenghaoMou/simhash/errors"
	"github.com/ChenghaoMou/simhash/internal/blocks"
)

// Permutation is a bijection on 64-bit fingerprints that rearranges whole
// bit blocks so that a chosen subset of blocks occupies the most significant
// output positions. Two fingerprints within Hamming distance d of each other
// agree exactly on at least blocks−d blocks, so under at least one planned
// permutation they share the search-mask prefix and sort adjacently.
//
// A Permutation is immutable after construction. Apply, Reverse, and
// SearchMask are safe for concurrent use.
type Permutation struct {
	// forwardMasks are the block masks in output order, most significant
	// block first. Their union is all 64 bits and they are pairwise
	// disjoint.
	forwardMasks []uint64

	// offsets[i] is the signed left shift that moves block i from its
	// input position to its output position. Negative values shift right.
	offsets []int

	// reverseMasks[i] is forwardMasks[i] after its forward shift, i.e. the
	// block's mask in output space. Reversal shifts by -offsets[i].
	reverseMasks []uint64

	// searchMask selects the output positions occupied by the safe prefix
	// blocks (the first blocks−distance entries of forwardMasks).
	searchMask uint64
}

// Plan returns the C(blocks, blocks−distance) permutations required to
// locate every pair of fingerprints within distance differing bits. The 64
// bit positions are split into the given number of contiguous blocks; each
// permutation moves one choice of blocks−distance "safe" blocks into the
// high end of the word.
//
// Plan is deterministic: prefix choices are enumerated in lexicographic
// order of block indices, and the same (blocks, distance) always yields the
// same list.
func Plan(blockCount, distance int) ([]Permutation, error) {
	if blockCount < 2 || blockCount > blocks.Width {
		return nil, simerrors.ErrInvalidBlocks
	}
	if distance < 1 || distance >= blockCount {
		return nil, simerrors.ErrInvalidDistance
	}

	masks := blocks.Masks(blockCount)
	combos := blocks.Combinations(blockCount, blockCount-distance)

	perms := make([]Permutation, 0, len(combos))
	chosen := make([]bool, blockCount)
	for _, combo := range combos {
		ordered := make([]uint64, 0, blockCount)
		for i := range chosen {
			chosen[i] = false
		}
		for _, idx := range combo {
			ordered = append(ordered, masks[idx])
			chosen[idx] = true
		}
		// Remaining blocks follow in their natural index order.
		for i, m := range masks {
			if !chosen[i] {
				ordered = append(ordered, m)
			}
		}

		p, err := newPermutation(ordered, distance)
		if err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, nil
}

// newPermutation builds a Permutation from block masks in output order
// (most significant block first). The masks must each be a non-empty
// contiguous run of bits, pairwise disjoint, and together cover all 64 bits.
func newPermutation(masks []uint64, distance int) (Permutation, error) {
	if len(masks) == 0 || distance < 1 || distance >= len(masks) {
		return Permutation{}, simerrors.ErrMalformedMasks
	}

	p := Permutation{
		forwardMasks: append([]uint64(nil), masks...),
		offsets:      make([]int, 0, len(masks)),
		reverseMasks: make([]uint64, 0, len(masks)),
	}

	var union uint64
	width := 0 // running total of block widths already placed
	for _, m := range masks {
		if m == 0 || union&m != 0 {
			return Permutation{}, simerrors.ErrMalformedMasks
		}
		union |= m

		lo := bits.TrailingZeros64(m)
		hi := 64 - bits.LeadingZeros64(m)
		if m>>lo != (uint64(1)<<(hi-lo))-1 {
			// Holes inside the run would make the shift scatter bits.
			return Permutation{}, simerrors.ErrMalformedMasks
		}

		// The block's rightmost bit (position lo) lands at output
		// position 64−width−(hi−lo) ... i.e. the block fills positions
		// just below the blocks placed so far.
		width += hi - lo
		offset := 64 - width - lo
		p.offsets = append(p.offsets, offset)
		p.reverseMasks = append(p.reverseMasks, shift(m, offset))
	}
	if union != ^uint64(0) {
		return Permutation{}, simerrors.ErrMalformedMasks
	}

	// The search mask is the output-space union of the safe prefix blocks:
	// all but the last `distance` entries.
	for _, rm := range p.reverseMasks[:len(masks)-distance] {
		p.searchMask |= rm
	}
	return p, nil
}

// Apply permutes a fingerprint, concatenating the configured blocks from
// bit 63 downward.
func (p Permutation) Apply(h uint64) uint64 {
	var out uint64
	for i, m := range p.forwardMasks {
		out |= shift(h&m, p.offsets[i])
	}
	return out
}

// Reverse inverts Apply: Reverse(Apply(h)) == h for every h.
func (p Permutation) Reverse(h uint64) uint64 {
	var out uint64
	for i, m := range p.reverseMasks {
		out |= shift(h&m, -p.offsets[i])
	}
	return out
}

// SearchMask returns the mask selecting the output bit positions occupied
// by the permutation's safe prefix blocks. Two permuted fingerprints equal
// under this mask agree on every safe block of the originals.
func (p Permutation) SearchMask() uint64 {
	return p.searchMask
}

// shift is a signed left shift: negative k shifts right.
func shift(x uint64, k int) uint64 {
	if k >= 0 {
		return x << k
	}
	return x >> -k
}
