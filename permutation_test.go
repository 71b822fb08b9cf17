package simhash

import (
	"errors"
	"math/bits"
	"reflect"
	"testing"

	simerrors "github.com/ChenghaoMou/simhash/errors"
	intblocks "github.com/ChenghaoMou/simhash/internal/blocks"
)

// planGrid is the (blocks, distance) configurations exercised by the
// permutation property tests, covering divisors and non-divisors of 64.
var planGrid = []struct {
	blocks, distance int
}{
	{2, 1},
	{4, 1},
	{4, 2},
	{4, 3},
	{5, 2},
	{6, 3},
	{8, 3},
	{13, 4},
	{32, 2},
	{64, 63},
}

func TestPlanCount(t *testing.T) {
	for _, cfg := range planGrid {
		perms, err := Plan(cfg.blocks, cfg.distance)
		if err != nil {
			t.Fatalf("Plan(%d, %d): %v", cfg.blocks, cfg.distance, err)
		}
		want := binomial(cfg.blocks, cfg.blocks-cfg.distance)
		if len(perms) != want {
			t.Errorf("Plan(%d, %d) returned %d permutations, want %d",
				cfg.blocks, cfg.distance, len(perms), want)
		}
	}
}

func TestPlanInvalidConfiguration(t *testing.T) {
	cases := []struct {
		name             string
		blocks, distance int
		want             error
	}{
		{"blocks too small", 1, 1, simerrors.ErrInvalidBlocks},
		{"blocks zero", 0, 1, simerrors.ErrInvalidBlocks},
		{"blocks too large", 65, 3, simerrors.ErrInvalidBlocks},
		{"distance zero", 8, 0, simerrors.ErrInvalidDistance},
		{"distance negative", 8, -1, simerrors.ErrInvalidDistance},
		{"distance equals blocks", 8, 8, simerrors.ErrInvalidDistance},
		{"distance exceeds blocks", 4, 6, simerrors.ErrInvalidDistance},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Plan(tc.blocks, tc.distance)
			if !errors.Is(err, tc.want) {
				t.Errorf("Plan(%d, %d) error = %v, want %v", tc.blocks, tc.distance, err, tc.want)
			}
		})
	}
}

// TestPermutationBijection verifies Reverse(Apply(h)) == h and
// Apply(Reverse(h)) == h for random samples under every planned permutation.
func TestPermutationBijection(t *testing.T) {
	rng := newTestRNG(t)
	const samples = 200

	for _, cfg := range planGrid {
		perms, err := Plan(cfg.blocks, cfg.distance)
		if err != nil {
			t.Fatal(err)
		}
		for pi, p := range perms {
			for s := 0; s < samples; s++ {
				h := rng.Uint64()
				if got := p.Reverse(p.Apply(h)); got != h {
					t.Fatalf("Plan(%d, %d) perm %d: Reverse(Apply(0x%X)) = 0x%X",
						cfg.blocks, cfg.distance, pi, h, got)
				}
				if got := p.Apply(p.Reverse(h)); got != h {
					t.Fatalf("Plan(%d, %d) perm %d: Apply(Reverse(0x%X)) = 0x%X",
						cfg.blocks, cfg.distance, pi, h, got)
				}
			}
		}
	}
}

// TestPermutationMaskPartition verifies that both the forward and reverse
// masks of every planned permutation are pairwise disjoint and cover all 64
// bits.
func TestPermutationMaskPartition(t *testing.T) {
	for _, cfg := range planGrid {
		perms, err := Plan(cfg.blocks, cfg.distance)
		if err != nil {
			t.Fatal(err)
		}
		for pi, p := range perms {
			for name, masks := range map[string][]uint64{
				"forward": p.forwardMasks,
				"reverse": p.reverseMasks,
			} {
				var union uint64
				for mi, m := range masks {
					if union&m != 0 {
						t.Fatalf("Plan(%d, %d) perm %d: %s mask %d overlaps earlier masks",
							cfg.blocks, cfg.distance, pi, name, mi)
					}
					union |= m
				}
				if union != ^uint64(0) {
					t.Fatalf("Plan(%d, %d) perm %d: %s masks cover 0x%X, want all bits",
						cfg.blocks, cfg.distance, pi, name, union)
				}
			}
		}
	}
}

// TestSearchMaskConsistency verifies the search mask equals the OR of the
// prefix reverse masks, has popcount equal to the total prefix width, and is
// a contiguous run at the high end of the word.
func TestSearchMaskConsistency(t *testing.T) {
	for _, cfg := range planGrid {
		prefix := cfg.blocks - cfg.distance
		perms, err := Plan(cfg.blocks, cfg.distance)
		if err != nil {
			t.Fatal(err)
		}
		for pi, p := range perms {
			var fromReverse uint64
			prefixWidth := 0
			for _, m := range p.forwardMasks[:prefix] {
				prefixWidth += bits.OnesCount64(m)
			}
			for _, rm := range p.reverseMasks[:prefix] {
				fromReverse |= rm
			}

			if p.SearchMask() != fromReverse {
				t.Fatalf("Plan(%d, %d) perm %d: SearchMask 0x%X != OR of prefix reverse masks 0x%X",
					cfg.blocks, cfg.distance, pi, p.SearchMask(), fromReverse)
			}
			if got := bits.OnesCount64(p.SearchMask()); got != prefixWidth {
				t.Fatalf("Plan(%d, %d) perm %d: SearchMask popcount %d, want %d",
					cfg.blocks, cfg.distance, pi, got, prefixWidth)
			}
			want := (uint64(1)<<prefixWidth - 1) << (64 - prefixWidth)
			if p.SearchMask() != want {
				t.Fatalf("Plan(%d, %d) perm %d: SearchMask 0x%X not the high %d bits",
					cfg.blocks, cfg.distance, pi, p.SearchMask(), prefixWidth)
			}
		}
	}
}

// TestSearchMaskAgreement verifies the semantic contract: two fingerprints
// equal under the search mask after Apply agree exactly on the permutation's
// prefix blocks of the originals.
func TestSearchMaskAgreement(t *testing.T) {
	rng := newTestRNG(t)
	perms, err := Plan(6, 2)
	if err != nil {
		t.Fatal(err)
	}

	for pi, p := range perms {
		var prefixUnion uint64
		for _, m := range p.forwardMasks[:4] {
			prefixUnion |= m
		}
		for s := 0; s < 500; s++ {
			a := rng.Uint64()
			b := rng.Uint64()
			samePrefix := p.Apply(a)&p.SearchMask() == p.Apply(b)&p.SearchMask()
			sameBlocks := a&prefixUnion == b&prefixUnion
			if samePrefix != sameBlocks {
				t.Fatalf("perm %d: prefix agreement mismatch for 0x%X vs 0x%X", pi, a, b)
			}
		}
	}
}

func TestPlanDeterminism(t *testing.T) {
	for _, cfg := range planGrid {
		a, err := Plan(cfg.blocks, cfg.distance)
		if err != nil {
			t.Fatal(err)
		}
		b, err := Plan(cfg.blocks, cfg.distance)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(a, b) {
			t.Errorf("Plan(%d, %d) is not deterministic", cfg.blocks, cfg.distance)
		}
	}
}

func TestNewPermutationMalformedMasks(t *testing.T) {
	valid := intblocks.Masks(4)

	cases := []struct {
		name  string
		masks []uint64
	}{
		{"empty list", nil},
		{"zero mask", []uint64{valid[0], 0, valid[2], valid[3]}},
		{"overlapping masks", []uint64{valid[0], valid[0], valid[2], valid[3]}},
		{"incomplete coverage", []uint64{valid[0], valid[1], valid[2]}},
		{"non-contiguous mask", []uint64{valid[0], valid[1], valid[2], valid[3] ^ 1<<60}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newPermutation(tc.masks, 1)
			if !errors.Is(err, simerrors.ErrMalformedMasks) {
				t.Errorf("newPermutation error = %v, want ErrMalformedMasks", err)
			}
		})
	}
}
