package simhash

import (
	"context"
	"slices"
	"sort"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Match is an unordered pair of fingerprints within the configured Hamming
// distance of each other. A is always the smaller fingerprint.
type Match struct {
	A, B uint64
}

// compare orders matches by (A, B). Used to present result sets
// deterministically.
func (m Match) compare(o Match) int {
	switch {
	case m.A != o.A:
		if m.A < o.A {
			return -1
		}
		return 1
	case m.B != o.B:
		if m.B < o.B {
			return -1
		}
		return 1
	}
	return 0
}

// FindAll returns every unordered pair of distinct fingerprints in hashes
// whose Hamming distance is at most distance. Duplicates in hashes are
// collapsed before searching.
//
// The search runs one permute/sort/sweep pass per planned permutation (see
// Plan), distributing passes across workers. Each worker keeps a private
// scratch buffer and a private bag of pairs; bags are merged after all
// passes complete, so no locking happens on the hot path.
//
// The result is a set: pairs discovered under several permutations appear
// once. It is returned sorted by (A, B) so equal inputs produce equal
// slices, but callers must not rely on the ordering as part of the
// contract.
//
// ctx is checked between permutation passes; cancellation returns ctx.Err()
// and no partial results.
func FindAll(ctx context.Context, hashes []uint64, blockCount, distance int, opts ...Option) ([]Match, error) {
	cfg := defaultSearchConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	perms, err := Plan(blockCount, distance)
	if err != nil {
		return nil, err
	}

	universe := slices.Clone(hashes)
	sort.Slice(universe, func(i, j int) bool { return universe[i] < universe[j] })
	universe = slices.Compact(universe)
	if len(universe) < 2 {
		return []Match{}, nil
	}

	workers := cfg.workers
	if workers < 1 {
		workers = defaultSearchConfig().workers
	}
	if workers > len(perms) {
		workers = len(perms)
	}

	// Passes are independent: workers claim permutation indices from an
	// atomic counter and collect pairs into private bags.
	var next, done atomic.Int64
	bags := make([]map[Match]struct{}, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		bag := make(map[Match]struct{})
		bags[w] = bag
		g.Go(func() error {
			scratch := make([]uint64, len(universe))
			for {
				i := int(next.Add(1)) - 1
				if i >= len(perms) {
					return nil
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				sweep(perms[i], universe, scratch, distance, bag)
				if cfg.progress != nil {
					cfg.progress(int(done.Add(1)), len(perms))
				}
			}
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := bags[0]
	for _, bag := range bags[1:] {
		for m := range bag {
			merged[m] = struct{}{}
		}
	}

	out := make([]Match, 0, len(merged))
	for m := range merged {
		out = append(out, m)
	}
	slices.SortFunc(out, Match.compare)
	return out, nil
}

// sweep runs one permutation pass: permute every fingerprint into scratch,
// sort, then inspect all pairs inside each run that shares the search-mask
// prefix. Matches are recorded in original (un-permuted) space with the
// smaller fingerprint first.
func sweep(p Permutation, universe, scratch []uint64, distance int, bag map[Match]struct{}) {
	for i, h := range universe {
		scratch[i] = p.Apply(h)
	}
	slices.Sort(scratch)

	mask := p.SearchMask()
	for start := 0; start < len(scratch); {
		prefix := scratch[start] & mask
		end := start + 1
		for end < len(scratch) && scratch[end]&mask == prefix {
			end++
		}

		for i := start; i < end; i++ {
			for j := i + 1; j < end; j++ {
				if Hamming(scratch[i], scratch[j]) > distance {
					continue
				}
				a := p.Reverse(scratch[i])
				b := p.Reverse(scratch[j])
				if b < a {
					a, b = b, a
				}
				bag[Match{A: a, B: b}] = struct{}{}
			}
		}
		start = end
	}
}
