// Package simhash implements near-duplicate detection over 64-bit simhash
// fingerprints: it finds every pair of fingerprints within a Hamming
// distance threshold and groups the resulting match graph into clusters.
//
// The search uses the blocked-permutation technique from Manku, Jain, and
// Sarma's "Detecting Near-Duplicates for Web Crawling": the 64 bit
// positions are split into B contiguous blocks, and by pigeonhole two
// fingerprints differing in at most d bits agree exactly on at least B-d
// blocks. Enumerating every choice of B-d "safe" blocks as a bit
// permutation that moves those blocks into the most significant positions
// reduces the all-pairs scan to C(B, B-d) sort-and-sweep passes.
//
// # Basic Usage
//
// Summarizing feature hashes into a fingerprint:
//
//	fingerprint, err := simhash.Summarize(features)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Finding all near-duplicate pairs and their clusters:
//
//	matches, err := simhash.FindAll(ctx, fingerprints, 6, 3)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	clusters, err := simhash.FindClusters(ctx, fingerprints, 6, 3,
//	    simhash.WithWorkers(8))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Package Structure
//
// The implementation is organized as follows:
//
//   - Public API: find.go (FindAll), cluster.go (FindClusters),
//     summarize.go (Summarize), hamming.go (Hamming)
//   - Permutation planning: permutation.go (Plan, Permutation),
//     internal/blocks/ (block masks, combination enumeration)
//   - Configuration: options.go (Option, With* functions)
//   - Errors: errors/ (exported sentinels)
//   - Ingestion and output: corpus/ (TSV and JSON-lines readers, feature
//     hashing, cluster writer)
//   - Reference driver: cmd/simhash/
package simhash
