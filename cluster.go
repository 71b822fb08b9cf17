package simhash

import (
	"context"
	"sort"
)

// FindClusters groups the fingerprints in hashes into connected components
// of the near-duplicate graph: vertices are fingerprints that participate in
// at least one match (see FindAll), edges are pairs within distance.
// Fingerprints with no match are omitted, so every cluster has at least two
// members.
//
// Each cluster is sorted ascending and the collection is sorted by first
// member, so equal inputs produce equal results. As with FindAll, the
// ordering is a courtesy rather than part of the contract.
func FindClusters(ctx context.Context, hashes []uint64, blockCount, distance int, opts ...Option) ([][]uint64, error) {
	matches, err := FindAll(ctx, hashes, blockCount, distance, opts...)
	if err != nil {
		return nil, err
	}

	// Matches are already deduplicated, so adjacency lists stay
	// duplicate-free without per-vertex sets.
	adj := make(map[uint64][]uint64, len(matches))
	for _, m := range matches {
		adj[m.A] = append(adj[m.A], m.B)
		adj[m.B] = append(adj[m.B], m.A)
	}

	vertices := make([]uint64, 0, len(adj))
	for v := range adj {
		vertices = append(vertices, v)
	}
	sort.Slice(vertices, func(i, j int) bool { return vertices[i] < vertices[j] })

	visited := make(map[uint64]bool, len(adj))
	var clusters [][]uint64
	var frontier []uint64
	for _, v := range vertices {
		if visited[v] {
			continue
		}

		// BFS with a FIFO frontier from v.
		visited[v] = true
		cluster := []uint64{v}
		frontier = frontier[:0]
		frontier = append(frontier, v)
		for len(frontier) > 0 {
			u := frontier[0]
			frontier = frontier[1:]
			for _, n := range adj[u] {
				if !visited[n] {
					visited[n] = true
					cluster = append(cluster, n)
					frontier = append(frontier, n)
				}
			}
		}

		sort.Slice(cluster, func(i, j int) bool { return cluster[i] < cluster[j] })
		clusters = append(clusters, cluster)
	}
	return clusters, nil
}
