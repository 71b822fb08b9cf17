package corpus

import (
	"bufio"
	"fmt"
	"io"
)

// WriteClusters writes cluster assignments as TSV: a header line, then one
// id<tab>hash<tab>cluster row per (id, fingerprint) membership. The cluster
// number is the index of the cluster in the given collection. Fingerprints
// with no ids in the corpus produce no rows.
func WriteClusters(w io.Writer, clusters [][]uint64, c *Corpus) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("id\thash\tcluster\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for num, cluster := range clusters {
		for _, hash := range cluster {
			for _, id := range c.IDs(hash) {
				if _, err := fmt.Fprintf(bw, "%s\t%d\t%d\n", id, hash, num); err != nil {
					return fmt.Errorf("write cluster row: %w", err)
				}
			}
		}
	}
	return bw.Flush()
}
