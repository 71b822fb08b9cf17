// Simhash finds near-duplicate clusters in a corpus of documents summarized
// by 64-bit simhash fingerprints.
//
// Usage:
//
//	simhash -blocks 6 -distance 3 -format hash -input hashes.tsv -output clusters.tsv
//
// Flags:
//
//	-blocks       Number of bit blocks to use (required, distance < blocks <= 64)
//	-distance     Maximum bit distance of matches (required, >= 1)
//	-input        Path to input ('-' for stdin)
//	-output       Path to output ('-' for stdout)
//	-format       Format of the input: hash or json
//	-text-column  JSON field holding the text to fingerprint
//	-id-column    JSON field holding the record id
//	-sample       Cap on input records (0 = unlimited)
//	-window       Shingle width in bytes for json input (default 5)
//	-hasher       Feature hasher: murmur3, xxh3, or xxhash (default murmur3)
//	-workers      Number of parallel permutation workers (default GOMAXPROCS)
//
// Input in hash format is TSV with a header line followed by id<tab>hash
// rows, the hash in decimal. Input in json format is one object per line;
// the text column is shingled, hashed, and summarized into a fingerprint.
// Output is TSV with header id<tab>hash<tab>cluster, one row per (id,
// fingerprint) membership.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/ChenghaoMou/simhash"
	"github.com/ChenghaoMou/simhash/corpus"
)

// Exit codes distinguish validation and I/O failures for scripting.
const (
	exitOK               = 0
	exitUsage            = 1
	exitBadBlocks        = 2
	exitBadDistance      = 3
	exitNoInput          = 4
	exitNoOutput         = 5
	exitBlocksLEDistance = 6
	exitBadInput         = 7
	exitBadOutput        = 8
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("simhash", flag.ContinueOnError)
	fs.SetOutput(stderr)

	blocks := fs.Int("blocks", 0, "number of bit blocks to use")
	distance := fs.Int("distance", 0, "maximum bit distance of matches")
	input := fs.String("input", "", "path to input ('-' for stdin)")
	output := fs.String("output", "", "path to output ('-' for stdout)")
	format := fs.String("format", "", "format of the input, hash or json")
	textColumn := fs.String("text-column", "", "json field holding the text to hash")
	idColumn := fs.String("id-column", "", "json field holding the record id")
	sample := fs.Int("sample", 0, "cap on input records (0 = unlimited)")
	window := fs.Int("window", corpus.DefaultWindow, "shingle width in bytes for json input")
	hasher := fs.String("hasher", corpus.HasherMurmur3, "feature hasher: murmur3, xxh3, or xxhash")
	workers := fs.Int("workers", runtime.GOMAXPROCS(0), "number of parallel permutation workers")

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	switch {
	case *blocks <= 0 || *blocks > 64:
		fmt.Fprintln(stderr, "blocks must be provided and in [1, 64]")
		return exitBadBlocks
	case *distance <= 0:
		fmt.Fprintln(stderr, "distance must be provided and > 0")
		return exitBadDistance
	case *input == "":
		fmt.Fprintln(stderr, "input must be provided and non-empty")
		return exitNoInput
	case *output == "":
		fmt.Fprintln(stderr, "output must be provided and non-empty")
		return exitNoOutput
	case *blocks <= *distance:
		fmt.Fprintf(stderr, "blocks (%d) must be > distance (%d)\n", *blocks, *distance)
		return exitBlocksLEDistance
	case *format == "":
		fmt.Fprintln(stderr, "format must be provided (hash or json) and non-empty")
		return exitBadInput
	}

	start := time.Now()

	in, closeIn, err := corpus.OpenInput(*input)
	if err != nil {
		fmt.Fprintf(stderr, "error reading %s: %v\n", *input, err)
		return exitBadInput
	}
	fmt.Fprintf(stderr, "reading hashes from %s\n", *input)

	c, err := corpus.Read(in, corpus.ReadOptions{
		Format:     *format,
		TextColumn: *textColumn,
		IDColumn:   *idColumn,
		Window:     *window,
		Sample:     *sample,
		Hasher:     *hasher,
	})
	if cerr := closeIn(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(stderr, "error reading %s: %v\n", *input, err)
		return exitBadInput
	}
	fmt.Fprintf(stderr, "total %d records and %d hashes\n", c.Records(), c.Len())

	fmt.Fprintln(stderr, "computing matches...")
	// The observer runs on worker goroutines, so writes are serialized here.
	var progressMu sync.Mutex
	progress := simhash.WithProgress(func(done, total int) {
		progressMu.Lock()
		defer progressMu.Unlock()
		fmt.Fprintf(stderr, "\rpermutation %d/%d", done, total)
	})
	clusters, err := simhash.FindClusters(context.Background(), c.Hashes(), *blocks, *distance,
		simhash.WithWorkers(*workers), progress)
	fmt.Fprintln(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error computing clusters: %v\n", err)
		return exitUsage
	}
	fmt.Fprintf(stderr, "found %d clusters\n", len(clusters))

	out, closeOut, err := corpus.OpenOutput(*output)
	if err != nil {
		fmt.Fprintf(stderr, "error writing %s: %v\n", *output, err)
		return exitBadOutput
	}
	err = corpus.WriteClusters(out, clusters, c)
	if cerr := closeOut(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(stderr, "error writing %s: %v\n", *output, err)
		return exitBadOutput
	}

	fmt.Fprintf(stderr, "total time: %s\n", time.Since(start).Round(time.Millisecond))
	return exitOK
}
