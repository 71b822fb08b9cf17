package simhash

import (
	"context"
	"fmt"
	"testing"
)

func BenchmarkApply(b *testing.B) {
	perms, err := Plan(8, 3)
	if err != nil {
		b.Fatal(err)
	}
	p := perms[0]
	h := uint64(0xDEADBEEFCAFEF00D)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		h = p.Apply(h)
	}
	sink = h
}

func BenchmarkSummarize(b *testing.B) {
	rng := newTestRNG(b)
	features := make([]uint64, 512)
	for i := range features {
		features[i] = rng.Uint64()
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		v, err := Summarize(features)
		if err != nil {
			b.Fatal(err)
		}
		sink = v
	}
}

func BenchmarkFindAll(b *testing.B) {
	rng := newTestRNG(b)
	hashes := nearDuplicateCorpus(rng, 2000, 2, 4)

	for _, workers := range []int{1, 4} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				matches, err := FindAll(context.Background(), hashes, 8, 3, WithWorkers(workers))
				if err != nil {
					b.Fatal(err)
				}
				sink = uint64(len(matches))
			}
		})
	}
}

// sink prevents the compiler from eliding benchmark work.
var sink uint64
