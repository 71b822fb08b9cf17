package corpus

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"

	simerrors "github.com/ChenghaoMou/simhash/errors"
)

// FeatureHasher maps one shingle to a 64-bit feature hash.
type FeatureHasher func([]byte) uint64

// Supported feature hasher names.
const (
	HasherMurmur3 = "murmur3"
	HasherXXH3    = "xxh3"
	HasherXXHash  = "xxhash"
)

// HasherByName resolves a feature hasher by name. The empty name selects
// murmur3. Fingerprints produced with different hashers are not comparable,
// so the same hasher must be used across a corpus.
func HasherByName(name string) (FeatureHasher, error) {
	switch name {
	case "", HasherMurmur3:
		return murmur3.Sum64, nil
	case HasherXXH3:
		return xxh3.Hash, nil
	case HasherXXHash:
		return xxhash.Sum64, nil
	default:
		return nil, fmt.Errorf("%w: %q", simerrors.ErrUnknownHasher, name)
	}
}
