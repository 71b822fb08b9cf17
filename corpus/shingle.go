package corpus

import (
	"github.com/ChenghaoMou/simhash"
)

// DefaultWindow is the default shingle width in bytes.
const DefaultWindow = 5

// Fingerprint hashes every window-byte shingle of text into a feature hash
// and summarizes the features into a single 64-bit fingerprint.
//
// A text shorter than the window (including the empty text) contributes one
// whole-text feature, so every record receives a fingerprint. window values
// below 1 fall back to DefaultWindow.
func Fingerprint(text string, window int, hasher FeatureHasher) (uint64, error) {
	if window < 1 {
		window = DefaultWindow
	}

	data := []byte(text)
	if len(data) <= window {
		return simhash.Summarize([]uint64{hasher(data)})
	}

	features := make([]uint64, 0, len(data)-window+1)
	for i := 0; i+window <= len(data); i++ {
		features = append(features, hasher(data[i:i+window]))
	}
	return simhash.Summarize(features)
}
