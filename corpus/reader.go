package corpus

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	simerrors "github.com/ChenghaoMou/simhash/errors"
)

// Input formats.
const (
	FormatHash = "hash" // TSV: header line, then id<tab>hash rows
	FormatJSON = "json" // one JSON object per line
)

// maxLineSize bounds a single input line. JSON documents carry full text
// bodies, so the limit is generous.
const maxLineSize = 16 << 20

// Corpus holds the distinct fingerprints read from an input together with
// the ids of the records that produced each fingerprint. Several records may
// collapse onto one fingerprint; the corpus keeps every id.
type Corpus struct {
	hashes  []uint64 // distinct, in first-seen order
	ids     map[uint64][]string
	records int
}

func newCorpus() *Corpus {
	return &Corpus{ids: make(map[uint64][]string)}
}

func (c *Corpus) add(id string, hash uint64) {
	if _, ok := c.ids[hash]; !ok {
		c.hashes = append(c.hashes, hash)
	}
	c.ids[hash] = append(c.ids[hash], id)
	c.records++
}

// Hashes returns the distinct fingerprints in first-seen order. The slice
// is owned by the Corpus and must not be mutated.
func (c *Corpus) Hashes() []uint64 { return c.hashes }

// IDs returns the record ids that produced hash, in input order.
func (c *Corpus) IDs(hash uint64) []string { return c.ids[hash] }

// Len returns the number of distinct fingerprints.
func (c *Corpus) Len() int { return len(c.hashes) }

// Records returns the number of input records read, including records whose
// fingerprint collided with an earlier one.
func (c *Corpus) Records() int { return c.records }

// ReadOptions configures Read.
type ReadOptions struct {
	Format     string // FormatHash or FormatJSON
	TextColumn string // json: field holding the text to fingerprint
	IDColumn   string // json: field holding the record id
	Window     int    // shingle width in bytes; values below 1 mean DefaultWindow
	Sample     int    // cap on input records; 0 means unlimited
	Hasher     string // feature hasher name; empty means murmur3
}

// Read parses records from r according to opts. The sample cap counts
// records uniformly for both formats; the TSV header line is never counted.
func Read(r io.Reader, opts ReadOptions) (*Corpus, error) {
	switch opts.Format {
	case FormatHash:
		return readHashes(r, opts.Sample)
	case FormatJSON:
		hasher, err := HasherByName(opts.Hasher)
		if err != nil {
			return nil, err
		}
		return readJSON(r, opts, hasher)
	default:
		return nil, fmt.Errorf("%w: %q", simerrors.ErrUnknownFormat, opts.Format)
	}
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64<<10), maxLineSize)
	return sc
}

// readHashes parses the hash format: a header line, then id<tab>hash rows
// with the fingerprint in decimal. Blank lines are skipped.
func readHashes(r io.Reader, sample int) (*Corpus, error) {
	c := newCorpus()
	sc := newLineScanner(r)

	lineno := 0
	for sc.Scan() {
		lineno++
		if lineno == 1 {
			// Header line.
			continue
		}
		line := sc.Text()
		if line == "" {
			continue
		}
		if sample > 0 && c.records >= sample {
			break
		}

		id, rest, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("%w: line %d: expected id<tab>hash", simerrors.ErrBadRecord, lineno)
		}
		// Ignore any columns after the hash.
		hashField, _, _ := strings.Cut(rest, "\t")
		hash, err := strconv.ParseUint(hashField, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad hash %q", simerrors.ErrBadRecord, lineno, hashField)
		}

		c.add(id, hash)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read hash input: %w", err)
	}
	return c, nil
}

// readJSON parses one JSON object per line, fingerprinting the text column.
func readJSON(r io.Reader, opts ReadOptions, hasher FeatureHasher) (*Corpus, error) {
	c := newCorpus()
	sc := newLineScanner(r)

	lineno := 0
	for sc.Scan() {
		lineno++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		if opts.Sample > 0 && c.records >= opts.Sample {
			break
		}

		id, text, err := decodeRecord(line, opts.IDColumn, opts.TextColumn)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", simerrors.ErrBadRecord, lineno, err)
		}

		hash, err := Fingerprint(text, opts.Window, hasher)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		c.add(id, hash)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read json input: %w", err)
	}
	return c, nil
}

// decodeRecord extracts the id and text fields from one JSON object. The id
// may be a JSON string or number; numbers are rendered verbatim so large
// integer ids survive the round trip.
func decodeRecord(line []byte, idColumn, textColumn string) (id, text string, err error) {
	dec := json.NewDecoder(bytes.NewReader(line))
	dec.UseNumber()

	var record map[string]any
	if err := dec.Decode(&record); err != nil {
		return "", "", err
	}

	rawText, ok := record[textColumn]
	if !ok {
		return "", "", fmt.Errorf("missing text field %q", textColumn)
	}
	text, ok = rawText.(string)
	if !ok {
		return "", "", fmt.Errorf("text field %q is not a string", textColumn)
	}

	rawID, ok := record[idColumn]
	if !ok {
		return "", "", fmt.Errorf("missing id field %q", idColumn)
	}
	switch v := rawID.(type) {
	case string:
		id = v
	case json.Number:
		id = v.String()
	default:
		return "", "", fmt.Errorf("id field %q is not a string or number", idColumn)
	}

	return id, text, nil
}
