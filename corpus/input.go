package corpus

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
)

// OpenInput returns a reader for path, where "-" selects stdin. Regular
// files are memory-mapped read-only and advised for sequential access; the
// returned close function releases the mapping. Pipes, empty files, and
// files that cannot be mapped fall back to plain streaming.
func OpenInput(path string) (io.Reader, func() error, error) {
	if path == "-" {
		return os.Stdin, func() error { return nil }, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("stat input: %w", err)
	}
	if !stat.Mode().IsRegular() || stat.Size() == 0 {
		return f, f.Close, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return f, f.Close, nil
	}
	fadviseSequential(int(f.Fd()), 0, stat.Size())

	// Per POSIX mmap(2) the mapping stays valid after the descriptor is
	// closed.
	if err := f.Close(); err != nil {
		_ = m.Unmap()
		return nil, nil, fmt.Errorf("close input: %w", err)
	}
	return bytes.NewReader(m), m.Unmap, nil
}

// OpenOutput returns a writer for path, where "-" selects stdout.
func OpenOutput(path string) (io.Writer, func() error, error) {
	if path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, f.Close, nil
}
