package delimited

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/ChrisMcGann/QuantNorm/pkg/core"
)

// Open opens path for reading and transparently decompresses .gz, .zst and .lz4 files.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		return &readCloser{Reader: zr, closers: []io.Closer{zr, f}}, nil
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to open zstd stream: %w", err)
		}
		return &readCloser{Reader: zr, closers: []io.Closer{zr.IOReadCloser(), f}}, nil
	case ".lz4":
		return &readCloser{Reader: lz4.NewReader(f), closers: []io.Closer{f}}, nil
	}

	return f, nil
}

// DelimiterFor guesses the delimiter from the file name, ignoring compression
// extensions: .csv is comma-separated, anything else tab-separated.
func DelimiterFor(path string) rune {
	name := strings.ToLower(path)
	for _, ext := range []string{".gz", ".zst", ".lz4"} {
		name = strings.TrimSuffix(name, ext)
	}
	if filepath.Ext(name) == ".csv" {
		return ','
	}
	return '\t'
}

// ReadFile reads the table stored at path. A zero delimiter is guessed from the name.
// textColumns are passed to ReadTable.
func ReadFile(path string, delimiter rune, textColumns ...string) (*core.Table, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	if delimiter == 0 {
		delimiter = DelimiterFor(path)
	}

	t, err := ReadTable(rc, delimiter, textColumns...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r *readCloser) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
