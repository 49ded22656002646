package compression

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// ErrUnsupported - unknown compression type.
var ErrUnsupported = errors.New("unsupported compression type")

// Type - type of compression.
type Type string

const (
	None  Type = ""
	Gzip  Type = "gzip"
	Zstd  Type = "zstd"
	Bzip2 Type = "bzip2"
	Flate Type = "flate"
)

// TypeFromPath - picks the compression type by file extension, None for plain files.
func TypeFromPath(path string) Type {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip":
		return Gzip
	case ".zst", ".zstd":
		return Zstd
	case ".bz2":
		return Bzip2
	case ".deflate":
		return Flate
	}

	return None
}

// NewReader - wraps r with a decompressor for ct.
func NewReader(r io.Reader, ct Type) (io.ReadCloser, error) {
	switch ct {
	case None:
		return io.NopCloser(r), nil
	case Gzip:
		return gzip.NewReader(r)
	case Zstd:
		decoder, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return decoder.IOReadCloser(), nil
	case Bzip2:
		return bzip2.NewReader(r, nil)
	case Flate:
		return flate.NewReader(r), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupported, ct)
}

// NewWriter - wraps w with a compressor for ct. Close must be called to flush the stream.
func NewWriter(w io.Writer, ct Type) (io.WriteCloser, error) {
	switch ct {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zstd:
		return zstd.NewWriter(w)
	case Bzip2:
		return bzip2.NewWriter(w, &bzip2.WriterConfig{Level: bzip2.BestCompression})
	case Flate:
		return flate.NewWriter(w, flate.DefaultCompression)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupported, ct)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
