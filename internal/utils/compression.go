package utils

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ralt/cargo-aur/internal/models"
	"github.com/ulikunitz/xz"
)

// NewCompressor wraps w with the compressor for c. The returned writer must
// be closed to flush the stream; closing does not close w.
//
// Output depends only on the bytes written: gzip carries no name or mod
// time and zstd runs single-threaded.
func NewCompressor(w io.Writer, c models.Compression) (io.WriteCloser, error) {
	switch c {
	case models.CompressionGzip:
		return gzip.NewWriterLevel(w, gzip.BestCompression)
	case models.CompressionZstd:
		return zstd.NewWriter(w,
			zstd.WithEncoderConcurrency(1),
			zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	case models.CompressionXz:
		return xz.NewWriter(w)
	default:
		return nil, fmt.Errorf("unsupported compression %q", c)
	}
}

// NewDecompressor opens a stream written by NewCompressor
func NewDecompressor(r io.Reader, c models.Compression) (io.ReadCloser, error) {
	switch c {
	case models.CompressionGzip:
		return gzip.NewReader(r)
	case models.CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	case models.CompressionXz:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(xr), nil
	default:
		return nil, fmt.Errorf("unsupported compression %q", c)
	}
}
