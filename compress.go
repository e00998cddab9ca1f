package nbt

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the stream compressor wrapped around encoded output.
type Compression uint8

const (
	// CompressionNone writes the binary format as is.
	CompressionNone Compression = iota

	// CompressionGzip is the conventional choice for NBT files.
	CompressionGzip

	// CompressionZstd uses a Zstandard frame.
	CompressionZstd

	// CompressionLZ4 uses an LZ4 frame.
	CompressionLZ4
)

// Magic numbers of the supported compressed formats.
var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// String returns the lower-case name of c.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// ParseCompression parses the name returned by Compression.String.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none", "":
		return CompressionNone, nil
	case "gzip":
		return CompressionGzip, nil
	case "zstd":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("nbt: unknown compression %q", name)
	}
}

func (c Compression) valid() bool {
	return c <= CompressionLZ4
}

// nopCloser finishes nothing; used when output is not compressed.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// compressWriter wraps w in the compressor for c. Closing the result
// finishes the compressed stream but leaves w open.
func compressWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case CompressionNone:
		return nopCloser{w}, nil
	case CompressionGzip:
		return gzip.NewWriter(w), nil
	case CompressionZstd:
		zw, err := zstd.NewWriter(w, zstd.WithEncoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("nbt: zstd writer: %w", err)
		}
		return zw, nil
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("nbt: unsupported compression %s", c)
	}
}

// sniff peeks at the head of br and reports which compressor, if any,
// produced the stream. It consumes nothing.
func sniff(br *bufio.Reader) Compression {
	head, _ := br.Peek(4)
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		return CompressionGzip
	case bytes.HasPrefix(head, zstdMagic):
		return CompressionZstd
	case bytes.HasPrefix(head, lz4Magic):
		return CompressionLZ4
	}
	return CompressionNone
}

// decompressReader returns a reader producing the decompressed content of
// br and a function releasing the decompressor.
func decompressReader(br *bufio.Reader, c Compression) (io.Reader, func(), error) {
	switch c {
	case CompressionGzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, nil, &FormatError{Msg: "invalid gzip header", Err: err}
		}
		return zr, func() { zr.Close() }, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, nil, &FormatError{Msg: "invalid zstd stream", Err: err}
		}
		return zr, zr.Close, nil
	case CompressionLZ4:
		return lz4.NewReader(br), func() {}, nil
	default:
		return br, func() {}, nil
	}
}
