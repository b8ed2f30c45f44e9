package object

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// compressChunkSize bounds peak memory when streaming large blobs
// through the codec.
const compressChunkSize = 4096

// Deflate compresses data as a zlib stream at best compression.
func Deflate(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("deflate init: %w", err)
	}
	for off := 0; off < len(data); off += compressChunkSize {
		end := off + compressChunkSize
		if end > len(data) {
			end = len(data)
		}
		if _, err := zw.Write(data[off:end]); err != nil {
			_ = zw.Close()
			return nil, fmt.Errorf("deflate: %w", err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("deflate close: %w", err)
	}
	return buf.Bytes(), nil
}

// Inflate decompresses a full zlib stream. Malformed input, a truncated
// stream, or trailing bytes after the stream end are all ErrCorrupt.
func Inflate(data []byte) ([]byte, error) {
	br := bytes.NewReader(data)
	zr, err := zlib.NewReader(br)
	if err != nil {
		return nil, fmt.Errorf("%w: inflate: %v", ErrCorrupt, err)
	}
	defer zr.Close()

	var out bytes.Buffer
	chunk := make([]byte, compressChunkSize)
	for {
		n, err := zr.Read(chunk)
		out.Write(chunk[:n])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: inflate: %v", ErrCorrupt, err)
		}
	}
	// bytes.Reader is an io.ByteReader, so the decompressor reads no
	// further than the stream end; leftover input is trailing garbage.
	if br.Len() > 0 {
		return nil, fmt.Errorf("%w: inflate: %d trailing bytes after stream end", ErrCorrupt, br.Len())
	}
	return out.Bytes(), nil
}

// newDeflateWriter wraps w with a best-compression zlib stream for
// single-pass store writes.
func newDeflateWriter(w io.Writer) (*zlib.Writer, error) {
	zw, err := zlib.NewWriterLevel(w, zlib.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("deflate init: %w", err)
	}
	return zw, nil
}
