package object

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
)

// RawHashSize is the digest length in bytes; hex form is twice that.
const RawHashSize = sha1.Size

// HashBytes computes the raw SHA-1 hash of data and returns it as a
// lowercase hex-encoded Hash.
func HashBytes(data []byte) Hash {
	sum := sha1.Sum(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// HashObject computes the SHA-1 of the envelope "type len\0content",
// which is the object's address in the store.
func HashObject(objType ObjectType, data []byte) Hash {
	h := sha1.New()
	fmt.Fprintf(h, "%s %d\x00", objType, len(data))
	h.Write(data)
	return Hash(hex.EncodeToString(h.Sum(nil)))
}

// HashStream computes the envelope-prefixed digest of a payload read
// from r without persisting anything. size must be the exact payload
// length.
func HashStream(objType ObjectType, size int64, r io.Reader) (Hash, error) {
	d := newFrameDigest(objType, size)
	n, err := io.CopyBuffer(d, r, make([]byte, compressChunkSize))
	if err != nil {
		return "", fmt.Errorf("hash stream: %w", err)
	}
	if n != size {
		return "", fmt.Errorf("hash stream: read %d bytes, declared %d", n, size)
	}
	return d.Sum(), nil
}

// Raw decodes the hex hash into its 20 raw digest bytes.
func (h Hash) Raw() ([]byte, error) {
	raw, err := hex.DecodeString(string(h))
	if err != nil {
		return nil, fmt.Errorf("hash %q: %w", h, err)
	}
	if len(raw) != RawHashSize {
		return nil, fmt.Errorf("hash %q: got %d raw bytes, want %d", h, len(raw), RawHashSize)
	}
	return raw, nil
}

// HashFromRaw encodes 20 raw digest bytes as a hex Hash.
func HashFromRaw(raw []byte) Hash {
	return Hash(hex.EncodeToString(raw))
}

// frameDigest accumulates the envelope-prefixed SHA-1 of an object while
// its payload streams through the store.
type frameDigest struct {
	h        hash.Hash
	envelope []byte
}

func newFrameDigest(objType ObjectType, size int64) *frameDigest {
	d := &frameDigest{
		h:        sha1.New(),
		envelope: []byte(fmt.Sprintf("%s %d\x00", objType, size)),
	}
	d.h.Write(d.envelope)
	return d
}

func (d *frameDigest) Write(p []byte) (int, error) {
	return d.h.Write(p)
}

func (d *frameDigest) Sum() Hash {
	return Hash(hex.EncodeToString(d.h.Sum(nil)))
}
