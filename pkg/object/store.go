package object

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Store is a content-addressed object store with a 2-character fan-out
// directory layout: objects/ab/cdef0123... Each file is the zlib stream
// of "type len\0content".
type Store struct {
	root string
}

// NewStore creates a Store rooted at the given gitdir. The objects/
// subdirectory is created lazily on first write.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// objectPath returns the filesystem path for a given hash.
func (s *Store) objectPath(h Hash) string {
	return filepath.Join(s.root, "objects", string(h[:2]), string(h[2:]))
}

// Has reports whether the store contains an object with the given hash.
func (s *Store) Has(h Hash) bool {
	if len(h) < 3 {
		return false
	}
	_, err := os.Stat(s.objectPath(h))
	return err == nil
}

// Write stores an object and returns its content hash. The store is
// write-once per hash: an object that already exists is left untouched.
func (s *Store) Write(objType ObjectType, data []byte) (Hash, error) {
	h := HashObject(objType, data)

	// Fast path: already exists.
	if s.Has(h) {
		return h, nil
	}

	got, err := s.WriteStream(objType, int64(len(data)), bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	if got != h {
		return "", fmt.Errorf("object write: hash drift (%s != %s)", got, h)
	}
	return h, nil
}

// WriteStream stores an object read from r in a single pass, feeding the
// digest and the compressor chunk by chunk so large blobs never live in
// memory whole. size must be the exact payload length (it is part of the
// envelope). Writes are atomic: data lands in a temp file which is then
// renamed into place.
func (s *Store) WriteStream(objType ObjectType, size int64, r io.Reader) (Hash, error) {
	objectsDir := filepath.Join(s.root, "objects")
	if err := os.MkdirAll(objectsDir, 0o755); err != nil {
		return "", fmt.Errorf("object write mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(objectsDir, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("object write tmpfile: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	zw, err := newDeflateWriter(tmp)
	if err != nil {
		cleanup()
		return "", fmt.Errorf("object write: %w", err)
	}

	digest := newFrameDigest(objType, size)
	if _, err := zw.Write(digest.envelope); err != nil {
		cleanup()
		return "", fmt.Errorf("object write: %w", err)
	}

	n, err := io.CopyBuffer(io.MultiWriter(digest, zw), r, make([]byte, compressChunkSize))
	if err != nil {
		cleanup()
		return "", fmt.Errorf("object write: %w", err)
	}
	if n != size {
		cleanup()
		return "", fmt.Errorf("object write: read %d bytes, declared %d", n, size)
	}

	if err := zw.Close(); err != nil {
		cleanup()
		return "", fmt.Errorf("object write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("object write close: %w", err)
	}

	h := digest.Sum()
	if s.Has(h) {
		// Content-equal by construction; keep the existing file.
		os.Remove(tmpName)
		return h, nil
	}

	if err := os.MkdirAll(filepath.Join(objectsDir, string(h[:2])), 0o755); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("object write mkdir: %w", err)
	}
	if err := os.Rename(tmpName, s.objectPath(h)); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("object write rename: %w", err)
	}
	return h, nil
}

// Read retrieves an object by hash, returning its type and raw content.
// A missing file is ErrNotFound; a bad zlib stream, malformed envelope,
// or size mismatch is ErrCorrupt.
func (s *Store) Read(h Hash) (ObjectType, []byte, error) {
	if len(h) < 3 {
		return "", nil, fmt.Errorf("object read %q: %w", h, ErrNotFound)
	}
	compressed, err := os.ReadFile(s.objectPath(h))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("object read %s: %w", h, ErrNotFound)
		}
		return "", nil, fmt.Errorf("object read %s: %w", h, err)
	}

	raw, err := Inflate(compressed)
	if err != nil {
		return "", nil, fmt.Errorf("object read %s: %w", h, err)
	}

	// Parse envelope: "type len\0content"
	spIdx := bytes.IndexByte(raw, ' ')
	if spIdx < 0 {
		return "", nil, fmt.Errorf("object read %s: %w: no space in header", h, ErrCorrupt)
	}
	nulIdx := bytes.IndexByte(raw[spIdx+1:], 0)
	if nulIdx < 0 {
		return "", nil, fmt.Errorf("object read %s: %w: no NUL in header", h, ErrCorrupt)
	}
	nulIdx += spIdx + 1

	objType := ObjectType(raw[:spIdx])
	length, err := strconv.Atoi(string(raw[spIdx+1 : nulIdx]))
	if err != nil {
		return "", nil, fmt.Errorf("object read %s: %w: bad length %q", h, ErrCorrupt, raw[spIdx+1:nulIdx])
	}
	content := raw[nulIdx+1:]
	if len(content) != length {
		return "", nil, fmt.Errorf("object read %s: %w: length mismatch (header=%d, actual=%d)", h, ErrCorrupt, length, len(content))
	}

	return objType, content, nil
}

// ---------------------------------------------------------------------------
// Typed convenience methods
// ---------------------------------------------------------------------------

func (s *Store) readKind(h Hash, want ObjectType) ([]byte, error) {
	objType, data, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if objType != want {
		return nil, fmt.Errorf("object %s: %w: got %q, want %q", h, ErrKindMismatch, objType, want)
	}
	return data, nil
}

// WriteBlob serializes and stores a Blob.
func (s *Store) WriteBlob(b *Blob) (Hash, error) {
	return s.Write(TypeBlob, MarshalBlob(b))
}

// ReadBlob reads and deserializes a Blob.
func (s *Store) ReadBlob(h Hash) (*Blob, error) {
	data, err := s.readKind(h, TypeBlob)
	if err != nil {
		return nil, err
	}
	return UnmarshalBlob(data)
}

// WriteTree serializes and stores a TreeObj.
func (s *Store) WriteTree(tr *TreeObj) (Hash, error) {
	data, err := MarshalTree(tr)
	if err != nil {
		return "", err
	}
	return s.Write(TypeTree, data)
}

// ReadTree reads and deserializes a TreeObj.
func (s *Store) ReadTree(h Hash) (*TreeObj, error) {
	data, err := s.readKind(h, TypeTree)
	if err != nil {
		return nil, err
	}
	tr, err := UnmarshalTree(data)
	if err != nil {
		return nil, fmt.Errorf("object %s: %w: %v", h, ErrCorrupt, err)
	}
	return tr, nil
}

// WriteCommit serializes and stores a CommitObj.
func (s *Store) WriteCommit(c *CommitObj) (Hash, error) {
	return s.Write(TypeCommit, MarshalCommit(c))
}

// ReadCommit reads and deserializes a CommitObj.
func (s *Store) ReadCommit(h Hash) (*CommitObj, error) {
	data, err := s.readKind(h, TypeCommit)
	if err != nil {
		return nil, err
	}
	c, err := UnmarshalCommit(data)
	if err != nil {
		return nil, fmt.Errorf("object %s: %w: %v", h, ErrCorrupt, err)
	}
	return c, nil
}

// ParseObjectType validates a caller-supplied kind string before it is
// used for a store lookup.
func ParseObjectType(s string) (ObjectType, error) {
	switch t := ObjectType(strings.TrimSpace(s)); t {
	case TypeBlob, TypeTree, TypeCommit:
		return t, nil
	default:
		return "", fmt.Errorf("unknown object type %q", s)
	}
}
