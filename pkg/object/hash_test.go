package object

import (
	"bytes"
	"strings"
	"testing"
)

func TestHashBytesDeterminism(t *testing.T) {
	data := []byte("hello world")
	h1 := HashBytes(data)
	h2 := HashBytes(data)
	if h1 != h2 {
		t.Errorf("HashBytes not deterministic: %q != %q", h1, h2)
	}
	if len(h1) != 40 {
		t.Errorf("Hash length: got %d, want 40", len(h1))
	}
}

func TestHashObjectKnownKeys(t *testing.T) {
	tests := []struct {
		name    string
		objType ObjectType
		data    []byte
		want    Hash
	}{
		{"empty blob", TypeBlob, nil, "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391"},
		{"hello blob", TypeBlob, []byte("hello\n"), "ce013625030ba8dba906f756967f9e9ca394464a"},
		{"empty tree", TypeTree, nil, "4b825dc642cb6eb9a060e54bf8d69288fbee4904"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := HashObject(tc.objType, tc.data); got != tc.want {
				t.Errorf("HashObject = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestHashObjectEnvelope(t *testing.T) {
	data := []byte("hello")
	h1 := HashObject(TypeBlob, data)
	h2 := HashBytes(data)
	if h1 == h2 {
		t.Error("HashObject should differ from HashBytes due to envelope")
	}

	h3 := HashObject(TypeTree, data)
	if h1 == h3 {
		t.Error("Different types should produce different hashes")
	}
}

func TestHashStream(t *testing.T) {
	data := []byte("hello\n")
	h, err := HashStream(TypeBlob, int64(len(data)), bytes.NewReader(data))
	if err != nil {
		t.Fatalf("HashStream: %v", err)
	}
	if want := HashObject(TypeBlob, data); h != want {
		t.Errorf("HashStream = %s, want %s", h, want)
	}
}

func TestHashStreamLargePayload(t *testing.T) {
	data := bytes.Repeat([]byte("abcdefgh"), 10000) // crosses several chunk boundaries
	h, err := HashStream(TypeBlob, int64(len(data)), bytes.NewReader(data))
	if err != nil {
		t.Fatalf("HashStream: %v", err)
	}
	if want := HashObject(TypeBlob, data); h != want {
		t.Errorf("HashStream = %s, want %s", h, want)
	}
}

func TestHashStreamSizeMismatch(t *testing.T) {
	data := []byte("hello\n")
	if _, err := HashStream(TypeBlob, int64(len(data))+1, bytes.NewReader(data)); err == nil {
		t.Error("expected error for declared size larger than payload")
	}
}

func TestHashRawRoundTrip(t *testing.T) {
	h := HashObject(TypeBlob, []byte("raw round trip"))
	raw, err := h.Raw()
	if err != nil {
		t.Fatalf("Raw: %v", err)
	}
	if len(raw) != RawHashSize {
		t.Fatalf("raw length: got %d, want %d", len(raw), RawHashSize)
	}
	if got := HashFromRaw(raw); got != h {
		t.Errorf("HashFromRaw(Raw()) = %s, want %s", got, h)
	}
}

func TestHashRawRejectsMalformed(t *testing.T) {
	for _, h := range []Hash{"", "xyz", Hash(strings.Repeat("a", 39)), Hash(strings.Repeat("g", 40))} {
		if _, err := h.Raw(); err == nil {
			t.Errorf("Raw(%q): expected error", h)
		}
	}
}
