package object

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------------
// Blob
// ---------------------------------------------------------------------------

// MarshalBlob serializes a Blob to raw bytes (identity).
func MarshalBlob(b *Blob) []byte {
	out := make([]byte, len(b.Data))
	copy(out, b.Data)
	return out
}

// UnmarshalBlob deserializes raw bytes into a Blob.
func UnmarshalBlob(data []byte) (*Blob, error) {
	out := make([]byte, len(data))
	copy(out, data)
	return &Blob{Data: out}, nil
}

// ---------------------------------------------------------------------------
// TreeObj
// ---------------------------------------------------------------------------

// MarshalTree serializes a TreeObj. Entries are sorted by Name for
// deterministic output. Each entry is:
//
//	mode-octal SP name NUL hash-raw-20
//
// The mode is emitted without leading zeros. Names must be non-empty and
// contain neither NUL nor '/'.
func MarshalTree(tr *TreeObj) ([]byte, error) {
	sorted := make([]TreeEntry, len(tr.Entries))
	copy(sorted, tr.Entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	var buf bytes.Buffer
	for _, e := range sorted {
		if e.Name == "" {
			return nil, fmt.Errorf("marshal tree: empty entry name")
		}
		if strings.ContainsAny(e.Name, "\x00/") {
			return nil, fmt.Errorf("marshal tree: invalid entry name %q", e.Name)
		}
		raw, err := e.Key.Raw()
		if err != nil {
			return nil, fmt.Errorf("marshal tree: entry %q: %w", e.Name, err)
		}
		buf.WriteString(strconv.FormatUint(uint64(e.Mode), 8))
		buf.WriteByte(' ')
		buf.WriteString(e.Name)
		buf.WriteByte(0)
		buf.Write(raw)
	}
	return buf.Bytes(), nil
}

// UnmarshalTree parses a TreeObj from its serialized form. Parsing is
// strict: a malformed mode, a missing NUL, a truncated hash, or any
// leftover byte is an error.
func UnmarshalTree(data []byte) (*TreeObj, error) {
	tr := &TreeObj{}
	pos := 0
	for pos < len(data) {
		sp := bytes.IndexByte(data[pos:], ' ')
		if sp < 0 {
			return nil, fmt.Errorf("unmarshal tree: no space after mode at offset %d", pos)
		}
		modeStr := string(data[pos : pos+sp])
		mode, err := parseTreeMode(modeStr)
		if err != nil {
			return nil, fmt.Errorf("unmarshal tree: offset %d: %w", pos, err)
		}
		pos += sp + 1

		nul := bytes.IndexByte(data[pos:], 0)
		if nul < 0 {
			return nil, fmt.Errorf("unmarshal tree: no NUL after name at offset %d", pos)
		}
		if nul == 0 {
			return nil, fmt.Errorf("unmarshal tree: empty entry name at offset %d", pos)
		}
		name := string(data[pos : pos+nul])
		pos += nul + 1

		if pos+RawHashSize > len(data) {
			return nil, fmt.Errorf("unmarshal tree: truncated hash for entry %q", name)
		}
		key := HashFromRaw(data[pos : pos+RawHashSize])
		pos += RawHashSize

		tr.Entries = append(tr.Entries, TreeEntry{Mode: mode, Name: name, Key: key})
	}
	return tr, nil
}

// parseTreeMode interprets an ASCII digit run as an octal mode.
func parseTreeMode(s string) (uint32, error) {
	if s == "" {
		return 0, fmt.Errorf("empty mode")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("mode %q contains non-digit", s)
		}
	}
	mode, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("mode %q: %w", s, err)
	}
	return uint32(mode), nil
}

// ---------------------------------------------------------------------------
// CommitObj
// ---------------------------------------------------------------------------

// MarshalCommit serializes a CommitObj:
//
//	key value\n   (per header, insertion order)
//	\n
//	message
//
// A value holding newlines is written back raw, reproducing the
// continuation lines it was parsed from.
func MarshalCommit(c *CommitObj) []byte {
	var buf bytes.Buffer
	for _, h := range c.Headers {
		buf.WriteString(h.Key)
		buf.WriteByte(' ')
		buf.WriteString(h.Value)
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.WriteString(c.Message)
	return buf.Bytes()
}

// UnmarshalCommit parses a CommitObj from its serialized form. Headers
// end at the first empty line; everything after it is the message. A
// header line without a space continues the previous header's value,
// joined with a newline so the original bytes survive a round-trip.
func UnmarshalCommit(data []byte) (*CommitObj, error) {
	c := &CommitObj{}
	rest := data
	for {
		nl := bytes.IndexByte(rest, '\n')
		if nl < 0 {
			return nil, fmt.Errorf("unmarshal commit: missing header/message separator")
		}
		line := rest[:nl]
		rest = rest[nl+1:]

		if len(line) == 0 {
			break
		}

		sp := bytes.IndexByte(line, ' ')
		if sp < 0 {
			if len(c.Headers) == 0 {
				return nil, fmt.Errorf("unmarshal commit: continuation line %q before any header", line)
			}
			last := &c.Headers[len(c.Headers)-1]
			last.Value += "\n" + string(line)
			continue
		}
		c.Headers = append(c.Headers, CommitHeader{
			Key:   string(line[:sp]),
			Value: string(line[sp+1:]),
		})
	}
	c.Message = string(rest)
	return c, nil
}
