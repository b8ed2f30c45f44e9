package repo

import (
	"strings"
	"testing"

	"github.com/odvcencio/gitlite/pkg/object"
)

const testIdentity = "User <user@example.com> 1700000000 +0000"

// makeTree stores a one-file tree and returns its hash.
func makeTree(t *testing.T, r *Repo, name, content string) object.Hash {
	t.Helper()
	blobHash, err := r.Store.WriteBlob(&object.Blob{Data: []byte(content)})
	if err != nil {
		t.Fatalf("WriteBlob: %v", err)
	}
	treeHash, err := r.Store.WriteTree(&object.TreeObj{Entries: []object.TreeEntry{
		{Mode: object.ModeFile, Name: name, Key: blobHash},
	}})
	if err != nil {
		t.Fatalf("WriteTree: %v", err)
	}
	return treeHash
}

func TestCommitTreeHeaderLayout(t *testing.T) {
	r := tempRepo(t)
	tree := makeTree(t, r, "a.txt", "hello\n")

	c0, err := r.CommitTree(tree, nil, testIdentity, testIdentity, "init", nil)
	if err != nil {
		t.Fatalf("CommitTree: %v", err)
	}
	c1, err := r.CommitTree(tree, []object.Hash{c0}, testIdentity, testIdentity, "second\n", nil)
	if err != nil {
		t.Fatalf("CommitTree: %v", err)
	}

	commit, err := r.Store.ReadCommit(c1)
	if err != nil {
		t.Fatalf("ReadCommit: %v", err)
	}

	keys := make([]string, len(commit.Headers))
	for i, h := range commit.Headers {
		keys[i] = h.Key
	}
	want := []string{"tree", "parent", "author", "committer"}
	if len(keys) != len(want) {
		t.Fatalf("header keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("header keys = %v, want %v", keys, want)
		}
	}

	if commit.Tree() != tree {
		t.Errorf("tree = %s, want %s", commit.Tree(), tree)
	}
	if commit.FirstParent() != c0 {
		t.Errorf("parent = %s, want %s", commit.FirstParent(), c0)
	}
	if commit.Message != "second\n" {
		t.Errorf("message = %q", commit.Message)
	}

	// A message without a trailing newline gains one.
	first, err := r.Store.ReadCommit(c0)
	if err != nil {
		t.Fatalf("ReadCommit: %v", err)
	}
	if first.Message != "init\n" {
		t.Errorf("message = %q, want %q", first.Message, "init\n")
	}
}

func TestCommitTreeValidatesReferences(t *testing.T) {
	r := tempRepo(t)
	tree := makeTree(t, r, "a.txt", "hello\n")

	missing := object.Hash(strings.Repeat("0", 40))
	if _, err := r.CommitTree(missing, nil, testIdentity, testIdentity, "x", nil); err == nil {
		t.Error("expected error for missing tree")
	}
	if _, err := r.CommitTree(tree, []object.Hash{missing}, testIdentity, testIdentity, "x", nil); err == nil {
		t.Error("expected error for missing parent")
	}

	// A blob hash is not a valid tree.
	blobHash, err := r.Store.WriteBlob(&object.Blob{Data: []byte("b")})
	if err != nil {
		t.Fatalf("WriteBlob: %v", err)
	}
	if _, err := r.CommitTree(blobHash, nil, testIdentity, testIdentity, "x", nil); err == nil {
		t.Error("expected error for blob used as tree")
	}
}

func TestCommitTreeSigner(t *testing.T) {
	r := tempRepo(t)
	tree := makeTree(t, r, "a.txt", "hello\n")

	var signed []byte
	signer := func(payload []byte) (string, error) {
		signed = payload
		return "v1 fake pub sig", nil
	}

	h, err := r.CommitTree(tree, nil, testIdentity, testIdentity, "signed commit", signer)
	if err != nil {
		t.Fatalf("CommitTree: %v", err)
	}

	commit, err := r.Store.ReadCommit(h)
	if err != nil {
		t.Fatalf("ReadCommit: %v", err)
	}
	sig, ok := commit.Header(object.SignatureHeader)
	if !ok || sig != "v1 fake pub sig" {
		t.Errorf("signature header = %q, %v", sig, ok)
	}
	if strings.Contains(string(signed), object.SignatureHeader) {
		t.Error("signer saw its own signature header")
	}
	if len(signed) == 0 {
		t.Error("signer received empty payload")
	}
}

func TestLogWalksFirstParents(t *testing.T) {
	r := tempRepo(t)
	t0 := makeTree(t, r, "a.txt", "v0\n")
	t1 := makeTree(t, r, "a.txt", "v1\n")
	t2 := makeTree(t, r, "a.txt", "v2\n")

	c0, err := r.CommitTree(t0, nil, testIdentity, testIdentity, "init", nil)
	if err != nil {
		t.Fatalf("CommitTree: %v", err)
	}
	c1, err := r.CommitTree(t1, []object.Hash{c0}, testIdentity, testIdentity, "second", nil)
	if err != nil {
		t.Fatalf("CommitTree: %v", err)
	}
	// A merge-shaped commit: only the first parent is walked.
	c2, err := r.CommitTree(t2, []object.Hash{c1, c0}, testIdentity, testIdentity, "merge", nil)
	if err != nil {
		t.Fatalf("CommitTree: %v", err)
	}

	entries, err := r.Log(c2, 0)
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	for i, want := range []object.Hash{c2, c1, c0} {
		if entries[i].Hash != want {
			t.Errorf("entry %d = %s, want %s", i, entries[i].Hash, want)
		}
	}
	if entries[0].Commit.Message != "merge\n" {
		t.Errorf("message = %q", entries[0].Commit.Message)
	}

	limited, err := r.Log(c2, 2)
	if err != nil {
		t.Fatalf("Log limited: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limited entries = %d, want 2", len(limited))
	}
}

func TestLogMissingCommit(t *testing.T) {
	r := tempRepo(t)
	if _, err := r.Log(object.Hash(strings.Repeat("0", 40)), 0); err == nil {
		t.Error("expected error walking from a missing commit")
	}
}
