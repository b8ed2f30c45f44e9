package repo

import (
	"fmt"

	"github.com/odvcencio/gitlite/pkg/object"
)

// CommitSigner signs canonical commit payload bytes and returns an
// encoded signature string persisted as an sshsig header.
type CommitSigner func(payload []byte) (string, error)

// CommitTree builds and stores a commit object for an existing tree.
// Headers are emitted in canonical order: tree, parent (per parent),
// author, committer, then the optional signature. The message always
// ends with a newline.
func (r *Repo) CommitTree(tree object.Hash, parents []object.Hash, author, committer, message string, signer CommitSigner) (object.Hash, error) {
	if _, err := r.Store.ReadTree(tree); err != nil {
		return "", fmt.Errorf("commit-tree: tree %s: %w", tree, err)
	}
	for _, p := range parents {
		if _, err := r.Store.ReadCommit(p); err != nil {
			return "", fmt.Errorf("commit-tree: parent %s: %w", p, err)
		}
	}

	c := &object.CommitObj{}
	c.AddHeader("tree", string(tree))
	for _, p := range parents {
		c.AddHeader("parent", string(p))
	}
	c.AddHeader("author", author)
	c.AddHeader("committer", committer)

	if len(message) == 0 || message[len(message)-1] != '\n' {
		message += "\n"
	}
	c.Message = message

	if signer != nil {
		signature, err := signer(object.CommitSigningPayload(c))
		if err != nil {
			return "", fmt.Errorf("commit-tree: sign: %w", err)
		}
		c.AddHeader(object.SignatureHeader, signature)
	}

	h, err := r.Store.WriteCommit(c)
	if err != nil {
		return "", fmt.Errorf("commit-tree: %w", err)
	}
	return h, nil
}

// LogEntry pairs a commit with its own hash so callers can print the
// chain without re-deriving addresses from parent links.
type LogEntry struct {
	Hash   object.Hash
	Commit *object.CommitObj
}

// Log walks the commit history starting from the given hash, following
// first-parent links. Merges present only their first parent. limit of
// zero or less walks to the root.
func (r *Repo) Log(start object.Hash, limit int) ([]LogEntry, error) {
	var entries []LogEntry
	current := start

	for current != "" {
		if limit > 0 && len(entries) >= limit {
			break
		}
		c, err := r.Store.ReadCommit(current)
		if err != nil {
			return nil, fmt.Errorf("log: commit %s: %w", current, err)
		}
		entries = append(entries, LogEntry{Hash: current, Commit: c})
		current = c.FirstParent()
	}

	return entries, nil
}
