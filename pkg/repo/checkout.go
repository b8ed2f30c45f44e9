package repo

import (
	"fmt"

	"github.com/odvcencio/gitlite/pkg/object"
)

// Checkout resolves name to a commit, restores that commit's tree into
// the worktree, and detaches HEAD at the resolved hash. Files present
// in the worktree but absent from the target tree are not removed.
func (r *Repo) Checkout(name string) (object.Hash, error) {
	commitHash, err := r.ResolveRef(name)
	if err != nil {
		return "", fmt.Errorf("checkout: %w", err)
	}

	commit, err := r.Store.ReadCommit(commitHash)
	if err != nil {
		return "", fmt.Errorf("checkout: commit %s: %w", commitHash, err)
	}

	treeHash := commit.Tree()
	if treeHash == "" {
		return "", fmt.Errorf("checkout: commit %s has no tree header", commitHash)
	}

	if err := r.ReadTree(treeHash, r.RootDir); err != nil {
		return "", fmt.Errorf("checkout: %w", err)
	}

	if err := r.DetachHead(commitHash); err != nil {
		return "", fmt.Errorf("checkout: %w", err)
	}
	return commitHash, nil
}
