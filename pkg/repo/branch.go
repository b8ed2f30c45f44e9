package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/odvcencio/gitlite/pkg/object"
)

// CreateBranch creates a branch ref pointing at the given target hash.
// Returns an error if the branch already exists.
func (r *Repo) CreateBranch(name string, target object.Hash) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("create branch: name is required")
	}
	refName := "refs/heads/" + name
	if r.refExists(refName) {
		return fmt.Errorf("create branch: branch %q already exists", name)
	}
	if err := r.UpdateRef(refName, target); err != nil {
		return fmt.Errorf("create branch %q: %w", name, err)
	}
	return nil
}

// ListBranches returns the branch names under refs/heads, sorted.
func (r *Repo) ListBranches() ([]string, error) {
	refs, err := r.ListRefs("heads")
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	names := make([]string, 0, len(refs))
	for name := range refs {
		names = append(names, strings.TrimPrefix(name, "heads/"))
	}
	sort.Strings(names)
	return names, nil
}

func (r *Repo) refExists(name string) bool {
	info, err := os.Stat(filepath.Join(r.GitDir, filepath.FromSlash(name)))
	return err == nil && !info.IsDir()
}
