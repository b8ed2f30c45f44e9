package repo

import (
	"github.com/odvcencio/gitlite/pkg/object"
)

// Repo represents an opened repository: a worktree plus its .git
// directory and the object store living inside it.
type Repo struct {
	RootDir string        // working directory root
	GitDir  string        // .git/ directory
	Store   *object.Store // content-addressed object store
}
