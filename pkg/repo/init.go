package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/odvcencio/gitlite/pkg/object"
)

// ErrNotARepository means no .git directory was found at or above the
// given path.
var ErrNotARepository = errors.New("not a git repository")

// defaultConfig is the config block written at init. The core never
// interprets it; it exists so the layout matches the canonical one.
const defaultConfig = "[core]\n" +
	"\trepositoryformatversion = 0\n" +
	"\tfilemode = true\n" +
	"\tbare = false\n" +
	"\tlogallrefupdates = true\n"

const defaultHead = "ref: refs/heads/master\n"

// Init creates a new repository at path. It builds the .git/ skeleton:
// objects/, refs/heads/, refs/tags/, branches/, a default config, and a
// HEAD pointing at refs/heads/master. Re-running init on an existing
// repository recreates any missing directories and rewrites config with
// the default block; an existing HEAD and existing objects are kept.
func Init(path string) (*Repo, error) {
	gitDir := filepath.Join(path, ".git")

	if info, err := os.Stat(gitDir); err == nil && !info.IsDir() {
		return nil, fmt.Errorf("init: %s exists and is not a directory", gitDir)
	}

	dirs := []string{
		filepath.Join(gitDir, "objects"),
		filepath.Join(gitDir, "refs", "heads"),
		filepath.Join(gitDir, "refs", "tags"),
		filepath.Join(gitDir, "branches"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("init: mkdir %s: %w", d, err)
		}
	}

	if err := os.WriteFile(filepath.Join(gitDir, "config"), []byte(defaultConfig), 0o644); err != nil {
		return nil, fmt.Errorf("init: write config: %w", err)
	}

	headPath := filepath.Join(gitDir, "HEAD")
	if _, err := os.Stat(headPath); os.IsNotExist(err) {
		if err := os.WriteFile(headPath, []byte(defaultHead), 0o644); err != nil {
			return nil, fmt.Errorf("init: write HEAD: %w", err)
		}
	}

	return &Repo{
		RootDir: path,
		GitDir:  gitDir,
		Store:   object.NewStore(gitDir),
	}, nil
}

// Open searches upward from path for a .git/ directory and opens the
// repository.
func Open(path string) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open: abs path: %w", err)
	}

	cur := abs
	for {
		gitDir := filepath.Join(cur, ".git")
		info, err := os.Stat(gitDir)
		if err == nil && info.IsDir() {
			return &Repo{
				RootDir: cur,
				GitDir:  gitDir,
				Store:   object.NewStore(gitDir),
			}, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, fmt.Errorf("open %s: %w (or any parent up to /)", abs, ErrNotARepository)
		}
		cur = parent
	}
}
