package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/odvcencio/gitlite/pkg/object"
)

// IgnoreFunc decides whether a directory entry name is excluded from a
// snapshot. Names starting with "." are always skipped regardless of
// the predicate.
type IgnoreFunc func(name string) bool

// WriteTree snapshots dir into the object store: regular files become
// blobs (streamed, mode 100644), subdirectories become subtrees (mode
// 40000). Entries are sorted by name bytes before the tree is written,
// so identical directory contents always yield the identical tree hash.
// Symlinks, devices, and other special entries are skipped.
func (r *Repo) WriteTree(dir string, isIgnored IgnoreFunc) (object.Hash, error) {
	children, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("write tree %q: %w", dir, err)
	}

	var entries []object.TreeEntry
	for _, child := range children {
		name := child.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if isIgnored != nil && isIgnored(name) {
			continue
		}

		full := filepath.Join(dir, name)
		switch {
		case child.IsDir():
			subHash, err := r.WriteTree(full, isIgnored)
			if err != nil {
				return "", err
			}
			entries = append(entries, object.TreeEntry{
				Mode: object.ModeDir,
				Name: name,
				Key:  subHash,
			})
		case child.Type().IsRegular():
			blobHash, err := r.writeBlobFile(full)
			if err != nil {
				return "", fmt.Errorf("write tree %q: %w", dir, err)
			}
			entries = append(entries, object.TreeEntry{
				Mode: object.ModeFile,
				Name: name,
				Key:  blobHash,
			})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	h, err := r.Store.WriteTree(&object.TreeObj{Entries: entries})
	if err != nil {
		return "", fmt.Errorf("write tree %q: %w", dir, err)
	}
	return h, nil
}

// writeBlobFile streams one regular file into the store as a blob.
func (r *Repo) writeBlobFile(path string) (object.Hash, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	return r.Store.WriteStream(object.TypeBlob, info.Size(), f)
}

// ReadTree restores the tree object at treeHash under basePath:
// directories are created idempotently and recursed into, blobs are
// written truncating any existing file. Files present under basePath
// but absent from the tree are left alone.
func (r *Repo) ReadTree(treeHash object.Hash, basePath string) error {
	tree, err := r.Store.ReadTree(treeHash)
	if err != nil {
		return fmt.Errorf("read tree %s: %w", treeHash, err)
	}

	for _, entry := range tree.Entries {
		dest := filepath.Join(basePath, entry.Name)
		if entry.IsDir() {
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return fmt.Errorf("read tree: mkdir %q: %w", dest, err)
			}
			if err := r.ReadTree(entry.Key, dest); err != nil {
				return err
			}
			continue
		}

		blob, err := r.Store.ReadBlob(entry.Key)
		if err != nil {
			return fmt.Errorf("read tree: blob for %q: %w", entry.Name, err)
		}
		if err := os.WriteFile(dest, blob.Data, filePermFromMode(entry.Mode)); err != nil {
			return fmt.Errorf("read tree: write %q: %w", dest, err)
		}
	}
	return nil
}
