package repo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/odvcencio/gitlite/pkg/object"
)

// CreateTag creates or updates a lightweight tag ref under refs/tags/.
func (r *Repo) CreateTag(name string, target object.Hash, force bool) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("create tag: name is required")
	}
	if strings.TrimSpace(string(target)) == "" {
		return fmt.Errorf("create tag: target hash is required")
	}

	refName := "refs/tags/" + name
	if !force && r.refExists(refName) {
		return fmt.Errorf("create tag: tag %q already exists", name)
	}
	if err := r.UpdateRef(refName, target); err != nil {
		return fmt.Errorf("create tag %q: %w", name, err)
	}
	return nil
}

// ListTags returns tag names with their target hashes.
func (r *Repo) ListTags() (map[string]object.Hash, error) {
	refs, err := r.ListRefs("tags")
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	tags := make(map[string]object.Hash, len(refs))
	for name, h := range refs {
		tags[strings.TrimPrefix(name, "tags/")] = h
	}
	return tags, nil
}

// TagNames returns the sorted tag names.
func (r *Repo) TagNames() ([]string, error) {
	tags, err := r.ListTags()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
