package repo

import (
	"bufio"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// IgnoreChecker decides which directory-entry names the snapshot walk
// skips. Patterns come from a .gitliteignore file at the worktree root
// and match bare names, not paths; the walk itself already hard-skips
// dot-prefixed names.
type IgnoreChecker struct {
	patterns []ignorePattern
}

type ignorePattern struct {
	pattern string
	negated bool
	isGlob  bool
}

// NewIgnoreChecker creates an IgnoreChecker for the given worktree
// root. A missing .gitliteignore yields a checker that ignores nothing.
func NewIgnoreChecker(repoRoot string) *IgnoreChecker {
	ic := &IgnoreChecker{}

	f, err := os.Open(filepath.Join(repoRoot, ".gitliteignore"))
	if err != nil {
		return ic
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if p := parseIgnoreLine(scanner.Text()); p != nil {
			ic.patterns = append(ic.patterns, *p)
		}
	}
	return ic
}

// parseIgnoreLine parses a single .gitliteignore line. Returns nil for
// blank lines and comments.
func parseIgnoreLine(line string) *ignorePattern {
	line = strings.TrimRight(line, " \t")
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	p := &ignorePattern{}
	if strings.HasPrefix(line, "!") {
		p.negated = true
		line = line[1:]
	}
	// \# and \! escape a literal leading character.
	if strings.HasPrefix(line, `\#`) || strings.HasPrefix(line, `\!`) {
		line = line[1:]
	}
	// Trailing slash marks a directory pattern; names carry no slash,
	// so it only needs stripping.
	line = strings.TrimSuffix(line, "/")
	if line == "" {
		return nil
	}

	p.pattern = line
	p.isGlob = strings.ContainsAny(line, "*?[")
	return p
}

// IsIgnored reports whether the given entry name matches the patterns.
// The last matching pattern wins, so a negation can re-include a name a
// broader pattern excluded.
func (ic *IgnoreChecker) IsIgnored(name string) bool {
	ignored := false
	for _, p := range ic.patterns {
		if !p.matches(name) {
			continue
		}
		ignored = !p.negated
	}
	return ignored
}

func (p ignorePattern) matches(name string) bool {
	if !p.isGlob {
		return name == p.pattern
	}
	ok, err := path.Match(p.pattern, name)
	return err == nil && ok
}
