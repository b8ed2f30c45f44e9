package repo

import (
	"os"
	"path/filepath"
	"testing"
)

func checkerWithFile(t *testing.T, content string) *IgnoreChecker {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".gitliteignore"), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return NewIgnoreChecker(dir)
}

func TestIgnoreCheckerMissingFile(t *testing.T) {
	ic := NewIgnoreChecker(t.TempDir())
	if ic.IsIgnored("anything") {
		t.Error("empty checker should ignore nothing")
	}
}

func TestIgnoreCheckerPatterns(t *testing.T) {
	ic := checkerWithFile(t, `
# build output
build
*.log
target/

!important.log
`)

	tests := []struct {
		name string
		want bool
	}{
		{"build", true},
		{"builder", false},
		{"debug.log", true},
		{"important.log", false}, // negation wins, it is the later pattern
		{"target", true},
		{"source.txt", false},
	}

	for _, tc := range tests {
		if got := ic.IsIgnored(tc.name); got != tc.want {
			t.Errorf("IsIgnored(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestIgnoreCheckerGlobs(t *testing.T) {
	ic := checkerWithFile(t, "*.tmp\nsnap?\n[abc].bin\n")

	tests := []struct {
		name string
		want bool
	}{
		{"x.tmp", true},
		{"x.tmpx", false},
		{"snap1", true},
		{"snap12", false},
		{"a.bin", true},
		{"d.bin", false},
	}

	for _, tc := range tests {
		if got := ic.IsIgnored(tc.name); got != tc.want {
			t.Errorf("IsIgnored(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestIgnoreCheckerEscapedLeadingChars(t *testing.T) {
	ic := checkerWithFile(t, "\\#literal\n\\!bang\n")
	if !ic.IsIgnored("#literal") {
		t.Error("escaped # pattern should match a literal name")
	}
	if !ic.IsIgnored("!bang") {
		t.Error("escaped ! pattern should match a literal name")
	}
}
