package fs

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// packageMarker makes a directory an importable Python package.
const packageMarker = "__init__.py"

// FindPackages lists the dotted names of all packages under root. A directory
// is a package when it holds __init__.py and every directory between it and
// root is a package too. Directory names containing a dot are never packages.
// Symlinked directories are followed, each real directory is scanned once,
// and subdirectories that cannot be read are skipped.
// Names matching an exclude pattern (path.Match syntax) are dropped, but their
// subpackages are still scanned: excluding "tests" keeps "tests.unit" unless
// "tests.*" is excluded as well.
func FindPackages(root string, exclude []string) ([]string, error) {
	for _, pattern := range exclude {
		if _, err := path.Match(pattern, ""); err != nil {
			return nil, fmt.Errorf("invalid exclude pattern '%s': %w", pattern, err)
		}
	}
	if _, err := os.ReadDir(root); err != nil {
		return nil, fmt.Errorf("failed to scan packages: %w", err)
	}

	s := &packageScan{exclude: exclude, visited: make(map[string]bool)}
	s.walk(root, "")

	sort.Strings(s.packages)
	return s.packages, nil
}

type packageScan struct {
	exclude  []string
	visited  map[string]bool
	packages []string
}

func (s *packageScan) walk(dir, prefix string) {
	real, err := filepath.EvalSymlinks(dir)
	if err != nil || s.visited[real] {
		return
	}
	s.visited[real] = true

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if strings.Contains(name, ".") {
			continue
		}
		p := filepath.Join(dir, name)
		// os.Stat follows symlinks, unlike entry.IsDir.
		if info, err := os.Stat(p); err != nil || !info.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(p, packageMarker)); err != nil {
			// Not a package, so nothing below it is importable either.
			continue
		}

		dotted := name
		if prefix != "" {
			dotted = prefix + "." + name
		}
		if !excluded(dotted, s.exclude) {
			s.packages = append(s.packages, dotted)
		}
		s.walk(p, dotted)
	}
}

func excluded(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := path.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
