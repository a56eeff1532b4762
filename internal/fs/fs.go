package fs

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// PathResolver finds absolute paths for project files.
type PathResolver struct {
	root string
}

// NewPathResolver creates a PathResolver anchored at root.
func NewPathResolver(root string) (*PathResolver, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("invalid project root '%s': %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("invalid project root '%s': %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("invalid project root '%s': not a directory", root)
	}
	return &PathResolver{root: abs}, nil
}

// Root returns the absolute project root.
func (r *PathResolver) Root() string {
	return r.root
}

// Resolve joins a project-relative path onto the root. Absolute paths are
// returned unchanged.
func (r *PathResolver) Resolve(relativePath string) string {
	if filepath.IsAbs(relativePath) {
		return relativePath
	}
	return filepath.Join(r.root, relativePath)
}

// Rel makes an absolute path relative to the root for display, falling back
// to the path itself.
func (r *PathResolver) Rel(absPath string) string {
	rel, err := filepath.Rel(r.root, absPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return absPath
	}
	return rel
}

// FindRoot picks the project root: dir when given, otherwise the top level of
// the enclosing git repository, otherwise the working directory.
func FindRoot(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	if root, err := findGitRoot(); err == nil && root != "" {
		return root, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("could not get current working directory: %w", err)
	}
	return wd, nil
}

// findGitRoot finds the root of the git repository.
func findGitRoot() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}

// Digest returns the hex SHA256 of the file at path.
func Digest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
