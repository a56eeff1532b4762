// Package version reads the version string a Python package declares in its
// source and lints it against semantic versioning.
package version

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/LCHCAPITALHUMAIN/ml-toast/model"
)

// Key is the assignment target that declares a package version.
const Key = "__version__"

// cutset is stripped from both ends of the assigned value.
const cutset = " '\"\r\n"

// Extract returns the version declared in the file at path.
func Extract(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open version file: %w", err)
	}
	defer f.Close()

	return ExtractFrom(f, path)
}

// ExtractFrom scans r for the first `__version__ = ...` line with a non-empty
// value. name is only used in the error.
func ExtractFrom(r io.Reader, name string) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), math.MaxInt)
	sawEmpty := false
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, Key) {
			continue
		}
		_, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		if v := strings.Trim(value, cutset); v != "" {
			return v, nil
		}
		sawEmpty = true
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read version file: %w", err)
	}
	if sawEmpty {
		return "", &model.ConfigError{Key: Key, File: name, Reason: "is empty"}
	}
	return "", model.NewConfigError(Key, name)
}

// Check reports why v is not a semantic version. It returns nil for versions
// semver accepts, including the short "1.2" form.
func Check(v string) []string {
	if _, err := semver.NewVersion(v); err != nil {
		return []string{fmt.Sprintf("version %q is not a semantic version: %v", v, err)}
	}
	return nil
}
