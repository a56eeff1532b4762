// Package requirements reads pip style requirements files.
package requirements

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode"
)

// Parse returns the dependency specifiers listed in the file at path, in file
// order. Whitespace-only lines and lines starting with '#' are dropped and
// trailing whitespace is removed from the rest.
func Parse(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open requirements file: %w", err)
	}
	defer f.Close()

	return ParseReader(f)
}

// ParseReader is Parse over an already opened reader.
func ParseReader(r io.Reader) ([]string, error) {
	specs := []string{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), math.MaxInt)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		specs = append(specs, strings.TrimRightFunc(line, unicode.IsSpace))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read requirements file: %w", err)
	}
	return specs, nil
}
