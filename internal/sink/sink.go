package sink

import (
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
)

// Sink delivers rendered metadata to stdout and, optionally, the clipboard.
type Sink struct {
	out         io.Writer
	toClipboard bool
	clipboard   func(string) error
}

// New creates a Sink writing to stdout.
func New(copyToClipboard bool) *Sink {
	return &Sink{out: os.Stdout, toClipboard: copyToClipboard, clipboard: clipboard.WriteAll}
}

// NewWithWriter creates a Sink writing to w.
func NewWithWriter(w io.Writer, copyToClipboard bool) *Sink {
	s := New(copyToClipboard)
	s.out = w
	return s
}

// IsTerminal reports whether stdout is attached to a terminal.
func IsTerminal() bool {
	stat, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// Write prints content and copies it when the sink was asked to. It reports
// whether the clipboard now holds the content.
func (s *Sink) Write(content string) (copied bool, err error) {
	if _, err := io.WriteString(s.out, content); err != nil {
		return false, fmt.Errorf("failed to write output: %w", err)
	}
	if !s.toClipboard {
		return false, nil
	}
	if clipboard.Unsupported {
		return false, fmt.Errorf("failed to copy to clipboard: no clipboard utility available")
	}
	if err := s.clipboard(content); err != nil {
		return false, fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return true, nil
}
