// Package render turns collected metadata into its output formats.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/LCHCAPITALHUMAIN/ml-toast/model"
)

// Format names an output format.
type Format string

const (
	FormatPretty  Format = "pretty"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatPkgInfo Format = "pkg-info"
)

// Formats lists the accepted --format values.
var Formats = []Format{FormatPretty, FormatJSON, FormatYAML, FormatPkgInfo}

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return "", fmt.Errorf("unknown format '%s' (want one of: %s)", s, strings.Join(names, ", "))
}

// Render dispatches to the renderer for f.
func Render(m *model.Metadata, f Format) (string, error) {
	switch f {
	case FormatJSON:
		return JSON(m)
	case FormatYAML:
		return YAML(m)
	case FormatPkgInfo:
		return PkgInfo(m), nil
	case FormatPretty, "":
		return Pretty(m), nil
	default:
		return "", fmt.Errorf("unknown format '%s'", f)
	}
}

// JSON renders indented JSON with a trailing newline.
func JSON(m *model.Metadata) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return "", fmt.Errorf("failed to encode json: %w", err)
	}
	return buf.String(), nil
}

// YAML renders the metadata as a YAML document.
func YAML(m *model.Metadata) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return "", fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to encode yaml: %w", err)
	}
	return buf.String(), nil
}
