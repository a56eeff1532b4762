package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/LCHCAPITALHUMAIN/ml-toast/model"
)

func sample() *model.Metadata {
	return &model.Metadata{
		Name:                       "ml_toast",
		Version:                    "0.1.0",
		Description:                "Package for multilingual topic clustering",
		LongDescription:            "# ML-ToAST\n\nTopic clustering.\n",
		LongDescriptionContentType: "text/markdown",
		Author:                     "Google LLC",
		AuthorEmail:                "no-reply@google.com",
		License:                    "Apache 2.0",
		URL:                        "https://github.com/google/ml_toast",
		Classifiers:                []string{"Development Status :: 3 - Alpha"},
		Packages:                   []string{"ml_toast"},
		InstallRequires:            []string{"absl-py", "numpy>=1.21"},
		Readme:                     model.ReadmeInfo{Found: true, Path: "README.md", Title: "ML-ToAST"},
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		got, err := ParseFormat(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	got, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, got)

	_, err = ParseFormat("toml")
	assert.ErrorContains(t, err, "pkg-info")
}

func TestJSON(t *testing.T) {
	out, err := JSON(sample())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "ml_toast", decoded["name"])
	assert.Equal(t, "text/markdown", decoded["long_description_content_type"])
	assert.Equal(t, []any{"absl-py", "numpy>=1.21"}, decoded["install_requires"])
	assert.NotContains(t, decoded, "warnings")
	assert.Contains(t, out, "numpy>=1.21", "html escaping must be off")
}

func TestYAML(t *testing.T) {
	out, err := YAML(sample())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "0.1.0", decoded["version"])
	assert.Equal(t, "https://github.com/google/ml_toast", decoded["url"])
}

func TestPkgInfo(t *testing.T) {
	out := PkgInfo(sample())

	want := strings.Join([]string{
		"Metadata-Version: 2.1",
		"Name: ml_toast",
		"Version: 0.1.0",
		"Summary: Package for multilingual topic clustering",
		"Home-page: https://github.com/google/ml_toast",
		"Author: Google LLC",
		"Author-email: no-reply@google.com",
		"License: Apache 2.0",
		"Classifier: Development Status :: 3 - Alpha",
		"Requires-Dist: absl-py",
		"Requires-Dist: numpy>=1.21",
		"Description-Content-Type: text/markdown",
		"",
		"# ML-ToAST",
		"",
		"Topic clustering.",
		"",
	}, "\n")
	assert.Equal(t, want, out)
}

func TestPkgInfo_RequiresDist(t *testing.T) {
	m := &model.Metadata{Name: "x", Version: "1", InstallRequires: []string{
		"-r base.txt",
		"numpy>=1.21  # pinned",
		"pandas [excel] == 1.3.5 ; python_version >= \"3.8\"",
	}}
	out := PkgInfo(m)

	assert.NotContains(t, out, "base.txt")
	assert.NotContains(t, out, "#")
	assert.Contains(t, out, "Requires-Dist: numpy>=1.21\n")
	assert.Contains(t, out, "Requires-Dist: pandas[excel]==1.3.5; python_version >= \"3.8\"\n")
}

func TestPkgInfo_OmitsEmpty(t *testing.T) {
	out := PkgInfo(&model.Metadata{Name: "x", Version: "1", License: "MIT\nsee LICENSE"})

	assert.NotContains(t, out, "Summary:")
	assert.NotContains(t, out, "Author:")
	assert.Contains(t, out, "License: MIT\n        see LICENSE\n")
	assert.False(t, strings.HasSuffix(out, "\n\n"))
}

func TestPretty(t *testing.T) {
	m := sample()
	m.Warnings = []string{`version "0.1.0" looks odd`}
	out := Pretty(m)

	assert.Contains(t, out, "ml_toast 0.1.0")
	assert.Contains(t, out, "Google LLC <no-reply@google.com>")
	assert.Contains(t, out, "README.md (ML-ToAST)")
	assert.Contains(t, out, "Requirements (2):")
	assert.Contains(t, out, "numpy>=1.21")
	assert.Contains(t, out, "Warnings (1):")
}

func TestPretty_Empty(t *testing.T) {
	out := Pretty(&model.Metadata{Name: "x", Version: "1"})
	assert.Contains(t, out, "not found")
	assert.Contains(t, out, "Packages (0):")
	assert.NotContains(t, out, "Warnings")
}

func TestRender(t *testing.T) {
	for _, f := range append(Formats, "") {
		out, err := Render(sample(), f)
		require.NoError(t, err)
		assert.Contains(t, out, "ml_toast")
	}

	_, err := Render(sample(), "toml")
	assert.Error(t, err)
}
