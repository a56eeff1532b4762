package version

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LCHCAPITALHUMAIN/ml-toast/model"
)

func TestExtractFrom(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "double quotes", content: "__version__ = \"1.2.3\"\n", want: "1.2.3"},
		{name: "single quotes", content: "__version__ = '0.1.0'\n", want: "0.1.0"},
		{name: "no spaces", content: "__version__='2.0'", want: "2.0"},
		{name: "after docstring", content: "\"\"\"ml_toast.\"\"\"\n\nimport os\n\n__version__ = \"0.0.1\"\n", want: "0.0.1"},
		{name: "first wins", content: "__version__ = \"1\"\n__version__ = \"2\"\n", want: "1"},
		{name: "empty value skipped", content: "__version__ = ''\n__version__ = \"3.1\"\n", want: "3.1"},
		{name: "crlf", content: "__version__ = \"4.0\"\r\n", want: "4.0"},
		{name: "annotated", content: "__version__: str = \"1.0\"\n", want: "1.0"},
		{name: "prefix match", content: "__version_info__ = (1, 2)\n", want: "(1, 2)"},
		{name: "value keeps inner equals", content: "__version__ = \"1.0=rc\"\n", want: "1.0=rc"},
		{name: "long line before", content: "_DATA = \"" + strings.Repeat("A", 70000) + "\"\n__version__ = \"1.2.3\"\n", want: "1.2.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractFrom(strings.NewReader(tt.content), "__init__.py")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractFrom_NotDefined(t *testing.T) {
	tests := map[string]string{
		"empty file":     "",
		"no version":     "import os\n",
		"indented":       "    __version__ = \"1.0\"\n",
		"no assignment":  "__version__\n",
		"only empty":     "__version__ = \"\"\n__version__ =\n",
		"comment before": "# __version__ = \"1.0\"\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ExtractFrom(strings.NewReader(content), "ml_toast/__init__.py")
			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrConfig)
			assert.Contains(t, err.Error(), "ml_toast/__init__.py")
		})
	}
}

func TestExtractFrom_Reason(t *testing.T) {
	_, err := ExtractFrom(strings.NewReader("__version__ = ''\n"), "__init__.py")
	assert.EqualError(t, err, "`__version__` is empty in `__init__.py`")

	_, err = ExtractFrom(strings.NewReader("import os\n"), "__init__.py")
	assert.EqualError(t, err, "`__version__` not defined in `__init__.py`")
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "__init__.py")
	require.NoError(t, os.WriteFile(path, []byte("__version__ = \"1.2.3\"\n"), 0o644))

	got, err := Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", got)
}

func TestExtract_MissingFile(t *testing.T) {
	_, err := Extract(filepath.Join(t.TempDir(), "missing.py"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NotErrorIs(t, err, model.ErrConfig)
}

func TestCheck(t *testing.T) {
	assert.Empty(t, Check("1.2.3"))
	assert.Empty(t, Check("0.1"))
	assert.Empty(t, Check("1.0.0-rc.1"))

	warnings := Check("1.0.dev0")
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "not a semantic version")
}
