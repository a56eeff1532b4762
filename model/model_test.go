package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMetadata() *Metadata {
	return &Metadata{
		Name:        "ml_toast",
		Version:     "0.1.0",
		AuthorEmail: "no-reply@google.com",
		URL:         "https://github.com/google/ml_toast",
		Classifiers: []string{
			"Development Status :: 3 - Alpha",
			"Programming Language :: Python :: 3.9",
		},
	}
}

func TestConfigError(t *testing.T) {
	err := NewConfigError("__version__", "ml_toast/__init__.py")

	assert.True(t, errors.Is(err, ErrConfig))
	assert.Equal(t, "`__version__` not defined in `ml_toast/__init__.py`", err.Error())

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "__version__", cfgErr.Key)
}

func TestConfigError_NoFile(t *testing.T) {
	err := &ConfigError{Key: "package.name", Reason: "is empty"}
	assert.Equal(t, "`package.name` is empty", err.Error())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(m *Metadata)
		wantErr string
	}{
		{name: "valid", mutate: func(*Metadata) {}},
		{name: "optional fields empty", mutate: func(m *Metadata) { m.AuthorEmail = ""; m.URL = "" }},
		{name: "missing name", mutate: func(m *Metadata) { m.Name = "" }, wantErr: "name is required"},
		{name: "missing version", mutate: func(m *Metadata) { m.Version = "" }, wantErr: "version is required"},
		{name: "bad email", mutate: func(m *Metadata) { m.AuthorEmail = "nobody" }, wantErr: "author_email must be a valid email address"},
		{name: "bad url", mutate: func(m *Metadata) { m.URL = "not a url" }, wantErr: "url must be a valid URL"},
		{name: "bad classifier", mutate: func(m *Metadata) { m.Classifiers = append(m.Classifiers, "Alpha") }, wantErr: "is not a trove classifier"},
		{name: "empty classifier segment", mutate: func(m *Metadata) { m.Classifiers = []string{"Topic ::  :: X"} }, wantErr: "is not a trove classifier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMetadata()
			tt.mutate(m)

			err := m.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidMetadata)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRequirementString(t *testing.T) {
	r := Requirement{Raw: "numpy>=1.21  # pinned", Name: "numpy", Specifier: ">=1.21"}
	assert.Equal(t, "numpy>=1.21  # pinned", r.String())
}
