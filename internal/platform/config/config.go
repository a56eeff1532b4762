// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	// FileName is the project-local config file looked up in the project root.
	FileName = ".pkgmeta.yaml"

	// EnvPrefix prefixes environment overrides, e.g. PKGMETA_PACKAGE_NAME.
	EnvPrefix = "PKGMETA_"

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 10

	// DefaultLogFileMaxBackups is the default number of old log files to retain.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max days to retain old log files.
	DefaultLogFileMaxAgeDays = 28
)

// Config is the root configuration structure.
type Config struct {
	Package PackageConfig `koanf:"package" validate:"required"`
	Layout  LayoutConfig  `koanf:"layout"  validate:"required"`
	Log     LogConfig     `koanf:"log"     validate:"required"`
}

// PackageConfig holds the static distribution metadata.
type PackageConfig struct {
	Name        string   `koanf:"name"         validate:"required"`
	Description string   `koanf:"description"`
	Author      string   `koanf:"author"`
	AuthorEmail string   `koanf:"author_email" validate:"omitempty,email"`
	License     string   `koanf:"license"`
	URL         string   `koanf:"url"          validate:"omitempty,url"`
	Classifiers []string `koanf:"classifiers"`
	Exclude     []string `koanf:"exclude"`
}

// LayoutConfig locates the files metadata is read from, relative to the project root.
type LayoutConfig struct {
	// VersionFile defaults to <package.name>/__init__.py when empty.
	VersionFile  string `koanf:"version_file"`
	Readme       string `koanf:"readme"       validate:"required"`
	Requirements string `koanf:"requirements" validate:"required"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// VersionFile returns the file that declares __version__.
func (c *Config) VersionFile() string {
	if c.Layout.VersionFile != "" {
		return c.Layout.VersionFile
	}
	return filepath.Join(c.Package.Name, "__init__.py")
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"package.name":         "ml_toast",
		"package.description":  "Package for multilingual topic clustering",
		"package.author":       "Google LLC",
		"package.author_email": "no-reply@google.com",
		"package.license":      "Apache 2.0",
		"package.url":          "https://github.com/google/ml_toast",
		"package.classifiers": []string{
			"Development Status :: 3 - Alpha",
			"Intended Audience :: Developers",
			"Intended Audience :: Science/Research",
			"License :: OSI Approved :: Apache Software License",
			"Topic :: Scientific/Engineering :: Mathematics",
			"Programming Language :: Python :: 3.9",
		},
		"package.exclude": []string{},

		"layout.version_file": "",
		"layout.readme":       "README.md",
		"layout.requirements": "requirements.txt",

		"log.level":            "info",
		"log.format":           "pretty",
		"log.file.enabled":     false,
		"log.file.path":        ".pkgmeta/pkgmeta.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,
	}
}

// Options controls where Load looks for configuration.
type Options struct {
	// Root is the project root; <Root>/.pkgmeta.yaml is loaded when present.
	Root string
	// File is an explicit config file. Unlike the project file it must exist.
	File string
	// Overrides are dotted keys applied last, typically from command-line flags.
	Overrides map[string]any
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Overrides (command-line flags)
//  2. Environment variables (PKGMETA_ prefix)
//  3. Explicit config file, or <root>/.pkgmeta.yaml
//  4. Default values
func Load(opts Options) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if opts.File != "" {
		if err := k.Load(file.Provider(opts.File), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config %q: %w", opts.File, err)
		}
	} else if opts.Root != "" {
		if err := loadFileIfExists(k, filepath.Join(opts.Root, FileName)); err != nil {
			return nil, fmt.Errorf("loading project config: %w", err)
		}
	}

	// Env names cannot tell a nesting dot from an underscore inside a key
	// (PKGMETA_PACKAGE_AUTHOR_EMAIL), so they are matched against known keys.
	known := make(map[string]string)
	for _, key := range k.Keys() {
		known[strings.ReplaceAll(key, ".", "_")] = key
	}
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return known[strings.ToLower(strings.TrimPrefix(s, EnvPrefix))]
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("loading overrides: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// loadFileIfExists loads a YAML config file if it exists.
// Returns nil if the file doesn't exist, error only for parse/read failures.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}
