package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
)

// Config holds all the command-line flag values.
type Config struct {
	Dir          string
	Format       string
	Copy         bool
	Check        bool
	Strict       bool
	ConfigFile   string
	LogLevel     string
	LogFormat    string
	VersionFile  string
	Readme       string
	Requirements string
	Exclude      []string
	ShowVersion  bool

	// FormatSet is true when --format was given explicitly.
	FormatSet bool
}

// Overrides maps the flags that shadow config keys to their dotted koanf keys.
// Flags left at their zero value are not included.
func (c *Config) Overrides() map[string]any {
	overrides := map[string]any{}
	set := func(key, value string) {
		if value != "" {
			overrides[key] = value
		}
	}
	set("log.level", c.LogLevel)
	set("log.format", c.LogFormat)
	set("layout.version_file", c.VersionFile)
	set("layout.readme", c.Readme)
	set("layout.requirements", c.Requirements)
	if len(c.Exclude) > 0 {
		overrides["package.exclude"] = c.Exclude
	}
	return overrides
}

// Interactive reports whether the result should be shown in the TUI rather
// than printed.
func (c *Config) Interactive(stdoutIsTerminal bool) bool {
	return stdoutIsTerminal && !c.FormatSet && !c.Copy && !c.Check
}

// ParseFlags defines and parses command-line flags using pflag.
func ParseFlags() (*Config, error) {
	return Parse(os.Args[1:], os.Stderr)
}

// Parse parses args on a fresh flag set. Usage and errors go to out.
func Parse(args []string, out io.Writer) (*Config, error) {
	cfg := &Config{}
	flags := pflag.NewFlagSet("pkgmeta", pflag.ContinueOnError)
	flags.SetOutput(out)

	// Define flags
	flags.StringVarP(&cfg.Dir, "dir", "C", "", "Project root (default: git top level, else the current directory).")
	flags.StringVarP(&cfg.Format, "format", "f", "pretty", "Output format: pretty, json, yaml or pkg-info.")
	flags.BoolVarP(&cfg.Copy, "copy", "c", false, "Also copy the output to the clipboard.")
	flags.BoolVar(&cfg.Check, "check", false, "Only collect and validate; print warnings and exit non-zero on errors.")
	flags.BoolVar(&cfg.Strict, "strict", false, "Treat warnings as errors.")
	flags.StringVar(&cfg.ConfigFile, "config", "", "Config file (default: <dir>/.pkgmeta.yaml when present).")
	flags.StringVar(&cfg.LogLevel, "log-level", "", "Log level: debug, info, warn or error.")
	flags.StringVar(&cfg.LogFormat, "log-format", "", "Log format: pretty, text or json.")
	flags.StringVar(&cfg.VersionFile, "version-file", "", "File declaring __version__ (default: <name>/__init__.py).")
	flags.StringVar(&cfg.Readme, "readme", "", "README path (default: README.md).")
	flags.StringVar(&cfg.Requirements, "requirements", "", "Requirements file (default: requirements.txt).")
	flags.StringSliceVarP(&cfg.Exclude, "exclude", "x", []string{}, "Exclude packages matching a pattern (e.g., 'tests', 'tests.*').")
	flags.BoolVarP(&cfg.ShowVersion, "version", "v", false, "Print the pkgmeta version and exit.")

	flags.Usage = func() {
		fmt.Fprintln(out, "Usage: pkgmeta [flags]")
		fmt.Fprintln(out, "\nCollect the distribution metadata of a Python project.")
		fmt.Fprintln(out, "\nExample: pkgmeta -C ~/src/ml_toast -f pkg-info")
		fmt.Fprintln(out, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if flags.NArg() > 0 {
		return nil, usageError(out, fmt.Errorf("error: unexpected arguments: %v", flags.Args()))
	}
	cfg.FormatSet = flags.Changed("format")

	// Validate flag combinations
	if cfg.Strict && !cfg.Check {
		return nil, usageError(out, fmt.Errorf("error: --strict requires --check"))
	}

	return cfg, nil
}

// usageError reports err to out the way pflag reports its own parse errors.
func usageError(out io.Writer, err error) error {
	fmt.Fprintln(out, err)
	return err
}
