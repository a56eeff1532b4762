package pkgmeta

import (
	"context"
	"fmt"
	"io"

	"github.com/LCHCAPITALHUMAIN/ml-toast/cli"
	"github.com/LCHCAPITALHUMAIN/ml-toast/model"
)

// Config for using pkgmeta as a library. Empty fields fall back to the
// project's .pkgmeta.yaml and then to the defaults.
type Config struct {
	// File declaring __version__, relative to the project root.
	VersionFile string
	// README path, relative to the project root.
	Readme string
	// Requirements file, relative to the project root.
	Requirements string
	// Exclude packages matching these patterns (e.g., 'tests', 'tests.*').
	Exclude []string
	// LogOutput receives logs; nil discards them.
	LogOutput io.Writer
}

// Collect gathers the metadata of the project rooted at dir.
func Collect(ctx context.Context, dir string, config Config) (*model.Metadata, error) {
	cliCfg := &cli.Config{
		Dir:          dir,
		Format:       "json",
		LogFormat:    "json",
		VersionFile:  config.VersionFile,
		Readme:       config.Readme,
		Requirements: config.Requirements,
		Exclude:      config.Exclude,
	}

	w := config.LogOutput
	if w == nil {
		w = io.Discard
	}
	app, err := NewWithLogOutput(cliCfg, w)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize pkgmeta app: %w", err)
	}
	defer app.Close()

	return app.Collect(app.Context(ctx))
}
