package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/LCHCAPITALHUMAIN/ml-toast/cli"
	"github.com/LCHCAPITALHUMAIN/ml-toast/internal/platform/logging"
	"github.com/LCHCAPITALHUMAIN/ml-toast/internal/sink"
	"github.com/LCHCAPITALHUMAIN/ml-toast/internal/tui"
	"github.com/LCHCAPITALHUMAIN/ml-toast/pkgmeta"
)

// Set at build time via -ldflags.
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := cli.ParseFlags()
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		// Parse already printed the error.
		return 1
	}

	if cfg.ShowVersion {
		fmt.Printf("pkgmeta %s (commit %s, built %s)\n", Version, Commit, BuildTime)
		return 0
	}

	app, err := pkgmeta.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		return 1
	}
	defer app.Close()
	logging.SetDefault(app.Logger())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if !cfg.Interactive(sink.IsTerminal()) {
		if _, err := app.Execute(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			var detailed *pkgmeta.DetailedError
			if errors.As(err, &detailed) {
				fmt.Fprintf(os.Stderr, "\n--- Stack Trace ---\n%s\n", detailed.Stack)
			}
			return 1
		}
		return 0
	}

	model := tui.New(ctx, app)
	p := tea.NewProgram(model)
	model.SetProgram(p)
	final, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		return 1
	}
	if m, ok := final.(tui.Model); ok && m.Err() != nil {
		return 1
	}
	return 0
}
