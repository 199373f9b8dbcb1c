package main

import (
	"embed"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/korneil/launchif/internal"
	"github.com/mingrammer/cfmt"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

//go:embed launchif.default.yml
var fs embed.FS

var (
	configPath string
	workspace  string
	verbose    bool
)

// errReported marks failures the user has already been notified about.
var errReported = errors.New("reported")

func main() {
	root := &cobra.Command{
		Use:           "launchif",
		Short:         "Write cortex-debug launch configurations into a workspace",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "launchif.yml", "config file")
	root.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "workspace root (overrides config)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		writeCmd(),
		submitCmd(),
		watchCmd(),
		listCmd(),
		statusCmd(),
		configCmd(),
	)

	if err := root.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			cfmt.Errorln(err)
		}
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// newContext loads the configuration and prepares a context for one command.
func newContext() (*internal.Context, error) {
	defaults, err := fs.ReadFile("launchif.default.yml")
	if err != nil {
		return nil, errors.Wrap(err, "read embedded launchif.default.yml")
	}

	cfg, err := internal.LoadConfig(defaults, configPath)
	if err != nil {
		return nil, err
	}
	if workspace != "" {
		cfg.Workspace = workspace
	}

	x := &internal.Context{Config: cfg, Log: newLogger()}
	if err = internal.Init(x); err != nil {
		return nil, err
	}
	return x, nil
}
