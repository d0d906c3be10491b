package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/reconcile/internal/config"
	"github.com/vango-dev/reconcile/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var configDir string

	rootCmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Play, serve and snapshot reconciled component trees",
		Long: `reconcile drives the component reconciler against an in-memory document.

  demo      replay a scenario step by step
  serve     stream a live tree to WebSocket clients
  snapshot  store the HTML of every scenario step`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configDir, "config", "c", ".", "Directory holding reconcile.json or reconcile.yaml")

	load := func() (*config.Config, error) {
		return loadConfig(configDir)
	}
	rootCmd.AddCommand(
		demoCmd(load),
		serveCmd(load),
		snapshotCmd(load),
		versionCmd(),
	)

	if os.Getenv("NO_COLOR") != "" {
		errors.DisableColors()
	}
	if err := rootCmd.Execute(); err != nil {
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig loads the configuration in dir, falling back to the defaults
// when there is no configuration file.
func loadConfig(dir string) (*config.Config, error) {
	cfg, err := config.Load(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return config.New(), nil
	}
	return cfg, err
}

// info prints an indented line.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}
