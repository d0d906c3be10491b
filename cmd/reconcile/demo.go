package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/reconcile/internal/config"
	"github.com/vango-dev/reconcile/internal/demo"
)

func demoCmd(load func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "demo [scenario]",
		Short: "Replay a reconciliation scenario",
		Long: `Replay a scenario and print, for every step, the resulting HTML, the
surface mutations and the lifecycle events.

Without an argument the available scenarios are listed.

Examples:
  reconcile demo
  reconcile demo list`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, name := range demo.Names() {
					sc, _ := demo.Lookup(name)
					info("%-10s %s", name, sc.Description)
				}
				return nil
			}
			cfg, err := load()
			if err != nil {
				return err
			}
			res, err := demo.Play(args[0], demo.WithLogger(cfg.Logger(os.Stderr)))
			if err != nil {
				return err
			}
			demo.Print(cmd.OutOrStdout(), res)
			return nil
		},
	}
}
