package main

import (
	"github.com/plus3/orbit/internal/config"
	"github.com/plus3/orbit/internal/host"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

func newPlayCmd(configPath *string) *cobra.Command {
	var (
		mode    string
		debugUI bool
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Open a window and run a demo mode",
		Long: `Open a window and run one of the demo modes. Keys 1-4 switch between
spin, scale, combo and performance. WASD moves the player, dragging rotates it
and the wheel scales it. Q or Esc quits.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			if mode != "" {
				if !config.ValidMode(mode) {
					return eris.Errorf("unknown mode %q", mode)
				}
				cfg.Simulation.Mode = mode
			}
			return host.Run(cfg, logger, debugUI)
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "", "demo mode: spin, scale, combo or performance")
	cmd.Flags().BoolVar(&debugUI, "debug-ui", false, "show the ImGui inspector windows")
	return cmd
}
