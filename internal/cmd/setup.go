package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geniegit/geniegit/internal/app"
)

// NewSetupCmd creates the interactive setup command.
func NewSetupCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Configure the provider, API key and model interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, mgr, printer, err := newService(cmd, deps)
			if err != nil {
				return err
			}

			if !mgr.ConfigExists() {
				printer.Info(fmt.Sprintf("No configuration found at %s, starting first-time setup.", mgr.GetConfigPath()))
			}

			current, err := mgr.Load()
			if err != nil {
				return err
			}

			update, err := printer.RunSetup(current)
			if err != nil {
				return fmt.Errorf("setup failed: %w", err)
			}

			if err := service.Configure(app.ConfigureRequest{Update: *update}); err != nil {
				return err
			}

			printer.Success(fmt.Sprintf("Configuration saved to %s", mgr.GetConfigPath()))
			return nil
		},
	}
}
