package cmd

import (
	"github.com/spf13/cobra"
)

// NewExcludeFilesCmd creates the exclude-files command.
func NewExcludeFilesCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "exclude-files FILE...",
		Short: "Leave files out of the diff sent to the model",
		Long: `Add files to the exclusion list. Excluded paths are never sent to the model.

Each path must exist. Paths are matched relative to the directory geniegit
runs in, so run it from the repository root for predictable results.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, _, _, err := newService(cmd, deps)
			if err != nil {
				return err
			}
			return service.ExcludeFiles(args)
		},
	}
}
