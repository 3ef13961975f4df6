package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/geniegit/geniegit/internal/app"
)

// SuggestTimeout bounds a whole suggest run, including the provider call.
const SuggestTimeout = 5 * time.Minute

// SuggestFlags holds the flags for the suggest command.
type SuggestFlags struct {
	Context string
	Copy    bool
}

func addSuggestFlags(cmd *cobra.Command, flags *SuggestFlags) {
	cmd.Flags().StringVar(&flags.Context, "context", "", "Additional context about the change for the model")
	cmd.Flags().BoolVar(&flags.Copy, "copy", false, "Copy the suggested message to the clipboard")
}

// NewSuggestCmd creates the suggest command.
func NewSuggestCmd(deps Deps) *cobra.Command {
	flags := &SuggestFlags{}

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest a commit message for the staged changes",
		Long: `Suggest a commit message for the staged changes.

The staged diff (minus excluded files) and the subjects of recent commits are
sent to the configured provider. The suggestion is printed to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuggest(cmd, deps, flags)
		},
	}

	addSuggestFlags(cmd, flags)

	return cmd
}

func runSuggest(cmd *cobra.Command, deps Deps, flags *SuggestFlags) error {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, SuggestTimeout)
	defer cancel()

	service, _, _, err := newService(cmd, deps)
	if err != nil {
		return err
	}

	return service.Suggest(ctx, app.SuggestOptions{
		Context: flags.Context,
		Copy:    flags.Copy,
	})
}
