// Package cmd contains the CLI command definitions for genie-git.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/geniegit/geniegit/internal/app"
	"github.com/geniegit/geniegit/internal/pkg/clipboard"
	"github.com/geniegit/geniegit/internal/pkg/config"
	apperrors "github.com/geniegit/geniegit/internal/pkg/errors"
	"github.com/geniegit/geniegit/internal/pkg/git"
	"github.com/geniegit/geniegit/internal/pkg/ui"
)

// Deps are the external collaborators used by the commands.
// Nil fields are replaced with the real implementations.
type Deps struct {
	Git          git.Reader
	NewGenerator app.GeneratorFactory
	Clipboard    clipboard.Writer
}

func (d Deps) withDefaults() Deps {
	if d.Git == nil {
		d.Git = git.NewClient()
	}
	if d.NewGenerator == nil {
		d.NewGenerator = app.NewDefaultGenerator
	}
	if d.Clipboard == nil {
		d.Clipboard = clipboard.NewSystem()
	}
	return d
}

// NewRootCmd creates the root command for the genie-git CLI.
func NewRootCmd(version, commitHash, date string) *cobra.Command {
	return NewRootCmdWithDeps(version, commitHash, date, Deps{})
}

// NewRootCmdWithDeps creates the root command with the given collaborators.
func NewRootCmdWithDeps(version, commitHash, date string, deps Deps) *cobra.Command {
	deps = deps.withDefaults()

	suggestFlags := &SuggestFlags{}

	rootCmd := &cobra.Command{
		Use:   "geniegit",
		Short: "AI-powered git commit message suggestions",
		Long: `genie-git reads your staged changes and recent commit history, asks a
language model for a commit message in your preferred style, and prints it.

Running geniegit without a subcommand is the same as 'geniegit suggest'.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			apperrors.SetVerbose(verbose)
			apperrors.SetOutput(cmd.ErrOrStderr())
		},
		// Default action is to suggest a commit message
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuggest(cmd, deps, suggestFlags)
		},
	}

	rootCmd.SetVersionTemplate(`genie-git {{.Version}}
Commit: ` + commitHash + `
Built:  ` + date + "\n")

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().String("config", "", "Config file path (default: ~/.genie-git/config.yaml)")

	// Registered up front so --version parses as a bool wherever it appears
	rootCmd.InitDefaultVersionFlag()

	// Suggest flags on the root command for the default action
	addSuggestFlags(rootCmd, suggestFlags)

	rootCmd.AddCommand(NewSuggestCmd(deps))
	rootCmd.AddCommand(NewConfigureCmd(deps))
	rootCmd.AddCommand(NewExcludeFilesCmd(deps))
	rootCmd.AddCommand(NewSetupCmd(deps))

	return rootCmd
}

// newConfigManager opens the config store named by --config.
func newConfigManager(cmd *cobra.Command) (*config.ViperManager, error) {
	configPath, _ := cmd.Flags().GetString("config")
	mgr, err := config.NewManager(configPath)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInvalidConfig, "failed to create config manager")
	}
	if configPath != "" {
		apperrors.Debug("Using custom config path: %s", configPath)
	}
	return mgr, nil
}

// newService wires the application service for one command invocation.
func newService(cmd *cobra.Command, deps Deps) (*app.Service, *config.ViperManager, *ui.Printer, error) {
	mgr, err := newConfigManager(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	printer := ui.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())
	service := app.NewService(mgr, deps.Git, deps.NewGenerator, deps.Clipboard, printer)
	return service, mgr, printer, nil
}
