package cmd

import (
	"github.com/spf13/cobra"

	"github.com/geniegit/geniegit/internal/app"
	"github.com/geniegit/geniegit/internal/pkg/config"
)

// NewConfigureCmd creates the configure command.
func NewConfigureCmd(deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Change or show the genie-git configuration",
		Long: `Change or show the genie-git configuration.

Only the options you pass are changed. Passing an empty value, for example
--api-key "", clears that setting.

Examples:
  geniegit configure --api-key AIza... --model gemini-2.5-flash
  geniegit configure --message-specifications "use conventional commits"
  geniegit configure --always-copy
  geniegit configure --show`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := configureRequestFromFlags(cmd)
			if err != nil {
				return err
			}

			service, _, _, err := newService(cmd, deps)
			if err != nil {
				return err
			}
			return service.Configure(req)
		},
	}

	cmd.Flags().String("model", "", "Model used to generate messages")
	cmd.Flags().String("api-key", "", "API key for the provider")
	cmd.Flags().String("message-specifications", "", "Style guidance for generated messages")
	cmd.Flags().Int("number-of-commits", config.DefaultNumberOfCommits, "Number of recent commits sent as reference")
	cmd.Flags().String("provider", "", "AI provider (gemini, openai, deepseek, ollama)")
	cmd.Flags().String("endpoint", "", "Custom API base URL for the provider")
	cmd.Flags().Bool("show", false, "Print the configuration after applying changes")
	cmd.Flags().Bool("always-copy", false, "Always copy suggestions to the clipboard")
	cmd.Flags().Bool("always-copy-off", false, "Stop copying suggestions to the clipboard")

	return cmd
}

// configureRequestFromFlags builds a sparse update from the flags that were set on the command line.
func configureRequestFromFlags(cmd *cobra.Command) (app.ConfigureRequest, error) {
	flags := cmd.Flags()
	req := app.ConfigureRequest{}

	stringFlags := []struct {
		name   string
		target **string
	}{
		{"model", &req.Update.Model},
		{"api-key", &req.Update.APIKey},
		{"message-specifications", &req.Update.MessageSpecifications},
		{"provider", &req.Update.Provider},
		{"endpoint", &req.Update.Endpoint},
	}
	for _, f := range stringFlags {
		if !flags.Changed(f.name) {
			continue
		}
		value, err := flags.GetString(f.name)
		if err != nil {
			return req, err
		}
		*f.target = &value
	}

	if flags.Changed("number-of-commits") {
		n, err := flags.GetInt("number-of-commits")
		if err != nil {
			return req, err
		}
		req.Update.NumberOfCommits = &n
	}

	req.Show, _ = flags.GetBool("show")
	req.AlwaysCopy, _ = flags.GetBool("always-copy")
	req.AlwaysCopyOff, _ = flags.GetBool("always-copy-off")

	return req, nil
}
