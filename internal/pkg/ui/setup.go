package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/geniegit/geniegit/internal/pkg/config"
)

// setupAnswers holds the values collected by the setup form.
type setupAnswers struct {
	Provider string
	APIKey   string
	Model    string
	Endpoint string
}

// defaultModels suggests a model for each provider.
var defaultModels = map[string]string{
	"gemini":   config.DefaultModel,
	"openai":   "gpt-4o-mini",
	"deepseek": "deepseek-chat",
	"ollama":   "llama3",
}

// suggestedModel returns the model to prefill for provider.
// The current model is kept when the provider does not change.
func suggestedModel(provider string, current *config.Config) string {
	if provider == current.Provider && current.Model != "" {
		return current.Model
	}
	return defaultModels[provider]
}

func validateAPIKey(s string) error {
	s = strings.TrimSpace(s)
	if s != "" && len(s) < 5 {
		return fmt.Errorf("api key too short")
	}
	return nil
}

func validateModel(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("model name cannot be empty")
	}
	return nil
}

func validateEndpoint(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return nil
	}
	return fmt.Errorf("endpoint must start with http:// or https://")
}

// buildSetupUpdate converts form answers into a config update.
// A blank API key keeps the stored one, except for Ollama which needs none.
func buildSetupUpdate(a setupAnswers, current *config.Config) *config.Update {
	provider := a.Provider
	model := strings.TrimSpace(a.Model)
	endpoint := strings.TrimSpace(a.Endpoint)

	update := &config.Update{
		Provider: &provider,
		Model:    &model,
		Endpoint: &endpoint,
	}

	apiKey := strings.TrimSpace(a.APIKey)
	switch {
	case provider == "ollama":
		empty := ""
		update.APIKey = &empty
	case apiKey != "":
		update.APIKey = &apiKey
	case current.APIKey == "":
		update.APIKey = &apiKey
	}

	return update
}

// RunSetup runs the interactive setup wizard and returns the resulting update.
// Nothing is saved here.
func (p *Printer) RunSetup(current *config.Config) (*config.Update, error) {
	fmt.Fprintln(p.errOut, p.errStyles.title.Render("Let's set up genie-git!"))
	fmt.Fprintln(p.errOut)

	answers := setupAnswers{
		Provider: current.Provider,
		Endpoint: current.Endpoint,
	}
	if answers.Provider == "" {
		answers.Provider = config.DefaultProvider
	}
	originalProvider := answers.Provider

	// Stage 1: Select Provider
	err := huh.NewSelect[string]().
		Title("Select AI Provider").
		Options(
			huh.NewOption("Google Gemini", "gemini"),
			huh.NewOption("OpenAI", "openai"),
			huh.NewOption("DeepSeek", "deepseek"),
			huh.NewOption("Ollama (Local)", "ollama"),
		).
		Value(&answers.Provider).
		Run()
	if err != nil {
		return nil, err
	}

	answers.Model = suggestedModel(answers.Provider, current)
	if answers.Provider != originalProvider {
		answers.Endpoint = ""
	}

	// Stage 2: Details
	fields := []huh.Field{}

	if answers.Provider != "ollama" {
		description := "Enter your API key"
		if current.APIKey != "" {
			description = "Leave blank to keep " + config.MaskAPIKey(current.APIKey)
		}
		fields = append(fields,
			huh.NewInput().
				Title("API Key").
				Description(description).
				Value(&answers.APIKey).
				Password(true).
				Validate(validateAPIKey),
		)
	}

	fields = append(fields,
		huh.NewInput().
			Title("Model Name").
			Description("Model to use").
			Value(&answers.Model).
			Validate(validateModel),
		huh.NewInput().
			Title("API Endpoint").
			Description("Optional, leave blank for the provider default").
			Value(&answers.Endpoint).
			Validate(validateEndpoint),
	)

	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return nil, err
	}

	return buildSetupUpdate(answers, current), nil
}
