package ai

import (
	"fmt"
	"strings"

	apperrors "github.com/geniegit/geniegit/internal/pkg/errors"
)

// ProviderName constants for supported providers.
const (
	ProviderNameGemini   = "gemini"
	ProviderNameOpenAI   = "openai"
	ProviderNameDeepSeek = "deepseek"
	ProviderNameOllama   = "ollama"
)

// Default API base URLs for the OpenAI-compatible providers.
const (
	DefaultGeminiEndpoint   = "https://generativelanguage.googleapis.com/v1beta/openai"
	DefaultDeepSeekEndpoint = "https://api.deepseek.com/v1"
)

// NewProvider creates the provider registered under name.
// An empty endpoint selects the provider's default base URL.
func NewProvider(name, endpoint string) (Provider, error) {
	endpoint = strings.TrimRight(endpoint, "/")

	switch name {
	case ProviderNameGemini, "":
		if endpoint == "" {
			endpoint = DefaultGeminiEndpoint
		}
		return NewOpenAICompatibleProvider(ProviderNameGemini, endpoint), nil

	case ProviderNameOpenAI:
		// go-openai falls back to api.openai.com when the base URL is empty.
		return NewOpenAICompatibleProvider(ProviderNameOpenAI, endpoint), nil

	case ProviderNameDeepSeek:
		if endpoint == "" {
			endpoint = DefaultDeepSeekEndpoint
		}
		return NewOpenAICompatibleProvider(ProviderNameDeepSeek, endpoint), nil

	case ProviderNameOllama:
		return NewOllamaProvider(endpoint)

	default:
		return nil, apperrors.NewInvalidConfigError(fmt.Sprintf("unknown provider: %s", name))
	}
}
