package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/geniegit/geniegit/internal/pkg/errors"
)

// SuggestRequest carries everything needed to suggest one commit message.
type SuggestRequest struct {
	APIKey                string
	Model                 string
	GitLogs               string
	StagedChanges         string
	MessageSpecifications string
	Context               string
}

// MessageGenerator renders the prompt and asks a Provider for a commit message.
type MessageGenerator struct {
	provider Provider
	prompt   *PromptTemplate
}

// NewMessageGenerator creates a MessageGenerator backed by provider.
func NewMessageGenerator(provider Provider) *MessageGenerator {
	return &MessageGenerator{
		provider: provider,
		prompt:   NewPromptTemplate(),
	}
}

// SuggestCommitMessage performs one request and returns the response with surrounding whitespace removed.
func (g *MessageGenerator) SuggestCommitMessage(ctx context.Context, req SuggestRequest) (string, error) {
	prompt, err := g.prompt.Render(&PromptData{
		MessageSpecifications: req.MessageSpecifications,
		GitLogs:               req.GitLogs,
		StagedChanges:         req.StagedChanges,
		Context:               req.Context,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}

	resp, err := g.provider.Generate(ctx, &GenerateRequest{
		Prompt: prompt,
		Model:  req.Model,
		APIKey: req.APIKey,
	})
	if err != nil {
		return "", err
	}

	message := strings.TrimSpace(resp.Text)
	if message == "" {
		return "", apperrors.NewAIProviderError(g.provider.Name(), errors.New("empty response"))
	}
	return message, nil
}
