// Package app contains the application layer with business orchestration logic.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/geniegit/geniegit/internal/pkg/ai"
	"github.com/geniegit/geniegit/internal/pkg/clipboard"
	"github.com/geniegit/geniegit/internal/pkg/config"
	apperrors "github.com/geniegit/geniegit/internal/pkg/errors"
	"github.com/geniegit/geniegit/internal/pkg/git"
)

// NoStagedChangesMessage is printed when there is nothing to describe.
const NoStagedChangesMessage = "No staged changes found in the repository."

// Generator produces a commit message suggestion.
type Generator interface {
	SuggestCommitMessage(ctx context.Context, req ai.SuggestRequest) (string, error)
}

// GeneratorFactory builds a Generator for the loaded configuration.
type GeneratorFactory func(cfg *config.Config) (Generator, error)

// NewDefaultGenerator selects the configured provider and wraps it in an ai.MessageGenerator.
func NewDefaultGenerator(cfg *config.Config) (Generator, error) {
	provider, err := ai.NewProvider(cfg.Provider, cfg.Endpoint)
	if err != nil {
		return nil, err
	}
	return ai.NewMessageGenerator(provider), nil
}

// Output is where the service reports results. *ui.Printer implements it.
type Output interface {
	Message(message string)
	Notice(message string)
	Success(message string)
	Warn(message string)
	Info(message string)
	ShowConfig(path string, cfg *config.Config)
}

// SuggestOptions contains options for the suggest workflow.
type SuggestOptions struct {
	Context string
	Copy    bool
}

// ConfigureRequest describes one configure invocation.
type ConfigureRequest struct {
	Update        config.Update
	AlwaysCopy    bool
	AlwaysCopyOff bool
	Show          bool
}

// Service implements the suggest, configure and exclude-files operations.
type Service struct {
	configs      config.Manager
	gitReader    git.Reader
	newGenerator GeneratorFactory
	clipboard    clipboard.Writer
	out          Output
}

// NewService creates a new Service with the given dependencies.
func NewService(
	configs config.Manager,
	gitReader git.Reader,
	newGenerator GeneratorFactory,
	clip clipboard.Writer,
	out Output,
) *Service {
	if newGenerator == nil {
		newGenerator = NewDefaultGenerator
	}
	return &Service{
		configs:      configs,
		gitReader:    gitReader,
		newGenerator: newGenerator,
		clipboard:    clip,
		out:          out,
	}
}

// Suggest prints a commit message for the staged changes.
// Workflow: load config → staged diff → (stop if empty) → log → generate → print → copy
func (s *Service) Suggest(ctx context.Context, opts SuggestOptions) error {
	cfg, err := s.configs.Load()
	if err != nil {
		return err
	}
	apperrors.Debug("Config: path=%s, provider=%s, model=%s, api_key=%s",
		s.configs.GetConfigPath(), cfg.Provider, cfg.Model, maskedKey(cfg.APIKey))

	diff, err := s.gitReader.StagedDiff(ctx, cfg.ExcludeFiles)
	if err != nil {
		return err
	}
	if diff == "" {
		s.out.Notice(NoStagedChangesMessage)
		return nil
	}
	apperrors.Debug("Staged diff: %d bytes, %d excluded patterns", len(diff), len(cfg.ExcludeFiles))

	logs, err := s.gitReader.Log(ctx, cfg.NumberOfCommits)
	if err != nil {
		return err
	}
	apperrors.Debug("Commit log: %d subjects", countLines(logs))

	generator, err := s.newGenerator(cfg)
	if err != nil {
		return err
	}

	message, err := generator.SuggestCommitMessage(ctx, ai.SuggestRequest{
		APIKey:                cfg.APIKey,
		Model:                 cfg.Model,
		GitLogs:               logs,
		StagedChanges:         diff,
		MessageSpecifications: cfg.MessageSpecifications,
		Context:               opts.Context,
	})
	if err != nil {
		return err
	}

	s.out.Message(message)

	if opts.Copy || cfg.AlwaysCopy {
		if err := s.clipboard.Write(message); err != nil {
			apperrors.Debug("Clipboard write failed: %v", err)
			s.out.Warn(fmt.Sprintf("could not copy to clipboard: %v", err))
		} else {
			s.out.Success("Copied to clipboard.")
		}
	}

	return nil
}

// Configure applies the provided settings and persists the configuration.
// The file is written even when no setting changed.
func (s *Service) Configure(req ConfigureRequest) error {
	if req.AlwaysCopy && req.AlwaysCopyOff {
		return apperrors.NewInvalidArgumentsError("--always-copy and --always-copy-off cannot be used together")
	}

	update := req.Update
	if req.AlwaysCopy {
		on := true
		update.AlwaysCopy = &on
	} else if req.AlwaysCopyOff {
		off := false
		update.AlwaysCopy = &off
	}

	if err := update.Validate(); err != nil {
		return err
	}

	cfg, err := s.configs.Load()
	if err != nil {
		return err
	}

	update.Apply(cfg)

	if req.Show {
		s.out.ShowConfig(s.configs.GetConfigPath(), cfg)
	}

	if err := s.configs.Save(cfg); err != nil {
		return err
	}

	if update.IsEmpty() && !req.Show {
		s.out.Info("No settings given, configuration left unchanged.")
	}
	return nil
}

// ExcludeFiles appends files to the persisted exclusion list.
// Every path must exist; nothing is saved if one does not.
func (s *Service) ExcludeFiles(files []string) error {
	if len(files) == 0 {
		return apperrors.NewInvalidArgumentsError("at least one file is required")
	}

	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return apperrors.NewFileNotFoundError(file)
			}
			return apperrors.Wrap(err, apperrors.ErrFileSystemError, fmt.Sprintf("failed to stat %s", file))
		}
	}

	cfg, err := s.configs.Load()
	if err != nil {
		return err
	}

	cfg.ExcludeFiles = append(cfg.ExcludeFiles, files...)
	if err := s.configs.Save(cfg); err != nil {
		return err
	}

	s.out.Info(fmt.Sprintf("Excluded %d file(s), %d in total.", len(files), len(cfg.ExcludeFiles)))
	return nil
}

func maskedKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	return apperrors.MaskAPIKey(key)
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := 1
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	return n
}
