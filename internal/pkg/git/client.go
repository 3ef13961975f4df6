// Package git reads staged changes and commit history from a repository.
package git

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	apperrors "github.com/geniegit/geniegit/internal/pkg/errors"
)

const (
	// GitCommandTimeout is the default timeout for git commands.
	GitCommandTimeout = 10 * time.Second
)

// Reader defines the read-only repository operations used to build a prompt.
type Reader interface {
	// StagedDiff returns the textual diff of the index against HEAD,
	// leaving out paths matching any of the excludes. It is empty when nothing is staged.
	StagedDiff(ctx context.Context, excludes []string) (string, error)
	// Log returns the subjects of the latest depth commits, newest first, one per line.
	Log(ctx context.Context, depth int) (string, error)
}

// DefaultClient implements Reader with go-git for history and the git binary for diffs.
type DefaultClient struct {
	// workDir is the working directory for git commands.
	// If empty, uses the current directory.
	workDir string
}

// NewClient creates a new DefaultClient.
func NewClient() *DefaultClient {
	return &DefaultClient{}
}

// NewClientWithWorkDir creates a new DefaultClient with a specific working directory.
func NewClientWithWorkDir(workDir string) *DefaultClient {
	return &DefaultClient{workDir: workDir}
}

func (c *DefaultClient) dir() (string, error) {
	if c.workDir != "" {
		return c.workDir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrFileSystemError, "failed to get working directory")
	}
	return wd, nil
}

// open locates the repository containing the working directory, walking up
// through parent directories. Linked worktrees are supported.
func (c *DefaultClient) open() (*gogit.Repository, error) {
	dir, err := c.dir()
	if err != nil {
		return nil, err
	}

	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, apperrors.NewNotARepositoryError(dir)
		}
		return nil, apperrors.NewGitError(err, "")
	}
	return repo, nil
}

// StagedDiff runs `git diff --staged` with one exclude pathspec per pattern.
func (c *DefaultClient) StagedDiff(ctx context.Context, excludes []string) (string, error) {
	if _, err := c.open(); err != nil {
		return "", err
	}

	args := []string{"diff", "--staged"}
	if len(excludes) > 0 {
		args = append(args, "--")
		for _, p := range excludes {
			args = append(args, ":(exclude)"+p)
		}
	}

	apperrors.Debug("Running git %s", strings.Join(args, " "))
	return c.run(ctx, args...)
}

// Log walks history from HEAD in committer-time order and collects commit subjects.
// A repository without commits yields an empty string.
func (c *DefaultClient) Log(ctx context.Context, depth int) (string, error) {
	repo, err := c.open()
	if err != nil {
		return "", err
	}
	if depth <= 0 {
		return "", nil
	}

	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", nil
		}
		return "", apperrors.NewGitError(err, "")
	}

	iter, err := repo.Log(&gogit.LogOptions{
		From:  head.Hash(),
		Order: gogit.LogOrderCommitterTime,
	})
	if err != nil {
		return "", apperrors.NewGitError(err, "")
	}
	defer iter.Close()

	subjects := make([]string, 0, depth)
	err = iter.ForEach(func(commit *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		subjects = append(subjects, Subject(commit.Message))
		if len(subjects) >= depth {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", apperrors.NewTimeoutError(err)
		}
		return "", apperrors.NewGitError(err, "")
	}

	return strings.Join(subjects, "\n"), nil
}

// Subject extracts the subject line of a commit message the way `git log --pretty=%s` does:
// the first paragraph with its lines joined by single spaces.
func Subject(message string) string {
	message = strings.ReplaceAll(message, "\r\n", "\n")
	message = strings.TrimLeft(message, "\n")
	if i := strings.Index(message, "\n\n"); i >= 0 {
		message = message[:i]
	}

	lines := strings.Split(strings.TrimRight(message, "\n"), "\n")
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}

// run executes git with the given arguments and returns its stdout.
func (c *DefaultClient) run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, GitCommandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	if c.workDir != "" {
		cmd.Dir = c.workDir
	}

	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", apperrors.NewTimeoutError(ctx.Err())
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", apperrors.NewGitError(err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", apperrors.NewGitError(err, "")
	}

	return string(output), nil
}
