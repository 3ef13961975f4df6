package git

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/geniegit/geniegit/internal/pkg/errors"
)

// setupTestRepo creates a temporary git repository for testing.
func setupTestRepo(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()

	runGit(t, tmpDir, "init")
	runGit(t, tmpDir, "config", "user.email", "test@example.com")
	runGit(t, tmpDir, "config", "user.name", "Test User")
	runGit(t, tmpDir, "config", "commit.gpgsign", "false")

	return tmpDir
}

// runGit runs a git command in the specified directory.
func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	return runGitEnv(t, dir, nil, args...)
}

func runGitEnv(t *testing.T, dir string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\nOutput: %s", args, err, output)
	}
	return string(output)
}

// commitAt records a commit with a fixed author and committer time so that
// history order does not depend on wall-clock resolution.
func commitAt(t *testing.T, dir string, seq int, message string) {
	t.Helper()
	date := fmt.Sprintf("2024-01-01T00:%02d:00Z", seq)
	runGitEnv(t, dir, []string{"GIT_AUTHOR_DATE=" + date, "GIT_COMMITTER_DATE=" + date},
		"commit", "--allow-empty", "-m", message)
}

// writeFile creates a file with the given content.
func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directories: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

func TestStagedDiff_NoChanges(t *testing.T) {
	tmpDir := setupTestRepo(t)

	writeFile(t, tmpDir, "README.md", "# Test")
	runGit(t, tmpDir, "add", ".")
	commitAt(t, tmpDir, 1, "initial commit")

	client := NewClientWithWorkDir(tmpDir)
	diff, err := client.StagedDiff(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "", diff)
}

func TestStagedDiff_UnstagedChangesIgnored(t *testing.T) {
	tmpDir := setupTestRepo(t)

	writeFile(t, tmpDir, "README.md", "# Test")
	runGit(t, tmpDir, "add", ".")
	commitAt(t, tmpDir, 1, "initial commit")

	writeFile(t, tmpDir, "README.md", "# Test\n\nnot staged\n")

	diff, err := NewClientWithWorkDir(tmpDir).StagedDiff(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "", diff)
}

func TestStagedDiff_ModifiedFile(t *testing.T) {
	tmpDir := setupTestRepo(t)

	writeFile(t, tmpDir, "main.go", "package main\n\nfunc main() {}\n")
	runGit(t, tmpDir, "add", ".")
	commitAt(t, tmpDir, 1, "initial commit")

	writeFile(t, tmpDir, "main.go", "package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"hello\")\n}\n")
	runGit(t, tmpDir, "add", ".")

	diff, err := NewClientWithWorkDir(tmpDir).StagedDiff(context.Background(), nil)
	require.NoError(t, err)

	assert.Contains(t, diff, "diff --git a/main.go b/main.go")
	assert.Contains(t, diff, "+\tfmt.Println(\"hello\")")
}

func TestStagedDiff_NewFileWithoutCommits(t *testing.T) {
	tmpDir := setupTestRepo(t)

	writeFile(t, tmpDir, "first.txt", "hello\n")
	runGit(t, tmpDir, "add", ".")

	diff, err := NewClientWithWorkDir(tmpDir).StagedDiff(context.Background(), nil)
	require.NoError(t, err)
	assert.Contains(t, diff, "new file mode")
	assert.Contains(t, diff, "+hello")
}

func TestStagedDiff_Excludes(t *testing.T) {
	tmpDir := setupTestRepo(t)

	writeFile(t, tmpDir, "README.md", "# Test")
	runGit(t, tmpDir, "add", ".")
	commitAt(t, tmpDir, 1, "initial commit")

	writeFile(t, tmpDir, "main.go", "package main\n")
	writeFile(t, tmpDir, "go.sum", "example.com/mod v1.0.0 h1:abc=\n")
	writeFile(t, tmpDir, "vendor/lib/lib.go", "package lib\n")
	runGit(t, tmpDir, "add", ".")

	client := NewClientWithWorkDir(tmpDir)

	tests := []struct {
		name     string
		excludes []string
		present  []string
		absent   []string
	}{
		{
			name:    "no excludes",
			present: []string{"main.go", "go.sum", "vendor/lib/lib.go"},
		},
		{
			name:     "single file",
			excludes: []string{"go.sum"},
			present:  []string{"main.go", "vendor/lib/lib.go"},
			absent:   []string{"go.sum"},
		},
		{
			name:     "multiple patterns",
			excludes: []string{"go.sum", "vendor"},
			present:  []string{"main.go"},
			absent:   []string{"go.sum", "vendor/lib/lib.go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff, err := client.StagedDiff(context.Background(), tt.excludes)
			require.NoError(t, err)
			for _, p := range tt.present {
				assert.Contains(t, diff, "b/"+p)
			}
			for _, p := range tt.absent {
				assert.NotContains(t, diff, "b/"+p)
			}
		})
	}
}

func TestStagedDiff_AllExcluded(t *testing.T) {
	tmpDir := setupTestRepo(t)

	writeFile(t, tmpDir, "README.md", "# Test")
	runGit(t, tmpDir, "add", ".")
	commitAt(t, tmpDir, 1, "initial commit")

	writeFile(t, tmpDir, "go.sum", "changed\n")
	runGit(t, tmpDir, "add", ".")

	diff, err := NewClientWithWorkDir(tmpDir).StagedDiff(context.Background(), []string{"go.sum"})
	require.NoError(t, err)
	assert.Equal(t, "", diff)
}

func TestLog_NewestFirstAndBounded(t *testing.T) {
	tmpDir := setupTestRepo(t)

	for i := 1; i <= 4; i++ {
		commitAt(t, tmpDir, i, fmt.Sprintf("commit number %d", i))
	}

	client := NewClientWithWorkDir(tmpDir)

	logs, err := client.Log(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "commit number 4\ncommit number 3", logs)

	logs, err = client.Log(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 4, len(strings.Split(logs, "\n")))
	assert.False(t, strings.HasSuffix(logs, "\n"))
}

func TestLog_SubjectOnly(t *testing.T) {
	tmpDir := setupTestRepo(t)

	commitAt(t, tmpDir, 1, "Add parser\n\nThe body explains the change\nin detail.")

	logs, err := NewClientWithWorkDir(tmpDir).Log(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Add parser", logs)
}

func TestLog_EmptyRepository(t *testing.T) {
	tmpDir := setupTestRepo(t)

	logs, err := NewClientWithWorkDir(tmpDir).Log(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "", logs)
}

func TestLog_FromSubdirectory(t *testing.T) {
	tmpDir := setupTestRepo(t)

	writeFile(t, tmpDir, "pkg/inner/file.go", "package inner\n")
	runGit(t, tmpDir, "add", ".")
	commitAt(t, tmpDir, 1, "add inner package")

	logs, err := NewClientWithWorkDir(filepath.Join(tmpDir, "pkg", "inner")).Log(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "add inner package", logs)
}

func TestNotARepository(t *testing.T) {
	client := NewClientWithWorkDir(t.TempDir())

	_, err := client.StagedDiff(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotARepository))

	_, err = client.Log(context.Background(), 5)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotARepository))
}

func TestSubject(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"single line", "fix typo\n", "fix typo"},
		{"with body", "feat: add x\n\nbody text\n", "feat: add x"},
		{"wrapped first paragraph", "first part\nsecond part\n\nbody", "first part second part"},
		{"leading blank lines", "\n\nsubject\n", "subject"},
		{"crlf", "subject\r\n\r\nbody", "subject"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Subject(tt.message))
		})
	}
}
