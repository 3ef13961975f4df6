package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// StagedFile represents a file to be staged for testing.
type StagedFile struct {
	Name    string
	Content string
}

// genValidFileName generates lowercase file names with a .txt extension.
func genValidFileName() gopter.Gen {
	return gen.IntRange(4, 15).FlatMap(func(length interface{}) gopter.Gen {
		n := length.(int)
		return gen.SliceOfN(n, gen.Rune()).Map(func(runes []rune) string {
			for i := range runes {
				runes[i] = 'a' + (runes[i] % 26)
			}
			return "f_" + string(runes) + ".txt"
		})
	}, reflect.TypeOf(""))
}

// genStagedFiles generates 2-5 files with unique names.
func genStagedFiles() gopter.Gen {
	return gen.IntRange(2, 5).FlatMap(func(count interface{}) gopter.Gen {
		n := count.(int)
		return gen.SliceOfN(n, gopter.CombineGens(
			genValidFileName(),
			gen.AlphaString(),
		).Map(func(values []interface{}) StagedFile {
			return StagedFile{Name: values[0].(string), Content: values[1].(string) + "\n"}
		})).Map(func(files []StagedFile) []StagedFile {
			seen := make(map[string]bool)
			unique := make([]StagedFile, 0, len(files))
			for _, f := range files {
				if !seen[f.Name] {
					seen[f.Name] = true
					unique = append(unique, f)
				}
			}
			return unique
		})
	}, reflect.TypeOf([]StagedFile{}))
}

// setupPropertyTestRepo creates a repository with one commit.
func setupPropertyTestRepo(t *testing.T) (string, error) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "geniegit-property-test-*")
	if err != nil {
		return "", err
	}

	steps := [][]string{
		{"init"},
		{"config", "user.email", "test@example.com"},
		{"config", "user.name", "Test User"},
		{"config", "commit.gpgsign", "false"},
		{"commit", "--allow-empty", "-m", "initial commit"},
	}
	for _, args := range steps {
		if err := runGitCmd(tmpDir, args...); err != nil {
			os.RemoveAll(tmpDir)
			return "", err
		}
	}
	return tmpDir, nil
}

// runGitCmd runs a git command in the specified directory.
func runGitCmd(dir string, args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return &exec.ExitError{Stderr: output}
	}
	return nil
}

func TestStagedDiffExclusion_Property(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	parameters.Rng.Seed(42)

	properties := gopter.NewProperties(parameters)

	// Excluding the first staged file removes exactly its section from the diff.
	properties.Property("excluded file is omitted while others remain", prop.ForAll(
		func(files []StagedFile) bool {
			if len(files) < 2 {
				return true
			}

			tmpDir, err := setupPropertyTestRepo(t)
			if err != nil {
				t.Logf("Failed to set up repo: %v", err)
				return false
			}
			defer os.RemoveAll(tmpDir)

			for _, f := range files {
				if err := os.WriteFile(filepath.Join(tmpDir, f.Name), []byte(f.Content), 0644); err != nil {
					return false
				}
			}
			if err := runGitCmd(tmpDir, "add", "."); err != nil {
				return false
			}

			client := NewClientWithWorkDir(tmpDir)
			diff, err := client.StagedDiff(context.Background(), []string{files[0].Name})
			if err != nil {
				t.Logf("Failed to get staged diff: %v", err)
				return false
			}

			if strings.Contains(diff, "b/"+files[0].Name) {
				return false
			}
			for _, f := range files[1:] {
				if !strings.Contains(diff, "b/"+f.Name) {
					return false
				}
			}
			return true
		},
		genStagedFiles(),
	))

	properties.TestingRun(t)
}

func TestSubject_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(42)

	properties := gopter.NewProperties(parameters)

	properties.Property("subject ignores the body", prop.ForAll(
		func(subject, body string) bool {
			return Subject(subject+"\n\n"+body) == subject
		},
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
		gen.AlphaString(),
	))

	properties.Property("subject never contains a newline", prop.ForAll(
		func(lines []string) bool {
			return !strings.Contains(Subject(strings.Join(lines, "\n")), "\n")
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}
