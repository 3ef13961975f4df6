package ai

import (
	"context"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: logs, staged changes and specifications always reach the provider verbatim.
func TestPromptContainsInputs_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(42)

	properties := gopter.NewProperties(parameters)

	properties.Property("prompt contains logs, diff and specifications", prop.ForAll(
		func(logs, diff, spec, extra string) bool {
			fake := &fakeProvider{text: "msg"}
			g := NewMessageGenerator(fake)

			_, err := g.SuggestCommitMessage(context.Background(), SuggestRequest{
				APIKey:                "key",
				Model:                 "model",
				GitLogs:               logs,
				StagedChanges:         diff,
				MessageSpecifications: spec,
				Context:               extra,
			})
			if err != nil {
				return false
			}

			prompt := fake.last.Prompt
			return strings.Contains(prompt, logs) &&
				strings.Contains(prompt, diff) &&
				strings.Contains(prompt, spec) &&
				strings.Contains(prompt, extra)
		},
		gen.AnyString(),
		gen.AnyString(),
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.Property("result is the trimmed response", prop.ForAll(
		func(pad string, body string) bool {
			fake := &fakeProvider{text: pad + body + pad}
			out, err := NewMessageGenerator(fake).SuggestCommitMessage(context.Background(), SuggestRequest{})
			return err == nil && out == body
		},
		gen.OneConstOf("", " ", "\n", "\n\n  \t"),
		gen.Identifier(),
	))

	properties.TestingRun(t)
}
