package ai

import (
	"bytes"
	"text/template"
)

// DefaultPromptTemplate is the prompt sent to the model. Values are inserted verbatim.
const DefaultPromptTemplate = `You write git commit messages.
Write one commit message for the staged changes below.

Message specifications:
{{.MessageSpecifications}}

Recent commit messages in this repository, newest first. Match their conventions:
{{if .GitLogs}}{{.GitLogs}}{{else}}(no commits yet){{end}}

Staged changes:
{{.StagedChanges}}
{{- if .Context}}

Additional context from the author:
{{.Context}}
{{- end}}

Reply with the commit message only. Do not wrap it in code fences or add explanations.
`

// PromptData contains the values rendered into the prompt.
type PromptData struct {
	MessageSpecifications string
	GitLogs               string
	StagedChanges         string
	Context               string
}

// PromptTemplate handles prompt generation.
type PromptTemplate struct {
	tmpl *template.Template
}

// NewPromptTemplate creates a PromptTemplate from DefaultPromptTemplate.
func NewPromptTemplate() *PromptTemplate {
	return &PromptTemplate{
		tmpl: template.Must(template.New("prompt").Parse(DefaultPromptTemplate)),
	}
}

// Render renders the prompt with the given data.
func (pt *PromptTemplate) Render(data *PromptData) (string, error) {
	var buf bytes.Buffer
	if err := pt.tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
