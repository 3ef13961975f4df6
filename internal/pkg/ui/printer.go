// Package ui renders genie-git output and hosts the interactive setup form.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/geniegit/geniegit/internal/pkg/config"
)

// styles holds the lipgloss styles for UI rendering.
type styles struct {
	title   lipgloss.Style
	key     lipgloss.Style
	value   lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	info    lipgloss.Style
}

// Printer writes results to out and status lines to errOut.
// Generated messages are always written unstyled so they can be piped.
type Printer struct {
	out       io.Writer
	errOut    io.Writer
	outStyles *styles
	errStyles *styles
}

// NewPrinter creates a Printer. Colors are enabled per writer only when it is a terminal.
func NewPrinter(out, errOut io.Writer) *Printer {
	return &Printer{
		out:       out,
		errOut:    errOut,
		outStyles: newStyles(lipgloss.NewRenderer(out)),
		errStyles: newStyles(lipgloss.NewRenderer(errOut)),
	}
}

func newStyles(r *lipgloss.Renderer) *styles {
	return &styles{
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		key: r.NewStyle().
			Foreground(lipgloss.Color("245")),
		value: r.NewStyle().
			Foreground(lipgloss.Color("252")),
		success: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42")),
		warning: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")),
		info: r.NewStyle().
			Foreground(lipgloss.Color("39")),
	}
}

// Message prints a generated commit message verbatim.
func (p *Printer) Message(message string) {
	fmt.Fprintln(p.out, message)
}

// Notice prints an informational line to stdout without styling.
func (p *Printer) Notice(message string) {
	fmt.Fprintln(p.out, message)
}

// Success prints a confirmation to stderr.
func (p *Printer) Success(message string) {
	fmt.Fprintln(p.errOut, p.errStyles.success.Render(message))
}

// Warn prints a non-fatal problem to stderr.
func (p *Printer) Warn(message string) {
	fmt.Fprintln(p.errOut, p.errStyles.warning.Render("Warning: "+message))
}

// Info prints a status line to stderr.
func (p *Printer) Info(message string) {
	fmt.Fprintln(p.errOut, p.errStyles.info.Render(message))
}

// ShowConfig prints the configuration file location followed by its values.
func (p *Printer) ShowConfig(path string, cfg *config.Config) {
	s := p.outStyles
	fmt.Fprintln(p.out, s.title.Render("Configuration")+" "+s.key.Render("("+path+")"))

	entries := config.Entries(cfg)
	width := 0
	for _, e := range entries {
		if len(e.Key) > width {
			width = len(e.Key)
		}
	}
	for _, e := range entries {
		key := fmt.Sprintf("%-*s", width, e.Key)
		fmt.Fprintf(p.out, "  %s  %s\n", s.key.Render(key), s.value.Render(e.Value))
	}
}
