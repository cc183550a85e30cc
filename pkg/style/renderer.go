package style

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/dirsum/pkg/errors"
	"github.com/pterm/pterm"
)

// Renderer defines the interface for rendering various output types
type Renderer interface {
	RenderAlgorithmList(names []string, defaultName string) string
	RenderError(err error) string
	RenderProgress(current, total int64, message string) string
}

// TerminalRenderer implements Renderer with rich terminal output
type TerminalRenderer struct {
	width int
}

// NewTerminalRenderer creates a new terminal renderer
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{
		width: 80, // Default width, can be updated
	}
}

// SetWidth updates the terminal width for rendering
func (r *TerminalRenderer) SetWidth(width int) {
	r.width = width
}

// RenderAlgorithmList renders the registered hash algorithms
func (r *TerminalRenderer) RenderAlgorithmList(names []string, defaultName string) string {
	if len(names) == 0 {
		return MutedStyle.Render("No algorithms registered")
	}

	var result strings.Builder
	result.WriteString(TitleStyle.Render("Available Algorithms") + "\n\n")

	for _, name := range names {
		line := fmt.Sprintf("%s %s", pterm.Info.Prefix.Text, Bold(name))
		if name == defaultName {
			line += " " + MutedStyle.Render("(default)")
		}
		result.WriteString(line + "\n")
	}

	return strings.TrimRight(result.String(), "\n")
}

// RenderError renders an error message
func (r *TerminalRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}

	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		return fmt.Sprintf("%s Error [%s]: %s",
			pterm.Error.Prefix.Text,
			pterm.Error.MessageStyle.Sprint(string(code)),
			err.Error())
	}

	// Generic error
	return fmt.Sprintf("%s %s", pterm.Error.Prefix.Text, pterm.Error.MessageStyle.Sprint(err.Error()))
}

// RenderProgress renders a progress indicator
func (r *TerminalRenderer) RenderProgress(current, total int64, message string) string {
	if total <= 0 {
		return fmt.Sprintf("%s %d %s", ProgressIndicator, current, message)
	}

	// Totals grow while discovery runs, so a completed bar can shrink
	// again. Clamp rather than letting the fill run past the end.
	if current > total {
		current = total
	}
	percentage := float64(current) / float64(total)
	barWidth := 20
	filled := int(percentage * float64(barWidth))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	return fmt.Sprintf("%s [%s] %d/%d %s",
		ProgressIndicator,
		pterm.Info.MessageStyle.Sprint(bar),
		current,
		total,
		message)
}

// PlainRenderer implements Renderer with plain text output (no styling)
type PlainRenderer struct{}

// NewPlainRenderer creates a new plain text renderer
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

// RenderAlgorithmList renders a plain list of algorithms
func (r *PlainRenderer) RenderAlgorithmList(names []string, defaultName string) string {
	if len(names) == 0 {
		return "No algorithms registered"
	}

	var result strings.Builder
	result.WriteString("Available Algorithms:\n")

	for _, name := range names {
		line := fmt.Sprintf("  - %s", name)
		if name == defaultName {
			line += " (default)"
		}
		result.WriteString(line + "\n")
	}

	return strings.TrimRight(result.String(), "\n")
}

// RenderError renders a plain error message
func (r *PlainRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %s", err.Error())
}

// RenderProgress renders plain progress
func (r *PlainRenderer) RenderProgress(current, total int64, message string) string {
	if total <= 0 {
		return fmt.Sprintf("Progress: %d - %s", current, message)
	}
	return fmt.Sprintf("Progress: %d/%d - %s", current, total, message)
}
