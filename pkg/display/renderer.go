package display

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/dirsum/pkg/style"
)

// Renderer defines the interface for rendering command results
type Renderer interface {
	// RenderScan renders a completed scan
	RenderScan(view ScanView) string

	// RenderVerify renders a verification run
	RenderVerify(view VerifyView) string

	// RenderDiff renders a manifest comparison
	RenderDiff(view DiffView) string
}

// RichRenderer implements Renderer with styled terminal output
type RichRenderer struct{}

// NewRichRenderer creates a new rich terminal renderer
func NewRichRenderer() *RichRenderer {
	return &RichRenderer{}
}

// RenderScan renders a completed scan
func (r *RichRenderer) RenderScan(view ScanView) string {
	var output strings.Builder

	output.WriteString(fmt.Sprintf("%s  %s\n",
		style.DigestStyle.Render(view.Algorithm+":"+view.Digest),
		style.PathStyle.Render(view.Path)))

	summary := fmt.Sprintf("%d entries, %s in %s",
		view.Entries, formatBytes(view.Bytes), formatElapsed(view.ElapsedMS))
	output.WriteString(style.Indent(style.MutedStyle.Render(summary), 1) + "\n")

	if view.ManifestPath != "" {
		note := fmt.Sprintf("manifest written to %s", view.ManifestPath)
		output.WriteString(style.Indent(style.MutedStyle.Render(note), 1) + "\n")
	}

	output.WriteString(r.renderErrors(view.Errors))
	return strings.TrimRight(output.String(), "\n")
}

// RenderVerify renders a verification run
func (r *RichRenderer) RenderVerify(view VerifyView) string {
	var output strings.Builder

	if view.InSync && len(view.Errors) == 0 {
		output.WriteString(fmt.Sprintf("%s %s matches %s\n",
			style.SuccessIndicator,
			style.PathStyle.Render(view.Path),
			style.PathStyle.Render(view.ManifestPath)))
		output.WriteString(r.renderPruned(view.Report.PrunedSubtrees))
		return strings.TrimRight(output.String(), "\n")
	}

	header := fmt.Sprintf("%s %s drifted from %s",
		style.WarningIndicator,
		style.PathStyle.Render(view.Path),
		style.PathStyle.Render(view.ManifestPath))
	output.WriteString(header + "\n\n")
	output.WriteString(r.renderReportLines(view.Report.Added, view.Report.Removed, view.Report.Changed))
	output.WriteString("\n")
	output.WriteString(r.renderSummaryCounts(len(view.Report.Added), len(view.Report.Removed), len(view.Report.Changed)))
	output.WriteString(r.renderPruned(view.Report.PrunedSubtrees))
	output.WriteString(r.renderErrors(view.Errors))
	return strings.TrimRight(output.String(), "\n")
}

// RenderDiff renders a manifest comparison
func (r *RichRenderer) RenderDiff(view DiffView) string {
	var output strings.Builder

	if view.InSync {
		output.WriteString(fmt.Sprintf("%s %s and %s are in sync\n",
			style.SuccessIndicator,
			style.PathStyle.Render(view.PrevPath),
			style.PathStyle.Render(view.CurrPath)))
		output.WriteString(r.renderPruned(view.Report.PrunedSubtrees))
		return strings.TrimRight(output.String(), "\n")
	}

	header := fmt.Sprintf("%s %s → %s",
		style.WarningIndicator,
		style.PathStyle.Render(view.PrevPath),
		style.PathStyle.Render(view.CurrPath))
	output.WriteString(header + "\n\n")
	output.WriteString(r.renderReportLines(view.Report.Added, view.Report.Removed, view.Report.Changed))
	output.WriteString("\n")
	output.WriteString(r.renderSummaryCounts(len(view.Report.Added), len(view.Report.Removed), len(view.Report.Changed)))
	output.WriteString(r.renderPruned(view.Report.PrunedSubtrees))
	return strings.TrimRight(output.String(), "\n")
}

// renderReportLines renders the per-path rows, removals first so the
// reader sees what vanished before what appeared.
func (r *RichRenderer) renderReportLines(added, removed, changed []string) string {
	var output strings.Builder
	for _, p := range removed {
		output.WriteString(style.RenderChangeLine(style.ChangeLine{Kind: style.ChangeRemoved, Path: p}) + "\n")
	}
	for _, p := range added {
		output.WriteString(style.RenderChangeLine(style.ChangeLine{Kind: style.ChangeAdded, Path: p}) + "\n")
	}
	for _, p := range changed {
		output.WriteString(style.RenderChangeLine(style.ChangeLine{Kind: style.ChangeChanged, Path: p}) + "\n")
	}
	return output.String()
}

func (r *RichRenderer) renderSummaryCounts(added, removed, changed int) string {
	parts := []string{}
	if added > 0 {
		parts = append(parts, fmt.Sprintf("%d added", added))
	}
	if removed > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", removed))
	}
	if changed > 0 {
		parts = append(parts, fmt.Sprintf("%d changed", changed))
	}
	if len(parts) == 0 {
		return ""
	}
	return style.Indent(style.MutedStyle.Render("("+strings.Join(parts, ", ")+")"), 1) + "\n"
}

func (r *RichRenderer) renderPruned(count int) string {
	if count == 0 {
		return ""
	}
	noun := "subtrees"
	if count == 1 {
		noun = "subtree"
	}
	return style.Indent(style.MutedStyle.Render(fmt.Sprintf("%d unchanged %s skipped", count, noun)), 1) + "\n"
}

func (r *RichRenderer) renderErrors(errs []string) string {
	if len(errs) == 0 {
		return ""
	}
	var output strings.Builder
	output.WriteString("\n")
	noun := "errors were"
	if len(errs) == 1 {
		noun = "error was"
	}
	output.WriteString(fmt.Sprintf("%s %d %s recorded:\n", style.WarningIndicator, len(errs), noun))
	for _, e := range errs {
		output.WriteString(style.Indent(fmt.Sprintf("%s %s", style.ErrorIndicator, e), 1) + "\n")
	}
	return output.String()
}

// PlainRenderer implements Renderer with plain text output
type PlainRenderer struct{}

// NewPlainRenderer creates a new plain text renderer
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

// RenderScan renders the scan result as plain text
func (r *PlainRenderer) RenderScan(view ScanView) string {
	var output strings.Builder

	output.WriteString(fmt.Sprintf("%s:%s  %s\n", view.Algorithm, view.Digest, view.Path))
	output.WriteString(fmt.Sprintf("  %d entries, %s in %s\n",
		view.Entries, formatBytes(view.Bytes), formatElapsed(view.ElapsedMS)))
	if view.ManifestPath != "" {
		output.WriteString(fmt.Sprintf("  manifest written to %s\n", view.ManifestPath))
	}
	output.WriteString(r.renderErrors(view.Errors))
	return strings.TrimRight(output.String(), "\n")
}

// RenderVerify renders the verify result as plain text
func (r *PlainRenderer) RenderVerify(view VerifyView) string {
	var output strings.Builder

	if view.InSync && len(view.Errors) == 0 {
		output.WriteString(fmt.Sprintf("OK: %s matches %s\n", view.Path, view.ManifestPath))
		return strings.TrimRight(output.String(), "\n")
	}

	output.WriteString(fmt.Sprintf("DRIFT: %s no longer matches %s\n", view.Path, view.ManifestPath))
	output.WriteString(r.renderReportLines(view.Report.Added, view.Report.Removed, view.Report.Changed))
	output.WriteString(r.renderErrors(view.Errors))
	return strings.TrimRight(output.String(), "\n")
}

// RenderDiff renders the diff result as plain text
func (r *PlainRenderer) RenderDiff(view DiffView) string {
	var output strings.Builder

	if view.InSync {
		output.WriteString(fmt.Sprintf("OK: %s and %s are in sync\n", view.PrevPath, view.CurrPath))
		return strings.TrimRight(output.String(), "\n")
	}

	output.WriteString(fmt.Sprintf("DIFF: %s -> %s\n", view.PrevPath, view.CurrPath))
	output.WriteString(r.renderReportLines(view.Report.Added, view.Report.Removed, view.Report.Changed))
	return strings.TrimRight(output.String(), "\n")
}

func (r *PlainRenderer) renderReportLines(added, removed, changed []string) string {
	var output strings.Builder
	for _, p := range removed {
		output.WriteString(fmt.Sprintf("  %-8s : %s\n", "removed", p))
	}
	for _, p := range added {
		output.WriteString(fmt.Sprintf("  %-8s : %s\n", "added", p))
	}
	for _, p := range changed {
		output.WriteString(fmt.Sprintf("  %-8s : %s\n", "changed", p))
	}
	return output.String()
}

func (r *PlainRenderer) renderErrors(errs []string) string {
	if len(errs) == 0 {
		return ""
	}
	var output strings.Builder
	output.WriteString(fmt.Sprintf("%d errors recorded:\n", len(errs)))
	for _, e := range errs {
		output.WriteString(fmt.Sprintf("  error: %s\n", e))
	}
	return output.String()
}
