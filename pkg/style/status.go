package style

import (
	"fmt"

	"github.com/pterm/pterm"
)

// Status types for scan and verify outcomes
type Status string

const (
	StatusClean Status = "clean" // Tree matches, nothing to report
	StatusDrift Status = "drift" // Differences found
	StatusAlert Status = "alert" // Errors were recorded during the run
)

// ChangeKind classifies one row of a drift report
type ChangeKind string

const (
	ChangeAdded   ChangeKind = "added"   // Present now, absent before
	ChangeRemoved ChangeKind = "removed" // Present before, absent now
	ChangeChanged ChangeKind = "changed" // Present in both, content or type differs
)

// ChangeMarkers maps each change kind to its one-character line marker
var ChangeMarkers = map[ChangeKind]string{
	ChangeAdded:   "+",
	ChangeRemoved: "-",
	ChangeChanged: "~",
}

// StatusStyle returns the appropriate pterm style for a status
func StatusStyle(status Status) *pterm.Style {
	switch status {
	case StatusClean:
		return pterm.NewStyle(pterm.BgGreen, pterm.FgWhite)
	case StatusDrift:
		return pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	case StatusAlert:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// ChangeStyle returns the appropriate pterm style for a change kind
func ChangeStyle(kind ChangeKind) *pterm.Style {
	switch kind {
	case ChangeAdded:
		return pterm.NewStyle(pterm.FgGreen)
	case ChangeRemoved:
		return pterm.NewStyle(pterm.FgRed)
	case ChangeChanged:
		return pterm.NewStyle(pterm.FgYellow)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// ChangeLine represents one row of a rendered drift report
type ChangeLine struct {
	Kind ChangeKind
	Path string
}

// RenderChangeLine renders a single report row with its marker and kind
func RenderChangeLine(line ChangeLine) string {
	marker := ChangeStyle(line.Kind).Sprint(ChangeMarkers[line.Kind])
	kind := fmt.Sprintf("%-8s", string(line.Kind))
	return fmt.Sprintf("    %s %s %s", marker, ChangeStyle(line.Kind).Sprint(kind), line.Path)
}

// AggregateStatus determines the overall status from report counts
func AggregateStatus(added, removed, changed, errors int) Status {
	if errors > 0 {
		return StatusAlert
	}
	if added+removed+changed > 0 {
		return StatusDrift
	}
	return StatusClean
}
