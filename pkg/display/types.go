// Package display turns command results into what the user sees: rich
// terminal output, plain text, machine formats, and live progress. It
// owns no behavior beyond presentation; everything it renders comes
// from pkg/core results.
package display

import (
	"fmt"
	"time"

	"github.com/arthur-debert/dirsum/pkg/core"
	"github.com/arthur-debert/dirsum/pkg/manifest"
	"github.com/arthur-debert/dirsum/pkg/style"
)

// ScanView is the display model of a completed scan. The same struct
// feeds the terminal renderers and the machine formats.
type ScanView struct {
	// Path is the scanned root as the user gave it.
	Path string `json:"path" yaml:"path"`

	// Algorithm is the effective algorithm name.
	Algorithm string `json:"algorithm" yaml:"algorithm"`

	// Digest is the root digest, hex encoded.
	Digest string `json:"digest" yaml:"digest"`

	// Entries is how many filesystem entries were processed.
	Entries int64 `json:"entries" yaml:"entries"`

	// Bytes is how much file content was accounted for.
	Bytes int64 `json:"bytes" yaml:"bytes"`

	// ElapsedMS is the wall time of the run in milliseconds.
	ElapsedMS int64 `json:"elapsed_ms" yaml:"elapsed_ms"`

	// ManifestPath is where the manifest was written, empty when it
	// stayed in memory.
	ManifestPath string `json:"manifest,omitempty" yaml:"manifest,omitempty"`

	// Errors lists what the keep-going policy recorded.
	Errors []string `json:"errors" yaml:"errors"`

	// Outcome is clean, dirty, or aborted.
	Outcome string `json:"outcome" yaml:"outcome"`
}

// VerifyView is the display model of a verification run.
type VerifyView struct {
	Path         string `json:"path" yaml:"path"`
	ManifestPath string `json:"manifest" yaml:"manifest"`
	Algorithm    string `json:"algorithm" yaml:"algorithm"`

	// InSync is true when the tree still matches the manifest.
	InSync bool `json:"in_sync" yaml:"in_sync"`

	// Report classifies the drift. Never nil.
	Report *manifest.Report `json:"report" yaml:"report"`

	Errors  []string `json:"errors" yaml:"errors"`
	Outcome string   `json:"outcome" yaml:"outcome"`
}

// DiffView is the display model of a manifest comparison.
type DiffView struct {
	PrevPath  string `json:"prev" yaml:"prev"`
	CurrPath  string `json:"curr" yaml:"curr"`
	Algorithm string `json:"algorithm" yaml:"algorithm"`

	InSync bool             `json:"in_sync" yaml:"in_sync"`
	Report *manifest.Report `json:"report" yaml:"report"`

	Outcome string `json:"outcome" yaml:"outcome"`
}

// NewScanView builds the display model from a scan result.
func NewScanView(path string, res *core.ScanTreeResult, manifestPath string) ScanView {
	return ScanView{
		Path:         path,
		Algorithm:    res.Manifest.Algorithm,
		Digest:       res.Digest.Hex(),
		Entries:      res.Stats.EntriesDone,
		Bytes:        res.Stats.BytesDone,
		ElapsedMS:    res.Stats.Elapsed.Milliseconds(),
		ManifestPath: manifestPath,
		Errors:       errorStrings(res.Errors),
		Outcome:      res.Outcome.String(),
	}
}

// NewVerifyView builds the display model from a verify result.
func NewVerifyView(path, manifestPath string, res *core.VerifyTreeResult) VerifyView {
	return VerifyView{
		Path:         path,
		ManifestPath: manifestPath,
		Algorithm:    res.Stored.Algorithm,
		InSync:       res.Report.InSync(),
		Report:       res.Report,
		Errors:       errorStrings(res.Errors),
		Outcome:      res.Outcome.String(),
	}
}

// NewDiffView builds the display model from a diff result.
func NewDiffView(prevPath, currPath string, res *core.DiffManifestsResult) DiffView {
	return DiffView{
		PrevPath:  prevPath,
		CurrPath:  currPath,
		Algorithm: res.Prev.Algorithm,
		InSync:    res.Report.InSync(),
		Report:    res.Report,
		Outcome:   res.Outcome.String(),
	}
}

// Status maps the view onto the style-level status used for coloring.
func (v VerifyView) Status() style.Status {
	return style.AggregateStatus(
		len(v.Report.Added), len(v.Report.Removed), len(v.Report.Changed), len(v.Errors))
}

// Status maps the view onto the style-level status used for coloring.
func (v DiffView) Status() style.Status {
	return style.AggregateStatus(
		len(v.Report.Added), len(v.Report.Removed), len(v.Report.Changed), 0)
}

func errorStrings(errs []error) []string {
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		out = append(out, err.Error())
	}
	return out
}

// formatBytes renders a byte count with binary units.
func formatBytes(count int64) string {
	bytes := float64(count)
	units := []string{"bytes", "KiB", "MiB", "GiB", "TiB", "PiB"}
	for _, unit := range units {
		if bytes < 1024 {
			if unit == "bytes" {
				return fmt.Sprintf("%d bytes", count)
			}
			return fmt.Sprintf("%.2f %s", bytes, unit)
		}
		bytes /= 1024
	}
	return fmt.Sprintf("%.2f EiB", bytes)
}

// formatElapsed renders a duration rounded for humans.
func formatElapsed(ms int64) string {
	d := time.Duration(ms) * time.Millisecond
	if d < time.Second {
		return d.String()
	}
	return d.Round(10 * time.Millisecond).String()
}
