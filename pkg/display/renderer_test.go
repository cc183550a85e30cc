package display

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/dirsum/pkg/manifest"
)

func scanView() ScanView {
	return ScanView{
		Path:      "/data/photos",
		Algorithm: "blake3",
		Digest:    "ab12cd34",
		Entries:   7,
		Bytes:     22,
		ElapsedMS: 120,
		Errors:    []string{},
		Outcome:   "clean",
	}
}

func driftReport() *manifest.Report {
	return &manifest.Report{
		Added:          []string{"docs/new.txt"},
		Removed:        []string{"docs/old.txt"},
		Changed:        []string{"src/main.go"},
		PrunedSubtrees: 3,
	}
}

func cleanReport() *manifest.Report {
	return &manifest.Report{
		Added:          []string{},
		Removed:        []string{},
		Changed:        []string{},
		PrunedSubtrees: 1,
	}
}

func TestRichRenderer_RenderScan(t *testing.T) {
	renderer := NewRichRenderer()

	t.Run("clean scan", func(t *testing.T) {
		result := renderer.RenderScan(scanView())
		assert.Contains(t, result, "blake3:ab12cd34")
		assert.Contains(t, result, "/data/photos")
		assert.Contains(t, result, "7 entries")
		assert.Contains(t, result, "22 bytes")
		assert.NotContains(t, result, "manifest written")
	})

	t.Run("scan with manifest output", func(t *testing.T) {
		view := scanView()
		view.ManifestPath = "snapshots/tree.json"
		result := renderer.RenderScan(view)
		assert.Contains(t, result, "manifest written to snapshots/tree.json")
	})

	t.Run("scan with recorded errors", func(t *testing.T) {
		view := scanView()
		view.Errors = []string{"cannot read docs/a.txt"}
		view.Outcome = "dirty"
		result := renderer.RenderScan(view)
		assert.Contains(t, result, "1 error was recorded")
		assert.Contains(t, result, "cannot read docs/a.txt")
	})
}

func TestRichRenderer_RenderVerify(t *testing.T) {
	renderer := NewRichRenderer()

	t.Run("in sync", func(t *testing.T) {
		view := VerifyView{
			Path:         "/data",
			ManifestPath: "tree.json",
			InSync:       true,
			Report:       cleanReport(),
			Errors:       []string{},
		}
		result := renderer.RenderVerify(view)
		assert.Contains(t, result, "/data")
		assert.Contains(t, result, "matches")
		assert.Contains(t, result, "tree.json")
		assert.Contains(t, result, "1 unchanged subtree skipped")
	})

	t.Run("drift", func(t *testing.T) {
		view := VerifyView{
			Path:         "/data",
			ManifestPath: "tree.json",
			InSync:       false,
			Report:       driftReport(),
			Errors:       []string{},
		}
		result := renderer.RenderVerify(view)
		assert.Contains(t, result, "drifted")
		assert.Contains(t, result, "docs/new.txt")
		assert.Contains(t, result, "docs/old.txt")
		assert.Contains(t, result, "src/main.go")
		assert.Contains(t, result, "1 added, 1 removed, 1 changed")
		assert.Contains(t, result, "3 unchanged subtrees skipped")
	})

	t.Run("sync but errors recorded", func(t *testing.T) {
		view := VerifyView{
			Path:         "/data",
			ManifestPath: "tree.json",
			InSync:       true,
			Report:       cleanReport(),
			Errors:       []string{"cannot read docs/a.txt"},
		}
		result := renderer.RenderVerify(view)
		assert.Contains(t, result, "1 error was recorded")
	})
}

func TestRichRenderer_RenderDiff(t *testing.T) {
	renderer := NewRichRenderer()

	t.Run("in sync", func(t *testing.T) {
		view := DiffView{
			PrevPath: "old.json",
			CurrPath: "new.json",
			InSync:   true,
			Report:   cleanReport(),
		}
		result := renderer.RenderDiff(view)
		assert.Contains(t, result, "in sync")
		assert.Contains(t, result, "old.json")
		assert.Contains(t, result, "new.json")
	})

	t.Run("differences", func(t *testing.T) {
		view := DiffView{
			PrevPath: "old.json",
			CurrPath: "new.json",
			InSync:   false,
			Report:   driftReport(),
		}
		result := renderer.RenderDiff(view)
		assert.Contains(t, result, "docs/new.txt")
		assert.Contains(t, result, "docs/old.txt")
		assert.Contains(t, result, "src/main.go")
	})
}

func TestPlainRenderer_RenderScan(t *testing.T) {
	renderer := NewPlainRenderer()

	view := scanView()
	view.ManifestPath = "tree.cbor.gz"
	result := renderer.RenderScan(view)

	assert.Contains(t, result, "blake3:ab12cd34  /data/photos")
	assert.Contains(t, result, "7 entries, 22 bytes")
	assert.Contains(t, result, "manifest written to tree.cbor.gz")
}

func TestPlainRenderer_RenderVerify(t *testing.T) {
	renderer := NewPlainRenderer()

	t.Run("in sync", func(t *testing.T) {
		view := VerifyView{
			Path:         "/data",
			ManifestPath: "tree.json",
			InSync:       true,
			Report:       cleanReport(),
			Errors:       []string{},
		}
		result := renderer.RenderVerify(view)
		assert.Equal(t, "OK: /data matches tree.json", result)
	})

	t.Run("drift lists rows", func(t *testing.T) {
		view := VerifyView{
			Path:         "/data",
			ManifestPath: "tree.json",
			InSync:       false,
			Report:       driftReport(),
			Errors:       []string{},
		}
		result := renderer.RenderVerify(view)
		assert.Contains(t, result, "DRIFT: /data no longer matches tree.json")
		assert.Contains(t, result, "removed  : docs/old.txt")
		assert.Contains(t, result, "added    : docs/new.txt")
		assert.Contains(t, result, "changed  : src/main.go")
	})
}

func TestPlainRenderer_RenderDiff(t *testing.T) {
	renderer := NewPlainRenderer()

	t.Run("in sync", func(t *testing.T) {
		view := DiffView{
			PrevPath: "a.json",
			CurrPath: "b.json",
			InSync:   true,
			Report:   cleanReport(),
		}
		result := renderer.RenderDiff(view)
		assert.Equal(t, "OK: a.json and b.json are in sync", result)
	})

	t.Run("differences", func(t *testing.T) {
		view := DiffView{
			PrevPath: "a.json",
			CurrPath: "b.json",
			InSync:   false,
			Report:   driftReport(),
		}
		result := renderer.RenderDiff(view)
		assert.Contains(t, result, "DIFF: a.json -> b.json")
		assert.Contains(t, result, "added    : docs/new.txt")
	})
}
