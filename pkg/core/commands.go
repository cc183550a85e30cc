package core

import (
	"github.com/spf13/afero"

	"github.com/arthur-debert/dirsum/pkg/algo"
	"github.com/arthur-debert/dirsum/pkg/digest"
	"github.com/arthur-debert/dirsum/pkg/errors"
	"github.com/arthur-debert/dirsum/pkg/filesystem"
	"github.com/arthur-debert/dirsum/pkg/logging"
	"github.com/arthur-debert/dirsum/pkg/manifest"
	"github.com/arthur-debert/dirsum/pkg/treehash"
	"github.com/arthur-debert/dirsum/pkg/types"
)

// ScanTreeOptions defines the options for the ScanTree command.
type ScanTreeOptions struct {
	// Path is the root to hash. A directory, a file, or a symlink.
	Path string
	// Algorithm names the digest algorithm. Empty means the default.
	Algorithm string
	// BlockSize is the file read chunk size in bytes. Zero means the
	// engine default.
	BlockSize int
	// Jobs is the worker count. Zero means one per CPU.
	Jobs int
	// KeepGoing records unreadable entries and keeps scanning instead
	// of aborting on the first error.
	KeepGoing bool
	// SkipSpecial skips sockets, devices, and pipes instead of treating
	// them as traversal errors.
	SkipSpecial bool
	// Exclude holds patterns for paths the scan should not descend into.
	Exclude []string
	// ManifestOut, when set, is the path the resulting manifest is
	// written to. The file name picks the container format.
	ManifestOut string
	// PriorPath, when set together with TrustMTime, names a previous
	// manifest whose leaf digests may be reused.
	PriorPath string
	// TrustMTime reuses prior digests for files whose size and
	// modification time are unchanged.
	TrustMTime bool
	// Observer, when set, receives one completion event per hashed node.
	Observer types.Observer
	// Stats, when set, is the live counter block progress displays poll.
	Stats *treehash.Stats
	// FS overrides the filesystem being scanned. Nil means the OS.
	FS types.FS
	// ManifestFS overrides the filesystem manifests are read from and
	// written to. Nil means the OS.
	ManifestFS afero.Fs
}

// ScanTreeResult is what ScanTree produced.
type ScanTreeResult struct {
	// Manifest is the snapshot of the hashed tree.
	Manifest *manifest.Manifest
	// Digest is the root digest.
	Digest digest.Digest
	// Stats is the final counter snapshot.
	Stats treehash.Snapshot
	// Errors lists what the keep-going policy recorded, empty otherwise.
	Errors []error
	// Outcome is clean unless Errors is non-empty.
	Outcome Outcome
}

// VerifyTreeOptions defines the options for the VerifyTree command.
type VerifyTreeOptions struct {
	// Path is the root of the tree to check.
	Path string
	// ManifestPath names the stored manifest to check against. The
	// rescan always uses that manifest's algorithm.
	ManifestPath string
	// BlockSize is the file read chunk size in bytes. Zero means the
	// engine default.
	BlockSize int
	// Jobs is the worker count. Zero means one per CPU.
	Jobs int
	// KeepGoing records unreadable entries and keeps scanning instead
	// of aborting on the first error.
	KeepGoing bool
	// SkipSpecial skips sockets, devices, and pipes instead of treating
	// them as traversal errors.
	SkipSpecial bool
	// Exclude holds patterns for paths the rescan should not descend
	// into. Must match the patterns the manifest was built with, or the
	// report will show the excluded paths as drift.
	Exclude []string
	// Observer, when set, receives one completion event per hashed node.
	Observer types.Observer
	// Stats, when set, is the live counter block progress displays poll.
	Stats *treehash.Stats
	// FS overrides the filesystem being scanned. Nil means the OS.
	FS types.FS
	// ManifestFS overrides the filesystem the manifest is read from.
	// Nil means the OS.
	ManifestFS afero.Fs
}

// VerifyTreeResult is what VerifyTree produced.
type VerifyTreeResult struct {
	// Stored is the manifest loaded from disk.
	Stored *manifest.Manifest
	// Fresh is the manifest of the rescanned tree.
	Fresh *manifest.Manifest
	// Report classifies the drift between Stored and Fresh.
	Report *manifest.Report
	// Stats is the rescan's final counter snapshot.
	Stats treehash.Snapshot
	// Errors lists what the keep-going policy recorded during the
	// rescan, empty otherwise.
	Errors []error
	// Outcome is clean only when the report is in sync and the rescan
	// recorded no errors.
	Outcome Outcome
}

// DiffManifestsOptions defines the options for the DiffManifests command.
type DiffManifestsOptions struct {
	// PrevPath names the older manifest.
	PrevPath string
	// CurrPath names the newer manifest.
	CurrPath string
	// ManifestFS overrides the filesystem manifests are read from. Nil
	// means the OS.
	ManifestFS afero.Fs
}

// DiffManifestsResult is what DiffManifests produced.
type DiffManifestsResult struct {
	// Prev is the older manifest as loaded.
	Prev *manifest.Manifest
	// Curr is the newer manifest as loaded.
	Curr *manifest.Manifest
	// Report classifies the differences from Prev to Curr.
	Report *manifest.Report
	// Outcome is clean when the manifests are in sync.
	Outcome Outcome
}

// ScanTree hashes the tree at Path and wraps the result in a manifest,
// optionally persisting it and optionally reusing digests from a prior
// manifest for files whose size and mtime are unchanged.
func ScanTree(opts ScanTreeOptions) (*ScanTreeResult, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "ScanTree").Str("path", opts.Path).Msg("Executing command")

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	mfs := opts.ManifestFS
	if mfs == nil {
		mfs = afero.NewOsFs()
	}

	runOpts := treehash.Options{
		Algorithm:    opts.Algorithm,
		BlockSize:    opts.BlockSize,
		Jobs:         opts.Jobs,
		KeepGoing:    opts.KeepGoing,
		SkipSpecial:  opts.SkipSpecial,
		Exclude:      opts.Exclude,
		Observer:     opts.Observer,
		Stats:        opts.Stats,
		TrustModTime: opts.TrustMTime,
	}

	if opts.PriorPath != "" && !opts.TrustMTime {
		log.Warn().Str("path", opts.PriorPath).
			Msg("prior manifest ignored without trust-mtime")
	}
	if opts.PriorPath != "" && opts.TrustMTime {
		prior, err := manifest.Load(mfs, opts.PriorPath)
		if err != nil {
			return nil, err
		}
		if err := checkPriorAlgorithm(prior, opts.Algorithm); err != nil {
			return nil, err
		}
		runOpts.Prior = prior.Leaves()
		log.Debug().Str("path", opts.PriorPath).
			Int("leaves", len(runOpts.Prior)).
			Msg("prior manifest loaded for digest reuse")
	}

	res, err := treehash.Run(fsys, opts.Path, runOpts)
	if err != nil {
		return nil, err
	}

	result := &ScanTreeResult{
		Manifest: manifest.New(res),
		Digest:   res.Digest,
		Stats:    res.Stats,
		Errors:   res.Errors,
		Outcome:  OutcomeClean,
	}
	if len(res.Errors) > 0 {
		result.Outcome = OutcomeDirty
	}

	if opts.ManifestOut != "" {
		if err := manifest.Save(mfs, opts.ManifestOut, result.Manifest); err != nil {
			return nil, err
		}
	}

	log.Info().Str("command", "ScanTree").
		Str("digest", result.Digest.String()).
		Str("outcome", result.Outcome.String()).
		Msg("Command finished")
	return result, nil
}

// checkPriorAlgorithm rejects a prior manifest built with a different
// algorithm than the one the scan will use. Reusing digests across
// algorithms would silently mix digest families.
func checkPriorAlgorithm(prior *manifest.Manifest, requested string) error {
	alg, err := algo.Lookup(requested)
	if err != nil {
		return err
	}
	if prior.Algorithm != alg.Name() {
		return errors.AlgorithmMismatch(alg.Name(), prior.Algorithm)
	}
	return nil
}

// VerifyTree rescans the tree at Path with the stored manifest's own
// algorithm and reports the drift between the stored and fresh trees.
// Prior-digest reuse is deliberately unavailable here; trusting mtimes
// would make verification vacuous.
func VerifyTree(opts VerifyTreeOptions) (*VerifyTreeResult, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "VerifyTree").
		Str("path", opts.Path).
		Str("manifest", opts.ManifestPath).
		Msg("Executing command")

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	mfs := opts.ManifestFS
	if mfs == nil {
		mfs = afero.NewOsFs()
	}

	stored, err := manifest.Load(mfs, opts.ManifestPath)
	if err != nil {
		return nil, err
	}

	res, err := treehash.Run(fsys, opts.Path, treehash.Options{
		Algorithm:   stored.Algorithm,
		BlockSize:   opts.BlockSize,
		Jobs:        opts.Jobs,
		KeepGoing:   opts.KeepGoing,
		SkipSpecial: opts.SkipSpecial,
		Exclude:     opts.Exclude,
		Observer:    opts.Observer,
		Stats:       opts.Stats,
	})
	if err != nil {
		return nil, err
	}

	fresh := manifest.New(res)
	report, err := manifest.Diff(stored, fresh)
	if err != nil {
		return nil, err
	}

	result := &VerifyTreeResult{
		Stored:  stored,
		Fresh:   fresh,
		Report:  report,
		Stats:   res.Stats,
		Errors:  res.Errors,
		Outcome: OutcomeClean,
	}
	if !report.InSync() || len(res.Errors) > 0 {
		result.Outcome = OutcomeDirty
	}

	log.Info().Str("command", "VerifyTree").
		Str("outcome", result.Outcome.String()).
		Int("added", len(report.Added)).
		Int("removed", len(report.Removed)).
		Int("changed", len(report.Changed)).
		Msg("Command finished")
	return result, nil
}

// DiffManifests loads two stored manifests and reports how the tree
// changed from the first to the second. No filesystem content is read.
func DiffManifests(opts DiffManifestsOptions) (*DiffManifestsResult, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "DiffManifests").
		Str("prev", opts.PrevPath).
		Str("curr", opts.CurrPath).
		Msg("Executing command")

	mfs := opts.ManifestFS
	if mfs == nil {
		mfs = afero.NewOsFs()
	}

	prev, err := manifest.Load(mfs, opts.PrevPath)
	if err != nil {
		return nil, err
	}
	curr, err := manifest.Load(mfs, opts.CurrPath)
	if err != nil {
		return nil, err
	}

	report, err := manifest.Diff(prev, curr)
	if err != nil {
		return nil, err
	}

	result := &DiffManifestsResult{
		Prev:    prev,
		Curr:    curr,
		Report:  report,
		Outcome: OutcomeClean,
	}
	if !report.InSync() {
		result.Outcome = OutcomeDirty
	}

	log.Info().Str("command", "DiffManifests").
		Str("outcome", result.Outcome.String()).
		Msg("Command finished")
	return result, nil
}
