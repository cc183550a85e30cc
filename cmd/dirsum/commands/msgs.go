package commands

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Deterministic checksums for directory trees"
	MsgScanShort       = "Hash a tree and print its root digest"
	MsgVerifyShort     = "Check a tree against a stored manifest"
	MsgDiffShort       = "Compare two stored manifests"
	MsgAlgosShort      = "List the registered digest algorithms"
	MsgAlgosLong       = "List the digest algorithms this build registers, with their digest sizes.\nThe default is marked; pick another with 'dirsum scan -a NAME'."
	MsgGenConfigShort  = "Generate a starter configuration file"
	MsgGenConfigLong   = "Print a configuration file with every key present but commented out,\nready to uncomment and edit. With -w it is written to the config\ndirectory instead. With --effective the merged result of defaults,\nconfig file and environment is printed, as the commands will see it."
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgVersionShort    = "Print version information"
	MsgManShort        = "Generate man pages"
	MsgManLong         = "Write one man page per command into a directory, ready for man(1)."
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgWroteConfigFormat = "Wrote %s"
	MsgManWrittenFormat  = "Man pages written to %s"

	// Error messages
	MsgErrNoCommand    = "no command specified"
	MsgErrConfigExists = "%s already exists; remove it first or edit it in place"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat      = "Output format: auto, term, text, json or yaml"
	MsgFlagAlgorithm   = "Digest algorithm (see 'dirsum algos')"
	MsgFlagBlockSize   = "Read chunk size per file, in KiB"
	MsgFlagJobs        = "Worker count (0 = one per CPU)"
	MsgFlagExclude     = "Glob pattern to leave out of the tree (repeatable)"
	MsgFlagKeepGoing   = "Record unreadable entries and keep scanning"
	MsgFlagSkipSpecial = "Skip sockets, devices and pipes instead of failing on them"
	MsgFlagNoProgress  = "Disable the progress display"
	MsgFlagManifestOut = "Write the manifest here (.json or .cbor, optionally .gz)"
	MsgFlagPrior       = "Previous manifest to reuse digests from (needs --trust-mtime)"
	MsgFlagTrustMTime  = "Reuse prior digests for files whose size and mtime are unchanged"
	MsgFlagManifest    = "Manifest to verify against"
	MsgFlagWrite       = "Write to the config directory instead of stdout"
	MsgFlagEffective   = "Print the merged configuration instead of the starter file"
	MsgFlagManDir      = "Directory to write the man pages into"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/scan-long.txt
	msgScanLongRaw string
	MsgScanLong    = strings.TrimSpace(msgScanLongRaw)

	//go:embed msgs/scan-example.txt
	msgScanExampleRaw string
	MsgScanExample    = strings.TrimSpace(msgScanExampleRaw)

	//go:embed msgs/verify-long.txt
	msgVerifyLongRaw string
	MsgVerifyLong    = strings.TrimSpace(msgVerifyLongRaw)

	//go:embed msgs/verify-example.txt
	msgVerifyExampleRaw string
	MsgVerifyExample    = strings.TrimSpace(msgVerifyExampleRaw)

	//go:embed msgs/diff-long.txt
	msgDiffLongRaw string
	MsgDiffLong    = strings.TrimSpace(msgDiffLongRaw)

	//go:embed msgs/diff-example.txt
	msgDiffExampleRaw string
	MsgDiffExample    = strings.TrimSpace(msgDiffExampleRaw)

	//go:embed msgs/genconfig-example.txt
	msgGenConfigExampleRaw string
	MsgGenConfigExample    = strings.TrimSpace(msgGenConfigExampleRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
