// Package docs ships dirsum's help topics inside the binary so the
// topics command works without an install step.
package docs

import (
	"embed"
	"io/fs"
)

//go:embed topics/*.md
var topicFiles embed.FS

// Topics returns the help topic files, rooted at the topic names.
func Topics() fs.FS {
	sub, err := fs.Sub(topicFiles, "topics")
	if err != nil {
		// The subdirectory is part of the embed pattern; failure here
		// means the binary itself is broken.
		panic(err)
	}
	return sub
}
