package scaffold

import (
	"embed"
	"io/fs"
)

//go:embed topics/*.md
var embeddedTopics embed.FS

// topicsFS returns the embedded help topics rooted at the topics directory
func topicsFS() fs.FS {
	sub, err := fs.Sub(embeddedTopics, "topics")
	if err != nil {
		return embeddedTopics
	}
	return sub
}
