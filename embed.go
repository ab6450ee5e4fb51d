package typelore

import (
	"embed"
	"io/fs"
)

// corpus holds the posts shipped with the engine. A site can serve these
// alone or layer an on-disk content directory on top via SiteConfig.ContentDir.
//
//go:embed posts/*.md
var corpus embed.FS

// EmbeddedCorpus returns the built-in post corpus rooted at the post files.
func EmbeddedCorpus() fs.FS {
	sub, err := fs.Sub(corpus, "posts")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	return sub
}
