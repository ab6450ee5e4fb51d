package content

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

// LoadDir walks fsys and parses every .md file into a Document, sorted by
// path for deterministic ingest order. A single malformed document fails
// the whole load; partially ingested corpora are worse than loud errors.
func LoadDir(fsys fs.FS) ([]*Document, error) {
	var docs []*Document
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".md") {
			return nil
		}
		doc, err := LoadFile(fsys, p)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("content: load dir: %w", err)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs, nil
}

// LoadFile reads and parses a single Markdown file from fsys.
func LoadFile(fsys fs.FS, p string) (*Document, error) {
	src, err := fs.ReadFile(fsys, p)
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", p, err)
	}
	var modified time.Time
	if info, err := fs.Stat(fsys, p); err == nil {
		modified = info.ModTime()
	}
	return ParseDocument(p, src, modified)
}

// Slug returns the front-matter slug, or one derived from the filename.
func (d *Document) Slug() string {
	if s := strings.TrimSpace(d.Meta.Slug); s != "" {
		return s
	}
	base := path.Base(d.Path)
	return strings.TrimSuffix(base, ".md")
}
