// Package content loads, parses, and lints Markdown documents with YAML
// front-matter. It is the ingestion side of the engine: documents come in
// from an fs.FS, get validated, and are handed to the store as posts.
package content

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

// AuthorList accepts the two front-matter shapes used for bylines:
// a single scalar (`author: Jane`) or a sequence (`authors: [Jane, Joe]`).
type AuthorList []string

// UnmarshalYAML implements yaml.Unmarshaler for both scalar and list forms.
func (a *AuthorList) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var single string
	if err := unmarshal(&single); err == nil {
		single = strings.TrimSpace(single)
		if single == "" {
			*a = nil
			return nil
		}
		*a = AuthorList{single}
		return nil
	}
	var many []string
	if err := unmarshal(&many); err != nil {
		return err
	}
	out := make(AuthorList, 0, len(many))
	for _, name := range many {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	*a = out
	return nil
}

// FrontMatter is the metadata block preceding a document body.
// Unknown keys are ignored so older posts keep loading as the set grows.
type FrontMatter struct {
	Title      string     `yaml:"title"`
	Slug       string     `yaml:"slug"`
	Date       string     `yaml:"date"`
	Tags       []string   `yaml:"tags"`
	Categories []string   `yaml:"categories"`
	Author     AuthorList `yaml:"author"`
	Authors    AuthorList `yaml:"authors"`
	Summary    string     `yaml:"summary"`
	Draft      bool       `yaml:"draft"`
}

// Document is a parsed post file: front-matter plus the Markdown body
// with the delimiters stripped.
type Document struct {
	Path         string
	Meta         FrontMatter
	Body         []byte
	LastModified time.Time
}

// dateLayouts are the accepted front-matter date formats, tried in order.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDocument extracts front-matter and body from src. A document whose
// front-matter is absent or does not parse is rejected outright; the body
// is never consulted before the metadata block is well-formed.
func ParseDocument(path string, src []byte, modified time.Time) (*Document, error) {
	var meta FrontMatter
	body, err := frontmatter.MustParse(bytes.NewReader(src), &meta)
	if err != nil {
		return nil, fmt.Errorf("content: parse front-matter of %s: %w", path, err)
	}
	return &Document{
		Path:         path,
		Meta:         meta,
		Body:         body,
		LastModified: modified,
	}, nil
}

// Bylines merges the `author` and `authors` fields, deduplicated in order.
func (d *Document) Bylines() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, name := range append(append(AuthorList{}, d.Meta.Author...), d.Meta.Authors...) {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// Date parses the front-matter date. The zero time and an error are
// returned when the value matches none of the accepted layouts.
func (d *Document) Date() (time.Time, error) {
	raw := strings.TrimSpace(d.Meta.Date)
	if raw == "" {
		return time.Time{}, fmt.Errorf("content: %s: missing date", d.Path)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("content: %s: invalid date %q", d.Path, raw)
}

// Summary returns the explicit front-matter summary, or the first body
// paragraph when none is set. Headings, fences, and blockquotes are skipped.
func (d *Document) Summary() string {
	if s := strings.TrimSpace(d.Meta.Summary); s != "" {
		return s
	}
	inFence := false
	var para []string
	for _, raw := range strings.Split(string(d.Body), "\n") {
		line := strings.TrimSpace(strings.TrimRight(raw, "\r"))
		if strings.HasPrefix(line, "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if line == "" {
			if len(para) > 0 {
				break
			}
			continue
		}
		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, ">") ||
			strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "|") {
			if len(para) > 0 {
				break
			}
			continue
		}
		para = append(para, line)
	}
	return strings.Join(para, " ")
}
