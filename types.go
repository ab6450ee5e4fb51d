package typelore

// Post is the core content type stored in SQLite and rendered by templates.
type Post struct {
	Title      string
	Date       string
	Tags       []string
	Categories []string
	Authors    []string
	Summary    string
	Link       string
	Slug       string
	Content    string
	Published  bool
}

// Image is an uploaded figure referenced from post bodies.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}
