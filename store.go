package typelore

import (
	"database/sql"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store wraps a SQLite database and provides CRUD operations for posts
// and uploaded figures.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Enable WAL mode for concurrent read/write access, set a busy timeout
	// so writers wait instead of returning SQLITE_BUSY immediately, and tune
	// performance: synchronous=NORMAL is safe with WAL and avoids an fsync
	// per transaction; larger cache and mmap reduce disk I/O.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
		PRAGMA mmap_size=268435456;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    tags TEXT NOT NULL,
    categories TEXT NOT NULL DEFAULT ',,',
    authors TEXT NOT NULL DEFAULT ',,',
    summary TEXT NOT NULL,
    content TEXT NOT NULL,
    published INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS images (
    filename TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);
`)
	return err
}

const postColumns = `slug, title, date, tags, categories, authors, summary, content, published`

func scanPost(scan func(dest ...any) error) (Post, error) {
	var slug, title, date, tags, categories, authors, summary, content string
	var published int
	if err := scan(&slug, &title, &date, &tags, &categories, &authors, &summary, &content, &published); err != nil {
		return Post{}, err
	}
	return Post{
		Slug:       slug,
		Title:      title,
		Date:       date,
		Tags:       SplitList(tags),
		Categories: SplitList(categories),
		Authors:    SplitList(authors),
		Summary:    summary,
		Content:    content,
		Link:       "/blog/" + slug,
		Published:  published == 1,
	}, nil
}

func (s *Store) queryPosts(query string, args ...any) ([]Post, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		p, err := scanPost(rows.Scan)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ListPosts returns all published posts ordered by date descending.
// If tag is non-empty, results are filtered to posts containing that tag.
func (s *Store) ListPosts(tag string) ([]Post, error) {
	if tag == "" {
		return s.queryPosts(`SELECT ` + postColumns + ` FROM posts WHERE published = 1 ORDER BY date DESC`)
	}
	normalized := strings.ToLower(strings.TrimSpace(tag))
	return s.queryPosts(`SELECT `+postColumns+` FROM posts WHERE published = 1 AND instr(lower(tags), ',' || ? || ',') > 0 ORDER BY date DESC`, normalized)
}

// ListByCategory returns published posts in the given category, newest first.
func (s *Store) ListByCategory(category string) ([]Post, error) {
	normalized := strings.ToLower(strings.TrimSpace(category))
	return s.queryPosts(`SELECT `+postColumns+` FROM posts WHERE published = 1 AND instr(lower(categories), ',' || ? || ',') > 0 ORDER BY date DESC`, normalized)
}

// ListAllPosts returns every post (published and unpublished) ordered by date descending.
func (s *Store) ListAllPosts() ([]Post, error) {
	return s.queryPosts(`SELECT ` + postColumns + ` FROM posts ORDER BY date DESC`)
}

func (s *Store) listColumn(column string) ([]string, error) {
	rows, err := s.db.Query(`SELECT ` + column + ` FROM posts WHERE published = 1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := make(map[string]struct{})
	for rows.Next() {
		var joined string
		if err := rows.Scan(&joined); err != nil {
			return nil, err
		}
		for _, v := range SplitList(joined) {
			set[strings.ToLower(v)] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	var result []string
	for v := range set {
		result = append(result, v)
	}
	sort.Strings(result)
	return result, nil
}

// ListTags returns a sorted, deduplicated slice of all tags from published posts.
func (s *Store) ListTags() ([]string, error) {
	return s.listColumn("tags")
}

// ListCategories returns a sorted, deduplicated slice of all categories
// from published posts.
func (s *Store) ListCategories() ([]string, error) {
	return s.listColumn("categories")
}

// GetPost returns a single published post by slug.
func (s *Store) GetPost(slug string) (Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ? AND published = 1`, slug)
	return scanPost(row.Scan)
}

// GetPostAny returns a post by slug regardless of published status (for admin).
func (s *Store) GetPostAny(slug string) (Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug)
	return scanPost(row.Scan)
}

// SavePost upserts a post. Tags and categories are normalized to lowercase;
// author names keep their casing.
func (s *Store) SavePost(p Post) error {
	published := 0
	if p.Published {
		published = 1
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO posts (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Slug, p.Title, p.Date,
		JoinList(normalizeAll(p.Tags)),
		JoinList(normalizeAll(p.Categories)),
		JoinList(trimAll(p.Authors)),
		p.Summary, p.Content, published)
	return err
}

// UnpublishPost hides a post from all public surfaces without removing it.
// Posts are never deleted; an unpublished post can be republished by a
// later save. Idempotent.
func (s *Store) UnpublishPost(slug string) error {
	_, err := s.db.Exec(`UPDATE posts SET published = 0 WHERE slug = ?`, slug)
	return err
}

// SaveImage records metadata for an uploaded figure.
func (s *Store) SaveImage(img Image) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO images (filename, original_name, width, height, size, uploaded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// ListImages returns all uploaded figures, newest first.
func (s *Store) ListImages() ([]Image, error) {
	rows, err := s.db.Query(`SELECT filename, original_name, width, height, size, uploaded_at FROM images ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// DeleteImage removes figure metadata by filename.
func (s *Store) DeleteImage(filename string) error {
	_, err := s.db.Exec(`DELETE FROM images WHERE filename = ?`, filename)
	return err
}

// JoinList encodes a string slice as a comma-wrapped string (",a,b,") so
// instr-based membership queries can match whole values.
func JoinList(vals []string) string {
	return "," + strings.Join(vals, ",") + ","
}

// SplitList decodes a comma-wrapped string produced by JoinList.
func SplitList(joined string) []string {
	joined = strings.Trim(joined, ",")
	if joined == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func normalizeAll(vals []string) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = strings.ToLower(strings.TrimSpace(v))
	}
	return out
}

func trimAll(vals []string) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = strings.TrimSpace(v)
	}
	return out
}
