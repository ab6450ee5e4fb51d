package typelore

import (
	"database/sql"
	"strings"
	"sync"
	"time"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = sql.ErrNoRows

// PostCache is an in-memory cache of published posts, tags, and categories
// with TTL.
type PostCache struct {
	mu         sync.RWMutex
	posts      []Post
	tags       []string
	categories []string
	fetched    time.Time
	ttl        time.Duration
	store      *Store
}

// NewPostCache creates a PostCache backed by the given Store.
func NewPostCache(s *Store, ttl time.Duration) *PostCache {
	return &PostCache{store: s, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.tags = nil
	c.categories = nil
	c.mu.Unlock()
}

func (c *PostCache) load() error {
	if c.valid() {
		return nil
	}
	posts, err := c.store.ListPosts("")
	if err != nil {
		return err
	}
	tags, err := c.store.ListTags()
	if err != nil {
		return err
	}
	categories, err := c.store.ListCategories()
	if err != nil {
		return err
	}
	c.posts = posts
	c.tags = tags
	c.categories = categories
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns the cached state after ensuring it is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) ensureLoaded() ([]Post, []string, []string, error) {
	c.mu.RLock()
	if c.valid() {
		posts, tags, categories := c.posts, c.tags, c.categories
		c.mu.RUnlock()
		return posts, tags, categories, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, nil, nil, err
	}
	return c.posts, c.tags, c.categories, nil
}

func matchesList(values []string, normalized string) bool {
	for _, v := range values {
		if normalizeTag(v) == normalized {
			return true
		}
	}
	return false
}

// ListPosts returns published posts, optionally filtered by tag.
func (c *PostCache) ListPosts(tag string) ([]Post, error) {
	posts, _, _, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	if tag == "" {
		return posts, nil
	}
	normalized := normalizeTag(tag)
	var filtered []Post
	for _, p := range posts {
		if matchesList(p.Tags, normalized) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// ListByCategory returns published posts in the given category.
func (c *PostCache) ListByCategory(category string) ([]Post, error) {
	posts, _, _, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	normalized := normalizeTag(category)
	var filtered []Post
	for _, p := range posts {
		if matchesList(p.Categories, normalized) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// ListTags returns all unique tags from published posts.
func (c *PostCache) ListTags() ([]string, error) {
	_, tags, _, err := c.ensureLoaded()
	return tags, err
}

// ListCategories returns all unique categories from published posts.
func (c *PostCache) ListCategories() ([]string, error) {
	_, _, categories, err := c.ensureLoaded()
	return categories, err
}

// GetPost returns a single published post by slug from the cache.
func (c *PostCache) GetPost(slug string) (Post, error) {
	posts, _, _, err := c.ensureLoaded()
	if err != nil {
		return Post{}, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Post{}, ErrNotFound
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
