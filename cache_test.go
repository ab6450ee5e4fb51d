package typelore

import (
	"errors"
	"testing"
	"time"
)

func cacheFixture(t *testing.T) (*Store, *PostCache) {
	t.Helper()
	s := testStore(t)
	posts := []Post{
		{Slug: "variance", Title: "Variance", Date: "2019-06-03", Tags: []string{"scala", "variance"}, Categories: []string{"scala"}, Summary: "s", Content: "c", Published: true},
		{Slug: "magnolia", Title: "Magnolia", Date: "2019-02-11", Tags: []string{"scala", "magnolia"}, Categories: []string{"scala", "derivation"}, Summary: "s", Content: "c", Published: true},
	}
	for _, p := range posts {
		if err := s.SavePost(p); err != nil {
			t.Fatal(err)
		}
	}
	return s, NewPostCache(s, time.Minute)
}

func TestCacheListPosts(t *testing.T) {
	_, c := cacheFixture(t)
	posts, err := c.ListPosts("")
	if err != nil {
		t.Fatal(err)
	}
	if len(posts) != 2 || posts[0].Slug != "variance" {
		t.Errorf("ListPosts = %v", posts)
	}

	tagged, err := c.ListPosts("Magnolia")
	if err != nil {
		t.Fatal(err)
	}
	if len(tagged) != 1 || tagged[0].Slug != "magnolia" {
		t.Errorf("tag filter = %v", tagged)
	}
}

func TestCacheListByCategory(t *testing.T) {
	_, c := cacheFixture(t)
	got, err := c.ListByCategory("derivation")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Slug != "magnolia" {
		t.Errorf("ListByCategory = %v", got)
	}
}

func TestCacheGetPost(t *testing.T) {
	_, c := cacheFixture(t)
	post, err := c.GetPost("variance")
	if err != nil {
		t.Fatal(err)
	}
	if post.Title != "Variance" {
		t.Errorf("Title = %q", post.Title)
	}
	if _, err := c.GetPost("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCacheServesStaleUntilInvalidated(t *testing.T) {
	s, c := cacheFixture(t)
	if _, err := c.ListPosts(""); err != nil {
		t.Fatal(err)
	}

	if err := s.SavePost(Post{Slug: "late", Title: "Late", Date: "2019-08-01", Summary: "s", Content: "c", Published: true}); err != nil {
		t.Fatal(err)
	}

	posts, err := c.ListPosts("")
	if err != nil {
		t.Fatal(err)
	}
	if len(posts) != 2 {
		t.Errorf("cache should serve stale data within TTL, got %d posts", len(posts))
	}

	c.Invalidate()
	posts, err = c.ListPosts("")
	if err != nil {
		t.Fatal(err)
	}
	if len(posts) != 3 {
		t.Errorf("after Invalidate expected 3 posts, got %d", len(posts))
	}
}

func TestCacheExpiresAfterTTL(t *testing.T) {
	s := testStore(t)
	if err := s.SavePost(Post{Slug: "a", Title: "A", Date: "2019-01-01", Summary: "s", Content: "c", Published: true}); err != nil {
		t.Fatal(err)
	}
	c := NewPostCache(s, 10*time.Millisecond)
	if _, err := c.ListPosts(""); err != nil {
		t.Fatal(err)
	}
	if err := s.SavePost(Post{Slug: "b", Title: "B", Date: "2019-02-01", Summary: "s", Content: "c", Published: true}); err != nil {
		t.Fatal(err)
	}

	time.Sleep(20 * time.Millisecond)
	posts, err := c.ListPosts("")
	if err != nil {
		t.Fatal(err)
	}
	if len(posts) != 2 {
		t.Errorf("expected reload after TTL, got %d posts", len(posts))
	}
}
