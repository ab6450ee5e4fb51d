package typelore

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Variance in Scala", "variance-in-scala"},
		{"Typeclass derivation with Magnolia", "typeclass-derivation-with-magnolia"},
		{"  Spaces  everywhere  ", "spaces-everywhere"},
		{"Scala 2.13: what's new?", "scala-2-13-what-s-new"},
		{"ALLCAPS", "allcaps"},
		{"trailing!!!", "trailing"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.expected {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		expected string
	}{
		{"https://typelore.dev", []string{"blog", "variance-in-scala"}, "https://typelore.dev/blog/variance-in-scala/"},
		{"https://typelore.dev/", []string{"blog"}, "https://typelore.dev/blog/"},
		{"https://typelore.dev", nil, "https://typelore.dev"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.expected {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.expected)
		}
	}
}

func TestFilterEmpty(t *testing.T) {
	got := FilterEmpty([]string{"a", "", "  ", "b"})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("FilterEmpty = %v", got)
	}
}

func TestJoinAuthors(t *testing.T) {
	tests := []struct {
		authors  []string
		expected string
	}{
		{nil, ""},
		{[]string{"Marta Keller"}, "Marta Keller"},
		{[]string{"Marta Keller", "Jonas Brandt"}, "Marta Keller and Jonas Brandt"},
		{[]string{"A", "B", "C"}, "A, B, and C"},
	}
	for _, tt := range tests {
		if got := JoinAuthors(tt.authors); got != tt.expected {
			t.Errorf("JoinAuthors(%v) = %q, want %q", tt.authors, got, tt.expected)
		}
	}
}

func TestFilterRelatedPosts(t *testing.T) {
	current := Post{Slug: "variance", Tags: []string{"scala", "variance"}}
	posts := []Post{
		{Slug: "variance", Tags: []string{"scala"}},
		{Slug: "magnolia", Tags: []string{"Scala", "magnolia"}},
		{Slug: "unrelated", Tags: []string{"go"}},
	}
	related := FilterRelatedPosts(current, posts)
	if len(related) != 1 || related[0].Slug != "magnolia" {
		t.Errorf("FilterRelatedPosts = %v", related)
	}
}

func TestBlogPostingJsonLD(t *testing.T) {
	cfg := SiteConfig{Name: "Typelore", URL: "https://typelore.dev", Author: "Site Owner"}

	single := Post{Slug: "a", Title: "A", Date: "2019-01-01", Authors: []string{"Marta Keller"}}
	got := BlogPostingJsonLD(single, cfg)
	if !strings.Contains(got, `"author":{"@type":"Person","name":"Marta Keller"}`) {
		t.Errorf("single author JSON-LD = %s", got)
	}

	multi := Post{Slug: "b", Title: "B", Date: "2019-01-01", Authors: []string{"Marta Keller", "Jonas Brandt"}}
	got = BlogPostingJsonLD(multi, cfg)
	if !strings.Contains(got, `"author":[`) || !strings.Contains(got, "Jonas Brandt") {
		t.Errorf("multi author JSON-LD = %s", got)
	}

	anon := Post{Slug: "c", Title: "C", Date: "2019-01-01"}
	got = BlogPostingJsonLD(anon, cfg)
	if !strings.Contains(got, "Site Owner") {
		t.Errorf("fallback author JSON-LD = %s", got)
	}
}

func TestWebsiteJsonLD(t *testing.T) {
	got := WebsiteJsonLD(SiteConfig{Name: "Typelore", URL: "https://typelore.dev", Description: "d"})
	if !strings.Contains(got, `"@type":"WebSite"`) || !strings.Contains(got, "Typelore") {
		t.Errorf("WebsiteJsonLD = %s", got)
	}
}
