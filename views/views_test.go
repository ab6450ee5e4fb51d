package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	typelore "github.com/typelore/typelore"
)

var testConfig = typelore.SiteConfig{
	Name:        "Typelore",
	URL:         "https://typelore.dev",
	Description: "Notes on Scala and type systems",
}

func renderComponent(t *testing.T, render func(*bytes.Buffer) error) string {
	t.Helper()
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return buf.String()
}

func TestHome(t *testing.T) {
	s := Site{Config: testConfig}
	posts := []typelore.Post{
		{Slug: "variance-in-scala", Title: "Variance in Scala", Date: "2019-06-03", Link: "/blog/variance-in-scala",
			Authors: []string{"Marta Keller", "Jonas Brandt"}, Tags: []string{"scala"}, Summary: "A tour of variance."},
	}
	got := renderComponent(t, func(buf *bytes.Buffer) error {
		return s.Home(posts, "", []string{"scala"}, "", []string{"scala"}, testConfig.URL).Render(context.Background(), buf)
	})

	for _, want := range []string{
		"<title>Typelore</title>",
		"Variance in Scala",
		"Marta Keller and Jonas Brandt",
		`href="/blog/variance-in-scala/"`,
		`"@type":"WebSite"`,
		`rel="alternate" type="application/rss+xml"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Home output missing %q", want)
		}
	}
}

func TestHomeEscapesTitles(t *testing.T) {
	s := Site{Config: testConfig}
	posts := []typelore.Post{{Slug: "x", Title: "<script>alert(1)</script>", Date: "2019-01-01", Link: "/blog/x"}}
	got := renderComponent(t, func(buf *bytes.Buffer) error {
		return s.Home(posts, "", nil, "", nil, testConfig.URL).Render(context.Background(), buf)
	})
	if strings.Contains(got, "<script>alert(1)") {
		t.Error("post title must be HTML-escaped")
	}
}

func TestPost(t *testing.T) {
	s := Site{Config: testConfig}
	post := typelore.Post{
		Slug:    "variance-in-scala",
		Title:   "Variance in Scala",
		Date:    "2019-06-03",
		Link:    "/blog/variance-in-scala",
		Authors: []string{"Marta Keller"},
		Tags:    []string{"scala", "variance"},
		Summary: "A tour of variance.",
		Content: "## Three stances\n\n```scala\nclass Box[+A]\n```\n",
	}
	related := []typelore.Post{
		post,
		{Slug: "magnolia", Title: "Magnolia", Link: "/blog/magnolia", Tags: []string{"scala"}},
	}
	got := renderComponent(t, func(buf *bytes.Buffer) error {
		return s.Post(post, related, testConfig.URL).Render(context.Background(), buf)
	})

	for _, want := range []string{
		"<h1>Variance in Scala</h1>",
		"by Marta Keller",
		"Three stances",
		`class="language-scala"`,
		`"@type":"BlogPosting"`,
		"Related posts",
		">Magnolia</a>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Post output missing %q", want)
		}
	}
	if strings.Contains(got, `>Variance in Scala</a></li>`) {
		t.Error("a post should not list itself as related")
	}
}

func TestPostPartialHasNoShell(t *testing.T) {
	s := Site{Config: testConfig}
	post := typelore.Post{Slug: "a", Title: "A", Date: "2019-01-01", Link: "/blog/a", Content: "body"}
	got := renderComponent(t, func(buf *bytes.Buffer) error {
		return s.PostPartial(post, nil, testConfig.URL).Render(context.Background(), buf)
	})
	if strings.Contains(got, "<!DOCTYPE html>") {
		t.Error("partial should not include the document shell")
	}
	if !strings.Contains(got, "<h1>A</h1>") {
		t.Errorf("partial missing content: %q", got)
	}
}

func TestNotFound(t *testing.T) {
	s := Site{Config: testConfig}
	got := renderComponent(t, func(buf *bytes.Buffer) error {
		return s.NotFound().Render(context.Background(), buf)
	})
	if !strings.Contains(got, "404") {
		t.Errorf("NotFound output = %q", got)
	}
}

func TestDefaultWiresAllViews(t *testing.T) {
	v := Default(testConfig)
	if v.Home == nil || v.Post == nil || v.AdminDashboard == nil || v.NotFound == nil || v.ServerError == nil {
		t.Error("Default should populate every view func")
	}
}
