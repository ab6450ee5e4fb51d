// Package views provides the default templ components for the typelore
// engine. Components are written as plain templ.ComponentFunc values so a
// site can start without a template toolchain; users replace any of them
// through typelore.ViewFuncs.
package views

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	typelore "github.com/typelore/typelore"
	"github.com/typelore/typelore/markdown"
)

// Site carries the site-wide values the default components render into
// headers, footers, and JSON-LD blocks.
type Site struct {
	Config typelore.SiteConfig
}

// Default returns a ViewFuncs wired to the default components.
func Default(cfg typelore.SiteConfig) typelore.ViewFuncs {
	s := Site{Config: cfg}
	return typelore.ViewFuncs{
		Home:             s.Home,
		HomePartial:      s.HomePartial,
		BlogSection:      s.BlogSection,
		Post:             s.Post,
		PostPartial:      s.PostPartial,
		AdminLogin:       s.AdminLogin,
		AdminDashboard:   s.AdminDashboard,
		AdminFormPartial: s.AdminFormPartial,
		AdminImages:      s.AdminImages,
		NotFound:         s.NotFound,
		ServerError:      s.ServerError,
	}
}

func component(fn func(w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return fn(w)
	})
}

func esc(s string) string { return html.EscapeString(s) }

// layout writes the shared document shell around a body writer.
func (s Site) layout(w io.Writer, meta typelore.PageMeta, jsonLD string, body func(io.Writer) error) error {
	fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>`)
	fmt.Fprintf(w, `<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
	fmt.Fprintf(w, `<title>%s</title>`, esc(meta.Title))
	if meta.Description != "" {
		fmt.Fprintf(w, `<meta name="description" content="%s"/>`, esc(meta.Description))
	}
	if meta.URL != "" {
		fmt.Fprintf(w, `<link rel="canonical" href="%s"/>`, markdown.SafeURL(meta.URL))
		fmt.Fprintf(w, `<meta property="og:url" content="%s"/>`, markdown.SafeURL(meta.URL))
	}
	fmt.Fprintf(w, `<meta property="og:title" content="%s"/>`, esc(meta.Title))
	if meta.OGType != "" {
		fmt.Fprintf(w, `<meta property="og:type" content="%s"/>`, esc(meta.OGType))
	}
	fmt.Fprintf(w, `<link rel="alternate" type="application/rss+xml" title="%s" href="/feed.xml"/>`, esc(s.Config.Name))
	fmt.Fprintf(w, `<link rel="stylesheet" href="/public/site.css"/>`)
	if jsonLD != "" {
		fmt.Fprintf(w, `<script type="application/ld+json">%s</script>`, jsonLD)
	}
	fmt.Fprintf(w, `</head><body>`)
	fmt.Fprintf(w, `<header class="site-header"><a href="/" class="site-title">%s</a></header><main>`, esc(s.Config.Name))
	if err := body(w); err != nil {
		return err
	}
	fmt.Fprintf(w, `</main><footer class="site-footer"><a href="/feed.xml">RSS</a></footer></body></html>`)
	return nil
}

func (s Site) writePostCard(w io.Writer, p typelore.Post) {
	fmt.Fprintf(w, `<article class="post-card"><h2><a href="%s">%s</a></h2>`, markdown.SafeURL(p.Link+"/"), esc(p.Title))
	fmt.Fprintf(w, `<p class="post-meta"><time datetime="%s">%s</time>`, esc(p.Date), esc(p.Date))
	if byline := typelore.JoinAuthors(p.Authors); byline != "" {
		fmt.Fprintf(w, ` &middot; %s`, esc(byline))
	}
	fmt.Fprintf(w, `</p>`)
	if p.Summary != "" {
		fmt.Fprintf(w, `<p class="post-summary">%s</p>`, esc(p.Summary))
	}
	s.writeTagPills(w, p.Tags, "")
	fmt.Fprintf(w, `</article>`)
}

func (s Site) writeTagPills(w io.Writer, tags []string, active string) {
	if len(tags) == 0 {
		return
	}
	fmt.Fprintf(w, `<ul class="tag-list">`)
	for _, t := range tags {
		cls := "tag-pill"
		if t == active {
			cls += " tag-pill-active"
		}
		fmt.Fprintf(w, `<li><a class="%s" href="/?tag=%s">%s</a></li>`, cls, typelore.PathEscape(t), esc(t))
	}
	fmt.Fprintf(w, `</ul>`)
}

func (s Site) writeCategoryNav(w io.Writer, categories []string, active string) {
	if len(categories) == 0 {
		return
	}
	fmt.Fprintf(w, `<nav class="category-nav">`)
	for _, cat := range categories {
		cls := "category-link"
		if cat == active {
			cls += " category-link-active"
		}
		fmt.Fprintf(w, `<a class="%s" href="/?category=%s">%s</a>`, cls, typelore.PathEscape(cat), esc(cat))
	}
	fmt.Fprintf(w, `</nav>`)
}

func (s Site) blogSection(w io.Writer, posts []typelore.Post, activeTag string, tags []string, activeCategory string, categories []string) error {
	fmt.Fprintf(w, `<section id="blog" class="blog-section">`)
	s.writeCategoryNav(w, categories, activeCategory)
	s.writeTagPills(w, tags, activeTag)
	if len(posts) == 0 {
		fmt.Fprintf(w, `<p class="empty">No posts yet.</p>`)
	}
	for _, p := range posts {
		s.writePostCard(w, p)
	}
	fmt.Fprintf(w, `</section>`)
	return nil
}

// Home renders the post listing page.
func (s Site) Home(posts []typelore.Post, activeTag string, tags []string, activeCategory string, categories []string, siteURL string) templ.Component {
	return component(func(w io.Writer) error {
		meta := typelore.PageMeta{
			Title:       s.Config.Name,
			Description: s.Config.Description,
			URL:         typelore.BuildURL(siteURL),
			OGType:      "website",
		}
		return s.layout(w, meta, typelore.WebsiteJsonLD(s.Config), func(w io.Writer) error {
			if s.Config.Description != "" {
				fmt.Fprintf(w, `<p class="site-description">%s</p>`, esc(s.Config.Description))
			}
			return s.blogSection(w, posts, activeTag, tags, activeCategory, categories)
		})
	})
}

// HomePartial renders the home content without the document shell, for HTMX swaps.
func (s Site) HomePartial(posts []typelore.Post, activeTag string, tags []string, activeCategory string, categories []string, siteURL string) templ.Component {
	return component(func(w io.Writer) error {
		return s.blogSection(w, posts, activeTag, tags, activeCategory, categories)
	})
}

// BlogSection renders just the filterable listing section.
func (s Site) BlogSection(posts []typelore.Post, activeTag string, tags []string, activeCategory string, categories []string) templ.Component {
	return component(func(w io.Writer) error {
		return s.blogSection(w, posts, activeTag, tags, activeCategory, categories)
	})
}

func (s Site) postBody(w io.Writer, post typelore.Post, posts []typelore.Post) error {
	fmt.Fprintf(w, `<article class="post"><h1>%s</h1>`, esc(post.Title))
	fmt.Fprintf(w, `<p class="post-meta"><time datetime="%s">%s</time>`, esc(post.Date), esc(post.Date))
	if byline := typelore.JoinAuthors(post.Authors); byline != "" {
		fmt.Fprintf(w, ` &middot; by %s`, esc(byline))
	}
	fmt.Fprintf(w, `</p>`)
	s.writeTagPills(w, post.Tags, "")
	if err := markdown.Markdown(post.Content).Render(context.Background(), w); err != nil {
		return err
	}
	fmt.Fprintf(w, `</article>`)

	related := typelore.FilterRelatedPosts(post, posts)
	if len(related) > 0 {
		fmt.Fprintf(w, `<aside class="related"><h2>Related posts</h2><ul>`)
		for _, r := range related {
			fmt.Fprintf(w, `<li><a href="%s">%s</a></li>`, markdown.SafeURL(r.Link+"/"), esc(r.Title))
		}
		fmt.Fprintf(w, `</ul></aside>`)
	}
	return nil
}

// Post renders a single post page.
func (s Site) Post(post typelore.Post, posts []typelore.Post, siteURL string) templ.Component {
	return component(func(w io.Writer) error {
		meta := typelore.PageMeta{
			Title:       post.Title + " — " + s.Config.Name,
			Description: post.Summary,
			URL:         typelore.BuildURL(siteURL, "blog", post.Slug),
			OGType:      "article",
		}
		return s.layout(w, meta, typelore.BlogPostingJsonLD(post, s.Config), func(w io.Writer) error {
			return s.postBody(w, post, posts)
		})
	})
}

// PostPartial renders the post content without the document shell.
func (s Site) PostPartial(post typelore.Post, posts []typelore.Post, siteURL string) templ.Component {
	return component(func(w io.Writer) error {
		return s.postBody(w, post, posts)
	})
}

// NotFound renders the 404 page.
func (s Site) NotFound() templ.Component {
	return component(func(w io.Writer) error {
		meta := typelore.PageMeta{Title: "Not found — " + s.Config.Name}
		return s.layout(w, meta, "", func(w io.Writer) error {
			fmt.Fprintf(w, `<h1>404</h1><p>That page does not exist. <a href="/">Back to the blog.</a></p>`)
			return nil
		})
	})
}

// ServerError renders the 500 page.
func (s Site) ServerError() templ.Component {
	return component(func(w io.Writer) error {
		meta := typelore.PageMeta{Title: "Something broke — " + s.Config.Name}
		return s.layout(w, meta, "", func(w io.Writer) error {
			fmt.Fprintf(w, `<h1>500</h1><p>Something went wrong on our side. Try again shortly.</p>`)
			return nil
		})
	})
}
