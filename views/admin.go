package views

import (
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	typelore "github.com/typelore/typelore"
)

func csrfField(w io.Writer, token string) {
	fmt.Fprintf(w, `<input type="hidden" name="_csrf" value="%s"/>`, esc(token))
}

// AdminLogin renders the password prompt, with an error banner on failure.
func (s Site) AdminLogin(showError bool, csrfToken string) templ.Component {
	return component(func(w io.Writer) error {
		meta := typelore.PageMeta{Title: "Admin — " + s.Config.Name}
		return s.layout(w, meta, "", func(w io.Writer) error {
			fmt.Fprintf(w, `<h1>Admin</h1>`)
			if showError {
				fmt.Fprintf(w, `<p class="error">Wrong password.</p>`)
			}
			fmt.Fprintf(w, `<form method="post" action="/admin/login/">`)
			csrfField(w, csrfToken)
			fmt.Fprintf(w, `<input type="password" name="password" autofocus/>`)
			fmt.Fprintf(w, `<button type="submit">Log in</button></form>`)
			return nil
		})
	})
}

// AdminDashboard lists every post, drafts included, with edit links.
func (s Site) AdminDashboard(posts []typelore.Post, message string, csrfToken string) templ.Component {
	return component(func(w io.Writer) error {
		meta := typelore.PageMeta{Title: "Dashboard — " + s.Config.Name}
		return s.layout(w, meta, "", func(w io.Writer) error {
			fmt.Fprintf(w, `<h1>Dashboard</h1>`)
			if message != "" {
				fmt.Fprintf(w, `<p class="notice">%s</p>`, esc(message))
			}
			fmt.Fprintf(w, `<p><a href="/admin/images/">Figures</a> &middot; <a href="/admin/analytics/">Readership</a></p>`)
			fmt.Fprintf(w, `<form method="post" action="/admin/logout/">`)
			csrfField(w, csrfToken)
			fmt.Fprintf(w, `<button type="submit">Log out</button></form>`)
			fmt.Fprintf(w, `<table class="admin-posts"><thead><tr><th>Title</th><th>Date</th><th>Status</th><th></th></tr></thead><tbody>`)
			for _, p := range posts {
				status := "published"
				if !p.Published {
					status = "unpublished"
				}
				fmt.Fprintf(w, `<tr><td><a href="/admin/post/%s/">%s</a></td><td>%s</td><td>%s</td>`,
					typelore.PathEscape(p.Slug), esc(p.Title), esc(p.Date), status)
				fmt.Fprintf(w, `<td><form method="post" action="/admin/unpublish/%s/">`, typelore.PathEscape(p.Slug))
				csrfField(w, csrfToken)
				fmt.Fprintf(w, `<button type="submit"%s>Unpublish</button></form></td></tr>`, disabledAttr(!p.Published))
			}
			fmt.Fprintf(w, `</tbody></table>`)
			return s.adminForm(w, typelore.Post{Published: true}, csrfToken)
		})
	})
}

func disabledAttr(disabled bool) string {
	if disabled {
		return " disabled"
	}
	return ""
}

func (s Site) adminForm(w io.Writer, post typelore.Post, csrfToken string) error {
	fmt.Fprintf(w, `<form id="post-form" method="post" action="/admin/save/">`)
	csrfField(w, csrfToken)
	fmt.Fprintf(w, `<label>Title <input name="title" value="%s"/></label>`, esc(post.Title))
	fmt.Fprintf(w, `<label>Slug <input name="slug" value="%s"/></label>`, esc(post.Slug))
	fmt.Fprintf(w, `<label>Date <input name="date" value="%s" placeholder="YYYY-MM-DD"/></label>`, esc(post.Date))
	fmt.Fprintf(w, `<label>Tags <input name="tags" value="%s"/></label>`, esc(strings.Join(post.Tags, ", ")))
	fmt.Fprintf(w, `<label>Categories <input name="categories" value="%s"/></label>`, esc(strings.Join(post.Categories, ", ")))
	fmt.Fprintf(w, `<label>Authors <input name="authors" value="%s"/></label>`, esc(strings.Join(post.Authors, ", ")))
	fmt.Fprintf(w, `<label>Summary <textarea name="summary">%s</textarea></label>`, esc(post.Summary))
	fmt.Fprintf(w, `<label>Content <textarea name="content">%s</textarea></label>`, esc(post.Content))
	checked := ""
	if post.Published {
		checked = ` checked`
	}
	fmt.Fprintf(w, `<label><input type="checkbox" name="published"%s/> Published</label>`, checked)
	fmt.Fprintf(w, `<button type="submit">Save</button></form>`)
	return nil
}

// AdminFormPartial renders the edit form for one post, for HTMX swaps.
func (s Site) AdminFormPartial(post typelore.Post, csrfToken string) templ.Component {
	return component(func(w io.Writer) error {
		return s.adminForm(w, post, csrfToken)
	})
}

// AdminImages lists uploaded figures with an upload form.
func (s Site) AdminImages(images []typelore.Image, csrfToken string) templ.Component {
	return component(func(w io.Writer) error {
		meta := typelore.PageMeta{Title: "Figures — " + s.Config.Name}
		return s.layout(w, meta, "", func(w io.Writer) error {
			fmt.Fprintf(w, `<h1>Figures</h1>`)
			fmt.Fprintf(w, `<form method="post" action="/admin/images/upload/" enctype="multipart/form-data">`)
			csrfField(w, csrfToken)
			fmt.Fprintf(w, `<input type="file" name="image" accept="image/*"/>`)
			fmt.Fprintf(w, `<button type="submit">Upload</button></form>`)
			fmt.Fprintf(w, `<ul class="figure-list">`)
			for _, img := range images {
				fmt.Fprintf(w, `<li><code>/public/uploads/%s</code> %dx%d (%d bytes)</li>`,
					esc(img.Filename), img.Width, img.Height, img.Size)
			}
			fmt.Fprintf(w, `</ul>`)
			return nil
		})
	})
}
