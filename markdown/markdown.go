// Package markdown renders Markdown bodies to HTML as templ components,
// backed by goldmark with GitHub-flavored extensions. It also exposes a
// fence scanner used by the editorial linter.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// engine is stateless and safe for concurrent use, so one instance serves
// all requests.
var engine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Linkify,
		extension.Footnote,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		gmhtml.WithUnsafe(),
	),
)

// Markdown returns a templ.Component that renders md as HTML.
func Markdown(md string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := Render(&buf, md); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// Render writes the HTML representation of md to buf.
func Render(buf *bytes.Buffer, md string) error {
	if err := engine.Convert([]byte(md), buf); err != nil {
		return fmt.Errorf("markdown: render: %w", err)
	}
	return nil
}

// Fence describes one fenced code block found in a Markdown source.
type Fence struct {
	Lang string // language identifier after the opening backticks, "" if none
	Line int    // 1-based line of the opening fence
}

// CodeFences scans src line by line and reports every fenced code block.
// Only triple-backtick fences are considered; the scanner does not
// interpret indentation-based code blocks.
func CodeFences(src []byte) []Fence {
	var fences []Fence
	inFence := false
	for n, raw := range strings.Split(string(src), "\n") {
		line := strings.TrimSpace(strings.TrimRight(raw, "\r"))
		if !strings.HasPrefix(line, "```") {
			continue
		}
		if inFence {
			inFence = false
			continue
		}
		inFence = true
		fences = append(fences, Fence{
			Lang: strings.TrimSpace(strings.TrimPrefix(line, "```")),
			Line: n + 1,
		})
	}
	return fences
}

// SafeURL validates and sanitizes a URL for use in HTML attributes.
func SafeURL(raw string) string {
	val := strings.TrimSpace(html.UnescapeString(raw))
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return html.EscapeString(val)
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel":
		return html.EscapeString(val)
	default:
		return ""
	}
}
