package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/spf13/pflag"

	typelore "github.com/typelore/typelore"
	"github.com/typelore/typelore/scaffold"
)

// postData holds the template variables passed to the post scaffold.
type postData struct {
	Title  string
	Date   string
	Author string
}

func runNew(args []string) error {
	flags := pflag.NewFlagSet("new", pflag.ContinueOnError)
	dir := flags.String("content", "posts", "directory to create the post in")
	author := flags.String("author", typelore.EnvOr("SITE_AUTHOR", ""), "author for the front-matter byline")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() < 1 {
		return fmt.Errorf("usage: typelore new <title>")
	}

	title := strings.Join(flags.Args(), " ")
	slug := typelore.Slugify(title)
	if slug == "" {
		return fmt.Errorf("title %q produces an empty slug", title)
	}

	outPath := filepath.Join(*dir, slug+".md")
	if _, err := os.Stat(outPath); err == nil {
		return fmt.Errorf("%s already exists", outPath)
	}

	src, err := scaffold.Templates.ReadFile("templates/post.md.tmpl")
	if err != nil {
		return fmt.Errorf("read post template: %w", err)
	}
	tmpl, err := template.New("post").Parse(string(src))
	if err != nil {
		return fmt.Errorf("parse post template: %w", err)
	}

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer f.Close()

	data := postData{
		Title:  title,
		Date:   time.Now().Format("2006-01-02"),
		Author: *author,
	}
	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("execute post template: %w", err)
	}

	fmt.Printf("created %s\n", outPath)
	fmt.Println("The post is a draft; flip `draft: false` when it is ready.")
	return nil
}
