package typelore

import (
	"fmt"
	"io/fs"

	"github.com/typelore/typelore/content"
)

// IngestReport summarizes one ingest run.
type IngestReport struct {
	Saved  []string        // slugs upserted into the store
	Issues []content.Issue // lint findings across the corpus
}

// Ingest loads every Markdown document from fsys, lints it, and upserts the
// clean ones into the store. Documents with lint errors are skipped so a
// half-broken post never reaches a public surface; warnings are reported
// but do not block. Slug collisions follow upsert semantics: last write wins.
func (s *Store) Ingest(fsys fs.FS) (IngestReport, error) {
	var report IngestReport

	docs, err := content.LoadDir(fsys)
	if err != nil {
		return report, fmt.Errorf("typelore: ingest: %w", err)
	}

	for _, doc := range docs {
		issues := content.Lint(doc)
		report.Issues = append(report.Issues, issues...)
		if content.HasErrors(issues) {
			continue
		}
		post, err := DocumentToPost(doc)
		if err != nil {
			return report, fmt.Errorf("typelore: ingest %s: %w", doc.Path, err)
		}
		if err := s.SavePost(post); err != nil {
			return report, fmt.Errorf("typelore: save %s: %w", post.Slug, err)
		}
		report.Saved = append(report.Saved, post.Slug)
	}
	return report, nil
}

// DocumentToPost converts a parsed document into a storable post.
// Draft documents ingest as unpublished.
func DocumentToPost(doc *content.Document) (Post, error) {
	date, err := doc.Date()
	if err != nil {
		return Post{}, err
	}
	return Post{
		Slug:       doc.Slug(),
		Title:      doc.Meta.Title,
		Date:       date.Format("2006-01-02"),
		Tags:       FilterEmpty(doc.Meta.Tags),
		Categories: FilterEmpty(doc.Meta.Categories),
		Authors:    doc.Bylines(),
		Summary:    doc.Summary(),
		Content:    string(doc.Body),
		Link:       "/blog/" + doc.Slug(),
		Published:  !doc.Meta.Draft,
	}, nil
}
