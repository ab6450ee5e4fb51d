package content

import (
	"fmt"

	"github.com/typelore/typelore/markdown"
)

// Severity classifies a lint finding. Errors block ingest; warnings don't.
type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Rule names for lint findings.
const (
	RuleTitle     = "title"
	RuleDate      = "date"
	RuleFenceLang = "fence-lang"
	RuleByline    = "byline"
	RuleEmptyBody = "empty-body"
)

// Issue is a single editorial finding against one document.
type Issue struct {
	Path     string
	Rule     string
	Severity Severity
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s: %s", i.Path, i.Severity, i.Rule, i.Message)
}

// Lint checks the editorial properties every published document must hold:
// a non-empty title, a valid date, a language tag on every code fence, and
// at least one byline. Findings are returned in document order.
func Lint(doc *Document) []Issue {
	var issues []Issue
	fail := func(rule, format string, args ...interface{}) {
		issues = append(issues, Issue{
			Path:     doc.Path,
			Rule:     rule,
			Severity: Error,
			Message:  fmt.Sprintf(format, args...),
		})
	}
	warn := func(rule, format string, args ...interface{}) {
		issues = append(issues, Issue{
			Path:     doc.Path,
			Rule:     rule,
			Severity: Warning,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	if doc.Meta.Title == "" {
		fail(RuleTitle, "front-matter title is empty")
	}
	if _, err := doc.Date(); err != nil {
		fail(RuleDate, "front-matter date %q is not YYYY-MM-DD or RFC 3339", doc.Meta.Date)
	}
	if len(doc.Bylines()) == 0 {
		warn(RuleByline, "no author or authors in front-matter")
	}
	if len(doc.Body) == 0 {
		warn(RuleEmptyBody, "document has no body")
	}
	for _, fence := range markdown.CodeFences(doc.Body) {
		if fence.Lang == "" {
			warn(RuleFenceLang, "code fence at line %d has no language tag", fence.Line)
		}
	}
	return issues
}

// LintAll lints each document and returns the combined findings.
func LintAll(docs []*Document) []Issue {
	var all []Issue
	for _, doc := range docs {
		all = append(all, Lint(doc)...)
	}
	return all
}

// HasErrors reports whether any finding is error severity.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == Error {
			return true
		}
	}
	return false
}
