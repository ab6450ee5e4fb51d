package content

import (
	"strings"
	"testing"
	"time"
)

const samplePost = `---
title: "Variance in Scala"
date: 2019-06-03
tags: [scala, variance]
categories: [scala]
authors:
  - "Marta Keller"
  - "Jonas Brandt"
---

If Cat is a subtype of Animal, is List[Cat] a subtype of List[Animal]?

## Three stances

` + "```scala\nclass Box[+A]\n```\n"

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument("variance-in-scala.md", []byte(samplePost), time.Time{})
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if doc.Meta.Title != "Variance in Scala" {
		t.Errorf("Title = %q", doc.Meta.Title)
	}
	if doc.Meta.Date != "2019-06-03" {
		t.Errorf("Date = %q", doc.Meta.Date)
	}
	if len(doc.Meta.Tags) != 2 || doc.Meta.Tags[0] != "scala" {
		t.Errorf("Tags = %v", doc.Meta.Tags)
	}
	if len(doc.Meta.Categories) != 1 || doc.Meta.Categories[0] != "scala" {
		t.Errorf("Categories = %v", doc.Meta.Categories)
	}
	if strings.Contains(string(doc.Body), "---") {
		t.Errorf("body still contains front-matter delimiters: %q", doc.Body)
	}
	if !strings.Contains(string(doc.Body), "subtype of Animal") {
		t.Errorf("body missing content: %q", doc.Body)
	}
}

func TestParseDocumentMissingFrontMatter(t *testing.T) {
	_, err := ParseDocument("plain.md", []byte("just a body, no metadata"), time.Time{})
	if err == nil {
		t.Fatal("expected error for document without front-matter")
	}
}

func TestParseDocumentMalformedFrontMatter(t *testing.T) {
	src := "---\ntitle: [unclosed\n---\nbody\n"
	_, err := ParseDocument("broken.md", []byte(src), time.Time{})
	if err == nil {
		t.Fatal("expected error for malformed front-matter")
	}
}

func TestAuthorScalarAndList(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			"scalar author",
			"---\ntitle: T\ndate: 2019-01-01\nauthor: \"Marta Keller\"\n---\nbody",
			[]string{"Marta Keller"},
		},
		{
			"authors list",
			"---\ntitle: T\ndate: 2019-01-01\nauthors: [\"A\", \"B\"]\n---\nbody",
			[]string{"A", "B"},
		},
		{
			"author and authors merged without duplicates",
			"---\ntitle: T\ndate: 2019-01-01\nauthor: A\nauthors: [A, B]\n---\nbody",
			[]string{"A", "B"},
		},
	}
	for _, tt := range tests {
		doc, err := ParseDocument(tt.name+".md", []byte(tt.src), time.Time{})
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		got := doc.Bylines()
		if len(got) != len(tt.want) {
			t.Fatalf("%s: Bylines() = %v, want %v", tt.name, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s: Bylines()[%d] = %q, want %q", tt.name, i, got[i], tt.want[i])
			}
		}
	}
}

func TestDocumentDate(t *testing.T) {
	tests := []struct {
		date    string
		wantErr bool
	}{
		{"2019-06-03", false},
		{"2019-06-03T10:30:00Z", false},
		{"June 3rd", true},
		{"", true},
	}
	for _, tt := range tests {
		doc := &Document{Path: "x.md", Meta: FrontMatter{Date: tt.date}}
		_, err := doc.Date()
		if (err != nil) != tt.wantErr {
			t.Errorf("Date(%q) err = %v, wantErr %v", tt.date, err, tt.wantErr)
		}
	}
}

func TestSummaryDerivedFromFirstParagraph(t *testing.T) {
	doc, err := ParseDocument("variance-in-scala.md", []byte(samplePost), time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	got := doc.Summary()
	if !strings.HasPrefix(got, "If Cat is a subtype") {
		t.Errorf("Summary() = %q, want first paragraph", got)
	}
	if strings.Contains(got, "Box[+A]") {
		t.Errorf("Summary() leaked code fence content: %q", got)
	}
}

func TestSummaryExplicitWins(t *testing.T) {
	doc := &Document{
		Meta: FrontMatter{Summary: "explicit"},
		Body: []byte("first paragraph"),
	}
	if got := doc.Summary(); got != "explicit" {
		t.Errorf("Summary() = %q, want %q", got, "explicit")
	}
}

func TestSlugFromFilename(t *testing.T) {
	doc := &Document{Path: "sub/dir/variance-in-scala.md"}
	if got := doc.Slug(); got != "variance-in-scala" {
		t.Errorf("Slug() = %q", got)
	}
	doc.Meta.Slug = "custom"
	if got := doc.Slug(); got != "custom" {
		t.Errorf("Slug() = %q, want custom", got)
	}
}
