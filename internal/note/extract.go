// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package note extracts a timestamped Note from one exported HTML note file.
//
// A note document carries its creation time as text inside div.heading and
// its body as text inside div.content. Checklist notes leave div.content
// without text of its own and hold their items in li > span.text; those are
// rendered as a markdown-style list.
package note

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/alecperkey/KeepToText/internal/timestamp"
	"github.com/alecperkey/KeepToText/pkg/types"
)

// ErrStructure is returned when a document has no heading to read a
// creation time from. Callers skip such files.
var ErrStructure = errors.New("missing note heading")

const listItemPrefix = "- "

var (
	headingSel  = cascadia.MustCompile("div.heading")
	contentSel  = cascadia.MustCompile("div.content")
	listItemSel = cascadia.MustCompile("li > span.text")
	lineBreak   = cascadia.MustCompile("br")
)

// Extractor turns note documents into Notes. The zero value parses
// headings in time.Local.
type Extractor struct {
	// Location is used for headings that carry no zone. Nil means time.Local.
	Location *time.Location
}

// New creates an Extractor that reads headings in loc.
func New(loc *time.Location) *Extractor {
	return &Extractor{Location: loc}
}

// ExtractFile reads the UTF-8 note document at path.
func (e *Extractor) ExtractFile(path string) (types.Note, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.Note{}, fmt.Errorf("opening note %s: %w", path, err)
	}
	defer f.Close()

	return e.Extract(path, f)
}

// Extract parses one note document read from r. sourcePath is recorded on
// the returned Note and used in error messages.
func (e *Extractor) Extract(sourcePath string, r io.Reader) (types.Note, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return types.Note{}, fmt.Errorf("parsing %s: %w", sourcePath, err)
	}

	preserveLineBreaks(doc.Selection)

	heading, ok := headingText(doc.Selection)
	if !ok {
		return types.Note{}, fmt.Errorf("%s: %w", sourcePath, ErrStructure)
	}

	created, err := timestamp.Parse(heading, e.Location)
	if err != nil {
		return types.Note{}, fmt.Errorf("%s: heading: %w", sourcePath, err)
	}

	return types.Note{
		SourcePath: sourcePath,
		CreatedAt:  created,
		Body:       extractBody(doc.Selection),
	}, nil
}

// preserveLineBreaks puts a newline at the front of the text that follows
// every <br>, inserting a text node when nothing follows it.
func preserveLineBreaks(root *goquery.Selection) {
	root.FindMatcher(lineBreak).Each(func(_ int, s *goquery.Selection) {
		br := s.Get(0)
		if next := br.NextSibling; next != nil && next.Type == html.TextNode {
			next.Data = "\n" + next.Data
			return
		}
		if br.Parent == nil {
			return
		}
		br.Parent.InsertBefore(&html.Node{Type: html.TextNode, Data: "\n"}, br.NextSibling)
	})
}

// headingText returns the first direct text of the heading region, trimmed.
func headingText(root *goquery.Selection) (string, bool) {
	heading := root.FindMatcher(headingSel).First()
	if heading.Length() == 0 {
		return "", false
	}
	texts := ownText(heading)
	if len(texts) == 0 {
		return "", false
	}
	return strings.TrimSpace(texts[0]), true
}

// extractBody reads the content region's own text, falling back to list
// items when that text is blank. Whitespace-only content counts as blank,
// so it is dropped rather than kept when no list items exist either.
func extractBody(root *goquery.Selection) types.Body {
	var b strings.Builder
	root.FindMatcher(contentSel).Each(func(_ int, s *goquery.Selection) {
		for _, t := range ownText(s) {
			b.WriteString(t)
		}
	})
	if text := b.String(); strings.TrimSpace(text) != "" {
		return types.Body{Kind: types.BodyPlainText, Text: text}
	}

	var items []string
	root.FindMatcher(listItemSel).Each(func(_ int, s *goquery.Selection) {
		if item := strings.Join(ownText(s), ""); item != "" {
			items = append(items, item)
		}
	})
	if len(items) == 0 {
		return types.Body{Kind: types.BodyPlainText}
	}

	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = listItemPrefix + item
	}
	return types.Body{
		Kind:  types.BodyListItems,
		Text:  strings.Join(lines, "\n"),
		Items: items,
	}
}

// ownText returns the text nodes that are direct children of the first
// element in s. Text inside nested elements is not included.
func ownText(s *goquery.Selection) []string {
	if s.Length() == 0 {
		return nil
	}
	var texts []string
	for c := s.Get(0).FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			texts = append(texts, c.Data)
		}
	}
	return texts
}
