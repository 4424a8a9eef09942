// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"path/filepath"
	"regexp"
	"time"
)

// OutputExt is the suffix given to converted note files.
const OutputExt = ".md"

// htmlExt matches the suffix of exported note files, case-insensitively.
var htmlExt = regexp.MustCompile(`(?i)\.html$`)

// IsNoteFile reports whether name carries the exported note suffix.
func IsNoteFile(name string) bool {
	return htmlExt.MatchString(name)
}

// BodyKind records which extraction path produced a note body.
type BodyKind string

const (
	// BodyPlainText means the body came from the note's content region.
	BodyPlainText BodyKind = "plain_text"

	// BodyListItems means the content region was empty and the body was
	// assembled from list items.
	BodyListItems BodyKind = "list_items"
)

// Body is the extracted text of a note together with the path that produced it.
type Body struct {
	Kind BodyKind

	// Text uses "\n" for line breaks. For BodyListItems each line is an
	// item prefixed with "- ".
	Text string

	// Items holds the raw list item texts when Kind is BodyListItems.
	Items []string
}

// IsEmpty reports whether the body carries no text.
func (b Body) IsEmpty() bool {
	return b.Text == ""
}

// Note is one parsed note from an exported archive.
type Note struct {
	// SourcePath is the path of the HTML file the note was read from.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// CreatedAt is parsed from the note heading.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	Body Body `json:"-" yaml:"-"`
}

// Text returns the note's body text.
func (n Note) Text() string {
	return n.Body.Text
}

// OutputName derives the output file name: the source base name with its
// HTML suffix replaced by OutputExt.
func (n Note) OutputName() string {
	return htmlExt.ReplaceAllString(filepath.Base(n.SourcePath), OutputExt)
}
