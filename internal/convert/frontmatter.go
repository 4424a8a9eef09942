// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/alecperkey/KeepToText/pkg/types"
)

// noteHeader is the YAML frontmatter written ahead of a note's text.
type noteHeader struct {
	Source  string    `yaml:"source"`
	Created time.Time `yaml:"created"`
	Kind    string    `yaml:"kind"`
}

// frontmatter renders the YAML block, delimiters included, for n.
func frontmatter(n types.Note) (string, error) {
	out, err := yaml.Marshal(noteHeader{
		Source:  filepath.Base(n.SourcePath),
		Created: n.CreatedAt,
		Kind:    string(n.Body.Kind),
	})
	if err != nil {
		return "", fmt.Errorf("marshaling frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(out)
	b.WriteString("---\n\n")
	return b.String(), nil
}
