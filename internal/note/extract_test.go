// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package note

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alecperkey/KeepToText/internal/timestamp"
	"github.com/alecperkey/KeepToText/pkg/types"
)

const textNote = `<!DOCTYPE html>
<html><head><title>Shopping</title></head><body>
<div class="note DEFAULT"><div class="heading">
12/01/2020 14:30:00
</div><div class="title">Shopping</div><div class="content">first line<br>second line<br/>third <b>bold</b> tail</div></div>
</body></html>`

const listNote = `<html><body><div class="note"><div class="heading">03/04/2020 08:00:00</div>` +
	`<div class="content"><ul class="list">` +
	`<li class="listitem checked"><span class="bullet">&#9745;</span><span class="text">milk</span></li>` +
	`<li class="listitem"><span class="bullet">&#9744;</span><span class="text">eggs</span></li>` +
	`</ul></div></div></body></html>`

func TestExtract(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantKind  types.BodyKind
		wantText  string
		wantItems []string
		wantTime  time.Time
	}{
		{
			name:     "plain text with line breaks",
			doc:      textNote,
			wantKind: types.BodyPlainText,
			wantText: "first line\nsecond line\nthird  tail",
			wantTime: time.Date(2020, time.January, 12, 14, 30, 0, 0, time.UTC),
		},
		{
			name:      "list fallback",
			doc:       listNote,
			wantKind:  types.BodyListItems,
			wantText:  "- milk\n- eggs",
			wantItems: []string{"milk", "eggs"},
			wantTime:  time.Date(2020, time.April, 3, 8, 0, 0, 0, time.UTC),
		},
		{
			name:     "trailing line break adds newline",
			doc:      `<div class="heading">12/01/2020</div><div class="content">only<br></div>`,
			wantKind: types.BodyPlainText,
			wantText: "only\n",
			wantTime: time.Date(2020, time.January, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "empty list items are dropped",
			doc: `<div class="heading">12/01/2020</div><div class="content"><ul>` +
				`<li><span class="text"></span></li><li><span class="text">b</span></li></ul></div>`,
			wantKind:  types.BodyListItems,
			wantText:  "- b",
			wantItems: []string{"b"},
			wantTime:  time.Date(2020, time.January, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "all list items empty",
			doc: `<div class="heading">12/01/2020</div><div class="content"><ul>` +
				`<li><span class="text"></span></li><li><span class="text"></span></li></ul></div>`,
			wantKind: types.BodyPlainText,
			wantText: "",
			wantTime: time.Date(2020, time.January, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "whitespace content and no list",
			doc:      `<div class="heading">12/01/2020</div><div class="content">   </div>`,
			wantKind: types.BodyPlainText,
			wantText: "",
			wantTime: time.Date(2020, time.January, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "empty content and no list",
			doc:      `<div class="heading">12/01/2020</div><div class="content"></div>`,
			wantKind: types.BodyPlainText,
			wantText: "",
			wantTime: time.Date(2020, time.January, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "malformed markup is tolerated",
			doc:      `<div class="heading">12/01/2020<div class="content">unclosed <p>para`,
			wantKind: types.BodyPlainText,
			wantText: "unclosed ",
			wantTime: time.Date(2020, time.January, 12, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := New(time.UTC).Extract("note.html", strings.NewReader(tt.doc))
			require.NoError(t, err)

			assert.Equal(t, "note.html", n.SourcePath)
			assert.Equal(t, tt.wantKind, n.Body.Kind)
			assert.Equal(t, tt.wantText, n.Text())
			assert.Equal(t, tt.wantItems, n.Body.Items)
			assert.True(t, tt.wantTime.Equal(n.CreatedAt), "CreatedAt = %v, want %v", n.CreatedAt, tt.wantTime)
		})
	}
}

func TestExtract_MissingHeading(t *testing.T) {
	doc := `<html><body><div class="content">no heading here</div></body></html>`

	// Repeated extraction fails the same way.
	for i := 0; i < 2; i++ {
		_, err := New(time.UTC).Extract("bad.html", strings.NewReader(doc))
		require.ErrorIs(t, err, ErrStructure)
		assert.Contains(t, err.Error(), "bad.html")
	}
}

func TestExtract_EmptyHeading(t *testing.T) {
	doc := `<div class="heading"><span>12/01/2020</span></div><div class="content">x</div>`
	_, err := New(time.UTC).Extract("nested.html", strings.NewReader(doc))
	assert.ErrorIs(t, err, ErrStructure)
}

func TestExtract_UnparsableHeading(t *testing.T) {
	doc := `<div class="heading">sometime last week</div><div class="content">x</div>`
	_, err := New(time.UTC).Extract("vague.html", strings.NewReader(doc))
	require.Error(t, err)
	assert.ErrorIs(t, err, timestamp.ErrParse)
	assert.NotErrorIs(t, err, ErrStructure)
}

func TestExtractFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Shopping.html")
	require.NoError(t, os.WriteFile(path, []byte(textNote), 0o644))

	n, err := New(time.UTC).ExtractFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, n.SourcePath)
	assert.Equal(t, "Shopping.md", n.OutputName())

	_, err = New(time.UTC).ExtractFile(filepath.Join(dir, "missing.html"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestZeroExtractorUsesLocal(t *testing.T) {
	var e Extractor
	n, err := e.Extract("n.html", strings.NewReader(`<div class="heading">12/01/2020</div>`))
	require.NoError(t, err)
	assert.Equal(t, time.Local, n.CreatedAt.Location())
	assert.True(t, n.Body.IsEmpty())
}
