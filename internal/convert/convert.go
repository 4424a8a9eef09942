// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns an exported notes archive into one text file per
// note, stamped with the note's creation time.
//
// The archive is extracted next to itself, the directory holding the note
// files is located, every note is extracted, and the results are written
// into a sibling Text directory. Per-note problems are reported on the
// status writer and never abort the run; archive and configuration
// problems do.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecperkey/KeepToText/internal/archive"
	"github.com/alecperkey/KeepToText/internal/fsutil"
	"github.com/alecperkey/KeepToText/internal/note"
	"github.com/alecperkey/KeepToText/internal/textenc"
	"github.com/alecperkey/KeepToText/internal/timestamp"
	"github.com/alecperkey/KeepToText/pkg/types"
)

// OutputDir is the name of the directory created next to the archive.
const OutputDir = "Text"

// Status is the outcome of converting one note.
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// BatchResult holds the outcome of a conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int

	// Empty counts converted notes that had no text.
	Empty int
}

// Total returns the total number of note files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any note failed to convert.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

func (r *BatchResult) add(s Status) {
	switch s {
	case StatusConverted:
		r.Converted++
	case StatusSkipped:
		r.Skipped++
	case StatusFailed:
		r.Failed++
	}
}

// Converter carries the resolved settings for one run.
type Converter struct {
	cfg       types.ConversionConfig
	codec     *textenc.Codec
	extractor *note.Extractor
	policy    fsutil.Policy
	w         io.Writer
}

// New validates cfg and returns a Converter that reports progress on w.
// An unrecognized output encoding is rejected here, before anything on
// disk is touched.
func New(cfg types.ConversionConfig, w io.Writer) (*Converter, error) {
	cfg = cfg.WithDefaults()

	codec, err := textenc.Lookup(cfg.Encoding)
	if err != nil {
		return nil, err
	}

	return &Converter{
		cfg:       cfg,
		codec:     codec,
		extractor: note.New(nil),
		policy:    fsutil.Policy{Attempts: cfg.Retry.Attempts, Delay: cfg.Retry.Delay},
		w:         w,
	}, nil
}

// Run converts the archive at cfg.ArchivePath. It returns an error only
// for conditions that stop the whole run.
func Run(ctx context.Context, cfg types.ConversionConfig, w io.Writer) (BatchResult, error) {
	c, err := New(cfg, w)
	if err != nil {
		return BatchResult{}, err
	}
	return c.Run(ctx)
}

// Run converts the configured archive.
func (c *Converter) Run(ctx context.Context) (BatchResult, error) {
	zipPath := c.cfg.ArchivePath
	baseDir := filepath.Dir(zipPath)
	root := archive.ExtractedRoot(zipPath)

	if err := fsutil.RemoveAll(ctx, c.policy, root, c.w); err != nil {
		return BatchResult{}, err
	}

	if info, err := os.Stat(zipPath); err == nil && info.Mode().IsRegular() {
		fmt.Fprintf(c.w, "Extracting %s ...\n", zipPath)
	}
	if err := archive.Extract(zipPath, baseDir); err != nil {
		return BatchResult{}, err
	}

	notesDir, err := archive.Locate(root)
	if err != nil {
		return BatchResult{}, err
	}
	fmt.Fprintf(c.w, "Keep dir: %s\n", notesDir)

	notes, result, err := c.ExtractNotes(notesDir)
	if err != nil {
		return result, err
	}

	outDir := filepath.Join(baseDir, OutputDir)
	if err := fsutil.Mkdir(ctx, c.policy, outDir); err != nil {
		return result, err
	}

	for _, n := range notes {
		status := c.WriteNote(outDir, n)
		result.add(status)
		if status == StatusConverted && n.Body.IsEmpty() {
			result.Empty++
		}
	}

	fmt.Fprintf(c.w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// ExtractNotes reads every note file in dir. Files without a heading are
// skipped silently; files with an unreadable heading or that cannot be
// opened are reported and counted. The returned result holds only those
// skip and failure counts.
func (c *Converter) ExtractNotes(dir string) ([]types.Note, BatchResult, error) {
	var result BatchResult

	fmt.Fprintf(c.w, "Processing HTML files in %s\n", dir)

	paths, err := archive.NoteFiles(dir)
	if err != nil {
		return nil, result, err
	}

	notes := make([]types.Note, 0, len(paths))
	for _, path := range paths {
		n, err := c.extractor.ExtractFile(path)
		switch {
		case err == nil:
			notes = append(notes, n)
		case errors.Is(err, note.ErrStructure):
			result.add(StatusSkipped)
		case errors.Is(err, timestamp.ErrParse):
			fmt.Fprintf(c.w, "warning: skipping file %s: %v\n", path, err)
			result.add(StatusSkipped)
		default:
			fmt.Fprintf(c.w, "failed:  %s (%v)\n", filepath.Base(path), err)
			result.add(StatusFailed)
		}
	}
	return notes, result, nil
}

// WriteNote writes one note into outDir using the configured encoding and
// sets the file's modification time to the note's creation time. Notes
// whose text the encoding cannot represent are skipped with a warning.
func (c *Converter) WriteNote(outDir string, n types.Note) Status {
	name := n.OutputName()
	if n.Body.IsEmpty() {
		fmt.Fprintf(c.w, "Note named %q has no characters\n", name)
	}

	content := n.Text()
	if c.cfg.Frontmatter {
		fm, err := frontmatter(n)
		if err != nil {
			fmt.Fprintf(c.w, "failed:  %s (%v)\n", name, err)
			return StatusFailed
		}
		content = fm + content
	}

	data, err := c.codec.Encode(content)
	if err != nil {
		var uerr *textenc.UnrepresentableError
		if errors.As(err, &uerr) {
			fmt.Fprintf(c.w, "warning: skipping file %s: %v\n", n.SourcePath, err)
			return StatusSkipped
		}
		fmt.Fprintf(c.w, "failed:  %s (%v)\n", name, err)
		return StatusFailed
	}

	path := filepath.Join(outDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Fprintf(c.w, "failed:  %s (%v)\n", name, err)
		return StatusFailed
	}
	if err := os.Chtimes(path, n.CreatedAt, n.CreatedAt); err != nil {
		fmt.Fprintf(c.w, "failed:  %s (%v)\n", name, err)
		return StatusFailed
	}

	fmt.Fprintf(c.w, "converted: %s\n", name)
	return StatusConverted
}
