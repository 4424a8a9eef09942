// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive expands an exported notes zip and finds the directory
// holding the note files.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// RootDir is the top-level directory of an exported archive.
const RootDir = "Takeout"

var (
	// ErrArchive marks a missing, unreadable, or corrupt archive.
	ErrArchive = errors.New("archive error")

	// ErrNoNotesDir is returned when no subdirectory holds note files.
	ErrNoNotesDir = errors.New("no Keep directory found")
)

// ExtractedRoot returns where the archive's RootDir lands once zipPath is
// extracted next to itself.
func ExtractedRoot(zipPath string) string {
	return filepath.Join(filepath.Dir(zipPath), RootDir)
}

// Extract expands every entry of the zip at zipPath into destDir. Entries
// whose paths would land outside destDir are rejected.
func Extract(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		if r != nil {
			r.Close()
		}
		return fmt.Errorf("%w: %w", ErrArchive, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if err := extractFile(f, destDir); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrArchive, f.Name, err)
		}
	}
	return nil
}

func extractFile(f *zip.File, destDir string) error {
	target, err := safeJoin(destDir, f.Name)
	if err != nil {
		return err
	}

	if f.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// safeJoin joins name onto dir, refusing names that climb out of dir.
func safeJoin(dir, name string) (string, error) {
	target := filepath.Join(dir, filepath.FromSlash(name))
	rel, err := filepath.Rel(dir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(name) {
		return "", fmt.Errorf("illegal entry path %q", name)
	}
	return target, nil
}
