// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecperkey/KeepToText/pkg/types"
)

// Locate returns the first immediate subdirectory of root that contains at
// least one note file. Subdirectories are visited in os.ReadDir order,
// which sorts by name. ErrNoNotesDir is returned when none qualifies.
func Locate(root string) (string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %w", ErrNoNotesDir, root, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		files, err := NoteFiles(dir)
		if err != nil {
			continue
		}
		if len(files) > 0 {
			return dir, nil
		}
	}
	return "", ErrNoNotesDir
}

// NoteFiles lists the note files directly inside dir, in name order.
func NoteFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.Type().IsRegular() && types.IsNoteFile(entry.Name()) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}
