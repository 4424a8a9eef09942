// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeZip creates a zip at path holding the given name→content entries.
// Names ending in "/" become directory entries.
func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		if content != "" {
			_, err = w.Write([]byte(content))
			require.NoError(t, err)
		}
	}
	require.NoError(t, zw.Close())
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "takeout.zip")
	writeZip(t, zipPath, map[string]string{
		"Takeout/":                 "",
		"Takeout/index.html":       "<html></html>",
		"Takeout/Keep/a.html":      "note a",
		"Takeout/Keep/b.json":      "{}",
		"Takeout/Keep/sub/c.html":  "nested",
		"Takeout/archive_browser/": "",
	})

	require.NoError(t, Extract(zipPath, dir))

	root := ExtractedRoot(zipPath)
	assert.Equal(t, filepath.Join(dir, "Takeout"), root)
	data, err := os.ReadFile(filepath.Join(root, "Keep", "a.html"))
	require.NoError(t, err)
	assert.Equal(t, "note a", string(data))
	assert.FileExists(t, filepath.Join(root, "Keep", "sub", "c.html"))
	assert.DirExists(t, filepath.Join(root, "archive_browser"))
}

func TestExtract_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing archive", func(t *testing.T) {
		err := Extract(filepath.Join(dir, "nope.zip"), dir)
		assert.ErrorIs(t, err, ErrArchive)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("corrupt archive", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.zip")
		require.NoError(t, os.WriteFile(bad, []byte("this is not a zip file"), 0o644))
		err := Extract(bad, dir)
		assert.ErrorIs(t, err, ErrArchive)
		assert.ErrorIs(t, err, zip.ErrFormat)
	})

	t.Run("entry escapes destination", func(t *testing.T) {
		evil := filepath.Join(dir, "evil.zip")
		writeZip(t, evil, map[string]string{"../escaped.txt": "gotcha"})
		dest := filepath.Join(dir, "dest")
		require.NoError(t, os.Mkdir(dest, 0o755))

		err := Extract(evil, dest)
		assert.ErrorIs(t, err, ErrArchive)
		assert.NoFileExists(t, filepath.Join(dir, "escaped.txt"))
	})
}

func TestLocate(t *testing.T) {
	root := t.TempDir()
	mkfile := func(rel string) {
		p := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
	mkfile("archive_browser.html")
	mkfile("Drive/doc.txt")
	mkfile("Keep/Note One.HTML")
	mkfile("Keep/Note Two.html")
	mkfile("Keep/Note Two.json")
	mkfile("Tasks/t.html")

	got, err := Locate(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "Keep"), got)

	files, err := NoteFiles(got)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "Keep", "Note One.HTML"),
		filepath.Join(root, "Keep", "Note Two.html"),
	}, files)
}

func TestLocate_NoNotesDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Drive"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "top.html"), []byte("x"), 0o644))

	_, err := Locate(root)
	assert.ErrorIs(t, err, ErrNoNotesDir)

	_, err = Locate(filepath.Join(root, "missing"))
	assert.ErrorIs(t, err, ErrNoNotesDir)
}
