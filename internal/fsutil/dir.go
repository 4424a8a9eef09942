// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fsutil

import (
	"context"
	"fmt"
	"io"
	"os"
)

// RemoveAll deletes the tree at dir and waits until it is gone. A missing
// dir is not an error. The removal is announced on w when dir exists.
func RemoveAll(ctx context.Context, p Policy, dir string, w io.Writer) error {
	if isDir(dir) {
		fmt.Fprintf(w, "Removing %s\n", dir)
	}

	err := p.Until(ctx,
		func() error { return os.RemoveAll(dir) },
		func() (bool, error) { return !isDir(dir), nil },
	)
	if err != nil {
		return fmt.Errorf("removing %s: %w", dir, err)
	}
	return nil
}

// Mkdir creates dir and waits until it exists. An existing dir is not an
// error. The parent must already exist.
func Mkdir(ctx context.Context, p Policy, dir string) error {
	err := p.Until(ctx,
		func() error { return os.Mkdir(dir, 0o755) },
		func() (bool, error) { return isDir(dir), nil },
	)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
