// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfbuild

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CopyFallbackDiagrams copies every pre-rendered PDF from the fallback
// directory into the output directory, overwriting same-named files. A copy
// that fails is reported and skipped. It returns the number copied.
func (d *Driver) CopyFallbackDiagrams() int {
	dir := d.cfg.FallbackPath()
	if !exists(dir) {
		return 0
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		d.log.Warn("Cannot list fallback PDFs", "dir", dir, "err", err)
		return 0
	}
	var matches []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".pdf") {
			continue
		}
		matches = append(matches, filepath.Join(dir, e.Name()))
	}
	sort.Strings(matches)

	copied := 0
	for _, src := range matches {
		dest := filepath.Join(d.cfg.OutputPath(), filepath.Base(src))
		if err := copyFile(src, dest); err != nil {
			d.log.Warn("Failed to copy diagram PDF", "from", src, "to", dest, "err", err)
			continue
		}
		d.log.Info("Copied existing diagram PDF", "from", src, "to", dest)
		copied++
	}
	return copied
}

// copyFile copies src to dest, keeping the permission bits and the
// modification time of src.
func copyFile(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", src)
	}

	if destInfo, err := os.Stat(dest); err == nil && os.SameFile(info, destInfo) {
		return fmt.Errorf("%s and %s are the same file", src, dest)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying to %s: %w", dest, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dest, err)
	}

	if err := os.Chmod(dest, info.Mode().Perm()); err != nil {
		return fmt.Errorf("setting mode on %s: %w", dest, err)
	}
	return os.Chtimes(dest, info.ModTime(), info.ModTime())
}
