// Package fs writes harvested specs to files and reads exclusion lists.
//
// Every writer stages output in <path>.tmp and renames it over <path> once
// fully written, so an interrupted run never leaves a truncated file behind.
package fs

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
)

// writeAtomic writes to path via a temporary sibling file.
func writeAtomic(path string, write func(w io.Writer) error) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}
