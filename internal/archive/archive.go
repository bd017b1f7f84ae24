// Package archive answers the two questions the pipeline has about jar
// files: "is this a well-formed archive?" and "does it contain this entry?".
// Jars are plain zip files, so both are answered through archive/zip.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// IsValid reports whether path is an openable zip archive with a readable
// entry table. A missing file, a truncated file from an interrupted write,
// or any structural error all report false.
func IsValid(path string) bool {
	r, err := zip.OpenReader(path)
	if err != nil {
		return false
	}
	defer r.Close()

	return true
}

// ExtractEntry copies the archive entry at entryPath out of the zip at
// archivePath into destPath, overwriting any existing file. It returns
// (false, nil) when the entry does not exist; an absent entry is not an
// error.
func ExtractEntry(archivePath, entryPath, destPath string) (bool, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return false, fmt.Errorf("open archive %s: %w", archivePath, err)
	}
	defer r.Close()

	entry, err := r.Open(entryPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, fmt.Errorf("open entry %s: %w", entryPath, err)
	}
	defer entry.Close()

	// Extract via a temp file so an interrupted run never leaves a
	// half-written jar at destPath.
	tmp, err := os.CreateTemp(filepath.Dir(destPath), filepath.Base(destPath)+".tmp-*")
	if err != nil {
		return false, fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(tmp, entry); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return false, fmt.Errorf("extract entry %s: %w", entryPath, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())

		return false, fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), destPath); err != nil {
		os.Remove(tmp.Name())

		return false, fmt.Errorf("replace %s: %w", destPath, err)
	}

	return true, nil
}
