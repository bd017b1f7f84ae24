// Package cache decides whether a downloaded artifact is already correctly
// on disk, so the pipeline can skip the network entirely on repeat runs.
//
// An artifact counts as cached only when all of the following hold:
//
//  1. The file exists.
//  2. If it is a jar, it opens as a structurally valid archive (a prior run
//     may have been interrupted mid-write).
//  3. Its content re-hashes to the expected digest.
//  4. A sidecar digest file exists next to it and records that same digest.
//
// When no expected digest is known, presence plus structural validity is
// accepted as-is.
package cache

import (
	"os"
	"strings"

	"github.com/mcprep/mcprep/internal/archive"
)

// IsCached reports whether the artifact at path is already present and
// verified against expectedDigest. An empty expectedDigest means integrity
// is not checkable and presence alone decides. Routine absence and every
// verification failure report false; errors reading the file or sidecar are
// also treated as "not cached" so the caller simply re-downloads.
func IsCached(path, expectedDigest string) bool {
	if _, err := os.Stat(path); err != nil {
		return false
	}

	if strings.HasSuffix(path, ".jar") && !archive.IsValid(path) {
		return false
	}

	if expectedDigest == "" {
		return true
	}

	digest, err := HashFile(path)
	if err != nil || digest != expectedDigest {
		return false
	}

	// The sidecar must record the same digest. A matching file without a
	// sidecar is still re-downloaded: the digest alone carries no record of
	// where the bytes came from.
	// TODO: consider writing the missing sidecar instead of re-downloading a
	// byte-correct file.
	stored, err := ReadSidecar(path)
	if err != nil || stored == "" {
		return false
	}

	return stored == expectedDigest
}
