package cache

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// HashFile computes the SHA-1 digest of a file's content as lowercase hex.
// SHA-1 is fixed by the upstream version manifest, which publishes sha1
// fields for every download.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha1.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// SidecarPath returns the path of the digest file recording the last
// verified digest of the artifact at path.
func SidecarPath(path string) string {
	return path + ".sha1"
}

// ReadSidecar returns the digest stored in the artifact's sidecar file, or
// an empty string if the sidecar does not exist.
func ReadSidecar(path string) (string, error) {
	data, err := os.ReadFile(SidecarPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}

		return "", err
	}

	return strings.TrimSpace(string(data)), nil
}

// WriteSidecar records digest as the verified digest of the artifact at
// path.
func WriteSidecar(path, digest string) error {
	if err := os.WriteFile(SidecarPath(path), []byte(digest), 0o644); err != nil {
		return fmt.Errorf("write digest file for %s: %w", path, err)
	}

	return nil
}
