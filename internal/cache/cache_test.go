package cache

import (
	"archive/zip"
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// zipBytes builds an in-memory zip with the given entries.
func zipBytes(t *testing.T, entries map[string][]byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	for name, content := range entries {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write(content)
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())

	return buf.Bytes()
}

func sha1hex(data []byte) string {
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}

func TestIsCached_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifact.jar")
	require.False(t, IsCached(path, "abc123"))
}

func TestIsCached_CorruptJar(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "artifact.jar")
	content := []byte("not a zip at all")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	// Even a correct digest and sidecar do not rescue a structurally
	// invalid jar: a prior run may have died mid-write.
	digest := sha1hex(content)
	require.NoError(t, WriteSidecar(path, digest))
	require.False(t, IsCached(path, digest))
}

func TestIsCached_NoDigest(t *testing.T) {
	tempDir := t.TempDir()

	// Non-jar: presence alone is enough
	mapping := filepath.Join(tempDir, "artifact.map")
	require.NoError(t, os.WriteFile(mapping, []byte("a -> b"), 0o644))
	require.True(t, IsCached(mapping, ""))

	// Jar: must still open as an archive
	jar := filepath.Join(tempDir, "artifact.jar")
	require.NoError(t, os.WriteFile(jar, []byte("garbage"), 0o644))
	require.False(t, IsCached(jar, ""))

	require.NoError(t, os.WriteFile(jar, zipBytes(t, map[string][]byte{"a.class": []byte("x")}), 0o644))
	require.True(t, IsCached(jar, ""))
}

func TestIsCached_DigestMismatch(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "artifact.map")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))
	require.NoError(t, WriteSidecar(path, "deadbeef"))

	require.False(t, IsCached(path, "deadbeef"))
}

func TestIsCached_MissingSidecar(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "artifact.map")
	content := []byte("content")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	// Matching content digest without a sidecar is still a miss
	require.False(t, IsCached(path, sha1hex(content)))
}

func TestIsCached_SidecarMismatch(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "artifact.map")
	content := []byte("content")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	require.NoError(t, WriteSidecar(path, "someotherdigest"))

	require.False(t, IsCached(path, sha1hex(content)))
}

func TestIsCached_Hit(t *testing.T) {
	tempDir := t.TempDir()

	// Plain file
	mapping := filepath.Join(tempDir, "artifact.map")
	content := []byte("a -> b")
	require.NoError(t, os.WriteFile(mapping, content, 0o644))
	require.NoError(t, WriteSidecar(mapping, sha1hex(content)))
	require.True(t, IsCached(mapping, sha1hex(content)))

	// Valid jar
	jar := filepath.Join(tempDir, "artifact.jar")
	jarContent := zipBytes(t, map[string][]byte{"a.class": []byte("x")})
	require.NoError(t, os.WriteFile(jar, jarContent, 0o644))
	require.NoError(t, WriteSidecar(jar, sha1hex(jarContent)))
	require.True(t, IsCached(jar, sha1hex(jarContent)))
}
