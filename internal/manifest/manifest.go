// Package manifest models the per-release version manifest: the document
// that maps artifact keys such as "client" or "server_mappings" to a
// download URL and its expected SHA-1 digest.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
)

// Download is one downloadable artifact in a release manifest.
type Download struct {
	URL  string `json:"url"`
	SHA1 string `json:"sha1"`
	Size int64  `json:"size,omitempty"`
}

// Manifest maps artifact keys to their downloads for one release.
type Manifest map[string]Download

type document struct {
	Downloads map[string]Download `json:"downloads"`
}

// Parse decodes raw version metadata and extracts the downloads mapping.
// An empty or missing downloads section is a parse failure; a manifest that
// offers nothing to download is useless to the pipeline.
func Parse(data []byte) (Manifest, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode version metadata: %w", err)
	}

	if len(doc.Downloads) == 0 {
		return nil, fmt.Errorf("version metadata has no downloads section")
	}

	return Manifest(doc.Downloads), nil
}

// LoadCached reads and parses a previously persisted manifest file. Any
// failure (missing file, unreadable, unparseable, empty) reports ok=false so
// the caller falls back to a fresh fetch; a stale cache is never fatal.
func LoadCached(path string) (Manifest, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	m, err := Parse(data)
	if err != nil {
		return nil, false
	}

	return m, true
}

// Lookup returns the download for key. ok is false when the manifest has no
// entry for it.
func (m Manifest) Lookup(key string) (Download, bool) {
	d, ok := m[key]
	return d, ok
}
