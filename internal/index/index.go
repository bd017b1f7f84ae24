// Package index resolves a user-supplied version string to a concrete
// release descriptor using the remote version index.
package index

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mcprep/mcprep/internal/transport"
)

// DefaultURL is the public version index listing every known release.
const DefaultURL = "https://launchermeta.mojang.com/mc/game/version_manifest_v2.json"

// Release identifies one release: its id and the URL of its version
// manifest.
type Release struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

type document struct {
	Latest struct {
		Release  string `json:"release"`
		Snapshot string `json:"snapshot"`
	} `json:"latest"`
	Versions []Release `json:"versions"`
}

// Resolve fetches the version index from indexURL and resolves query to a
// release. The aliases "latest" and "latest-release" resolve to the newest
// stable release, "latest-snapshot" to the newest snapshot; anything else
// must match a release id exactly. The index is fetched once per call, no
// caching and no retry.
func Resolve(ctx context.Context, client transport.Client, indexURL, query string) (Release, error) {
	if indexURL == "" {
		indexURL = DefaultURL
	}

	body, err := client.GetBytes(ctx, indexURL)
	if err != nil {
		return Release{}, fmt.Errorf("fetch version index: %w", err)
	}

	var doc document
	if err := json.Unmarshal(body, &doc); err != nil {
		return Release{}, fmt.Errorf("decode version index: %w", err)
	}

	id := query
	switch query {
	case "latest", "latest-release":
		id = doc.Latest.Release
	case "latest-snapshot":
		id = doc.Latest.Snapshot
	}

	for _, v := range doc.Versions {
		if v.ID == id {
			return v, nil
		}
	}

	return Release{}, fmt.Errorf("unknown version %q", query)
}
