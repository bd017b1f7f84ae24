package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mcprep/mcprep/internal/cache"
)

// DownloadOutcome reports where an artifact lives and whether the cache was
// hit. Skipped means no network or disk write happened this run.
type DownloadOutcome struct {
	Path    string
	Skipped bool
}

// download performs a cache-aware fetch of the manifest entry for key into
// path. On a cache hit the transport is never touched. On a miss the bytes
// are fetched once, written atomically, verified against the manifest digest
// and recorded in the sidecar digest file. A digest mismatch is fatal and
// leaves no sidecar, so the next run re-fetches.
func (p *Pipeline) download(ctx context.Context, display, key, path string) (DownloadOutcome, error) {
	d, ok := p.manifest.Lookup(key)
	if !ok {
		return DownloadOutcome{}, wrap(ErrManifestKey, "no manifest entry for "+key, nil)
	}

	if cache.IsCached(path, d.SHA1) {
		p.logger.Info("skip: already downloaded", slog.String("artifact", display))
		return DownloadOutcome{Path: path, Skipped: true}, nil
	}

	p.logger.Info("downloading", slog.String("artifact", display), slog.String("url", d.URL))
	start := time.Now()

	data, err := p.client.GetBytes(ctx, d.URL)
	if err != nil {
		return DownloadOutcome{}, wrap(ErrTransport, "download "+display, err)
	}

	if err := writeFileAtomic(path, data); err != nil {
		return DownloadOutcome{}, wrap(ErrWrite, "write "+display, err)
	}

	if d.SHA1 != "" {
		digest, err := cache.HashFile(path)
		if err != nil {
			return DownloadOutcome{}, wrap(ErrIntegrity, "checksum "+display, err)
		}

		if digest != d.SHA1 {
			// The file stays on disk but no sidecar is written; the next
			// run fails the digest check and re-fetches.
			return DownloadOutcome{}, wrap(ErrIntegrity, "checksum mismatch for "+display+": got "+digest+", want "+d.SHA1, nil)
		}

		if err := cache.WriteSidecar(path, d.SHA1); err != nil {
			return DownloadOutcome{}, wrap(ErrWrite, "record digest for "+display, err)
		}
	}

	p.logger.Info("downloaded",
		slog.String("artifact", display),
		slog.Int("bytes", len(data)),
		slog.Duration("elapsed", time.Since(start)))

	return DownloadOutcome{Path: path, Skipped: false}, nil
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it into place, so a crash mid-write never leaves a plausible
// half-written artifact at path.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())

		return err
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())

		return err
	}

	return nil
}
