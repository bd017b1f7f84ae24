// Package pipeline drives the multi-stage preparation of a deobfuscated jar
// for one release: metadata, downloads, nested-jar unpacking, remapping and
// decompilation. Every stage is cache-aware and idempotent, so a re-run
// resumes from whatever earlier runs left on disk.
//
// One Pipeline instance runs exactly one preparation to completion or
// failure. The work root is not locked; running two pipelines against the
// same work root concurrently is undefined behavior.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mcprep/mcprep/internal/archive"
	"github.com/mcprep/mcprep/internal/config"
	"github.com/mcprep/mcprep/internal/decompiler"
	"github.com/mcprep/mcprep/internal/index"
	"github.com/mcprep/mcprep/internal/manifest"
	"github.com/mcprep/mcprep/internal/remapper"
	"github.com/mcprep/mcprep/internal/transport"
)

// Stage names reported in Result.Skipped.
const (
	StageJar     = "version jar"
	StageUnpack  = "unpack server jar"
	StageMapping = "version mapping"
	StageRemap   = "remap"
)

// Options configures one pipeline run. Immutable for the lifetime of the
// run.
type Options struct {
	// OutputDir is the root under which the per-release work directory is
	// created
	OutputDir string

	// Release identifies the release to prepare
	Release index.Release

	// Target is config.TargetClient or config.TargetServer
	Target string

	// Remap enables the symbol remapping stage
	Remap bool

	// Decompile enables the decompilation stage; only honored when Remap is
	// also set
	Decompile bool
}

// Result summarizes a completed run.
type Result struct {
	// Root is the work directory holding all artifacts of this run
	Root string

	// Skipped lists the stages that were satisfied from cache
	Skipped []string
}

// Pipeline prepares artifacts for a single release and target.
type Pipeline struct {
	opts       Options
	client     transport.Client
	remapper   remapper.Remapper
	decompiler decompiler.Decompiler
	logger     *slog.Logger

	root     string
	manifest manifest.Manifest
}

// New creates a pipeline. The remapper may be nil when Options.Remap is
// false, and the decompiler may be nil when Options.Decompile is false.
func New(opts Options, client transport.Client, rm remapper.Remapper, dc decompiler.Decompiler, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}

	return &Pipeline{
		opts:       opts,
		client:     client,
		remapper:   rm,
		decompiler: dc,
		logger:     logger,
		root:       filepath.Join(opts.OutputDir, opts.Release.ID+opts.Target),
	}
}

// Root returns the work directory for this release and target.
func (p *Pipeline) Root() string { return p.root }

// JarPath returns the path of the primary artifact.
func (p *Pipeline) JarPath() string {
	return filepath.Join(p.root, p.opts.Release.ID+".jar")
}

// MappingPath returns the path of the mapping artifact.
func (p *Pipeline) MappingPath() string {
	return filepath.Join(p.root, p.opts.Release.ID+".map")
}

// RemappedJarPath returns the path of the remapped output jar.
func (p *Pipeline) RemappedJarPath() string {
	return filepath.Join(p.root, "remapped-"+p.opts.Release.ID+".jar")
}

// MetaPath returns the path of the cached version metadata.
func (p *Pipeline) MetaPath() string {
	return filepath.Join(p.root, p.opts.Release.ID+".json")
}

// DecompiledDir returns the directory that receives reconstructed source.
func (p *Pipeline) DecompiledDir() string {
	return filepath.Join(p.root, "decompiled")
}

// Run executes all stages in order. The first fatal failure aborts the run;
// artifacts of completed stages stay on disk so a later run resumes from
// them. Cancellation is honored inside network and engine calls.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	res := Result{Root: p.root}

	if err := p.createWorkRoot(); err != nil {
		return res, err
	}

	m, err := p.resolveManifest(ctx)
	if err != nil {
		return res, err
	}
	p.manifest = m

	jar, err := p.download(ctx, StageJar, p.targetKey(), p.JarPath())
	if err != nil {
		return res, err
	}
	if jar.Skipped {
		res.Skipped = append(res.Skipped, StageJar)
	}

	if p.opts.Target == config.TargetServer {
		skipped, err := p.unpackServerJar(jar)
		if err != nil {
			return res, err
		}
		if skipped {
			res.Skipped = append(res.Skipped, StageUnpack)
		}
	}

	mapping, err := p.download(ctx, StageMapping, p.targetKey()+"_mappings", p.MappingPath())
	if err != nil {
		return res, err
	}
	if mapping.Skipped {
		res.Skipped = append(res.Skipped, StageMapping)
	}

	if p.opts.Remap {
		remapped, skipped, err := p.remap(ctx, jar, mapping.Path)
		if err != nil {
			return res, err
		}
		if skipped {
			res.Skipped = append(res.Skipped, StageRemap)
		}

		if p.opts.Decompile {
			if err := p.decompile(ctx, remapped); err != nil {
				return res, err
			}
		}
	}

	return res, nil
}

func (p *Pipeline) targetKey() string { return p.opts.Target }

func (p *Pipeline) createWorkRoot() error {
	if err := os.MkdirAll(p.root, 0o755); err != nil {
		return wrap(ErrDirectory, "create work directory", err)
	}

	return nil
}

// resolveManifest returns the downloads mapping for the release. A cached
// metadata file that still parses is reused as-is with no freshness check;
// otherwise the metadata is fetched, persisted best-effort and parsed.
func (p *Pipeline) resolveManifest(ctx context.Context) (manifest.Manifest, error) {
	path := p.MetaPath()
	if m, ok := manifest.LoadCached(path); ok {
		p.logger.Debug("using cached version metadata", slog.String("path", path))
		return m, nil
	}

	text, err := p.client.GetText(ctx, p.opts.Release.URL)
	if err != nil {
		return nil, wrap(ErrMetadata, "fetch version metadata", err)
	}

	// The parsed result is still usable if persisting fails.
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		p.logger.Warn("failed to save version metadata", slog.String("path", path), slog.Any("error", err))
	}

	m, err := manifest.Parse([]byte(text))
	if err != nil {
		return nil, wrap(ErrMetadata, "parse version metadata", err)
	}

	return m, nil
}

// unpackServerJar extracts the nested server jar that modern server bundles
// carry at META-INF/versions/<id>/server-<id>.jar, replacing the downloaded
// bundler jar. A cache hit on the bundle means unpacking already happened on
// a prior run. An absent nested entry is not an error; older releases ship
// the server jar directly.
func (p *Pipeline) unpackServerJar(jar DownloadOutcome) (skipped bool, err error) {
	if jar.Skipped {
		p.logger.Info("skip: server jar already unpacked")
		return true, nil
	}

	id := p.opts.Release.ID
	entry := fmt.Sprintf("META-INF/versions/%s/server-%s.jar", id, id)

	p.logger.Info("unpacking server jar", slog.String("entry", entry))

	extracted, err := archive.ExtractEntry(jar.Path, entry, p.JarPath())
	if err != nil {
		return false, wrap(ErrUnpack, "unpack server jar", err)
	}

	if !extracted {
		p.logger.Debug("no nested server jar in bundle, nothing to unpack")
	}

	return false, nil
}

// remap produces the deobfuscated jar. When the primary download was a cache
// hit and a structurally valid remapped jar already exists, the engine is
// not invoked.
func (p *Pipeline) remap(ctx context.Context, jar DownloadOutcome, mappingPath string) (path string, skipped bool, err error) {
	out := p.RemappedJarPath()
	if jar.Skipped && archive.IsValid(out) {
		p.logger.Info("skip: remapping already done", slog.String("path", out))
		return out, true, nil
	}

	p.logger.Info("remapping", slog.String("input", jar.Path), slog.String("output", out))

	if err := p.remapper.Remap(ctx, mappingPath, jar.Path, out); err != nil {
		return "", false, wrap(ErrRemap, "remap jar", err)
	}

	return out, false, nil
}

// decompile reconstructs source from the remapped jar. A stale output
// directory is deleted first; if the delete fails decompilation proceeds
// anyway since the engine overwrites what it can.
func (p *Pipeline) decompile(ctx context.Context, remappedPath string) error {
	dir := p.DecompiledDir()
	if err := os.RemoveAll(dir); err != nil {
		p.logger.Warn("failed to delete stale decompiled directory, continuing", slog.String("path", dir), slog.Any("error", err))
	}

	p.logger.Info("decompiling", slog.String("input", remappedPath), slog.String("output", dir))

	if err := p.decompiler.Decompile(ctx, remappedPath, dir); err != nil {
		return wrap(ErrDecompile, "decompile jar", err)
	}

	return nil
}
