// Package generator turns an API description into a Go client library module
// and a Go CLI module, and writes them to disk.
//
// A run follows a fixed sequence: load the discovery document, derive the
// API description, emit every artifact, then write the artifacts in path
// order. The first error stops the run. Nothing already written is rolled
// back.
package generator

import (
	"context"
	"io"
	"log/slog"

	"github.com/sdboyer/discogen"
	"github.com/sdboyer/discogen/apidesc"
	"github.com/sdboyer/discogen/discovery"
)

// Options control a generation run.
type Options struct {
	// Logger receives a debug record per artifact and an info summary. Nil
	// discards.
	Logger *slog.Logger
	// Check compares the artifacts with outDir instead of writing them.
	Check bool
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}

// NewPipeline returns the pipeline emitting both modules of an API laid out
// per std: library manifest and sources, then CLI manifest and entrypoint.
func NewPipeline(std apidesc.Standard) *discogen.Pipeline[*apidesc.API] {
	std = std.WithDefaults()
	p := discogen.PipelineWithNamer(func(a *apidesc.API) string {
		return a.Name + " " + a.Version
	})
	p.AppendOneToOne(LibraryManifestEmitter(std))
	p.AppendOneToMany(LibrarySourceEmitter(std))
	p.AppendOneToOne(CLIManifestEmitter(std), CLISourceEmitter(std))
	p.AddPostprocessors(GoImports, ModFile)
	return p
}

// Generate emits the projects of a and writes them beneath outDir, or with
// opts.Check verifies that outDir already holds them.
func Generate(ctx context.Context, a *apidesc.API, std apidesc.Standard, outDir string, opts Options) error {
	log := opts.logger().With("api", a.Name, "version", a.Version)

	tree, err := NewPipeline(std).Generate(a)
	if err != nil {
		return err
	}

	if opts.Check {
		if err := tree.Verify(ctx, outDir); err != nil {
			return err
		}
		for _, p := range tree.Artifacts().Paths() {
			log.Debug("verified", "path", p)
		}
		log.Info("generated files are up to date", "dir", outDir, "files", tree.Len())
		return nil
	}

	if err := tree.Write(ctx, outDir); err != nil {
		return err
	}
	for _, art := range tree.Artifacts() {
		log.Debug("wrote", "path", art.RelativePath, "bytes", len(art.Data))
	}
	log.Info("generated", "dir", outDir, "files", tree.Len(), "lib", a.LibModule, "cli", a.CLIModule)
	return nil
}

// GenerateFile runs the whole sequence for the discovery document at
// specPath.
func GenerateFile(ctx context.Context, specPath, outDir string, cfg Config, opts Options) error {
	cfg = cfg.WithDefaults()
	opts.logger().Debug("loading discovery document", "path", specPath, "config", cfg)

	desc, err := discovery.Load(specPath)
	if err != nil {
		return err
	}
	a, err := apidesc.FromDiscovery(desc, cfg.APIOptions())
	if err != nil {
		return err
	}
	return Generate(ctx, a, cfg.Standard(), outDir, opts)
}
