package discogen

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Artifact is a single generated file: a manifest or a source file.
type Artifact struct {
	// The relative path to which the artifact should be written.
	RelativePath string

	// Contents of the artifact.
	Data []byte

	// From is the stack of emitters responsible for producing this Artifact,
	// outermost first. Postprocessors are unnamed and are not recorded.
	From []NamedEmitter
}

// Exists reports whether a is a real artifact. Emitters may return the zero
// value to indicate they had nothing to do.
func (a Artifact) Exists() bool {
	return a.RelativePath != ""
}

// Artifacts is a list of Artifact. Within one generation run every path is
// unique.
type Artifacts []Artifact

// Validate checks that every path is local to the output directory and that
// no two artifacts share a path. All problems are reported together.
func (al Artifacts) Validate() error {
	var result *multierror.Error
	seen := make(map[string]string, len(al))
	for _, a := range al {
		if err := checkPath(a.RelativePath); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", emitterStack(a.From), err))
			continue
		}
		if prev, has := seen[a.RelativePath]; has {
			result = multierror.Append(result, fmt.Errorf("%s: %s already created by %s", emitterStack(a.From), a.RelativePath, prev))
			continue
		}
		seen[a.RelativePath] = emitterStack(a.From)
	}
	return result.ErrorOrNil()
}

// Paths returns the relative path of each artifact, in order.
func (al Artifacts) Paths() []string {
	paths := make([]string, len(al))
	for i, a := range al {
		paths[i] = a.RelativePath
	}
	return paths
}

func checkPath(p string) error {
	switch {
	case p == "":
		return fmt.Errorf("artifact has an empty path")
	case filepath.IsAbs(p):
		return fmt.Errorf("artifacts must have relative paths, got %s", p)
	case !filepath.IsLocal(p):
		return fmt.Errorf("artifact path %s escapes the output directory", p)
	}
	return nil
}

// ArtifactMapper transforms one Artifact into another. Pipelines run their
// mappers on every artifact as postprocessing.
type ArtifactMapper func(Artifact) (Artifact, error)

func emitterStack(from []NamedEmitter) string {
	if len(from) == 0 {
		return "<unknown emitter>"
	}
	names := make([]string, len(from))
	for i, e := range from {
		names[i] = e.EmitterName()
	}
	return strings.Join(names, ":")
}
