package generator

import (
	"fmt"
	"path"

	"golang.org/x/mod/modfile"
	"golang.org/x/tools/imports"

	"github.com/sdboyer/discogen"
)

var importsOptions = &imports.Options{
	Comments:   true,
	TabIndent:  true,
	TabWidth:   8,
	FormatOnly: true,
}

// GoImports is a postprocessor that gofmts .go artifacts and sorts their
// imports. Other artifacts pass through unchanged.
func GoImports(a discogen.Artifact) (discogen.Artifact, error) {
	if path.Ext(a.RelativePath) != ".go" {
		return a, nil
	}
	out, err := imports.Process(a.RelativePath, a.Data, importsOptions)
	if err != nil {
		return a, fmt.Errorf("goimports failed on %s: %w", a.RelativePath, err)
	}
	a.Data = out
	return a, nil
}

// ModFile is a postprocessor that parses go.mod artifacts and rewrites them
// in canonical format.
func ModFile(a discogen.Artifact) (discogen.Artifact, error) {
	if path.Base(a.RelativePath) != "go.mod" {
		return a, nil
	}
	f, err := modfile.Parse(a.RelativePath, a.Data, nil)
	if err != nil {
		return a, fmt.Errorf("invalid manifest %s: %w", a.RelativePath, err)
	}
	a.Data = modfile.Format(f.Syntax)
	return a, nil
}
