package generator

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"strings"
	"text/template"

	"github.com/sdboyer/discogen"
	"github.com/sdboyer/discogen/apidesc"
	"github.com/sdboyer/discogen/generrors"
)

//go:embed templates
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"comment": comment,
	"use":     use,
	"summary": summary,
}).ParseFS(templateFS, "templates/lib/*.tmpl", "templates/cli/*.tmpl"))

// LibraryManifestEmitter emits the go.mod of the library module.
func LibraryManifestEmitter(std apidesc.Standard) discogen.OneToOne[*apidesc.API] {
	return discogen.OneToOneFunc("LibraryManifest", func(a *apidesc.API) (*discogen.Artifact, error) {
		doc, err := LibraryManifest(a, std)
		if err != nil {
			return nil, err
		}
		return &discogen.Artifact{RelativePath: path.Join(std.LibDir, "go.mod"), Data: []byte(doc)}, nil
	})
}

// CLIManifestEmitter emits the go.mod of the CLI module.
func CLIManifestEmitter(std apidesc.Standard) discogen.OneToOne[*apidesc.API] {
	return discogen.OneToOneFunc("CLIManifest", func(a *apidesc.API) (*discogen.Artifact, error) {
		doc, err := CLIManifest(a, std)
		if err != nil {
			return nil, err
		}
		return &discogen.Artifact{RelativePath: path.Join(std.CLIDir, "go.mod"), Data: []byte(doc)}, nil
	})
}

// LibrarySourceEmitter emits the library's client and one method per API
// method.
func LibrarySourceEmitter(std apidesc.Standard) discogen.OneToMany[*apidesc.API] {
	return discogen.OneToManyFunc("LibrarySource", func(a *apidesc.API) (discogen.Artifacts, error) {
		if a.PackageName == "" {
			return nil, &generrors.FieldError{Field: "package_name"}
		}
		var al discogen.Artifacts
		for _, name := range []string{"client.go", "methods.go"} {
			data, err := execute(name+".tmpl", a)
			if err != nil {
				return nil, err
			}
			al = append(al, discogen.Artifact{RelativePath: path.Join(std.LibDir, name), Data: data})
		}
		return al, nil
	})
}

// CLISourceEmitter emits the CLI entrypoint.
func CLISourceEmitter(std apidesc.Standard) discogen.OneToOne[*apidesc.API] {
	return discogen.OneToOneFunc("CLISource", func(a *apidesc.API) (*discogen.Artifact, error) {
		if a.BinName == "" {
			return nil, &generrors.FieldError{Field: "bin_name"}
		}
		data, err := execute("main.go.tmpl", a)
		if err != nil {
			return nil, err
		}
		return &discogen.Artifact{RelativePath: path.Join(std.CLIDir, std.MainPath), Data: data}, nil
	})
}

func execute(name string, a *apidesc.API) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, a); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", generrors.ErrTemplating, name, err)
	}
	return buf.Bytes(), nil
}

// comment renders text as line comments, each prefixed by indent.
func comment(indent, text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, l := range lines {
		l = strings.TrimRight(l, " \t")
		if l == "" {
			lines[i] = indent + "//"
		} else {
			lines[i] = indent + "// " + l
		}
	}
	return strings.Join(lines, "\n")
}

// use is the cobra usage line of a method's command.
func use(m apidesc.Method) string {
	var b strings.Builder
	b.WriteString(m.CommandName)
	for _, p := range m.PathParams() {
		b.WriteString(" <" + p.FlagName + ">")
	}
	return b.String()
}

// summary is the first sentence of a method's description.
func summary(m apidesc.Method) string {
	s, _, _ := strings.Cut(m.Description, "\n")
	if i := strings.Index(s, ". "); i >= 0 {
		s = s[:i+1]
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "Call " + m.ID
	}
	return s
}
