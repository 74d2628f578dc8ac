package generator

import (
	"errors"
	"testing"

	"github.com/matryer/is"
	"golang.org/x/mod/modfile"

	"github.com/sdboyer/discogen/apidesc"
	"github.com/sdboyer/discogen/generrors"
)

func fooAPI() *apidesc.API {
	return &apidesc.API{
		Name:       "foo",
		Version:    "v1",
		CLIModule:  "foo",
		CLIVersion: "0.1.0",
		BinName:    "foo-cli",
		LibModule:  "foo_lib",
		LibVersion: "0.1.0",
	}
}

func TestCLIManifest(t *testing.T) {
	is := is.New(t)

	got, err := CLIManifest(fooAPI(), apidesc.Standard{MainPath: "main.go"})
	is.NoErr(err)
	is.Equal(got, `// Code generated by discogen. DO NOT EDIT.
//
// package: foo v0.1.0
// binary: foo-cli main.go

module foo

go 1.22

require (
	github.com/sdboyer/discogen v0.1.0
	github.com/spf13/cobra v1.8.1
	github.com/segmentio/encoding v0.4.0
	github.com/mitchellh/go-homedir v1.1.0
	golang.org/x/oauth2 v0.23.0
)

require foo_lib v0.1.0

replace foo_lib => ../lib
`)

	again, err := CLIManifest(fooAPI(), apidesc.Standard{MainPath: "main.go"})
	is.NoErr(err)
	is.Equal(got, again) // deterministic
}

func TestCLIManifestRequires(t *testing.T) {
	is := is.New(t)
	a := fooAPI()
	a.CLIModule = "example.com/apis/foov1-cli"
	a.LibModule = "example.com/apis/foov1"

	doc, err := CLIManifest(a, apidesc.Standard{CLIDir: "tools/cli", GoVersion: "1.23"})
	is.NoErr(err)

	f, err := modfile.Parse("go.mod", []byte(doc), nil)
	is.NoErr(err)
	is.Equal(f.Module.Mod.Path, "example.com/apis/foov1-cli")
	is.Equal(f.Go.Version, "1.23")

	count := map[string]int{}
	for _, r := range f.Require {
		count[r.Mod.Path]++
	}
	pinned := PinnedDependencies()
	is.Equal(len(f.Require), len(pinned)+1)
	for _, d := range pinned {
		is.Equal(count[d.Path], 1) // one require per pinned dependency
	}
	is.Equal(count[a.LibModule], 1)

	is.Equal(len(f.Replace), 1)
	is.Equal(f.Replace[0].Old.Path, a.LibModule)
	is.Equal(f.Replace[0].New.Path, "../../lib")
}

func TestPinnedDependencies(t *testing.T) {
	is := is.New(t)
	var concerns []string
	for _, d := range PinnedDependencies() {
		concerns = append(concerns, d.Concern)
	}
	is.Equal(concerns, []string{"auth", "cli", "json", "homedir", "authenticator"})

	// callers cannot change the pinned set
	PinnedDependencies()[0].Version = "v9.9.9"
	is.Equal(PinnedDependencies()[0].Version, "v0.1.0")
}

func TestManifestVersionErrors(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*apidesc.API)
		field   string
		missing bool
	}{
		{"missing cli version", func(a *apidesc.API) { a.CLIVersion = "" }, "cli_version", true},
		{"missing lib version", func(a *apidesc.API) { a.LibVersion = "" }, "lib_version", true},
		{"invalid cli version", func(a *apidesc.API) { a.CLIVersion = "one.two" }, "cli_version", false},
		{"lib v2 without suffix", func(a *apidesc.API) { a.LibVersion = "2.0.0" }, "lib_version", false},
		{"cli v3 without suffix", func(a *apidesc.API) { a.CLIVersion = "v3.1.0" }, "cli_version", false},
		{"v1 with v2 suffix", func(a *apidesc.API) { a.LibModule = "foo_lib/v2" }, "lib_version", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)
			a := fooAPI()
			tc.mutate(a)

			doc, err := CLIManifest(a, apidesc.DefaultStandard)
			is.Equal(doc, "") // no partial output
			is.True(errors.Is(err, generrors.ErrTemplating))

			var fe *generrors.FieldError
			is.True(errors.As(err, &fe))
			is.Equal(fe.Field, tc.field)
			is.Equal(fe.Missing(), tc.missing)
		})
	}
}

func TestLibraryManifest(t *testing.T) {
	is := is.New(t)

	doc, err := LibraryManifest(fooAPI(), apidesc.DefaultStandard)
	is.NoErr(err)
	is.Equal(doc, `// Code generated by discogen. DO NOT EDIT.
//
// package: foo_lib v0.1.0

module foo_lib

go 1.22

require github.com/sdboyer/discogen v0.1.0
`)

	a := fooAPI()
	a.LibVersion = ""
	_, err = LibraryManifest(a, apidesc.DefaultStandard)
	is.True(errors.Is(err, generrors.ErrTemplating))
}

func TestManifestMajorVersionSuffix(t *testing.T) {
	is := is.New(t)
	a := fooAPI()
	a.LibModule = "example.com/apis/foov1/v2"
	a.LibVersion = "2.0.0"
	a.CLIModule = "example.com/apis/foov1-cli/v3"
	a.CLIVersion = "3.1.0"

	doc, err := CLIManifest(a, apidesc.DefaultStandard)
	is.NoErr(err)
	f, err := modfile.Parse("go.mod", []byte(doc), nil)
	is.NoErr(err)
	is.Equal(f.Module.Mod.Path, "example.com/apis/foov1-cli/v3")
	is.Equal(f.Replace[0].Old.Path, "example.com/apis/foov1/v2")

	var lib *modfile.Require
	for _, r := range f.Require {
		if r.Mod.Path == a.LibModule {
			lib = r
		}
	}
	is.True(lib != nil)
	is.Equal(lib.Mod.Version, "v2.0.0")

	doc, err = LibraryManifest(a, apidesc.DefaultStandard)
	is.NoErr(err)
	f, err = modfile.Parse("go.mod", []byte(doc), nil)
	is.NoErr(err)
	is.Equal(f.Module.Mod.Path, "example.com/apis/foov1/v2")
}
