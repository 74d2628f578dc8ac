package generator

import (
	"fmt"
	"strings"

	"golang.org/x/mod/module"
	"golang.org/x/mod/semver"

	"github.com/sdboyer/discogen"
	"github.com/sdboyer/discogen/apidesc"
	"github.com/sdboyer/discogen/generrors"
)

// Dependency is a module required by every generated CLI.
type Dependency struct {
	// Concern is what the CLI uses the module for.
	Concern string
	Path    string
	Version string
}

// Require renders d as a go.mod require line, without the keyword.
func (d Dependency) Require() string {
	return d.Path + " " + d.Version
}

// PinnedDependencies returns the modules every generated CLI requires, in
// manifest order.
func PinnedDependencies() []Dependency {
	return []Dependency{
		{Concern: "auth", Path: "github.com/sdboyer/discogen", Version: "v" + discogen.Version()},
		{Concern: "cli", Path: "github.com/spf13/cobra", Version: "v1.8.1"},
		{Concern: "json", Path: "github.com/segmentio/encoding", Version: "v0.4.0"},
		{Concern: "homedir", Path: "github.com/mitchellh/go-homedir", Version: "v1.1.0"},
		{Concern: "authenticator", Path: "golang.org/x/oauth2", Version: "v0.23.0"},
	}
}

const cliManifest = `// Code generated by discogen. DO NOT EDIT.
//
// package: {crate_name} {crate_version}
// binary: {bin_name} {bin_path}

module {crate_name}

go {go_version}

require (
{pinned})
`

const libManifest = `// Code generated by discogen. DO NOT EDIT.
//
// package: {crate_name} {crate_version}

module {crate_name}

go {go_version}

require {pinned}
`

// CLIManifest renders the go.mod of the CLI module of a. The sibling library
// is required at its own version and replaced with its directory relative to
// the CLI.
//
// Both versions must be present, valid semantic versions, and agree with the
// major version suffix of their module paths; otherwise a
// [generrors.FieldError] is returned and no text is produced.
func CLIManifest(a *apidesc.API, std apidesc.Standard) (string, error) {
	std = std.WithDefaults()
	cliv, err := moduleVersion("cli_version", a.CLIModule, a.CLIVersion)
	if err != nil {
		return "", err
	}
	libv, err := moduleVersion("lib_version", a.LibModule, a.LibVersion)
	if err != nil {
		return "", err
	}

	var pinned strings.Builder
	for _, d := range PinnedDependencies() {
		fmt.Fprintf(&pinned, "\t%s\n", d.Require())
	}

	doc := strings.NewReplacer(
		"{crate_name}", a.CLIModule,
		"{crate_version}", cliv,
		"{bin_name}", a.BinName,
		"{bin_path}", std.MainPath,
		"{go_version}", std.GoVersion,
		"{pinned}", pinned.String(),
	).Replace(cliManifest)

	doc += fmt.Sprintf("\nrequire %s %s\n", a.LibModule, libv)
	doc += fmt.Sprintf("\nreplace %s => %s\n", a.LibModule, std.LibFromCLI())
	return doc, nil
}

// LibraryManifest renders the go.mod of the library module of a. The library
// only needs the token capability from the auth dependency.
func LibraryManifest(a *apidesc.API, std apidesc.Standard) (string, error) {
	std = std.WithDefaults()
	libv, err := moduleVersion("lib_version", a.LibModule, a.LibVersion)
	if err != nil {
		return "", err
	}
	auth := PinnedDependencies()[0]

	return strings.NewReplacer(
		"{crate_name}", a.LibModule,
		"{crate_version}", libv,
		"{go_version}", std.GoVersion,
		"{pinned}", auth.Require(),
	).Replace(libManifest), nil
}

// moduleVersion canonicalises v, which may omit the leading "v", and checks
// that its major version agrees with the /vN suffix of modPath.
func moduleVersion(field, modPath, v string) (string, error) {
	if v == "" {
		return "", &generrors.FieldError{Field: field}
	}
	sv := "v" + strings.TrimPrefix(v, "v")
	if !semver.IsValid(sv) {
		return "", &generrors.FieldError{Field: field, Value: v, Reason: "not a semantic version"}
	}
	cv := semver.Canonical(sv)
	if _, pathMajor, ok := module.SplitPathVersion(modPath); ok {
		if err := module.CheckPathMajor(cv, pathMajor); err != nil {
			return "", &generrors.FieldError{Field: field, Value: v, Reason: "major version does not match module path " + modPath}
		}
	}
	return cv, nil
}
