package generator

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
	"golang.org/x/mod/modfile"
	"golang.org/x/tools/go/packages"
)

// replaceRuntime points the go.mod in dir at this checkout of the runtime
// module instead of its published version.
func replaceRuntime(t *testing.T, dir, root string) {
	t.Helper()
	p := filepath.Join(dir, "go.mod")
	data, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	f, err := modfile.Parse(p, data, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.AddReplace("github.com/sdboyer/discogen", "", root, ""); err != nil {
		t.Fatal(err)
	}
	out, err := f.Format()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, out, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestGeneratedModulesTypeCheck(t *testing.T) {
	if testing.Short() {
		t.Skip("loads generated modules with the go command")
	}
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go command not available")
	}
	is := is.New(t)

	root, err := filepath.Abs("..")
	is.NoErr(err)
	out := t.TempDir()
	cfg := Config{ModulePrefix: "github.com/acme/apis", LibVersion: "2.0.0"}
	is.NoErr(GenerateFile(context.Background(), fooSpec, out, cfg, Options{}))

	for _, dir := range []string{"lib", "cli"} {
		t.Run(dir, func(t *testing.T) {
			is := is.New(t)
			mod := filepath.Join(out, dir)
			replaceRuntime(t, mod, root)

			pkgs, err := packages.Load(&packages.Config{
				Mode: packages.NeedName | packages.NeedTypes | packages.NeedSyntax | packages.NeedTypesInfo,
				Dir:  mod,
				Env:  append(os.Environ(), "GOFLAGS=-mod=mod", "GOWORK=off"),
			}, "./...")
			is.NoErr(err)
			is.True(len(pkgs) > 0)
			for _, p := range pkgs {
				for _, e := range p.Errors {
					t.Errorf("%s: %v", p.PkgPath, e)
				}
				is.True(p.Types != nil)
			}
		})
	}
}
