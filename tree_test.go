package discogen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/matryer/is"

	"github.com/sdboyer/discogen/generrors"
)

func art(path, data string) Artifact {
	return Artifact{RelativePath: path, Data: []byte(data)}
}

func TestArtifactsValidate(t *testing.T) {
	is := is.New(t)

	is.NoErr(Artifacts{art("a/go.mod", ""), art("b/go.mod", "")}.Validate())

	err := Artifacts{art("go.mod", "1"), art("go.mod", "2")}.Validate()
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "already created"))

	err = Artifacts{art("/etc/passwd", ""), art("../up", ""), art("", "")}.Validate()
	var merr *multierror.Error
	is.True(errors.As(err, &merr))
	is.Equal(len(merr.Errors), 3)
}

func TestTreeAddConflict(t *testing.T) {
	is := is.New(t)
	tree := NewTree()
	is.NoErr(tree.Add("first", art("lib/go.mod", "x")))

	err := tree.Add("second", art("lib/go.mod", "y"), art("cli/go.mod", "z"))
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), `already created for "first"`))
	is.Equal(tree.Len(), 1) // nothing from the failed Add lands

	data, ok := tree.Get("lib/go.mod")
	is.True(ok)
	is.Equal(string(data), "x")
}

func TestTreeArtifactsOrdered(t *testing.T) {
	is := is.New(t)
	tree := NewTree()
	is.NoErr(tree.Add("x", art("z", ""), art("a/b", ""), art("m", "")))
	is.Equal(tree.Artifacts().Paths(), []string{"a/b", "m", "z"})
}

func TestTreeWrite(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	tree := NewTree()
	is.NoErr(tree.Add("x", art("lib/go.mod", "module foo_lib\n"), art("cli/main.go", "package main\n")))

	is.NoErr(tree.Write(context.Background(), dir))

	b, err := os.ReadFile(filepath.Join(dir, "lib", "go.mod"))
	is.NoErr(err)
	is.Equal(string(b), "module foo_lib\n")
	b, err = os.ReadFile(filepath.Join(dir, "cli", "main.go"))
	is.NoErr(err)
	is.Equal(string(b), "package main\n")
}

func TestTreeWriteStopsAtFirstError(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	// a regular file where a directory is needed
	is.NoErr(os.WriteFile(filepath.Join(dir, "b"), nil, 0o644))

	tree := NewTree()
	is.NoErr(tree.Add("x", art("a/ok", "1"), art("b/blocked", "2"), art("c/never", "3")))

	err := tree.Write(context.Background(), dir)
	is.True(errors.Is(err, generrors.ErrIO))
	var ioe *generrors.IOError
	is.True(errors.As(err, &ioe))
	is.Equal(ioe.Op, "mkdir")

	_, err = os.Stat(filepath.Join(dir, "a", "ok"))
	is.NoErr(err) // earlier file stays
	_, err = os.Stat(filepath.Join(dir, "c", "never"))
	is.True(errors.Is(err, os.ErrNotExist))
}

func TestTreeWriteCanceled(t *testing.T) {
	is := is.New(t)
	tree := NewTree()
	is.NoErr(tree.Add("x", art("a", "")))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	is.True(errors.Is(tree.Write(ctx, t.TempDir()), context.Canceled))
}

func TestTreeVerify(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	tree := NewTree()
	is.NoErr(tree.Add("x", art("same", "s"), art("changed", "new\n"), art("missing", "m")))
	is.NoErr(os.WriteFile(filepath.Join(dir, "same"), []byte("s"), 0o644))
	is.NoErr(os.WriteFile(filepath.Join(dir, "changed"), []byte("old\n"), 0o644))

	err := tree.Verify(context.Background(), dir)
	var merr *multierror.Error
	is.True(errors.As(err, &merr))
	is.Equal(len(merr.Errors), 2)

	var missing *MissingError
	is.True(errors.As(err, &missing))
	is.Equal(missing.Path, filepath.Join(dir, "missing"))
	var drift *DriftError
	is.True(errors.As(err, &drift))
	is.Equal(drift.Path, filepath.Join(dir, "changed"))
	is.True(strings.Contains(drift.Diff, "new"))

	is.NoErr(tree.Write(context.Background(), dir))
	is.NoErr(tree.Verify(context.Background(), dir))
}
