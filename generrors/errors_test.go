package generrors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/matryer/is"
)

func TestInputError(t *testing.T) {
	is := is.New(t)
	err := fmt.Errorf("loading: %w", &InputError{Path: "api.json", Message: "could not read spec file", Cause: fs.ErrNotExist})

	is.True(errors.Is(err, ErrInput))
	is.True(errors.Is(err, fs.ErrNotExist))
	is.True(!errors.Is(err, ErrIO))
	is.Equal(err.Error(), `loading: input error in "api.json": could not read spec file: file does not exist`)

	var ie *InputError
	is.True(errors.As(err, &ie))
	is.Equal(ie.Path, "api.json")
}

func TestInputErrorField(t *testing.T) {
	is := is.New(t)
	err := &InputError{Field: "name", Message: "required"}
	is.Equal(err.Error(), "input error (field name): required")
}

func TestFieldError(t *testing.T) {
	is := is.New(t)

	missing := &FieldError{Field: "cli_version"}
	is.True(errors.Is(missing, ErrTemplating))
	is.True(missing.Missing())
	is.Equal(missing.Error(), "templating error: missing field cli_version")

	invalid := &FieldError{Field: "lib_version", Value: "latest", Reason: "not a semantic version"}
	is.True(!invalid.Missing())
	is.Equal(invalid.Error(), `templating error: invalid value "latest" for field lib_version: not a semantic version`)
}

func TestIOError(t *testing.T) {
	is := is.New(t)
	err := &IOError{Op: "write", Path: "out/lib/go.mod", Cause: fs.ErrPermission}
	is.True(errors.Is(err, ErrIO))
	is.True(errors.Is(err, fs.ErrPermission))
	is.Equal(err.Error(), "io error: write out/lib/go.mod: permission denied")
}
