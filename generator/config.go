package generator

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sdboyer/discogen/apidesc"
	"github.com/sdboyer/discogen/generrors"
)

// Config is the generator configuration, usually read from a YAML file.
//
//	module_prefix: github.com/acme/apis
//	lib_version: 0.1.0
//	cli_version: 0.1.0
//	go_version: "1.22"
//	layout:
//	  lib_dir: lib
//	  cli_dir: cli
//	  main_path: main.go
type Config struct {
	ModulePrefix string           `yaml:"module_prefix"`
	LibVersion   string           `yaml:"lib_version"`
	CLIVersion   string           `yaml:"cli_version"`
	GoVersion    string           `yaml:"go_version"`
	Layout       apidesc.Standard `yaml:"layout"`
}

// DefaultVersion is the version given to generated modules when none is
// configured.
const DefaultVersion = "0.1.0"

// LoadConfig reads a YAML configuration file. Unknown keys are an error; an
// empty file is the zero Config.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, &generrors.InputError{Path: path, Message: "could not read config file", Cause: err}
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, &generrors.InputError{Path: path, Message: "could not parse config file", Cause: err}
	}
	return cfg, nil
}

// WithDefaults fills unset fields.
func (c Config) WithDefaults() Config {
	if c.LibVersion == "" {
		c.LibVersion = DefaultVersion
	}
	if c.CLIVersion == "" {
		c.CLIVersion = DefaultVersion
	}
	if c.GoVersion == "" {
		c.GoVersion = apidesc.DefaultStandard.GoVersion
	}
	c.Layout = c.Layout.WithDefaults()
	return c
}

// Standard returns the layout with the configured Go version applied.
func (c Config) Standard() apidesc.Standard {
	std := c.Layout
	if c.GoVersion != "" {
		std.GoVersion = c.GoVersion
	}
	return std.WithDefaults()
}

// APIOptions returns the naming options for apidesc.FromDiscovery.
func (c Config) APIOptions() apidesc.Options {
	return apidesc.Options{
		ModulePrefix: c.ModulePrefix,
		LibVersion:   c.LibVersion,
		CLIVersion:   c.CLIVersion,
	}
}

func (c Config) String() string {
	return fmt.Sprintf("prefix=%q lib=%s cli=%s go=%s", c.ModulePrefix, c.LibVersion, c.CLIVersion, c.GoVersion)
}
