package apidesc

import "path"

// Standard is the layout convention of a generated project pair: the library
// and CLI live in sibling directories under the output directory.
type Standard struct {
	LibDir string `yaml:"lib_dir"`
	CLIDir string `yaml:"cli_dir"`
	// MainPath is the CLI entrypoint, relative to CLIDir.
	MainPath string `yaml:"main_path"`
	// GoVersion is the go directive of generated manifests.
	GoVersion string `yaml:"-"`
}

// DefaultStandard is the layout used when none is configured.
var DefaultStandard = Standard{
	LibDir:    "lib",
	CLIDir:    "cli",
	MainPath:  "main.go",
	GoVersion: "1.22",
}

// WithDefaults fills empty fields from DefaultStandard.
func (s Standard) WithDefaults() Standard {
	if s.LibDir == "" {
		s.LibDir = DefaultStandard.LibDir
	}
	if s.CLIDir == "" {
		s.CLIDir = DefaultStandard.CLIDir
	}
	if s.MainPath == "" {
		s.MainPath = DefaultStandard.MainPath
	}
	if s.GoVersion == "" {
		s.GoVersion = DefaultStandard.GoVersion
	}
	return s
}

// LibFromCLI is the library directory relative to the CLI directory, as used
// by the CLI manifest's replace directive.
func (s Standard) LibFromCLI() string {
	s = s.WithDefaults()
	depth := 0
	for d := path.Clean(s.CLIDir); d != "." && d != "/"; d = path.Dir(d) {
		depth++
	}
	rel := s.LibDir
	for i := 0; i < depth; i++ {
		rel = path.Join("..", rel)
	}
	if !isDotted(rel) {
		rel = "./" + rel
	}
	return rel
}

func isDotted(p string) bool {
	return len(p) >= 2 && p[0] == '.' && (p[1] == '.' || p[1] == '/')
}
