// Package apidesc derives the generator's view of an API from a discovery
// document: the names and versions of the generated library and CLI modules,
// and a flat, sorted list of the API's methods.
package apidesc

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"golang.org/x/mod/semver"
	dv1 "google.golang.org/api/discovery/v1"

	"github.com/sdboyer/discogen/generrors"
	"github.com/sdboyer/discogen/internal/naming"
)

// API describes one API for generation. It is built once per generation run
// and is read-only afterwards.
type API struct {
	Name              string
	Version           string
	Title             string
	Description       string
	DocumentationLink string
	// BaseURL is the root URL joined with the service path.
	BaseURL string

	// PackageName is the Go package name of the generated library.
	PackageName string

	LibModule  string
	LibVersion string
	CLIModule  string
	CLIVersion string
	BinName    string

	Scopes  []Scope
	Methods []Method
}

// Scope is an OAuth2 scope declared by the API.
type Scope struct {
	URL         string
	Description string
	// GoName is the exported constant name for the scope.
	GoName string
}

// Method is one callable API method. Methods of nested resources are
// flattened; ID keeps the full dotted path.
type Method struct {
	ID          string
	GoName      string
	CommandName string
	HTTPMethod  string
	Path        string
	Description string
	Params      []Param
	HasRequest  bool
	HasResponse bool
	Scopes      []string
}

// PathParams returns the parameters substituted into Path.
func (m Method) PathParams() []Param {
	var out []Param
	for _, p := range m.Params {
		if p.Location == "path" {
			out = append(out, p)
		}
	}
	return out
}

// Param is a method parameter.
type Param struct {
	Name        string
	GoName      string
	FlagName    string
	Location    string
	Type        string
	Description string
	Required    bool
	Repeated    bool
}

// Options control how module names and versions are derived.
type Options struct {
	// ModulePrefix is prepended to generated module paths, e.g.
	// "github.com/acme/apis". Empty means bare module names.
	ModulePrefix string
	// LibVersion and CLIVersion are copied as-is; the generator refuses to
	// emit manifests while they are empty. A major version of 2 or more adds
	// the matching /vN suffix to the module path.
	LibVersion string
	CLIVersion string
}

// FromDiscovery builds an API from a parsed discovery document. It fails with
// an [generrors.InputError] if naming fields cannot be determined or two
// methods would generate the same identifier.
func FromDiscovery(desc *dv1.RestDescription, opts Options) (*API, error) {
	if desc == nil {
		return nil, &generrors.InputError{Message: "no discovery document"}
	}
	if desc.Name == "" {
		return nil, &generrors.InputError{Field: "name", Message: "cannot derive module names"}
	}
	if desc.Version == "" {
		return nil, &generrors.InputError{Field: "version", Message: "cannot derive module names"}
	}

	pkg := naming.Package(desc.Name, desc.Version)
	lib := pkg
	if opts.ModulePrefix != "" {
		lib = path.Join(strings.TrimSuffix(opts.ModulePrefix, "/"), pkg)
	}

	a := &API{
		Name:              desc.Name,
		Version:           desc.Version,
		Title:             desc.Title,
		Description:       desc.Description,
		DocumentationLink: desc.DocumentationLink,
		BaseURL:           baseURL(desc),
		PackageName:       pkg,
		LibModule:         lib + majorSuffix(opts.LibVersion),
		LibVersion:        opts.LibVersion,
		CLIModule:         lib + "-cli" + majorSuffix(opts.CLIVersion),
		CLIVersion:        opts.CLIVersion,
		BinName:           pkg,
	}
	if a.Title == "" {
		a.Title = desc.Name + " " + desc.Version
	}

	if desc.Auth != nil && desc.Auth.Oauth2 != nil {
		for url, s := range desc.Auth.Oauth2.Scopes {
			a.Scopes = append(a.Scopes, Scope{
				URL:         url,
				Description: s.Description,
				GoName:      scopeName(url),
			})
		}
		sort.Slice(a.Scopes, func(i, j int) bool {
			return a.Scopes[i].URL < a.Scopes[j].URL
		})
		used := make(map[string]int, len(a.Scopes))
		for i, s := range a.Scopes {
			used[s.GoName]++
			if n := used[s.GoName]; n > 1 {
				a.Scopes[i].GoName = fmt.Sprintf("%s%d", s.GoName, n)
			}
		}
	}

	for _, m := range desc.Methods {
		a.Methods = append(a.Methods, newMethod(desc.Name, m))
	}
	collectResources(desc.Name, desc.Resources, &a.Methods)
	sort.Slice(a.Methods, func(i, j int) bool {
		return a.Methods[i].ID < a.Methods[j].ID
	})
	if err := checkMethodNames(a.Methods); err != nil {
		return nil, err
	}

	return a, nil
}

// reservedMethods are exported members of the generated Service type.
var reservedMethods = map[string]bool{"BasePath": true, "UserAgent": true}

// reservedCommands are subcommands every generated CLI already has.
var reservedCommands = map[string]bool{"save-token": true, "help": true, "completion": true}

// checkMethodNames rejects methods whose Go or command names collide with
// each other or with what the generated code defines itself. Methods must be
// sorted by ID.
func checkMethodNames(methods []Method) error {
	goNames := make(map[string]string, len(methods))
	commands := make(map[string]string, len(methods))
	for _, m := range methods {
		switch {
		case reservedMethods[m.GoName]:
			return &generrors.InputError{Field: "methods", Message: fmt.Sprintf("method %s: Go name %s is reserved", m.ID, m.GoName)}
		case reservedCommands[m.CommandName]:
			return &generrors.InputError{Field: "methods", Message: fmt.Sprintf("method %s: command %s is reserved", m.ID, m.CommandName)}
		}
		if prev, ok := goNames[m.GoName]; ok {
			return &generrors.InputError{Field: "methods", Message: fmt.Sprintf("methods %s and %s both map to Go name %s", prev, m.ID, m.GoName)}
		}
		if prev, ok := commands[m.CommandName]; ok {
			return &generrors.InputError{Field: "methods", Message: fmt.Sprintf("methods %s and %s both map to command %s", prev, m.ID, m.CommandName)}
		}
		goNames[m.GoName] = m.ID
		commands[m.CommandName] = m.ID
	}
	return nil
}

// majorSuffix is the module path suffix for version v: "/v2" for "2.1.0",
// empty for v0, v1 and anything that is not a semantic version.
func majorSuffix(v string) string {
	sv := "v" + strings.TrimPrefix(v, "v")
	if !semver.IsValid(sv) {
		return ""
	}
	if m := semver.Major(sv); m != "v0" && m != "v1" {
		return "/" + m
	}
	return ""
}

func baseURL(desc *dv1.RestDescription) string {
	if desc.RootUrl == "" {
		return desc.BaseUrl
	}
	root := strings.TrimSuffix(desc.RootUrl, "/") + "/"
	return root + strings.TrimPrefix(desc.ServicePath, "/")
}

func collectResources(api string, resources map[string]dv1.RestResource, out *[]Method) {
	for _, r := range resources {
		for _, m := range r.Methods {
			*out = append(*out, newMethod(api, m))
		}
		collectResources(api, r.Resources, out)
	}
}

func newMethod(api string, m dv1.RestMethod) Method {
	local := strings.TrimPrefix(m.Id, api+".")
	p := m.Path
	if p == "" {
		p = m.FlatPath
	}
	return Method{
		ID:          m.Id,
		GoName:      naming.Exported(local),
		CommandName: naming.Kebab(local),
		HTTPMethod:  strings.ToUpper(m.HttpMethod),
		Path:        p,
		Description: strings.TrimSpace(m.Description),
		Params:      params(m),
		HasRequest:  m.Request != nil,
		HasResponse: m.Response != nil,
		Scopes:      m.Scopes,
	}
}

// reservedArgs are the other argument names of generated client methods.
var reservedArgs = map[string]bool{"ctx": true, "s": true, "params": true, "body": true, "pathValues": true}

// reservedFlags are defined by generated CLIs on the root or on every
// command that takes a body.
var reservedFlags = map[string]bool{
	"body": true, "token": true, "base-path": true, "scope": true,
	"param": true, "help": true, "version": true,
}

// params lists parameterOrder first, then the rest by name.
func params(m dv1.RestMethod) []Param {
	seen := make(map[string]bool, len(m.Parameters))
	names := make([]string, 0, len(m.Parameters))
	for _, n := range m.ParameterOrder {
		if _, ok := m.Parameters[n]; ok && !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	rest := make([]string, 0, len(m.Parameters))
	for n := range m.Parameters {
		if !seen[n] {
			rest = append(rest, n)
		}
	}
	sort.Strings(rest)
	names = append(names, rest...)

	out := make([]Param, 0, len(names))
	for _, n := range names {
		s := m.Parameters[n]
		goName := naming.Unexported(n)
		if reservedArgs[goName] {
			goName += "Param"
		}
		flag := naming.Kebab(n)
		if reservedFlags[flag] {
			flag += "-param"
		}
		out = append(out, Param{
			Name:        n,
			GoName:      goName,
			FlagName:    flag,
			Location:    s.Location,
			Type:        s.Type,
			Description: strings.TrimSpace(s.Description),
			Required:    s.Required,
			Repeated:    s.Repeated,
		})
	}
	return out
}

// scopeName turns "https://www.googleapis.com/auth/drive.readonly" into
// "DriveReadonlyScope".
func scopeName(url string) string {
	s := url
	if i := strings.LastIndex(strings.TrimSuffix(s, "/"), "/"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(s, "/")
	if s == "" {
		s = "cloud platform"
	}
	return naming.Exported(s) + "Scope"
}
