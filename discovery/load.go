// Package discovery loads API discovery documents into the typed model of
// google.golang.org/api/discovery/v1.
package discovery

import (
	"fmt"
	"os"

	"github.com/segmentio/encoding/json"
	dv1 "google.golang.org/api/discovery/v1"

	"github.com/sdboyer/discogen/generrors"
)

// RestDescription is the typed discovery document model.
type RestDescription = dv1.RestDescription

// Load reads and parses the discovery document at path. Any failure is an
// [generrors.InputError] naming path.
func Load(path string) (*RestDescription, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &generrors.InputError{Path: path, Message: "could not read spec file", Cause: err}
	}
	return Parse(path, data)
}

// Parse decodes a discovery document. path is only used in errors.
func Parse(path string, data []byte) (*RestDescription, error) {
	var desc RestDescription
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, &generrors.InputError{Path: path, Message: "could not parse spec file", Cause: err}
	}
	if err := check(&desc); err != nil {
		err.Path = path
		return nil, err
	}
	return &desc, nil
}

func check(desc *RestDescription) *generrors.InputError {
	switch {
	case desc.Name == "":
		return &generrors.InputError{Field: "name", Message: "required field is empty"}
	case desc.Version == "":
		return &generrors.InputError{Field: "version", Message: "required field is empty"}
	case desc.RootUrl == "" && desc.BaseUrl == "":
		return &generrors.InputError{Field: "rootUrl", Message: "one of rootUrl or baseUrl is required"}
	}
	for name, m := range desc.Methods {
		if err := checkMethod(name, m); err != nil {
			return err
		}
	}
	return checkResources("resources", desc.Resources)
}

func checkResources(prefix string, resources map[string]dv1.RestResource) *generrors.InputError {
	for name, r := range resources {
		p := prefix + "." + name
		for mname, m := range r.Methods {
			if err := checkMethod(p+".methods."+mname, m); err != nil {
				return err
			}
		}
		if err := checkResources(p+".resources", r.Resources); err != nil {
			return err
		}
	}
	return nil
}

func checkMethod(field string, m dv1.RestMethod) *generrors.InputError {
	switch {
	case m.Id == "":
		return &generrors.InputError{Field: field + ".id", Message: "required field is empty"}
	case m.HttpMethod == "":
		return &generrors.InputError{Field: field + ".httpMethod", Message: fmt.Sprintf("method %s has no HTTP method", m.Id)}
	case m.Path == "" && m.FlatPath == "":
		return &generrors.InputError{Field: field + ".path", Message: fmt.Sprintf("method %s has no path", m.Id)}
	}
	return nil
}
