// Package naming converts discovery identifiers into Go identifiers, package
// names, and CLI command and flag names.
package naming

import (
	"go/token"
	"regexp"
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
)

var camelCaseParts = regexp.MustCompile(`[\p{Lu}\d]+([\p{Ll}\d]*)`)

var initialisms = map[string]bool{
	"ACL": true, "API": true, "CPU": true, "DNS": true, "HTML": true, "HTTP": true,
	"HTTPS": true, "ID": true, "IP": true, "JSON": true, "RPC": true, "SQL": true,
	"SSH": true, "TLS": true, "TTL": true, "UI": true, "UID": true, "URI": true,
	"URL": true, "UUID": true, "VM": true, "XML": true,
}

var predeclared = map[string]bool{
	"bool": true, "byte": true, "error": true, "int": true, "string": true,
	"true": true, "false": true, "nil": true, "iota": true, "len": true,
	"cap": true, "new": true, "make": true, "copy": true, "append": true,
}

// Exported converts s to an exported Go identifier: "widget_id" and
// "widgetId" both become "WidgetID".
func Exported(s string) string {
	return fixInitialisms(strcase.ToCamel(clean(s)))
}

// Unexported converts s to an unexported Go identifier that is neither a
// keyword nor a predeclared name: "type" becomes "type_".
func Unexported(s string) string {
	id := fixInitialisms(strcase.ToCamel(clean(s)))
	if id == "" {
		return "_"
	}
	r := []rune(id)
	// lower the leading initialism as a whole: "IDToken" -> "idToken"
	i := 0
	for i < len(r) && unicode.IsUpper(r[i]) && (i == 0 || i+1 >= len(r) || unicode.IsUpper(r[i+1])) {
		r[i] = unicode.ToLower(r[i])
		i++
	}
	id = string(r)
	if token.IsKeyword(id) || predeclared[id] {
		id += "_"
	}
	return id
}

// Kebab converts s to a lowercase, dash-separated name for CLI commands and
// flags: "widgets.parts.list" becomes "widgets-parts-list", "pageSize"
// becomes "page-size".
func Kebab(s string) string {
	return strcase.ToKebab(clean(s))
}

// Package returns a Go package name for an API: lowercase letters and digits
// only, never starting with a digit.
func Package(name, version string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name + version) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	p := b.String()
	if p == "" || unicode.IsDigit(rune(p[0])) {
		p = "api" + p
	}
	return p
}

// clean replaces separators strcase does not know about with spaces.
func clean(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '/', '$', '@', '#', '{', '}', '+', ':':
			return ' '
		}
		return r
	}, s)
}

func fixInitialisms(s string) string {
	return camelCaseParts.ReplaceAllStringFunc(s, func(part string) string {
		if up := strings.ToUpper(part); initialisms[up] {
			return up
		}
		return part
	})
}
