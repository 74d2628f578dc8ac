// Package clisupport is the runtime shared by generated command line tools.
// It decides where a tool keeps its stored token, which access token provider
// a tool uses, and how responses and parameters are handled.
package clisupport

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/segmentio/encoding/json"
	"golang.org/x/oauth2"

	"github.com/sdboyer/discogen/tokensource"
)

// TokenFile is the name of the stored token inside a tool's config directory.
const TokenFile = "token.json"

// ConfigDir returns the directory app keeps its state in: ~/.config/<app>.
func ConfigDir(app string) (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, ".config", app), nil
}

// ExpandPath expands a leading ~ in p to the user's home directory.
func ExpandPath(p string) (string, error) {
	return homedir.Expand(p)
}

// LoadToken reads a token stored by SaveToken. The error wraps
// fs.ErrNotExist if there is none.
func LoadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tok := new(oauth2.Token)
	if err := json.Unmarshal(data, tok); err != nil {
		return nil, fmt.Errorf("decoding token %s: %w", path, err)
	}
	return tok, nil
}

// SaveToken writes tok to path, readable only by the current user.
func SaveToken(path string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(tok)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Provider returns the access token provider for app. In order of
// preference it uses token if non-empty, then a valid token stored in the
// app's config directory, then Application Default Credentials for scopes.
func Provider(app, token string, scopes []string) (tokensource.AccessTokenProvider, error) {
	if token != "" {
		return static(&oauth2.Token{AccessToken: token}), nil
	}

	dir, err := ConfigDir(app)
	if err != nil {
		return nil, err
	}
	tok, err := LoadToken(filepath.Join(dir, TokenFile))
	switch {
	case err == nil && tok.Valid():
		return static(tok), nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return nil, err
	}

	return tokensource.FromAuthenticator(tokensource.DefaultCredentials(), scopes...), nil
}

func static(tok *oauth2.Token) tokensource.AccessTokenProvider {
	return tokensource.FromAuthenticator(tokensource.FromTokenSource(oauth2.StaticTokenSource(tok)))
}

// PrintJSON writes data to w indented, followed by a newline. Empty data
// prints nothing.
func PrintJSON(w io.Writer, data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return fmt.Errorf("response is not JSON: %w", err)
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}

// ParseParams turns "key=value" pairs into query values. Keys may repeat.
func ParseParams(kv []string) (url.Values, error) {
	v := url.Values{}
	for _, p := range kv {
		key, val, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, want key=value", p)
		}
		v.Add(key, val)
	}
	return v, nil
}
