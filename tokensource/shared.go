package tokensource

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/oauth2"
)

// Authenticator obtains a token for a set of scopes. It is the seam between
// [Shared] and an external authentication library.
type Authenticator interface {
	Token(ctx context.Context, scopes []string) (*oauth2.Token, error)
}

// AuthenticatorFunc adapts an ordinary function to [Authenticator].
type AuthenticatorFunc func(ctx context.Context, scopes []string) (*oauth2.Token, error)

// Token calls f(ctx, scopes).
func (f AuthenticatorFunc) Token(ctx context.Context, scopes []string) (*oauth2.Token, error) {
	return f(ctx, scopes)
}

// Shared is the reference [AccessTokenProvider]. It holds an authenticator
// handle and the fixed list of scopes to request.
//
// The handle is copied out under a read lock that is released before the
// token is requested, so concurrent callers are never serialized behind a
// network round trip. Only [Shared.Replace] takes the write lock.
type Shared struct {
	mu     sync.RWMutex
	auth   Authenticator
	scopes []string
}

// FromAuthenticator returns a Shared provider requesting scopes from auth.
func FromAuthenticator(auth Authenticator, scopes ...string) *Shared {
	return &Shared{
		auth:   auth,
		scopes: slices.Clone(scopes),
	}
}

// AccessToken requests a token for the configured scopes.
func (s *Shared) AccessToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	auth := s.auth
	s.mu.RUnlock()

	if auth == nil {
		return "", acquisitionErr("shared", ErrNoProvider)
	}

	tok, err := s.token(ctx, auth)
	if err != nil {
		return "", acquisitionErr("shared", err)
	}
	if tok == nil || tok.AccessToken == "" {
		return "", acquisitionErr("shared", ErrEmptyToken)
	}
	return tok.AccessToken, nil
}

// token converts a panicking authenticator into an error so one bad call
// cannot take down every goroutine sharing the provider.
func (s *Shared) token(ctx context.Context, auth Authenticator) (tok *oauth2.Token, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrAuthenticatorPanic, r)
		}
	}()
	return auth.Token(ctx, s.scopes)
}

// Replace swaps the authenticator, e.g. after re-authentication. Calls
// already in flight finish against the handle they copied.
func (s *Shared) Replace(auth Authenticator) {
	s.mu.Lock()
	s.auth = auth
	s.mu.Unlock()
}

// Scopes returns a copy of the scopes requested on every call.
func (s *Shared) Scopes() []string {
	return slices.Clone(s.scopes)
}

// String never includes credentials.
func (s *Shared) String() string {
	return "tokensource.Shared{..}"
}

func (s *Shared) GoString() string {
	return s.String()
}
