package tokensource

import (
	"context"
	"slices"
	"strings"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/oauth2/google"
)

// Cached wraps next so that a token is reused for a given scope set for as
// long as it is valid. Expired tokens are fetched again from next.
//
// The cache lock is never held while next is running; two callers missing
// at the same moment will both fetch.
func Cached(next Authenticator) Authenticator {
	return &cached{
		next:   next,
		tokens: make(map[string]*oauth2.Token),
	}
}

type cached struct {
	next Authenticator

	mu     sync.Mutex
	tokens map[string]*oauth2.Token
}

func (c *cached) Token(ctx context.Context, scopes []string) (*oauth2.Token, error) {
	key := scopeKey(scopes)

	c.mu.Lock()
	tok := c.tokens[key]
	c.mu.Unlock()
	if tok.Valid() {
		return tok, nil
	}

	tok, err := c.next.Token(ctx, scopes)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.tokens[key] = tok
	c.mu.Unlock()
	return tok, nil
}

func scopeKey(scopes []string) string {
	s := slices.Clone(scopes)
	slices.Sort(s)
	return strings.Join(slices.Compact(s), " ")
}

// FromTokenSource adapts an existing oauth2.TokenSource. The scopes are
// whatever ts was built with; the scopes argument of Token is ignored.
func FromTokenSource(ts oauth2.TokenSource) Authenticator {
	return AuthenticatorFunc(func(ctx context.Context, _ []string) (*oauth2.Token, error) {
		if ts == nil {
			return nil, ErrNoProvider
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return ts.Token()
	})
}

// ClientCredentials returns an authenticator running the two-legged client
// credentials grant of cfg. The scopes of each request replace cfg.Scopes.
func ClientCredentials(cfg *clientcredentials.Config) Authenticator {
	return Cached(AuthenticatorFunc(func(ctx context.Context, scopes []string) (*oauth2.Token, error) {
		if cfg == nil {
			return nil, ErrNoProvider
		}
		c := *cfg
		c.Scopes = slices.Clone(scopes)
		return c.Token(ctx)
	}))
}

// DefaultCredentials returns an authenticator backed by Google Application
// Default Credentials.
func DefaultCredentials() Authenticator {
	return Cached(AuthenticatorFunc(func(ctx context.Context, scopes []string) (*oauth2.Token, error) {
		creds, err := google.FindDefaultCredentials(ctx, scopes...)
		if err != nil {
			return nil, err
		}
		return creds.TokenSource.Token()
	}))
}
