package tokensource

import (
	"context"
	"time"

	"golang.org/x/oauth2"
)

// FetchBlocking runs p.AccessToken to completion on a fresh context that is
// private to this call. A timeout <= 0 means no deadline.
//
// It is meant for call sites with no context of their own. Code already
// running inside an AccessToken call must pass its context down instead of
// calling FetchBlocking, otherwise cancellation of the outer call is lost.
func FetchBlocking(p AccessTokenProvider, timeout time.Duration) (string, error) {
	if p == nil {
		return "", acquisitionErr("blocking", ErrNoProvider)
	}

	ctx, cancel := blockingContext(timeout)
	defer cancel()

	tok, err := p.AccessToken(ctx)
	if err != nil {
		return "", acquisitionErr("blocking", err)
	}
	return tok, nil
}

func blockingContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(context.Background(), timeout)
	}
	return context.WithCancel(context.Background())
}

// Blocking adapts an [AccessTokenProvider] to the synchronous
// [oauth2.TokenSource] interface. Each Token call is an independent
// [FetchBlocking].
type Blocking struct {
	Provider AccessTokenProvider
	// Timeout bounds each call. Zero means no deadline.
	Timeout time.Duration
}

var _ oauth2.TokenSource = Blocking{}

// Token returns a bearer token. The provider interface carries no expiry, so
// the returned token has none; callers wanting reuse should wrap the
// provider in one that caches.
func (b Blocking) Token() (*oauth2.Token, error) {
	tok, err := FetchBlocking(b.Provider, b.Timeout)
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{AccessToken: tok, TokenType: "Bearer"}, nil
}
