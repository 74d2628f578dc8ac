// Package tokensource provides the capability interface generated API
// clients use to obtain OAuth2 bearer tokens.
//
// The primitive operation is [AccessTokenProvider.AccessToken], which may
// block on network I/O or an interactive consent flow performed by whatever
// sits behind it. Callers without a context at hand use [FetchBlocking] or
// the [Blocking] adapter, which drive that operation to completion on a
// private per-call context.
//
// This library ships a reference adapter, [Shared], over the authenticators
// in golang.org/x/oauth2, but users are free to implement the interface with
// whatever logic they want.
package tokensource

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrAcquisition is matched by every error returned from a provider in
	// this package.
	ErrAcquisition = errors.New("token acquisition failed")

	// ErrNoProvider indicates a nil provider or authenticator was used.
	ErrNoProvider = errors.New("no token provider configured")

	// ErrAuthenticatorPanic indicates the authenticator panicked.
	ErrAuthenticatorPanic = errors.New("authenticator panicked")

	// ErrEmptyToken indicates an authenticator returned a token without an
	// access token string.
	ErrEmptyToken = errors.New("authenticator returned an empty token")
)

// AccessTokenProvider provides an OAuth2 access token.
//
// Implementations must be safe for concurrent use. Repeated calls must
// return a token that is currently valid, not the same string forever;
// caching and re-authentication are left to the implementation.
type AccessTokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
}

// ProviderFunc adapts an ordinary function to [AccessTokenProvider].
type ProviderFunc func(ctx context.Context) (string, error)

// AccessToken calls f(ctx).
func (f ProviderFunc) AccessToken(ctx context.Context) (string, error) {
	return f(ctx)
}

// AcquisitionError wraps a failure in the underlying authentication
// mechanism: network failure, invalid credentials, cancellation.
type AcquisitionError struct {
	// Op names the adapter that failed, e.g. "shared" or "blocking".
	Op string
	// Err is the underlying cause.
	Err error
}

func (e *AcquisitionError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", ErrAcquisition, e.Err)
	}
	return fmt.Sprintf("%s (%s): %v", ErrAcquisition, e.Op, e.Err)
}

func (e *AcquisitionError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrAcquisition.
func (e *AcquisitionError) Is(target error) bool {
	return target == ErrAcquisition
}

func acquisitionErr(op string, err error) error {
	var ae *AcquisitionError
	if errors.As(err, &ae) {
		return err
	}
	return &AcquisitionError{Op: op, Err: err}
}
