package tokensource

import (
	"net/http"
)

// Transport is an http.RoundTripper that authorizes every request with a
// bearer token from Provider.
type Transport struct {
	Provider AccessTokenProvider
	// Base is the underlying transport. http.DefaultTransport is used if nil.
	Base http.RoundTripper
}

// RoundTrip fetches a token with the request's context and sends a copy of
// req carrying it. The original request is not modified.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	bodyClosed := false
	if req.Body != nil {
		defer func() {
			if !bodyClosed {
				req.Body.Close()
			}
		}()
	}
	if t.Provider == nil {
		return nil, acquisitionErr("transport", ErrNoProvider)
	}

	tok, err := t.Provider.AccessToken(req.Context())
	if err != nil {
		return nil, acquisitionErr("transport", err)
	}

	r := req.Clone(req.Context())
	r.Header.Set("Authorization", "Bearer "+tok)

	// the base transport closes the body from here on
	bodyClosed = true
	return t.base().RoundTrip(r)
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

// NewClient returns an http.Client whose requests are authorized by p.
func NewClient(p AccessTokenProvider) *http.Client {
	return &http.Client{Transport: &Transport{Provider: p}}
}
