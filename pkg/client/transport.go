package client

import "net/http"

// Transport is an http.RoundTripper that attaches the stored bearer
// token to every request and reports any 401 response through the
// OnUnauthorized hook before returning it. The hook fires for every
// 401, whichever endpoint produced it, so one expired token invalidates
// the whole session at once.
type Transport struct {
	// Base is the underlying round tripper. http.DefaultTransport when
	// nil.
	Base http.RoundTripper
	// Store provides the token. No header is attached when it is empty.
	Store TokenStore
	// OnUnauthorized is invoked on every 401 response. May be nil.
	OnUnauthorized func()
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.Store.Token()
	if err != nil {
		return nil, err
	}

	if token != "" {
		// RoundTrippers must not mutate the caller's request
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && t.OnUnauthorized != nil {
		t.OnUnauthorized()
	}
	return resp, nil
}
