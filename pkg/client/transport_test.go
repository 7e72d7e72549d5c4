package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransportAttachesBearer(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	store := NewMemoryTokenStore()
	httpClient := &http.Client{Transport: &Transport{Store: store}}

	resp, err := httpClient.Get(srv.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Empty(t, got, "no header without a token")

	require.NoError(t, store.Save("tok-123"))
	resp, err = httpClient.Get(srv.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, "Bearer tok-123", got)
}

func TestNewDoesNotMutateCallerClient(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := NewMemoryTokenStore()
	require.NoError(t, store.Save("tok-123"))

	shared := &http.Client{}
	c := New(Config{BaseURL: srv.URL, Store: store, HTTPClient: shared})

	require.NoError(t, c.doJSON(context.Background(), http.MethodGet, "/", nil, nil))
	assert.Equal(t, "Bearer tok-123", got, "the wrapped copy carries the token")

	assert.Nil(t, shared.Transport, "the caller's client keeps its own transport")
	resp, err := shared.Get(srv.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Empty(t, got, "requests through the caller's client stay bare")
}

func TestTransportUnauthorizedHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/expired" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	fired := 0
	httpClient := &http.Client{Transport: &Transport{
		Store:          NewMemoryTokenStore(),
		OnUnauthorized: func() { fired++ },
	}}

	resp, err := httpClient.Get(srv.URL + "/ok")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Zero(t, fired)

	resp, err = httpClient.Get(srv.URL + "/expired")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "the 401 still reaches the caller")
	assert.Equal(t, 1, fired)
}
