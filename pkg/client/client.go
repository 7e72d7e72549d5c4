package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Config configures a Client.
type Config struct {
	// BaseURL is the API root, e.g. "https://api.example.com".
	BaseURL string
	// Store holds the session token. Defaults to an in-memory store.
	Store TokenStore
	// HTTPClient supplies the timeout, jar, and base transport. It is
	// copied, not mutated; the copy's transport gets wrapped. Defaults
	// to a client with a 30s timeout.
	HTTPClient *http.Client
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
}

// Client talks to the ReObserve API and owns the session and permission
// state derived from it.
type Client struct {
	baseURL string
	http    *http.Client
	store   TokenStore
	logger  *zap.Logger

	session     *Session
	permissions *Permissions
}

// New creates a Client. The HTTP client's transport is wrapped so every
// request carries the stored token and every 401 invalidates the
// session.
func New(cfg Config) *Client {
	store := cfg.Store
	if store == nil {
		store = NewMemoryTokenStore()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	httpClient := &http.Client{Timeout: 30 * time.Second}
	if cfg.HTTPClient != nil {
		clone := *cfg.HTTPClient
		httpClient = &clone
	}

	c := &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		store:       store,
		logger:      logger,
		permissions: newPermissions(),
	}
	c.session = newSession(c)

	httpClient.Transport = &Transport{
		Base:           httpClient.Transport,
		Store:          store,
		OnUnauthorized: c.session.Invalidate,
	}
	c.http = httpClient

	return c
}

// Session returns the client's session state machine.
func (c *Client) Session() *Session {
	return c.session
}

// Permissions returns the client's cached capability set.
func (c *Client) Permissions() *Permissions {
	return c.permissions
}

// apiError is the error shape the server responds with.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsUnauthorized reports whether err is a 401 API response.
func IsUnauthorized(err error) bool {
	ae, ok := err.(*apiError)
	return ok && ae.Status == http.StatusUnauthorized
}

type loginPayload struct {
	Token        string   `json:"token"`
	Kind         string   `json:"kind"`
	ID           uint     `json:"id"`
	Capabilities []string `json:"capabilities"`
}

type mePayload struct {
	Kind string `json:"kind"`
	User *struct {
		ID      uint `json:"id"`
		IsAdmin bool `json:"isAdmin"`
	} `json:"user"`
	Enterprise *struct {
		ID uint `json:"id"`
	} `json:"enterprise"`
	Capabilities []string `json:"capabilities"`
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return &apiError{Status: resp.StatusCode, Message: errBody.Error}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
