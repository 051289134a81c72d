// Package appwrite implements the backend contract against an Appwrite
// deployment over its REST API. Sessions ride on cookies rather than a
// bearer token, so the HTTP client carries a cookie jar, and auth state
// changes are synthesized by polling the account endpoint because the
// platform has no native auth listener.
package appwrite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/teephopdisawas/lifehub/internal/backend"
)

const defaultPollInterval = 5 * time.Second

// Backend is the Appwrite implementation of backend.Service.
type Backend struct {
	c *client
}

type client struct {
	http       *http.Client
	endpoint   string
	projectID  string
	databaseID string
	bucketID   string
	log        zerolog.Logger

	// pollInterval paces the auth state watcher.
	pollInterval time.Duration

	// realtimeURL overrides the derived websocket endpoint in tests.
	realtimeURL string
}

// Config carries the Appwrite deployment identifiers. Endpoint includes the
// API version segment, e.g. https://cloud.appwrite.io/v1.
type Config struct {
	Endpoint   string
	ProjectID  string
	DatabaseID string
	BucketID   string

	// PollInterval overrides how often the auth watcher re-checks the
	// session. Zero means the 5 second default.
	PollInterval time.Duration
}

// New creates an Appwrite backend.
func New(cfg Config, timeout time.Duration, log zerolog.Logger) *Backend {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	poll := cfg.PollInterval
	if poll == 0 {
		poll = defaultPollInterval
	}
	jar, _ := cookiejar.New(nil)
	return &Backend{
		c: &client{
			http:         &http.Client{Timeout: timeout, Jar: jar},
			endpoint:     strings.TrimRight(cfg.Endpoint, "/"),
			projectID:    cfg.ProjectID,
			databaseID:   cfg.DatabaseID,
			bucketID:     cfg.BucketID,
			log:          log.With().Str("backend", backend.ProviderAppwrite).Logger(),
			pollInterval: poll,
		},
	}
}

func (b *Backend) Type() string               { return backend.ProviderAppwrite }
func (b *Backend) Auth() backend.Auth         { return &authAPI{c: b.c} }
func (b *Backend) Database() backend.Database { return &databaseAPI{c: b.c} }
func (b *Backend) Storage() backend.Storage   { return &storageAPI{c: b.c} }

// do sends a JSON request to an API path and decodes the response. The
// project header identifies the tenant; the session cookie, when present,
// authenticates the caller.
func (c *client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.endpoint + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Appwrite-Project", c.projectID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return backend.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// apiError extracts the message from an Appwrite error envelope.
func apiError(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)
	var payload struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(raw, &payload)

	msg := payload.Message
	if msg == "" {
		msg = strings.TrimSpace(string(raw))
	}
	return fmt.Errorf("appwrite: status %d: %s", resp.StatusCode, msg)
}

type authAPI struct {
	c *client
}

type accountUser struct {
	ID    string `json:"$id"`
	Email string `json:"email"`
}

func (u *accountUser) toUser() *backend.User {
	if u == nil || u.ID == "" {
		return nil
	}
	return &backend.User{ID: u.ID, Email: u.Email}
}

func (a *authAPI) createSession(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	return a.c.do(ctx, http.MethodPost, "/account/sessions/email", nil, body, nil)
}

func (a *authAPI) fetchAccount(ctx context.Context) (*backend.User, error) {
	var acct accountUser
	if err := a.c.do(ctx, http.MethodGet, "/account", nil, nil, &acct); err != nil {
		return nil, err
	}
	return acct.toUser(), nil
}

func (a *authAPI) SignIn(ctx context.Context, email, password string) backend.AuthResponse {
	if err := a.createSession(ctx, email, password); err != nil {
		return backend.AuthResponse{Err: err}
	}
	user, err := a.fetchAccount(ctx)
	if err != nil {
		return backend.AuthResponse{Err: err}
	}
	return backend.AuthResponse{User: user}
}

// SignUp registers an account, provisions its profile document, then opens
// a session for the new user.
func (a *authAPI) SignUp(ctx context.Context, email, password string) backend.AuthResponse {
	var acct accountUser
	body := map[string]string{"userId": "unique()", "email": email, "password": password}
	if err := a.c.do(ctx, http.MethodPost, "/account", nil, body, &acct); err != nil {
		return backend.AuthResponse{Err: err}
	}

	db := &databaseAPI{c: a.c}
	if err := db.createProfileDoc(ctx, acct.ID); err != nil {
		return backend.AuthResponse{Err: fmt.Errorf("create profile: %w", err)}
	}

	if err := a.createSession(ctx, email, password); err != nil {
		return backend.AuthResponse{Err: err}
	}
	return backend.AuthResponse{User: acct.toUser()}
}

func (a *authAPI) SignOut(ctx context.Context) error {
	return a.c.do(ctx, http.MethodDelete, "/account/sessions/current", nil, nil, nil)
}

func (a *authAPI) GetCurrentUser(ctx context.Context) *backend.User {
	user, err := a.fetchAccount(ctx)
	if err != nil {
		return nil
	}
	return user
}

// OnAuthStateChange polls the account endpoint and fires the callback only
// when the signed-in user id actually changes, or once on the transition to
// signed out. The first check runs immediately.
func (a *authAPI) OnAuthStateChange(cb backend.AuthStateFunc) backend.UnsubscribeFunc {
	done := make(chan struct{})
	var once sync.Once

	go a.watchAuth(done, cb)

	return func() {
		once.Do(func() { close(done) })
	}
}

func (a *authAPI) watchAuth(done <-chan struct{}, cb backend.AuthStateFunc) {
	ticker := time.NewTicker(a.c.pollInterval)
	defer ticker.Stop()

	var cur string
	cur = a.checkAuth(cur, cb)
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			cur = a.checkAuth(cur, cb)
		}
	}
}

func (a *authAPI) checkAuth(cur string, cb backend.AuthStateFunc) string {
	ctx, cancel := context.WithTimeout(context.Background(), a.c.http.Timeout)
	defer cancel()

	user, err := a.fetchAccount(ctx)
	if err != nil || user == nil {
		if cur != "" {
			cb(nil)
		}
		return ""
	}
	if user.ID != cur {
		cb(user)
	}
	return user.ID
}
