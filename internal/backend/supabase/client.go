// Package supabase implements the backend contract against a Supabase
// project: GoTrue for auth, PostgREST for the database, the Storage API for
// objects and the Realtime websocket for message inserts.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/teephopdisawas/lifehub/internal/backend"
)

// Backend is the Supabase implementation of backend.Service.
type Backend struct {
	c *client
}

type client struct {
	http    *http.Client
	baseURL string
	anonKey string
	log     zerolog.Logger

	// realtimeURL overrides the websocket endpoint derived from baseURL.
	// Used by tests.
	realtimeURL string

	mu        sync.Mutex
	token     string
	user      *backend.User
	listeners map[int]backend.AuthStateFunc
	nextID    int
}

// New creates a Supabase backend for the given project URL and anon key.
func New(projectURL, anonKey string, timeout time.Duration, log zerolog.Logger) *Backend {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Backend{
		c: &client{
			http:      &http.Client{Timeout: timeout},
			baseURL:   strings.TrimRight(projectURL, "/"),
			anonKey:   anonKey,
			log:       log.With().Str("backend", backend.ProviderSupabase).Logger(),
			listeners: make(map[int]backend.AuthStateFunc),
		},
	}
}

func (b *Backend) Type() string               { return backend.ProviderSupabase }
func (b *Backend) Auth() backend.Auth         { return &authAPI{c: b.c} }
func (b *Backend) Database() backend.Database { return &databaseAPI{c: b.c} }
func (b *Backend) Storage() backend.Storage   { return &storageAPI{c: b.c} }

// bearer returns the Authorization value: the session token when signed in,
// the anon key otherwise.
func (c *client) bearer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" {
		return c.token
	}
	return c.anonKey
}

func (c *client) setSession(token string, user *backend.User) {
	c.mu.Lock()
	c.token = token
	c.user = user
	c.mu.Unlock()
}

// emit delivers an auth transition to every registered listener. Listeners
// run outside the lock so a callback may re-enter the client.
func (c *client) emit(user *backend.User) {
	c.mu.Lock()
	cbs := make([]backend.AuthStateFunc, 0, len(c.listeners))
	for _, cb := range c.listeners {
		cbs = append(cbs, cb)
	}
	c.mu.Unlock()
	for _, cb := range cbs {
		cb(user)
	}
}

// do performs a JSON request against the project and decodes the response
// into out when out is non-nil.
func (c *client) do(ctx context.Context, method, path string, query url.Values, headers map[string]string, body, out any) error {
	u := c.baseURL + path
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
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.bearer())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

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

// apiError extracts a usable message from a GoTrue or PostgREST error body.
func apiError(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)
	var payload struct {
		Message          string `json:"message"`
		Msg              string `json:"msg"`
		ErrorDescription string `json:"error_description"`
	}
	_ = json.Unmarshal(raw, &payload)

	msg := payload.Message
	if msg == "" {
		msg = payload.Msg
	}
	if msg == "" {
		msg = payload.ErrorDescription
	}
	if msg == "" {
		msg = strings.TrimSpace(string(raw))
	}
	return fmt.Errorf("supabase: status %d: %s", resp.StatusCode, msg)
}

type authAPI struct {
	c *client
}

type gotrueUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (u *gotrueUser) toUser() *backend.User {
	if u == nil || u.ID == "" {
		return nil
	}
	return &backend.User{ID: u.ID, Email: u.Email}
}

type tokenResponse struct {
	AccessToken string      `json:"access_token"`
	User        *gotrueUser `json:"user"`
}

func (a *authAPI) SignIn(ctx context.Context, email, password string) backend.AuthResponse {
	var res tokenResponse
	q := url.Values{"grant_type": {"password"}}
	err := a.c.do(ctx, http.MethodPost, "/auth/v1/token", q, nil,
		map[string]string{"email": email, "password": password}, &res)
	if err != nil {
		return backend.AuthResponse{Err: err}
	}

	user := res.User.toUser()
	a.c.setSession(res.AccessToken, user)
	a.c.emit(user)
	return backend.AuthResponse{User: user}
}

func (a *authAPI) SignUp(ctx context.Context, email, password string) backend.AuthResponse {
	var res tokenResponse
	err := a.c.do(ctx, http.MethodPost, "/auth/v1/signup", nil, nil,
		map[string]string{"email": email, "password": password}, &res)
	if err != nil {
		return backend.AuthResponse{Err: err}
	}

	user := res.User.toUser()
	if user == nil {
		return backend.AuthResponse{Err: fmt.Errorf("supabase: signup returned no user")}
	}
	a.c.setSession(res.AccessToken, user)

	// Provision the profile row. The contract requires one per account; the
	// hosted project may also do this with a trigger, so a duplicate is not
	// an error.
	if err := a.createProfile(ctx, user.ID); err != nil {
		a.c.log.Warn().Err(err).Msg("profile provisioning failed")
	}

	a.c.emit(user)
	return backend.AuthResponse{User: user}
}

func (a *authAPI) createProfile(ctx context.Context, userID string) error {
	headers := map[string]string{
		"Prefer": "resolution=merge-duplicates",
	}
	return a.c.do(ctx, http.MethodPost, "/rest/v1/profiles", nil, headers,
		map[string]any{"user_id": userID}, nil)
}

func (a *authAPI) SignOut(ctx context.Context) error {
	if err := a.c.do(ctx, http.MethodPost, "/auth/v1/logout", nil, nil, nil, nil); err != nil {
		return err
	}
	a.c.setSession("", nil)
	a.c.emit(nil)
	return nil
}

func (a *authAPI) GetCurrentUser(ctx context.Context) *backend.User {
	a.c.mu.Lock()
	token := a.c.token
	a.c.mu.Unlock()
	if token == "" {
		return nil
	}

	var u gotrueUser
	if err := a.c.do(ctx, http.MethodGet, "/auth/v1/user", nil, nil, nil, &u); err != nil {
		return nil
	}
	return u.toUser()
}

func (a *authAPI) OnAuthStateChange(cb backend.AuthStateFunc) backend.UnsubscribeFunc {
	a.c.mu.Lock()
	id := a.c.nextID
	a.c.nextID++
	a.c.listeners[id] = cb
	a.c.mu.Unlock()

	return func() {
		a.c.mu.Lock()
		delete(a.c.listeners, id)
		a.c.mu.Unlock()
	}
}
