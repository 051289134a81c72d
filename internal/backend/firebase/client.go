// Package firebase implements the backend contract against a Firebase
// project: the Identity Toolkit API for auth, Firestore's document REST API
// for the database and the Firebase Storage API for objects.
//
// Firestore timestamps are the delicate part. A field written with a
// server-timestamp transform has no resolved value in the write
// acknowledgement, so every such write is followed by a read of the
// committed document, and every timestamp leaving this package is
// normalized to an ISO-8601 string first.
package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/teephopdisawas/lifehub/internal/backend"
)

const (
	defaultAuthURL      = "https://identitytoolkit.googleapis.com"
	defaultFirestoreURL = "https://firestore.googleapis.com"
	defaultStorageURL   = "https://firebasestorage.googleapis.com"

	defaultWatchInterval = 2 * time.Second
)

// Backend is the Firebase implementation of backend.Service.
type Backend struct {
	c *client
}

type client struct {
	http      *http.Client
	apiKey    string
	projectID string
	bucket    string
	log       zerolog.Logger

	// Endpoint overrides for tests.
	authURL      string
	firestoreURL string
	storageURL   string

	// watchInterval paces the message watcher's polling.
	watchInterval time.Duration

	mu        sync.Mutex
	idToken   string
	user      *backend.User
	listeners map[int]backend.AuthStateFunc
	nextID    int
}

// Config carries the Firebase project identifiers.
type Config struct {
	APIKey        string
	ProjectID     string
	StorageBucket string
}

// New creates a Firebase backend.
func New(cfg Config, timeout time.Duration, log zerolog.Logger) *Backend {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Backend{
		c: &client{
			http:          &http.Client{Timeout: timeout},
			apiKey:        cfg.APIKey,
			projectID:     cfg.ProjectID,
			bucket:        cfg.StorageBucket,
			log:           log.With().Str("backend", backend.ProviderFirebase).Logger(),
			authURL:       defaultAuthURL,
			firestoreURL:  defaultFirestoreURL,
			storageURL:    defaultStorageURL,
			watchInterval: defaultWatchInterval,
			listeners:     make(map[int]backend.AuthStateFunc),
		},
	}
}

func (b *Backend) Type() string               { return backend.ProviderFirebase }
func (b *Backend) Auth() backend.Auth         { return &authAPI{c: b.c} }
func (b *Backend) Database() backend.Database { return &databaseAPI{c: b.c} }
func (b *Backend) Storage() backend.Storage   { return &storageAPI{c: b.c} }

func (c *client) setSession(idToken string, user *backend.User) {
	c.mu.Lock()
	c.idToken = idToken
	c.user = user
	c.mu.Unlock()
}

func (c *client) currentUser() *backend.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

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

// postJSON sends a JSON body to an absolute URL and decodes the response.
func (c *client) postJSON(ctx context.Context, u string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", u, err)
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

func (c *client) authorize(req *http.Request) {
	c.mu.Lock()
	token := c.idToken
	c.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// apiError extracts the message from a Google API error envelope.
func apiError(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	_ = json.Unmarshal(raw, &payload)

	msg := payload.Error.Message
	if msg == "" {
		msg = strings.TrimSpace(string(raw))
	}
	return fmt.Errorf("firebase: status %d: %s", resp.StatusCode, msg)
}

type authAPI struct {
	c *client
}

type identityResponse struct {
	LocalID string `json:"localId"`
	Email   string `json:"email"`
	IDToken string `json:"idToken"`
}

func (r *identityResponse) toUser() *backend.User {
	if r == nil || r.LocalID == "" {
		return nil
	}
	return &backend.User{ID: r.LocalID, Email: r.Email}
}

func (a *authAPI) identityURL(verb string) string {
	return fmt.Sprintf("%s/v1/accounts:%s?key=%s", a.c.authURL, verb, a.c.apiKey)
}

func (a *authAPI) SignIn(ctx context.Context, email, password string) backend.AuthResponse {
	var res identityResponse
	body := map[string]any{"email": email, "password": password, "returnSecureToken": true}
	if err := a.c.postJSON(ctx, a.identityURL("signInWithPassword"), body, &res); err != nil {
		return backend.AuthResponse{Err: err}
	}

	user := res.toUser()
	a.c.setSession(res.IDToken, user)
	a.c.emit(user)
	return backend.AuthResponse{User: user}
}

func (a *authAPI) SignUp(ctx context.Context, email, password string) backend.AuthResponse {
	var res identityResponse
	body := map[string]any{"email": email, "password": password, "returnSecureToken": true}
	if err := a.c.postJSON(ctx, a.identityURL("signUp"), body, &res); err != nil {
		return backend.AuthResponse{Err: err}
	}

	user := res.toUser()
	a.c.setSession(res.IDToken, user)

	// Provision the profile document. If this fails the account still
	// exists: the error is surfaced and no rollback is attempted.
	db := &databaseAPI{c: a.c}
	if err := db.createProfileDoc(ctx, user.ID); err != nil {
		return backend.AuthResponse{Err: fmt.Errorf("create profile: %w", err)}
	}

	a.c.emit(user)
	return backend.AuthResponse{User: user}
}

// SignOut clears the local session. The Identity Toolkit keeps no
// server-side session to revoke for password sign-in.
func (a *authAPI) SignOut(_ context.Context) error {
	a.c.setSession("", nil)
	a.c.emit(nil)
	return nil
}

// GetCurrentUser resolves from the locally held session, mirroring the
// SDK's currentUser accessor. No network round trip.
func (a *authAPI) GetCurrentUser(_ context.Context) *backend.User {
	return a.c.currentUser()
}

// OnAuthStateChange fires the callback once with the present state on
// registration, then once per transition, matching the native listener's
// behavior.
func (a *authAPI) OnAuthStateChange(cb backend.AuthStateFunc) backend.UnsubscribeFunc {
	a.c.mu.Lock()
	id := a.c.nextID
	a.c.nextID++
	a.c.listeners[id] = cb
	a.c.mu.Unlock()

	go cb(a.c.currentUser())

	return func() {
		a.c.mu.Lock()
		delete(a.c.listeners, id)
		a.c.mu.Unlock()
	}
}
