package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teephopdisawas/lifehub/internal/backend"
)

func newTestBackend(t *testing.T, handler http.Handler) (*Backend, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, "anon-key", 0, zerolog.Nop()), server
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestSignIn(t *testing.T) {
	b, _ := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/v1/token", r.URL.Path)
		require.Equal(t, "password", r.URL.Query().Get("grant_type"))
		require.Equal(t, "anon-key", r.Header.Get("apikey"))

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "me@example.com", creds["email"])

		writeJSON(t, w, map[string]any{
			"access_token": "jwt-123",
			"user":         map[string]string{"id": "u1", "email": "me@example.com"},
		})
	}))

	res := b.Auth().SignIn(context.Background(), "me@example.com", "secret")
	require.NoError(t, res.Err)
	require.NotNil(t, res.User)
	assert.Equal(t, "u1", res.User.ID)
	assert.Equal(t, "me@example.com", res.User.Email)
}

func TestSignIn_BadCredentials(t *testing.T) {
	b, _ := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(t, w, map[string]string{"error_description": "Invalid login credentials"})
	}))

	res := b.Auth().SignIn(context.Background(), "me@example.com", "wrong")
	require.Error(t, res.Err)
	assert.Nil(t, res.User)
	assert.Contains(t, res.Err.Error(), "Invalid login credentials")
}

func TestSignUp_ProvisionsProfile(t *testing.T) {
	var profileBody map[string]any
	var profilePrefer string

	b, _ := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/v1/signup":
			writeJSON(t, w, map[string]any{
				"access_token": "jwt-456",
				"user":         map[string]string{"id": "u2", "email": "new@example.com"},
			})
		case "/rest/v1/profiles":
			profilePrefer = r.Header.Get("Prefer")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&profileBody))
			w.WriteHeader(http.StatusCreated)
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	}))

	res := b.Auth().SignUp(context.Background(), "new@example.com", "secret")
	require.NoError(t, res.Err)
	require.NotNil(t, res.User)
	assert.Equal(t, "u2", profileBody["user_id"])
	assert.Equal(t, "resolution=merge-duplicates", profilePrefer)
}

func TestSignOut_UsesSessionToken(t *testing.T) {
	var logoutAuth string

	b, _ := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/v1/token":
			writeJSON(t, w, map[string]any{
				"access_token": "jwt-789",
				"user":         map[string]string{"id": "u3", "email": "x@example.com"},
			})
		case "/auth/v1/logout":
			logoutAuth = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusNoContent)
		}
	}))

	res := b.Auth().SignIn(context.Background(), "x@example.com", "secret")
	require.NoError(t, res.Err)

	require.NoError(t, b.Auth().SignOut(context.Background()))
	assert.Equal(t, "Bearer jwt-789", logoutAuth)
	assert.Nil(t, b.Auth().GetCurrentUser(context.Background()))
}

func TestGetCurrentUser_NoSession(t *testing.T) {
	b, _ := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	}))

	assert.Nil(t, b.Auth().GetCurrentUser(context.Background()))
}

func TestGetCurrentUser_ProviderErrorDegradesToNil(t *testing.T) {
	b, _ := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/v1/token":
			writeJSON(t, w, map[string]any{
				"access_token": "jwt-000",
				"user":         map[string]string{"id": "u4", "email": "y@example.com"},
			})
		case "/auth/v1/user":
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))

	res := b.Auth().SignIn(context.Background(), "y@example.com", "secret")
	require.NoError(t, res.Err)
	assert.Nil(t, b.Auth().GetCurrentUser(context.Background()))
}

func TestOnAuthStateChange_Transitions(t *testing.T) {
	b, _ := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/v1/token":
			writeJSON(t, w, map[string]any{
				"access_token": "jwt-111",
				"user":         map[string]string{"id": "u5", "email": "z@example.com"},
			})
		case "/auth/v1/logout":
			w.WriteHeader(http.StatusNoContent)
		}
	}))

	var events []*backend.User
	unsubscribe := b.Auth().OnAuthStateChange(func(user *backend.User) {
		events = append(events, user)
	})

	res := b.Auth().SignIn(context.Background(), "z@example.com", "secret")
	require.NoError(t, res.Err)
	require.NoError(t, b.Auth().SignOut(context.Background()))

	require.Len(t, events, 2)
	require.NotNil(t, events[0])
	assert.Equal(t, "u5", events[0].ID)
	assert.Nil(t, events[1])

	unsubscribe()
	res = b.Auth().SignIn(context.Background(), "z@example.com", "secret")
	require.NoError(t, res.Err)
	assert.Len(t, events, 2)
}

func TestType(t *testing.T) {
	b := New("https://proj.supabase.co", "anon", 0, zerolog.Nop())
	assert.Equal(t, backend.ProviderSupabase, b.Type())
}
