package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teephopdisawas/lifehub/internal/backend"
)

// statefulProject fakes enough of a project to run a sign-up-to-delete
// lifecycle: one auth user and one in-memory notes table.
type statefulProject struct {
	t     *testing.T
	notes []map[string]any
}

func (p *statefulProject) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/auth/v1/signup":
			writeJSON(p.t, w, map[string]any{
				"access_token": "jwt-flow",
				"user":         map[string]string{"id": "u1", "email": "flow@example.com"},
			})
		case r.URL.Path == "/rest/v1/profiles":
			w.WriteHeader(http.StatusCreated)
		case r.URL.Path == "/rest/v1/notes" && r.Method == http.MethodPost:
			var record map[string]any
			require.NoError(p.t, json.NewDecoder(r.Body).Decode(&record))
			record["id"] = "n1"
			record["created_at"] = time.Now().UTC().Format(time.RFC3339)
			p.notes = append(p.notes, record)
			writeJSON(p.t, w, record)
		case r.URL.Path == "/rest/v1/notes" && r.Method == http.MethodGet:
			writeJSON(p.t, w, p.notes)
		case r.URL.Path == "/rest/v1/notes" && r.Method == http.MethodPatch:
			id := strings.TrimPrefix(r.URL.Query().Get("id"), "eq.")
			var patch map[string]any
			require.NoError(p.t, json.NewDecoder(r.Body).Decode(&patch))
			for _, n := range p.notes {
				if n["id"] == id {
					for k, v := range patch {
						n[k] = v
					}
					writeJSON(p.t, w, n)
					return
				}
			}
			w.WriteHeader(http.StatusNotAcceptable)
		case r.URL.Path == "/rest/v1/notes" && r.Method == http.MethodDelete:
			id := strings.TrimPrefix(r.URL.Query().Get("id"), "eq.")
			kept := p.notes[:0]
			for _, n := range p.notes {
				if n["id"] != id {
					kept = append(kept, n)
				}
			}
			p.notes = kept
			w.WriteHeader(http.StatusNoContent)
		default:
			p.t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})
}

func TestNoteLifecycle(t *testing.T) {
	project := &statefulProject{t: t}
	b, _ := newTestBackend(t, project.handler())
	ctx := context.Background()

	res := b.Auth().SignUp(ctx, "flow@example.com", "secret")
	require.NoError(t, res.Err)
	user := res.User

	note, err := b.Database().CreateNote(ctx, user.ID, backend.NoteParams{Title: "draft", Content: "v1"})
	require.NoError(t, err)
	assert.NotEmpty(t, note.ID)
	assert.NotEmpty(t, note.CreatedAt)
	assert.Equal(t, user.ID, note.UserID)

	content := "v2"
	updated, err := b.Database().UpdateNote(ctx, note.ID, backend.NoteUpdate{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "v2", updated.Content)
	assert.Equal(t, "draft", updated.Title)

	notes, err := b.Database().GetNotes(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)

	require.NoError(t, b.Database().DeleteNote(ctx, note.ID))
	notes, err = b.Database().GetNotes(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, notes)
}
