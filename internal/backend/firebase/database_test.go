package firebase

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teephopdisawas/lifehub/internal/backend"
)

const commitPath = "/v1/projects/p1/databases/(default)/documents:commit"
const queryPath = "/v1/projects/p1/databases/(default)/documents:runQuery"

func TestCreateNote_ReadsBackServerTimestamp(t *testing.T) {
	var commitBody map[string]any
	var readBackID string

	b := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == commitPath:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&commitBody))
			writeJSON(t, w, map[string]any{})
		case strings.Contains(r.URL.Path, "/documents/notes/"):
			readBackID = docID(r.URL.Path)
			writeJSON(t, w, fsDocument{
				Name: "projects/p1/databases/(default)/documents/notes/" + readBackID,
				Fields: map[string]map[string]any{
					"title":      {"stringValue": "groceries"},
					"content":    {"stringValue": "eggs"},
					"user_id":    {"stringValue": "u1"},
					"created_at": {"timestampValue": "2026-06-02T08:00:00Z"},
				},
			})
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	}))

	note, err := b.Database().CreateNote(context.Background(), "u1", backend.NoteParams{
		Title: "groceries", Content: "eggs",
	})
	require.NoError(t, err)

	assert.Equal(t, readBackID, note.ID, "returned entity comes from the read-back")
	assert.Equal(t, "2026-06-02T08:00:00Z", note.CreatedAt, "server timestamp is settled to ISO")
	assert.Equal(t, "groceries", note.Title)

	write := commitBody["writes"].([]any)[0].(map[string]any)
	fields := write["update"].(map[string]any)["fields"].(map[string]any)
	title := fields["title"].(map[string]any)
	assert.Equal(t, "groceries", title["stringValue"], "values travel in typed envelopes")
	_, masked := write["updateMask"]
	assert.False(t, masked, "creates write the whole document")
}

func TestUpdateTodo_MaskedWriteWithTransform(t *testing.T) {
	var commitBody map[string]any

	b := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == commitPath:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&commitBody))
			writeJSON(t, w, map[string]any{})
		default:
			writeJSON(t, w, fsDocument{
				Name: "projects/p1/databases/(default)/documents/todos/t1",
				Fields: map[string]map[string]any{
					"task":         {"stringValue": "buy milk"},
					"is_completed": {"booleanValue": true},
					"user_id":      {"stringValue": "u1"},
					"created_at":   {"timestampValue": "2026-06-01T00:00:00Z"},
					"updated_at":   {"timestampValue": "2026-06-03T00:00:00Z"},
				},
			})
		}
	}))

	done := true
	todo, err := b.Database().UpdateTodo(context.Background(), "t1", backend.TodoUpdate{IsCompleted: &done})
	require.NoError(t, err)
	assert.True(t, todo.IsCompleted)
	assert.Equal(t, "2026-06-03T00:00:00Z", todo.UpdatedAt)

	write := commitBody["writes"].([]any)[0].(map[string]any)
	mask := write["updateMask"].(map[string]any)["fieldPaths"].([]any)
	assert.Equal(t, []any{"is_completed"}, mask)

	current := write["currentDocument"].(map[string]any)
	assert.Equal(t, true, current["exists"])

	transforms := write["updateTransforms"].([]any)
	first := transforms[0].(map[string]any)
	assert.Equal(t, "updated_at", first["fieldPath"])
}

func TestGetNotes_StructuredQuery(t *testing.T) {
	var queryBody map[string]any

	b := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, queryPath, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&queryBody))

		writeJSON(t, w, []map[string]any{
			{"document": fsDocument{
				Name: "projects/p1/databases/(default)/documents/notes/n1",
				Fields: map[string]map[string]any{
					"title":      {"stringValue": "one"},
					"content":    {"stringValue": "body"},
					"user_id":    {"stringValue": "u1"},
					"created_at": {"timestampValue": "2026-06-01T00:00:00Z"},
				},
			}},
			{"readTime": "2026-06-05T00:00:00Z"},
		})
	}))

	notes, err := b.Database().GetNotes(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, notes, 1, "result rows without a document are skipped")
	assert.Equal(t, "n1", notes[0].ID)

	structured := queryBody["structuredQuery"].(map[string]any)
	from := structured["from"].([]any)[0].(map[string]any)
	assert.Equal(t, "notes", from["collectionId"])

	filter := structured["where"].(map[string]any)["fieldFilter"].(map[string]any)
	assert.Equal(t, "EQUAL", filter["op"])
	assert.Equal(t, "u1", filter["value"].(map[string]any)["stringValue"])

	order := structured["orderBy"].([]any)[0].(map[string]any)
	assert.Equal(t, "created_at", order["field"].(map[string]any)["fieldPath"])
	assert.Equal(t, "DESCENDING", order["direction"])
}

func TestGetProfile_NotFound(t *testing.T) {
	b := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []map[string]any{{"readTime": "2026-06-05T00:00:00Z"}})
	}))

	_, err := b.Database().GetProfile(context.Background(), "nobody")
	require.ErrorIs(t, err, backend.ErrNotFound)
}

func TestGetDocument_NotFound(t *testing.T) {
	b := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := b.c.getDocument(context.Background(), "notes", "missing")
	require.ErrorIs(t, err, backend.ErrNotFound)
}

func TestCreateExpense_EncodesNumbers(t *testing.T) {
	var commitBody map[string]any

	b := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == commitPath:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&commitBody))
			writeJSON(t, w, map[string]any{})
		default:
			writeJSON(t, w, fsDocument{
				Name: "projects/p1/databases/(default)/documents/expenses/e1",
				Fields: map[string]map[string]any{
					"amount":     {"doubleValue": 12.5},
					"category":   {"stringValue": "food"},
					"type":       {"stringValue": "expense"},
					"date":       {"stringValue": "2026-06-01"},
					"user_id":    {"stringValue": "u1"},
					"created_at": {"timestampValue": "2026-06-01T00:00:00Z"},
				},
			})
		}
	}))

	expense, err := b.Database().CreateExpense(context.Background(), "u1", backend.ExpenseParams{
		Amount: 12.5, Category: "food", Type: "expense", Date: "2026-06-01",
	})
	require.NoError(t, err)
	assert.Equal(t, 12.5, expense.Amount)

	write := commitBody["writes"].([]any)[0].(map[string]any)
	fields := write["update"].(map[string]any)["fields"].(map[string]any)
	amount := fields["amount"].(map[string]any)
	assert.Equal(t, 12.5, amount["doubleValue"])
}
