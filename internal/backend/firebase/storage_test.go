package firebase

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageGetPublicURL(t *testing.T) {
	b := New(Config{APIKey: "k", ProjectID: "p1", StorageBucket: "p1.appspot.com"}, 0, zerolog.Nop())

	got := b.Storage().GetPublicURL("files", "u1/doc.pdf")
	assert.Equal(t,
		"https://firebasestorage.googleapis.com/v0/b/p1.appspot.com/o/files%2Fu1%2Fdoc.pdf?alt=media",
		got)
}

func TestStorageUploadFile(t *testing.T) {
	var body []byte
	var name string

	b := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v0/b/p1.appspot.com/o", r.URL.Path)
		assert.Equal(t, "media", r.URL.Query().Get("uploadType"))
		name = r.URL.Query().Get("name")

		var err error
		body, err = io.ReadAll(r.Body)
		require.NoError(t, err)
		writeJSON(t, w, map[string]string{"name": name})
	}))

	file, err := b.Storage().UploadFile(context.Background(), "files", "u1/photo.png",
		strings.NewReader("png-bytes"), "photo.png")
	require.NoError(t, err)
	assert.Equal(t, "files/u1/photo.png", name, "bucket name nests under the project bucket")
	assert.Equal(t, "png-bytes", string(body))
	assert.Equal(t, "u1/photo.png", file.Path)
	assert.Equal(t, "photo.png", file.Name)
}

func TestStorageListFiles(t *testing.T) {
	b := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v0/b/p1.appspot.com/o", r.URL.Path)
		assert.Equal(t, "files/u1/", r.URL.Query().Get("prefix"))
		writeJSON(t, w, map[string]any{
			"items": []map[string]string{
				{"name": "files/u1/a.txt"},
				{"name": "files/u1/pics/b.png"},
			},
		})
	}))

	files, err := b.Storage().ListFiles(context.Background(), "files", "u1")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "u1/a.txt", files[0].Path)
	assert.Equal(t, "a.txt", files[0].Name)
	assert.Equal(t, "b.png", files[1].Name)

	u, err := url.Parse(files[0].URL)
	require.NoError(t, err)
	assert.Equal(t, "media", u.Query().Get("alt"))
}

func TestStorageDeleteFile(t *testing.T) {
	deleted := false

	b := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/v0/b/p1.appspot.com/o/files%2Fu1%2Fa.txt", r.URL.EscapedPath())
		deleted = true
		w.WriteHeader(http.StatusOK)
	}))

	require.NoError(t, b.Storage().DeleteFile(context.Background(), "files", "u1/a.txt"))
	assert.True(t, deleted)
}
