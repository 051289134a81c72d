package appwrite

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageUploadFile(t *testing.T) {
	var fileID, fileName string
	var content []byte

	b := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/storage/buckets/bucket1/files", r.URL.Path)
		require.Equal(t, "proj1", r.Header.Get("X-Appwrite-Project"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		fileID = r.FormValue("fileId")

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		fileName = header.Filename
		content, err = io.ReadAll(file)
		require.NoError(t, err)

		writeJSON(t, w, storedFile{ID: "f123", Name: header.Filename})
	}))

	uploaded, err := b.Storage().UploadFile(context.Background(), "ignored", "u1/report.pdf",
		strings.NewReader("pdf-bytes"), "report.pdf")
	require.NoError(t, err)

	assert.Equal(t, "unique()", fileID)
	assert.Equal(t, "report.pdf", fileName)
	assert.Equal(t, "pdf-bytes", string(content))

	assert.Equal(t, "f123", uploaded.Path, "the server-minted file id becomes the durable key")
	assert.Contains(t, uploaded.URL, "/storage/buckets/bucket1/files/f123/view")
	assert.Contains(t, uploaded.URL, "project=proj1")
}

func TestStorageGetPublicURL(t *testing.T) {
	b := New(Config{
		Endpoint:  "https://cloud.appwrite.io/v1",
		ProjectID: "proj1",
		BucketID:  "bucket1",
	}, 0, zerolog.Nop())

	got := b.Storage().GetPublicURL("ignored", "f123")
	assert.Equal(t,
		"https://cloud.appwrite.io/v1/storage/buckets/bucket1/files/f123/view?project=proj1",
		got)
}

func TestStorageListFiles(t *testing.T) {
	b := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/storage/buckets/bucket1/files", r.URL.Path)
		writeJSON(t, w, map[string]any{
			"total": 2,
			"files": []storedFile{
				{ID: "f1", Name: "a.txt"},
				{ID: "f2", Name: "b.txt"},
			},
		})
	}))

	files, err := b.Storage().ListFiles(context.Background(), "ignored", "")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "f1", files[0].Path)
	assert.Equal(t, "a.txt", files[0].Name)
	assert.Contains(t, files[1].URL, "/files/f2/view")
}

func TestStorageDeleteFile(t *testing.T) {
	deleted := false

	b := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/storage/buckets/bucket1/files/f123", r.URL.Path)
		deleted = true
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, b.Storage().DeleteFile(context.Background(), "ignored", "f123"))
	assert.True(t, deleted)
}
