package appwrite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/teephopdisawas/lifehub/internal/backend"
)

// storageAPI talks to the Appwrite storage service. The deployment has one
// configured bucket; the bucket argument from the contract is accepted and
// ignored. Appwrite mints the file id itself, so the returned Path is that
// id rather than the caller's path, and callers must keep it to address the
// file later.
type storageAPI struct {
	c *client
}

type storedFile struct {
	ID   string `json:"$id"`
	Name string `json:"name"`
}

func (s *storageAPI) filesPath() string {
	return "/storage/buckets/" + s.c.bucketID + "/files"
}

func (s *storageAPI) viewURL(fileID string) string {
	return fmt.Sprintf("%s%s/%s/view?project=%s", s.c.endpoint, s.filesPath(), fileID, s.c.projectID)
}

func (s *storageAPI) UploadFile(ctx context.Context, _, _ string, content io.Reader, name string) (*backend.UploadedFile, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	if err := form.WriteField("fileId", "unique()"); err != nil {
		return nil, fmt.Errorf("write form field: %w", err)
	}
	part, err := form.CreateFormFile("file", name)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.c.endpoint+s.filesPath(), &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Appwrite-Project", s.c.projectID)
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := s.c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiError(resp)
	}

	var file storedFile
	if err := json.NewDecoder(resp.Body).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &backend.UploadedFile{
		Path: file.ID,
		URL:  s.viewURL(file.ID),
		Name: name,
	}, nil
}

func (s *storageAPI) DeleteFile(ctx context.Context, _, path string) error {
	return s.c.do(ctx, http.MethodDelete, s.filesPath()+"/"+path, nil, nil, nil)
}

func (s *storageAPI) GetPublicURL(_, path string) string {
	return s.viewURL(path)
}

// ListFiles returns every file in the bucket. Appwrite's flat file ids carry
// no path structure, so the prefix cannot narrow the listing.
func (s *storageAPI) ListFiles(ctx context.Context, _, _ string) ([]backend.UploadedFile, error) {
	var listing struct {
		Files []storedFile `json:"files"`
	}
	if err := s.c.do(ctx, http.MethodGet, s.filesPath(), nil, nil, &listing); err != nil {
		return nil, err
	}

	files := make([]backend.UploadedFile, 0, len(listing.Files))
	for _, f := range listing.Files {
		files = append(files, backend.UploadedFile{
			Path: f.ID,
			URL:  s.viewURL(f.ID),
			Name: f.Name,
		})
	}
	return files, nil
}
