package supabase

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/teephopdisawas/lifehub/internal/backend"
)

// storageAPI talks to the Supabase Storage API. Object keys are
// bucket-scoped paths; public URLs derive synchronously from the project
// URL.
type storageAPI struct {
	c *client
}

func (s *storageAPI) objectPath(bucket, objectKey string) string {
	return "/storage/v1/object/" + bucket + "/" + strings.TrimLeft(objectKey, "/")
}

func (s *storageAPI) UploadFile(ctx context.Context, bucket, objectKey string, content io.Reader, name string) (*backend.UploadedFile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.c.baseURL+s.objectPath(bucket, objectKey), content)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("apikey", s.c.anonKey)
	req.Header.Set("Authorization", "Bearer "+s.c.bearer())
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := s.c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", objectKey, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiError(resp)
	}

	return &backend.UploadedFile{
		Path: objectKey,
		URL:  s.GetPublicURL(bucket, objectKey),
		Name: name,
	}, nil
}

func (s *storageAPI) DeleteFile(ctx context.Context, bucket, objectKey string) error {
	return s.c.do(ctx, http.MethodDelete, s.objectPath(bucket, objectKey), nil, nil, nil, nil)
}

func (s *storageAPI) GetPublicURL(bucket, objectKey string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.c.baseURL, bucket, strings.TrimLeft(objectKey, "/"))
}

func (s *storageAPI) ListFiles(ctx context.Context, bucket, prefix string) ([]backend.UploadedFile, error) {
	var entries []struct {
		Name string `json:"name"`
	}
	body := map[string]any{"prefix": prefix}
	if err := s.c.do(ctx, http.MethodPost, "/storage/v1/object/list/"+bucket, nil, nil, body, &entries); err != nil {
		return nil, err
	}

	files := make([]backend.UploadedFile, 0, len(entries))
	for _, e := range entries {
		key := path.Join(prefix, e.Name)
		files = append(files, backend.UploadedFile{
			Path: key,
			URL:  s.GetPublicURL(bucket, key),
			Name: e.Name,
		})
	}
	return files, nil
}
