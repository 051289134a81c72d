package firebase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/teephopdisawas/lifehub/internal/backend"
)

// storageAPI talks to the Firebase Storage REST surface. The project has a
// single storage bucket, so the logical bucket name from the contract
// becomes the leading segment of the object name instead.
type storageAPI struct {
	c *client
}

func (s *storageAPI) objectName(bucket, path string) string {
	return bucket + "/" + path
}

func (s *storageAPI) bucketBase() string {
	return fmt.Sprintf("%s/v0/b/%s/o", s.c.storageURL, s.c.bucket)
}

func (s *storageAPI) UploadFile(ctx context.Context, bucket, path string, content io.Reader, name string) (*backend.UploadedFile, error) {
	object := s.objectName(bucket, path)
	u := fmt.Sprintf("%s?uploadType=media&name=%s", s.bucketBase(), url.QueryEscape(object))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, content)
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	s.c.authorize(req)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := s.c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, apiError(resp)
	}
	io.Copy(io.Discard, resp.Body)

	return &backend.UploadedFile{
		Path: path,
		URL:  s.GetPublicURL(bucket, path),
		Name: name,
	}, nil
}

func (s *storageAPI) DeleteFile(ctx context.Context, bucket, path string) error {
	object := url.PathEscape(s.objectName(bucket, path))
	u := s.bucketBase() + "/" + object

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}
	s.c.authorize(req)

	resp, err := s.c.http.Do(req)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return apiError(resp)
	}
	return nil
}

// GetPublicURL composes the media URL for an object. The object may still
// require a download token to fetch when the bucket rules demand one; the
// contract accepts that the URL is best effort.
func (s *storageAPI) GetPublicURL(bucket, path string) string {
	object := url.PathEscape(s.objectName(bucket, path))
	return fmt.Sprintf("%s/%s?alt=media", s.bucketBase(), object)
}

func (s *storageAPI) ListFiles(ctx context.Context, bucket, prefix string) ([]backend.UploadedFile, error) {
	scope := bucket + "/"
	if prefix != "" {
		scope += prefix + "/"
	}
	u := fmt.Sprintf("%s?prefix=%s", s.bucketBase(), url.QueryEscape(scope))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build list request: %w", err)
	}
	s.c.authorize(req)

	resp, err := s.c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, apiError(resp)
	}

	var listing struct {
		Items []struct {
			Name string `json:"name"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}

	files := make([]backend.UploadedFile, 0, len(listing.Items))
	for _, item := range listing.Items {
		rel := strings.TrimPrefix(item.Name, bucket+"/")
		files = append(files, backend.UploadedFile{
			Path: rel,
			URL:  s.GetPublicURL(bucket, rel),
			Name: rel[strings.LastIndex(rel, "/")+1:],
		})
	}
	return files, nil
}
