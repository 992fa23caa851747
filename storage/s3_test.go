package storage

import (
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBucket serves the handful of path-style S3 calls the provider makes.
type fakeBucket struct {
	mu      sync.Mutex
	name    string
	objects map[string]string // key -> content type
	locked  map[string]bool   // keys DeleteObjects reports as failed
	puts    int
	headers http.Header
}

func newFakeBucket(name string) *fakeBucket {
	return &fakeBucket{name: name, objects: map[string]string{}, locked: map[string]bool{}}
}

func (b *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, "/"+b.name), "/")
	switch {
	case r.Method == http.MethodHead:
		if _, ok := b.objects[key]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut:
		_, _ = io.Copy(io.Discard, r.Body)
		b.puts++
		b.headers = r.Header.Clone()
		b.objects[key] = r.Header.Get("Content-Type")
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPost && r.URL.Query().Has("delete"):
		var req struct {
			Objects []struct {
				Key string `xml:"Key"`
			} `xml:"Object"`
		}
		if err := xml.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		var out bytes.Buffer
		out.WriteString(`<?xml version="1.0" encoding="UTF-8"?><DeleteResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">`)
		for _, o := range req.Objects {
			if b.locked[o.Key] {
				out.WriteString(`<Error><Key>` + o.Key + `</Key><Code>AccessDenied</Code><Message>Access Denied</Message></Error>`)
				continue
			}
			delete(b.objects, o.Key)
		}
		out.WriteString(`</DeleteResult>`)
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write(out.Bytes())
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestS3(t *testing.T) (*S3, *fakeBucket) {
	t.Helper()
	bucket := newFakeBucket("skillplus")
	srv := httptest.NewServer(bucket)
	t.Cleanup(srv.Close)

	s, err := NewS3(context.Background(), S3Options{
		Endpoint:  srv.URL,
		Region:    "us-east-1",
		AccessKey: "access",
		SecretKey: "secret",
		Bucket:    "skillplus",
	})
	require.NoError(t, err)
	return s, bucket
}

func TestS3UploadCreateOnly(t *testing.T) {
	s, bucket := newTestS3(t)
	ctx := context.Background()

	err := s.Upload(ctx, "courses/a.png", bytes.NewReader(pngHeader), UploadOptions{ContentType: "image/png", CacheControl: "3600"})
	require.NoError(t, err)
	assert.Equal(t, 1, bucket.puts)
	assert.Equal(t, "image/png", bucket.objects["courses/a.png"])
	assert.Equal(t, "max-age=3600", bucket.headers.Get("Cache-Control"))

	err = s.Upload(ctx, "courses/a.png", bytes.NewReader(pngHeader), UploadOptions{ContentType: "image/png"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	assert.Equal(t, 1, bucket.puts)

	err = s.Upload(ctx, "courses/a.png", bytes.NewReader(pngHeader), UploadOptions{ContentType: "image/png", Upsert: true})
	require.NoError(t, err)
	assert.Equal(t, 2, bucket.puts)
}

func TestS3Remove(t *testing.T) {
	s, bucket := newTestS3(t)
	ctx := context.Background()
	bucket.objects["courses/a.png"] = "image/png"
	bucket.objects["courses/b.png"] = "image/png"
	bucket.locked["courses/b.png"] = true

	require.NoError(t, s.Remove(ctx))
	require.NoError(t, s.Remove(ctx, "courses/a.png"))
	assert.NotContains(t, bucket.objects, "courses/a.png")

	err := s.Remove(ctx, "courses/b.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "courses/b.png")
	assert.Contains(t, err.Error(), "Access Denied")
	assert.Contains(t, bucket.objects, "courses/b.png")
}

func TestS3PublicURL(t *testing.T) {
	s, err := NewS3(context.Background(), S3Options{
		Endpoint:  "https://x.supabase.co/storage/v1/s3",
		Region:    "us-east-1",
		Bucket:    "skillplus",
		PublicURL: "https://x.supabase.co/storage/v1/object/public/",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://x.supabase.co/storage/v1/object/public/skillplus/courses/a.png", s.PublicURL("courses/a.png"))
}
