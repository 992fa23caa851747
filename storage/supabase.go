package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	storage_go "github.com/supabase-community/storage-go"
)

// Supabase stores objects in a Supabase Storage bucket.
type Supabase struct {
	client  *storage_go.Client
	baseURL string
	bucket  string
}

func NewSupabase(supabaseURL, key, bucket string) *Supabase {
	baseURL := strings.TrimRight(supabaseURL, "/")
	return &Supabase{
		client:  storage_go.NewClient(baseURL+"/storage/v1", key, nil),
		baseURL: baseURL,
		bucket:  bucket,
	}
}

// The storage-go client has no context support; ctx is only checked before
// the request starts.
func (s *Supabase) Upload(ctx context.Context, key string, body io.Reader, opts UploadOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	upsert := opts.Upsert
	fileOpts := storage_go.FileOptions{Upsert: &upsert}
	if opts.ContentType != "" {
		fileOpts.ContentType = &opts.ContentType
	}
	if opts.CacheControl != "" {
		fileOpts.CacheControl = &opts.CacheControl
	}

	if _, err := s.client.UploadFile(s.bucket, key, body, fileOpts); err != nil {
		return errors.Wrapf(err, "supabase upload %s/%s", s.bucket, key)
	}
	return nil
}

// PublicURL: <SUPABASE_URL>/storage/v1/object/public/<bucket>/<key>
func (s *Supabase) PublicURL(key string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, key)
}

func (s *Supabase) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.client.RemoveFile(s.bucket, keys); err != nil {
		return errors.Wrapf(err, "supabase remove from %s", s.bucket)
	}
	return nil
}
