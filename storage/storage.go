package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/vnkhanh/skillplus-backend/apperror"
)

// Provider is a bucket-style object store.
type Provider interface {
	Upload(ctx context.Context, key string, body io.Reader, opts UploadOptions) error
	PublicURL(key string) string
	Remove(ctx context.Context, keys ...string) error
}

type UploadOptions struct {
	ContentType  string
	CacheControl string
	Upsert       bool
}

// WritePolicy decides whether an upload may replace an existing object.
type WritePolicy int

const (
	// CreateOnly never overwrites; used when creating courses and mentors.
	CreateOnly WritePolicy = iota
	// Overwrite allows replacing an object; used by edit flows.
	Overwrite
)

// File is an uploaded file read fully into memory.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

func (f File) Ext() string {
	return strings.ToLower(filepath.Ext(f.Name))
}

// Object is the result of a successful upload.
type Object struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// Gateway generates object keys and talks to the configured Provider.
type Gateway struct {
	provider     Provider
	cacheControl string
	now          func() time.Time
}

func NewGateway(p Provider, cacheControl string) *Gateway {
	return &Gateway{provider: p, cacheControl: cacheControl, now: time.Now}
}

// Upload stores f under prefix and returns its public URL. Provider errors are
// returned as upload errors and never retried.
func (g *Gateway) Upload(ctx context.Context, f File, prefix string, policy WritePolicy) (Object, error) {
	key := g.NewKey(prefix, f.Name)
	opts := UploadOptions{
		ContentType:  f.ContentType,
		CacheControl: g.cacheControl,
		Upsert:       policy == Overwrite,
	}
	if err := g.provider.Upload(ctx, key, bytes.NewReader(f.Data), opts); err != nil {
		return Object{}, apperror.Upload(err, "Failed to upload file")
	}
	return Object{Key: key, URL: g.provider.PublicURL(key)}, nil
}

// Remove deletes a previously uploaded object.
func (g *Gateway) Remove(ctx context.Context, key string) error {
	return g.provider.Remove(ctx, key)
}

// KeyOf recovers the object key from a public URL produced by this gateway.
func (g *Gateway) KeyOf(publicURL string) (string, bool) {
	base := g.provider.PublicURL("")
	if publicURL == "" || !strings.HasPrefix(publicURL, base) {
		return "", false
	}
	return strings.TrimPrefix(publicURL, base), true
}

// NewKey builds "<prefix>/<unix millis>-<random>-<slug><ext>".
func (g *Gateway) NewKey(prefix, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := slug.Make(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	if len(base) > 40 {
		base = strings.Trim(base[:40], "-")
	}

	name := fmt.Sprintf("%d-%s", g.now().UnixMilli(), uuid.NewString()[:8])
	if base != "" {
		name += "-" + base
	}
	name += ext

	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

// ReadImage reads a multipart image into memory, enforcing maxBytes and an
// image/* content type. The content type is sniffed when the client did not
// send a usable one.
func ReadImage(fh *multipart.FileHeader, maxBytes int64) (File, error) {
	if fh.Size > maxBytes {
		return File{}, apperror.Input(fmt.Sprintf("%s exceeds the %d MB limit", fh.Filename, maxBytes>>20))
	}

	src, err := fh.Open()
	if err != nil {
		return File{}, apperror.Input("cannot read uploaded file")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxBytes+1))
	if err != nil {
		return File{}, apperror.Input("cannot read uploaded file")
	}
	if int64(len(data)) > maxBytes {
		return File{}, apperror.Input(fmt.Sprintf("%s exceeds the %d MB limit", fh.Filename, maxBytes>>20))
	}
	if len(data) == 0 {
		return File{}, apperror.Input(fh.Filename + " is empty")
	}

	// The client's Content-Type is ignored; only sniffed raster types pass.
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return File{}, apperror.Input("only image files are accepted")
	}

	return File{Name: fh.Filename, ContentType: contentType, Data: data}, nil
}
