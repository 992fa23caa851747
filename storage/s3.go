package storage

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pkg/errors"
)

type S3Options struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	// PublicURL is the base URL objects are served from, without the bucket.
	PublicURL string
}

// S3 stores objects in any S3 compatible bucket, including Supabase's S3 endpoint.
type S3 struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewS3(ctx context.Context, o S3Options) (*S3, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(o.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(o.AccessKey, o.SecretKey, "")),
	)
	if err != nil {
		return nil, errors.Wrap(err, "load aws config")
	}

	client := s3.NewFromConfig(cfg, func(opts *s3.Options) {
		if o.Endpoint != "" {
			opts.BaseEndpoint = aws.String(o.Endpoint)
			opts.UsePathStyle = true
		}
	})

	public := strings.TrimRight(o.PublicURL, "/")
	if public == "" {
		public = strings.TrimRight(o.Endpoint, "/")
	}
	return &S3{client: client, bucket: o.Bucket, publicURL: public}, nil
}

func (s *S3) Upload(ctx context.Context, key string, body io.Reader, opts UploadOptions) error {
	if !opts.Upsert {
		exists, err := s.exists(ctx, key)
		if err != nil {
			return err
		}
		if exists {
			return errors.Errorf("object %s/%s already exists", s.bucket, key)
		}
	}

	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if opts.ContentType != "" {
		in.ContentType = aws.String(opts.ContentType)
	}
	if opts.CacheControl != "" {
		in.CacheControl = aws.String("max-age=" + opts.CacheControl)
	}

	if _, err := s.client.PutObject(ctx, in); err != nil {
		return errors.Wrapf(err, "s3 put %s/%s", s.bucket, key)
	}
	return nil
}

func (s *S3) exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return false, nil
	}
	return false, errors.Wrapf(err, "s3 head %s/%s", s.bucket, key)
}

func (s *S3) PublicURL(key string) string {
	return s.publicURL + "/" + url.PathEscape(s.bucket) + "/" + key
}

func (s *S3) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	objects := make([]types.ObjectIdentifier, 0, len(keys))
	for _, k := range keys {
		objects = append(objects, types.ObjectIdentifier{Key: aws.String(k)})
	}

	out, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(s.bucket),
		Delete: &types.Delete{Objects: objects, Quiet: aws.Bool(true)},
	})
	if err != nil {
		return errors.Wrapf(err, "s3 delete from %s", s.bucket)
	}
	if len(out.Errors) > 0 {
		first := out.Errors[0]
		return errors.Errorf("s3 delete %s: %s", aws.ToString(first.Key), aws.ToString(first.Message))
	}
	return nil
}
