package storage

import (
	"context"

	"github.com/pkg/errors"

	"github.com/vnkhanh/skillplus-backend/config"
)

// NewProvider builds the Provider selected by STORAGE_DRIVER.
func NewProvider(ctx context.Context, cfg *config.Config) (Provider, error) {
	switch cfg.StorageDriver {
	case "supabase", "":
		if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
			return nil, errors.New("SUPABASE_URL and SUPABASE_KEY are required for the supabase storage driver")
		}
		return NewSupabase(cfg.SupabaseURL, cfg.SupabaseKey, cfg.StorageBucket), nil
	case "s3":
		return NewS3(ctx, S3Options{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.StorageBucket,
			PublicURL: cfg.S3PublicURL,
		})
	default:
		return nil, errors.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
