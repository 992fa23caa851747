package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env      string `envconfig:"ENV" default:"production"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Port     string `envconfig:"PORT" default:"8080"`

	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	DBTimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Jakarta"`

	JWTSecret     string        `envconfig:"JWT_SECRET" required:"true"`
	AdminTokenTTL time.Duration `envconfig:"ADMIN_TOKEN_TTL" default:"1h"`
	UserTokenTTL  time.Duration `envconfig:"USER_TOKEN_TTL" default:"24h"`

	// supabase | s3
	StorageDriver       string `envconfig:"STORAGE_DRIVER" default:"supabase"`
	StorageBucket       string `envconfig:"STORAGE_BUCKET" default:"skillplus"`
	StorageCacheControl string `envconfig:"STORAGE_CACHE_CONTROL" default:"3600"`
	SupabaseURL         string `envconfig:"SUPABASE_URL"`
	SupabaseKey         string `envconfig:"SUPABASE_KEY"`
	S3Endpoint          string `envconfig:"S3_ENDPOINT"`
	S3Region            string `envconfig:"S3_REGION" default:"us-east-1"`
	S3AccessKey         string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey         string `envconfig:"S3_SECRET_KEY"`
	S3PublicURL         string `envconfig:"S3_PUBLIC_URL"`
	MaxUploadMB         int64  `envconfig:"MAX_UPLOAD_MB" default:"5"`

	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	CacheTTL      time.Duration `envconfig:"CACHE_TTL" default:"10m"`

	LoginRateLimit  int           `envconfig:"LOGIN_RATE_LIMIT" default:"10"`
	LoginRateWindow time.Duration `envconfig:"LOGIN_RATE_WINDOW" default:"15m"`

	CORSOrigins      []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`
	OrphanSweepSpec  string   `envconfig:"ORPHAN_SWEEP_SPEC" default:"@every 6h"`
	OrphanSweepBatch int      `envconfig:"ORPHAN_SWEEP_BATCH" default:"50"`
}

// MaxUploadBytes is the largest image accepted for thumbnails and photos.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

// Load reads an optional .env file and then the process environment.
// A missing .env is not an error; the returned bool reports whether one was found.
func Load() (*Config, bool, error) {
	found := godotenv.Load() == nil

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, found, err
	}
	return &cfg, found, nil
}
